// Package timesheet holds the week reconciliation core: duration parsing,
// week window math, day aggregation, and the engine that diffs edited day
// values against remote state and writes the difference back.
package timesheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"clockweek/internal/clockify"
)

// ErrRemoteUnavailable wraps every ledger call failure so callers can treat
// network, auth, and HTTP errors uniformly.
var ErrRemoteUnavailable = errors.New("clockify unavailable")

const (
	entryDescription = "Logged via clockweek"
	entryStartHour   = 9 // entries are booked starting at 09:00
)

const timeLayout = "2006-01-02T15:04:05Z"

// OpKind tags a ChangeOp.
type OpKind int

const (
	// OpDelete removes all of the project's entries on a day.
	OpDelete OpKind = iota
	// OpCreate replaces a day's entries with a single new one.
	OpCreate
)

// ChangeOp is one create-or-replace or delete instruction for a single day.
type ChangeOp struct {
	Kind    OpKind
	Date    time.Time
	Minutes int // positive for OpCreate, zero for OpDelete
}

// Summary reports the outcome of applying a set of ops. Baseline is the
// expected remote state after the ops; callers still refresh from the ledger
// afterwards to guard against drift.
type Summary struct {
	Changed  bool
	Baseline map[time.Time]int
}

// Ledger is the slice of the Clockify API the engine reads and writes
// through.
type Ledger interface {
	ListTimeEntries(ctx context.Context, workspaceID, userID string, start, end time.Time) ([]clockify.TimeEntry, error)
	CreateTimeEntry(ctx context.Context, workspaceID string, req clockify.TimeEntryRequest) (*clockify.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, workspaceID, entryID string) error
}

// ComputeChanges diffs edited day values against the baseline and returns
// the ops needed to make remote state match, ordered Monday to Sunday.
// Locked days and days without an edit field never produce an op. A day is
// either deleted or replaced, never both.
func ComputeChanges(week []time.Time, baseline map[time.Time]int, edits map[time.Time]string) []ChangeOp {
	var ops []ChangeOp
	for _, date := range week {
		if Locked(date) {
			continue
		}
		text, ok := edits[date]
		if !ok {
			continue
		}
		edited := ParseHours(text)
		current := baseline[date]
		switch {
		case edited == 0 && current > 0:
			ops = append(ops, ChangeOp{Kind: OpDelete, Date: date})
		case edited > 0 && edited != current:
			ops = append(ops, ChangeOp{Kind: OpCreate, Date: date, Minutes: edited})
		}
	}
	return ops
}

// Reconciler applies change ops against the remote ledger for one workspace
// and user.
type Reconciler struct {
	ledger      Ledger
	workspaceID string
	userID      string
	logger      *slog.Logger
}

func NewReconciler(ledger Ledger, workspaceID, userID string, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reconciler{
		ledger:      ledger,
		workspaceID: workspaceID,
		userID:      userID,
		logger:      logger,
	}
}

// WeekBaseline fetches the ledger entries covering the week and aggregates
// them into per-day totals for the project. On a ledger failure no partial
// baseline is returned.
func (r *Reconciler) WeekBaseline(ctx context.Context, projectID string, week []time.Time) (map[time.Time]int, error) {
	start := week[0]
	end := week[len(week)-1].Add(24*time.Hour - time.Second)
	entries, err := r.ledger.ListTimeEntries(ctx, r.workspaceID, r.userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: listing week entries: %v", ErrRemoteUnavailable, err)
	}
	return Aggregate(projectID, week, entries), nil
}

// Apply executes ops strictly in order, one blocking ledger round-trip at a
// time. The first failure aborts the whole submit; ops applied for earlier
// days remain applied and the error is the only signal, so callers must
// refresh the baseline afterwards either way.
func (r *Reconciler) Apply(ctx context.Context, projectID string, baseline map[time.Time]int, ops []ChangeOp) (Summary, error) {
	next := make(map[time.Time]int, len(baseline))
	for d, m := range baseline {
		next[d] = m
	}

	for _, op := range ops {
		// OpCreate clears the day first as well, which keeps replacement
		// idempotent and prevents duplicate entries from accumulating.
		if err := r.clearDay(ctx, projectID, op.Date); err != nil {
			return Summary{}, err
		}
		delete(next, op.Date)

		if op.Kind == OpCreate {
			if err := r.createDay(ctx, projectID, op.Date, op.Minutes); err != nil {
				return Summary{}, err
			}
			next[op.Date] = op.Minutes
		}
	}

	r.logger.Info("applied change ops", "project", projectID, "ops", len(ops))
	return Summary{Changed: len(ops) > 0, Baseline: next}, nil
}

func (r *Reconciler) clearDay(ctx context.Context, projectID string, date time.Time) error {
	day := date.Format("2006-01-02")
	entries, err := r.ledger.ListTimeEntries(ctx, r.workspaceID, r.userID, date, date.Add(24*time.Hour-time.Second))
	if err != nil {
		return fmt.Errorf("%w: listing entries for %s: %v", ErrRemoteUnavailable, day, err)
	}

	for _, e := range entries {
		if e.ProjectID != projectID {
			continue
		}
		if err := r.ledger.DeleteTimeEntry(ctx, r.workspaceID, e.ID); err != nil {
			return fmt.Errorf("%w: deleting entry %s on %s: %v", ErrRemoteUnavailable, e.ID, day, err)
		}
		r.logger.Debug("deleted time entry", "id", e.ID, "date", day)
	}
	return nil
}

func (r *Reconciler) createDay(ctx context.Context, projectID string, date time.Time, minutes int) error {
	start := time.Date(date.Year(), date.Month(), date.Day(), entryStartHour, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(minutes) * time.Minute)

	req := clockify.TimeEntryRequest{
		Start:       start.Format(timeLayout),
		End:         end.Format(timeLayout),
		ProjectID:   projectID,
		Description: entryDescription,
		Billable:    false,
	}
	if _, err := r.ledger.CreateTimeEntry(ctx, r.workspaceID, req); err != nil {
		return fmt.Errorf("%w: creating entry for %s: %v", ErrRemoteUnavailable, date.Format("2006-01-02"), err)
	}

	r.logger.Debug("created time entry", "date", date.Format("2006-01-02"), "minutes", minutes)
	return nil
}
