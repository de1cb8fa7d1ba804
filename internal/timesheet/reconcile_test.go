package timesheet

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"clockweek/internal/clockify"
)

// fakeLedger records calls and can be told to fail a specific create.
type fakeLedger struct {
	entries []clockify.TimeEntry

	created []clockify.TimeEntryRequest
	deleted []string

	listCalls    int
	createCalls  int
	listErr      error
	deleteErr    error
	failCreateAt int // 1-based call index that fails, 0 = never
}

func (f *fakeLedger) ListTimeEntries(ctx context.Context, workspaceID, userID string, start, end time.Time) ([]clockify.TimeEntry, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []clockify.TimeEntry
	for _, e := range f.entries {
		s := e.TimeInterval.Start
		if !s.Before(start) && !s.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) CreateTimeEntry(ctx context.Context, workspaceID string, req clockify.TimeEntryRequest) (*clockify.TimeEntry, error) {
	f.createCalls++
	if f.failCreateAt > 0 && f.createCalls >= f.failCreateAt {
		return nil, errors.New("service blew up")
	}
	f.created = append(f.created, req)
	created := clockify.TimeEntry{ID: fmt.Sprintf("new-%d", f.createCalls), ProjectID: req.ProjectID}
	return &created, nil
}

func (f *fakeLedger) DeleteTimeEntry(ctx context.Context, workspaceID, entryID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, entryID)
	for i, e := range f.entries {
		if e.ID == entryID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	return nil
}

func testWeek() []time.Time {
	return weekDatesFrom(date(2024, time.May, 13), 0)
}

func TestComputeChanges(t *testing.T) {
	week := testWeek()
	monday, tuesday := week[0], week[1]

	baseline := map[time.Time]int{monday: 60}
	edits := map[time.Time]string{monday: "0", tuesday: "2"}

	ops := ComputeChanges(week, baseline, edits)
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %d: %v", len(ops), ops)
	}
	if ops[0].Kind != OpDelete || !ops[0].Date.Equal(monday) {
		t.Errorf("first op = %+v, want delete of Monday", ops[0])
	}
	if ops[1].Kind != OpCreate || !ops[1].Date.Equal(tuesday) || ops[1].Minutes != 120 {
		t.Errorf("second op = %+v, want create Tuesday 120min", ops[1])
	}
}

func TestComputeChangesUnchangedValue(t *testing.T) {
	week := testWeek()
	wednesday := week[2]

	baseline := map[time.Time]int{wednesday: 90}
	edits := map[time.Time]string{wednesday: "1.5"}

	if ops := ComputeChanges(week, baseline, edits); len(ops) != 0 {
		t.Errorf("expected no ops for unchanged value, got %v", ops)
	}
}

func TestComputeChangesZeroOnZero(t *testing.T) {
	week := testWeek()
	edits := map[time.Time]string{week[0]: "", week[1]: "abc"}

	if ops := ComputeChanges(week, nil, edits); len(ops) != 0 {
		t.Errorf("expected no ops for empty baseline and zero edits, got %v", ops)
	}
}

func TestComputeChangesSkipsLockedDays(t *testing.T) {
	week := WeekDates(1) // entirely in the future

	edits := make(map[time.Time]string, len(week))
	for _, d := range week {
		edits[d] = "8"
	}

	if ops := ComputeChanges(week, nil, edits); len(ops) != 0 {
		t.Errorf("locked days produced ops: %v", ops)
	}
}

func TestApplyNoOpsMakesNoCalls(t *testing.T) {
	ledger := &fakeLedger{}
	r := NewReconciler(ledger, "ws", "user", nil)

	summary, err := r.Apply(context.Background(), "p1", map[time.Time]int{}, nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if summary.Changed {
		t.Error("summary reports a change for an empty op set")
	}
	if ledger.listCalls != 0 || ledger.createCalls != 0 || len(ledger.deleted) != 0 {
		t.Errorf("ledger was called for an empty op set: %+v", ledger)
	}
}

func TestApplyCreateReplacesExisting(t *testing.T) {
	week := testWeek()
	monday := week[0]

	ledger := &fakeLedger{entries: []clockify.TimeEntry{
		entry("old-1", "p1", monday.Add(9*time.Hour), "PT1H"),
		entry("other", "p2", monday.Add(9*time.Hour), "PT1H"),
	}}
	r := NewReconciler(ledger, "ws", "user", nil)

	baseline := map[time.Time]int{monday: 60}
	ops := []ChangeOp{{Kind: OpCreate, Date: monday, Minutes: 120}}

	summary, err := r.Apply(context.Background(), "p1", baseline, ops)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if len(ledger.deleted) != 1 || ledger.deleted[0] != "old-1" {
		t.Errorf("deleted %v, want exactly [old-1]", ledger.deleted)
	}
	if len(ledger.created) != 1 {
		t.Fatalf("created %d entries, want 1", len(ledger.created))
	}
	req := ledger.created[0]
	if req.Start != "2024-05-13T09:00:00Z" || req.End != "2024-05-13T11:00:00Z" {
		t.Errorf("entry spans %s–%s, want 09:00–11:00", req.Start, req.End)
	}
	if req.ProjectID != "p1" || req.Billable {
		t.Errorf("unexpected request: %+v", req)
	}

	if !summary.Changed {
		t.Error("summary does not report a change")
	}
	if summary.Baseline[monday] != 120 {
		t.Errorf("summary baseline Monday = %d, want 120", summary.Baseline[monday])
	}
}

func TestApplyDeleteRemovesOnlyProjectEntries(t *testing.T) {
	week := testWeek()
	monday := week[0]

	ledger := &fakeLedger{entries: []clockify.TimeEntry{
		entry("mine", "p1", monday.Add(9*time.Hour), "PT1H"),
		entry("theirs", "p2", monday.Add(10*time.Hour), "PT1H"),
	}}
	r := NewReconciler(ledger, "ws", "user", nil)

	baseline := map[time.Time]int{monday: 60}
	ops := []ChangeOp{{Kind: OpDelete, Date: monday}}

	summary, err := r.Apply(context.Background(), "p1", baseline, ops)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(ledger.deleted) != 1 || ledger.deleted[0] != "mine" {
		t.Errorf("deleted %v, want exactly [mine]", ledger.deleted)
	}
	if _, ok := summary.Baseline[monday]; ok {
		t.Errorf("deleted day still in summary baseline: %v", summary.Baseline)
	}
}

func TestApplyAbortsOnFailureKeepingEarlierOps(t *testing.T) {
	week := testWeek()

	ledger := &fakeLedger{failCreateAt: 2}
	r := NewReconciler(ledger, "ws", "user", nil)

	ops := []ChangeOp{
		{Kind: OpCreate, Date: week[0], Minutes: 60},
		{Kind: OpCreate, Date: week[1], Minutes: 60},
	}

	_, err := r.Apply(context.Background(), "p1", nil, ops)
	if err == nil {
		t.Fatal("expected an error from the second op")
	}
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Errorf("error %v does not wrap ErrRemoteUnavailable", err)
	}
	if len(ledger.created) != 1 {
		t.Errorf("first op's entry not kept: created %v", ledger.created)
	}
}

func TestWeekBaselinePropagatesLedgerFailure(t *testing.T) {
	ledger := &fakeLedger{listErr: errors.New("connection refused")}
	r := NewReconciler(ledger, "ws", "user", nil)

	baseline, err := r.WeekBaseline(context.Background(), "p1", testWeek())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Errorf("error %v does not wrap ErrRemoteUnavailable", err)
	}
	if baseline != nil {
		t.Errorf("partial baseline returned on failure: %v", baseline)
	}
}

func TestWeekBaselineAggregates(t *testing.T) {
	week := testWeek()
	monday := week[0]

	ledger := &fakeLedger{entries: []clockify.TimeEntry{
		entry("e1", "p1", monday.Add(9*time.Hour), "PT30M"),
		entry("e2", "p1", monday.Add(11*time.Hour), "PT45M"),
		entry("e3", "p2", monday.Add(9*time.Hour), "PT3H"),
	}}
	r := NewReconciler(ledger, "ws", "user", nil)

	baseline, err := r.WeekBaseline(context.Background(), "p1", week)
	if err != nil {
		t.Fatalf("week baseline: %v", err)
	}
	if baseline[monday] != 75 {
		t.Errorf("Monday = %d, want 75", baseline[monday])
	}
	if len(baseline) != 1 {
		t.Errorf("baseline has %d days, want 1: %v", len(baseline), baseline)
	}
}
