package timesheet

import (
	"time"

	"clockweek/internal/clockify"
)

// Aggregate reduces raw ledger entries to per-day minute totals for one
// project and week. Entries belonging to other projects and entries whose
// start date falls outside the week are excluded. The result holds only
// dates with a strictly positive total; absent dates mean zero.
func Aggregate(projectID string, week []time.Time, entries []clockify.TimeEntry) map[time.Time]int {
	inWeek := make(map[time.Time]bool, len(week))
	for _, d := range week {
		inWeek[d] = true
	}

	totals := make(map[time.Time]int)
	for _, e := range entries {
		if e.ProjectID != projectID {
			continue
		}
		day := DateOf(e.TimeInterval.Start)
		if !inWeek[day] {
			continue
		}
		totals[day] += ParseISODuration(e.TimeInterval.Duration)
	}

	for day, minutes := range totals {
		if minutes <= 0 {
			delete(totals, day)
		}
	}
	return totals
}
