package timesheet

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekDatesFrom(t *testing.T) {
	wednesday := date(2024, time.May, 15)

	week := weekDatesFrom(wednesday, 0)
	if len(week) != 7 {
		t.Fatalf("expected 7 dates, got %d", len(week))
	}
	if !week[0].Equal(date(2024, time.May, 13)) {
		t.Errorf("week starts on %v, want Monday May 13", week[0])
	}
	for i := 1; i < 7; i++ {
		if !week[i].Equal(week[i-1].AddDate(0, 0, 1)) {
			t.Errorf("dates not consecutive at index %d: %v after %v", i, week[i], week[i-1])
		}
	}

	prev := weekDatesFrom(wednesday, -1)
	if !prev[0].Equal(date(2024, time.May, 6)) {
		t.Errorf("offset -1 starts on %v, want May 6", prev[0])
	}

	later := weekDatesFrom(wednesday, 2)
	if !later[0].Equal(date(2024, time.May, 27)) {
		t.Errorf("offset 2 starts on %v, want May 27", later[0])
	}
}

func TestWeekDatesFromWeekdayEdges(t *testing.T) {
	monday := date(2024, time.May, 13)
	if got := weekDatesFrom(monday, 0)[0]; !got.Equal(monday) {
		t.Errorf("week of a Monday starts on %v, want the same day", got)
	}

	sunday := date(2024, time.May, 19)
	if got := weekDatesFrom(sunday, 0)[0]; !got.Equal(monday) {
		t.Errorf("week of a Sunday starts on %v, want the preceding Monday", got)
	}
}

func TestWeekDatesContainsToday(t *testing.T) {
	week := WeekDates(0)
	if week[0].Weekday() != time.Monday {
		t.Errorf("current week starts on %v, want Monday", week[0].Weekday())
	}

	today := DateOf(time.Now())
	found := false
	for _, d := range week {
		if d.Equal(today) {
			found = true
		}
	}
	if !found {
		t.Errorf("current week %v does not contain today %v", week, today)
	}
}

func TestLockedOn(t *testing.T) {
	today := date(2024, time.May, 15)

	if lockedOn(today, today) {
		t.Error("today must not be locked")
	}
	if lockedOn(today, today.AddDate(0, 0, -1)) {
		t.Error("yesterday must not be locked")
	}
	if !lockedOn(today, today.AddDate(0, 0, 1)) {
		t.Error("tomorrow must be locked")
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	stamp := time.Date(2024, time.May, 15, 23, 30, 0, 0, loc) // 21:30 UTC

	got := DateOf(stamp)
	if !got.Equal(date(2024, time.May, 15)) {
		t.Errorf("DateOf(%v) = %v, want May 15 UTC midnight", stamp, got)
	}
	if got.Location() != time.UTC {
		t.Errorf("DateOf result not in UTC: %v", got.Location())
	}
}
