package timesheet

import "time"

// DateOf truncates a timestamp to its UTC calendar date. Baselines and edit
// sets are keyed on these normalized values, so equality is exact date match.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekDates returns the seven dates of the week offset whole weeks from the
// current one, Monday first. Offset zero is the week containing today;
// negative and positive offsets are unbounded.
func WeekDates(offset int) []time.Time {
	return weekDatesFrom(DateOf(time.Now()), offset)
}

func weekDatesFrom(today time.Time, offset int) []time.Time {
	weekday := (int(today.Weekday()) + 6) % 7 // Monday = 0
	monday := today.AddDate(0, 0, -weekday+offset*7)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// Locked reports whether a date may not be edited. Dates after today are
// locked; today and the past are open.
func Locked(date time.Time) bool {
	return lockedOn(DateOf(time.Now()), date)
}

func lockedOn(today, date time.Time) bool {
	return DateOf(date).After(today)
}
