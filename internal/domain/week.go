package domain

import "time"

// DateLayout is the wire/storage format for week keys and plain dates.
const DateLayout = "2006-01-02"

// WeekStart returns the Monday at or before the given date, truncated to
// midnight UTC. Sunday maps back to the Monday six days earlier, never
// forward. Every week-scoped join in the engine keys on this value, so it
// must stay the single source of week math.
func WeekStart(t time.Time) time.Time {
	diff := int(t.Weekday()) - int(time.Monday)
	if diff < 0 {
		diff += 7
	}
	y, m, d := t.AddDate(0, 0, -diff).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekEnd returns the Sunday of the week containing the given date.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// WeeksBetween enumerates the Monday keys from the week containing start
// through the week containing end, inclusive.
func WeeksBetween(start, end time.Time) []time.Time {
	var weeks []time.Time
	current := WeekStart(start)
	last := WeekStart(end)
	for !current.After(last) {
		weeks = append(weeks, current)
		current = current.AddDate(0, 0, 7)
	}
	return weeks
}

// WeekCount returns the number of Monday-aligned weeks spanned by the two
// dates, inclusive of both endpoints' weeks.
func WeekCount(start, end time.Time) int {
	s := WeekStart(start)
	e := WeekStart(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/(24*7)) + 1
}

// SameWeek reports whether two dates fall in the same Monday-aligned week.
func SameWeek(a, b time.Time) bool {
	return WeekStart(a).Equal(WeekStart(b))
}
