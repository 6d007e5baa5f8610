// Package dates provides calendar-day arithmetic on time.Time values.
// All functions are pure: inputs are never mutated and no state is shared.
package dates

import (
	"time"

	"cloudeng.io/datetime"
)

// SameDay reports whether a and b fall on the same calendar day,
// ignoring the time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same month of the same year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Between reports whether d falls on or between lo and hi, compared by
// calendar day. Callers must ensure lo is not after hi.
func Between(d, lo, hi time.Time) bool {
	day := AtMidnight(d)
	return !day.Before(AtMidnight(lo)) && !day.After(AtMidnight(hi))
}

// MinOf returns the earliest date in ds. The boolean is false when ds is empty.
func MinOf(ds []time.Time) (time.Time, bool) {
	if len(ds) == 0 {
		return time.Time{}, false
	}
	earliest := ds[0]
	for _, d := range ds[1:] {
		if d.Before(earliest) {
			earliest = d
		}
	}
	return earliest, true
}

// MaxOf returns the latest date in ds. The boolean is false when ds is empty.
func MaxOf(ds []time.Time) (time.Time, bool) {
	if len(ds) == 0 {
		return time.Time{}, false
	}
	latest := ds[0]
	for _, d := range ds[1:] {
		if d.After(latest) {
			latest = d
		}
	}
	return latest, true
}

// AtMidnight returns t with its clock fields zeroed, in t's location.
func AtMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return DayStart(y, m, d, t.Location())
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return DayStart(t.Year(), t.Month(), 1, t.Location())
}

// DayStart returns the first instant of the given day in loc. Out of range
// days and months are normalised as by time.Date. When a daylight saving
// change skips midnight the result is the end of the gap, never a time on
// the previous day.
func DayStart(year int, month time.Month, day int, loc *time.Location) time.Time {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, loc)
	for range maxGapHours {
		if ty, tm, td := t.Date(); ty == y && tm == m && td == d {
			break
		}
		t = t.Add(time.Hour)
	}
	return t
}

// maxGapHours bounds the search for the first instant of a day.
const maxGapHours = 24

// Key returns the location-independent calendar day of t, suitable as a map key.
func Key(t time.Time) datetime.CalendarDate {
	return datetime.NewCalendarDateFromTime(t)
}

// IndexOf returns the position of the first element of ds on the same day
// as d, or -1.
func IndexOf(ds []time.Time, d time.Time) int {
	for i, candidate := range ds {
		if SameDay(candidate, d) {
			return i
		}
	}
	return -1
}

// Contains reports whether any element of ds falls on the same day as d.
func Contains(ds []time.Time, d time.Time) bool {
	return IndexOf(ds, d) >= 0
}

// Set is a membership index of calendar days.
type Set map[datetime.CalendarDate]struct{}

// NewSet indexes ds by calendar day.
func NewSet(ds []time.Time) Set {
	s := make(Set, len(ds))
	for _, d := range ds {
		s[Key(d)] = struct{}{}
	}
	return s
}

// Has reports whether d's calendar day is in the set.
func (s Set) Has(d time.Time) bool {
	_, ok := s[Key(d)]
	return ok
}
