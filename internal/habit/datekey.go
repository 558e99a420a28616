package habit

import (
	"fmt"
	"time"
)

// KeyLayout is the canonical date key format (yyyy-MM-dd).
const KeyLayout = "2006-01-02"

// MonthLayout is the month format accepted by ParseMonth (yyyy-MM).
const MonthLayout = "2006-01"

// Key returns the bucket key for t's calendar day in t's own location.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// ParseKey parses a date key to its calendar day in the local zone.
func ParseKey(key string) (time.Time, error) {
	return ParseKeyIn(key, time.Local)
}

// ParseKeyIn parses a date key to its calendar day in loc.
func ParseKeyIn(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil || t.Format(KeyLayout) != key {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, key)
	}
	return noon(t.Year(), t.Month(), t.Day(), loc), nil
}

// ParseMonth parses a yyyy-MM month to the first day of that month in the
// local zone.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil || t.Format(MonthLayout) != s {
		return time.Time{}, fmt.Errorf("%w: month %q", ErrInvalidDate, s)
	}
	return noon(t.Year(), t.Month(), 1, time.Local), nil
}

// Day returns t's calendar day anchored at noon. Midnight does not exist
// in zones that start DST at 00:00, so day values and day steps never use it.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return noon(y, m, d, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// after reports whether a's calendar day is strictly after b's.
func after(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}

// noon normalises out of range days the way time.Date does.
func noon(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, loc)
}
