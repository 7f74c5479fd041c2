package models

import "time"

// StartOfDay truncates t to 00:00:00.000 in the local time zone.
// The zero time is returned unchanged.
func StartOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	l := t.Local()
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
