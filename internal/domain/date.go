package domain

import "time"

// DateLayout is the wire format for every calendar date.
const DateLayout = "2006-01-02"

// Day truncates t to its calendar date, expressed at UTC midnight.
// The calendar date is read in t's own location, so a local 23:30 stays
// on the same day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr returns a pointer to the calendar day of t.
func DatePtr(t time.Time) *time.Time {
	d := Day(t)
	return &d
}

// MustDate parses a YYYY-MM-DD literal and panics on error. Intended for
// fixtures and embedded data.
func MustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
