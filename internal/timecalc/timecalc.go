package timecalc

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for entry dates and filenames.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. The result is midnight UTC
// of that date and carries no instant semantics, so it never shifts day
// under timezone conversion.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// CivilDate returns the calendar date of t as seen in t's own location,
// normalised the same way ParseDate normalises.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the local calendar date of now.
func Today(now time.Time) time.Time {
	return CivilDate(now.Local())
}

// DaysBefore steps back n calendar days.
func DaysBefore(d time.Time, n int) time.Time {
	return d.AddDate(0, 0, -n)
}

// MonthBefore returns the same day-of-month one calendar month earlier,
// clamped to the last day of that month (March 31 -> February 28/29).
func MonthBefore(d time.Time) time.Time {
	y, m, day := d.Date()
	m--
	if m < time.January {
		m = time.December
		y--
	}
	if last := DaysIn(y, m); day > last {
		day = last
	}
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// DaysIn returns the number of days in month m of year y.
func DaysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DisplayDate renders a YYYY-MM-DD date as "Jun 1, 2025", or the input
// unchanged when it does not parse.
func DisplayDate(s string) string {
	d, err := ParseDate(s)
	if err != nil {
		return s
	}
	return d.Format("Jan 2, 2006")
}
