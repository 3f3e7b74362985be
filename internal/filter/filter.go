// Package filter narrows an entry set by date range and project.
package filter

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/timecalc"
)

// Range selects which entry dates are visible.
type Range string

const (
	RangeAll    Range = "all"
	RangeToday  Range = "today"
	RangeWeek   Range = "week"
	RangeMonth  Range = "month"
	RangeCustom Range = "custom"
)

// ParseRange validates a range name. Empty means all.
func ParseRange(s string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RangeAll, nil
	case RangeAll, RangeToday, RangeWeek, RangeMonth, RangeCustom:
		return r, nil
	}
	return "", fmt.Errorf("unknown range %q (want all, today, week, month or custom)", s)
}

// Criteria describes one filter application. From and To are YYYY-MM-DD
// bounds used only by RangeCustom. A nil Project matches every entry.
type Criteria struct {
	Range   Range
	From    string
	To      string
	Project *string
}

// Apply returns the entries matching c, preserving input order. now fixes
// "today" so the result is a pure function of its arguments.
func Apply(entries []model.Entry, c Criteria, now time.Time) []model.Entry {
	keep := dateMatcher(c, now)
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if c.Project != nil && e.ProjectName != *c.Project {
			continue
		}
		if !keep(e.Date) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// dateMatcher builds the date predicate once per Apply call.
func dateMatcher(c Criteria, now time.Time) func(string) bool {
	today := timecalc.Today(now)

	var from, to time.Time
	switch c.Range {
	case RangeToday:
		from = today
	case RangeWeek:
		from = timecalc.DaysBefore(today, 7)
	case RangeMonth:
		from = timecalc.MonthBefore(today)
	case RangeCustom:
		var errFrom, errTo error
		from, errFrom = timecalc.ParseDate(c.From)
		to, errTo = timecalc.ParseDate(c.To)
		if errFrom != nil || errTo != nil {
			// Incomplete custom range: no date constraint.
			return func(string) bool { return true }
		}
	default:
		return func(string) bool { return true }
	}

	return func(s string) bool {
		d, err := timecalc.ParseDate(s)
		if err != nil {
			return false
		}
		if d.Before(from) {
			return false
		}
		return to.IsZero() || !d.After(to)
	}
}

// Projects lists the distinct non-empty project names, sorted.
func Projects(entries []model.Entry) []string {
	var names []string
	for _, e := range entries {
		if e.ProjectName != "" && !slices.Contains(names, e.ProjectName) {
			names = append(names, e.ProjectName)
		}
	}
	slices.Sort(names)
	return names
}
