package metrics

import (
	"fmt"
	"strings"
	"time"
)

type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// ParseGranularity accepts "day", "week", "month" or "year" in any case
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Day, Week, Month, Year:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Window is an inclusive calendar interval. Start is 00:00:00.000 and End is
// 23:59:59.999 local time in the anchor's location.
type Window struct {
	Granularity Granularity `json:"granularity"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
}

// ResolveWindow returns the Day, Week (Monday to Sunday), Month or Year
// containing anchor. An unrecognised granularity resolves to the anchor's day.
func ResolveWindow(g Granularity, anchor time.Time) Window {
	y, m, d := anchor.Date()
	loc := anchor.Location()

	var start, last time.Time
	switch g {
	case Week:
		start = StartOfWeek(anchor)
		last = start.AddDate(0, 0, 6)
	case Month:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		last = time.Date(y, m+1, 0, 0, 0, 0, 0, loc)
	case Year:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		last = time.Date(y, time.December, 31, 0, 0, 0, 0, loc)
	default:
		g = Day
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		last = start
	}

	return Window{Granularity: g, Start: start, End: endOfDay(last)}
}

// StepWindow moves anchor by direction units of g. Month and year steps keep
// the day of month where possible and otherwise clamp to the target month's
// last day, so stepping from Jan 31 lands on the last day of February.
func StepWindow(g Granularity, anchor time.Time, direction int) time.Time {
	switch g {
	case Week:
		return anchor.AddDate(0, 0, 7*direction)
	case Month:
		return addMonthsClamped(anchor, direction)
	case Year:
		return addMonthsClamped(anchor, 12*direction)
	default:
		return anchor.AddDate(0, 0, direction)
	}
}

// StartOfWeek returns local midnight of the Monday on or before t.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	weekday := int(t.Weekday())
	offset := -(weekday - 1)
	if weekday == 0 {
		offset = -6
	}
	return time.Date(y, m, d+offset, 0, 0, 0, 0, t.Location())
}

// Contains reports whether the calendar day of t lies in the window.
// Only the date in the window's location matters, never the instant.
func (w Window) Contains(t time.Time) bool {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, w.Start.Location())
	return !day.Before(w.Start) && !day.After(w.End)
}

// Days is the number of calendar days covered by the window
func (w Window) Days() int {
	n := 0
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		n++
	}
	return n
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	loc := t.Location()

	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, loc)
	if last := daysIn(first.Year(), first.Month(), loc); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), loc)
}

func daysIn(y int, m time.Month, loc *time.Location) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, loc).Day()
}
