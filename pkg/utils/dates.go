package utils

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format of a trade.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses a trade date in any of the accepted layouts.
// The result is a UTC midnight so that dates compare by calendar day.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a time as a canonical trade date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInMonth returns the number of days of the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOffset returns the Sunday-based weekday index of the 1st of the month.
func FirstWeekdayOffset(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (int, time.Month, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
