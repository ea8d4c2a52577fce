package util

import (
	"strconv"
	"time"
)

// DayFormat is the ISO calendar-day layout used for historical points.
const DayFormat = "2006-01-02"

// FormatDay renders t as a UTC calendar day in ISO form.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// TrailingDays returns the last n calendar days ending at end, oldest first.
func TrailingDays(end time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, FormatDay(end.AddDate(0, 0, -i)))
	}
	return days
}

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}
