package models

import "time"

// DateLayout is the ISO 8601 calendar date layout used for transaction dates.
const DateLayout = "2006-01-02"

// ParseDate parses the calendar date at the start of s. Timestamps such as
// "2026-01-15T10:00:00Z" are accepted and truncated to their date.
func ParseDate(s string) (time.Time, bool) {
	if len(s) < len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as an ISO 8601 calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// InPeriod reports whether the date s falls in the given calendar month.
// Unparseable dates belong to no period.
func InPeriod(s string, year int, month time.Month) bool {
	t, ok := ParseDate(s)
	if !ok {
		return false
	}
	return t.Year() == year && t.Month() == month
}
