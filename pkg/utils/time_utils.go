package utils

import "time"

// Itinerary dates are calendar days; everything is normalized to midnight UTC
// so equality and range filters behave the same in Go and in the database.

func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaysBetween returns b - a in whole days.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

func NextDay(t time.Time) time.Time {
	return DateOnly(t).AddDate(0, 0, 1)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return DateOnly(t).Format("2006-01-02")
}
