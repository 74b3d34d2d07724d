// Package timeutil provides utility functions for working with
// time-related operations.
package timeutil

import (
	"time"
)

// RoundToStart resets the given time to the start of the day.
func RoundToStart(t time.Time) time.Time {
	return time.Date(
		t.Year(),
		t.Month(),
		t.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// DayKey formats a time value as a date-only key.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
