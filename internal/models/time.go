package models

import "time"

// TimeLayout is ISO-8601 with microseconds and a literal Z.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp formats t in UTC using TimeLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// Now returns the current UTC timestamp.
func Now() string {
	return Timestamp(time.Now())
}
