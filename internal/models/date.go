package models

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date form used for log keys.
const DateLayout = "2006-01-02"

// DateOf formats t as a date key in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate validates a date key and returns midnight of that day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// AddDays shifts a date key by n calendar days. It works on the date in UTC
// so DST transitions never skip or repeat a day.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date, time.UTC)
	if err != nil {
		return "", err
	}
	return DateOf(t.AddDate(0, 0, n)), nil
}
