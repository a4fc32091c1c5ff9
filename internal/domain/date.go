package domain

import "time"

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// DateOnly truncates t to a calendar date at midnight UTC. All movement and
// statement dates are date-only values; time-of-day never participates in
// ordering or range checks.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar date in UTC.
func Today() time.Time {
	return DateOnly(time.Now())
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}
