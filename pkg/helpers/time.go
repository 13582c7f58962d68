package helpers

import "time"

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

func NowUTC() time.Time { return time.Now().UTC() }

// ParseDate parses a YYYY-MM-DD string as a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
