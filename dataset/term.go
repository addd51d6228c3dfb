package dataset

import "time"

// school term labels
const (
	TermSpring = "spring"
	TermSummer = "summer"
	TermFall   = "fall"
)

// Term buckets a date into the US school term it falls in. The breaks are
// June 5 for the end of spring and August 25 for the end of summer.
func Term(t time.Time) string {
	switch {
	case t.Month() < time.June || (t.Month() == time.June && t.Day() < 5):
		return TermSpring
	case t.Month() < time.August || (t.Month() == time.August && t.Day() < 25):
		return TermSummer
	default:
		return TermFall
	}
}

// Weekday returns the three letter weekday label for a date, e.g. "Sat".
func Weekday(t time.Time) string {
	return t.Weekday().String()[:3]
}
