package booking

import (
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

// NormalizeDay maps a weekday name or abbreviation to its canonical
// three-letter token ("Saturday", "sat" -> "Sat"). Unrecognized input is
// returned trimmed but otherwise untouched.
func NormalizeDay(day string) string {
	day = strings.TrimSpace(day)
	if len(day) < 3 {
		return day
	}
	key := strings.ToUpper(day[:1]) + strings.ToLower(day[1:3])
	if _, ok := weekdays[key]; ok {
		return key
	}
	return day
}

// NextDateForDay returns the nearest date on or after reference whose weekday
// matches day (reference itself counts). An unrecognized day token returns
// reference unchanged.
func NextDateForDay(day string, reference time.Time) time.Time {
	target, ok := weekdays[NormalizeDay(day)]
	if !ok {
		return reference
	}
	for i := 0; i < 7; i++ {
		cand := reference.AddDate(0, 0, i)
		if cand.Weekday() == target {
			return cand
		}
	}
	return reference
}
