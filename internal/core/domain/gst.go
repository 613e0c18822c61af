package domain

import (
	"fmt"
	"time"
)

// FilingFrequency is how often GST/HST returns are filed.
type FilingFrequency string

const (
	FilingMonthly   FilingFrequency = "monthly"
	FilingQuarterly FilingFrequency = "quarterly"
	FilingAnnual    FilingFrequency = "annual"
)

// GSTPeriod returns the first and last day of the filing period containing day.
func GSTPeriod(day time.Time, freq FilingFrequency) (time.Time, time.Time, error) {
	day = DateOnly(day)
	y, m := day.Year(), day.Month()
	var start time.Time
	var months int
	switch freq {
	case FilingMonthly:
		start, months = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), 1
	case FilingQuarterly:
		q := (int(m) - 1) / 3
		start, months = time.Date(y, time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC), 3
	case FilingAnnual:
		start, months = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), 12
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown filing frequency %q", freq)
	}
	end := start.AddDate(0, months, -1)
	return start, end, nil
}
