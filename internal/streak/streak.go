// Package streak computes consecutive-day completion runs.
package streak

import (
	"sort"
	"time"

	"github.com/julianstephens/habitrack/internal/models"
	"github.com/julianstephens/habitrack/internal/utils"
)

// Calculate returns the length of the most recent run of consecutive
// calendar days in dates. It is the trailing run, not the longest one:
// {Jan 1, Jan 2, Jan 3, Jan 7} yields 1.
//
// Any gap other than exactly one day resets the run, so a repeated date
// never extends it.
func Calculate(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	days := make([]time.Time, len(dates))
	for i, d := range dates {
		days[i] = utils.DateOnly(d)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	streak := 1
	for i := 1; i < len(days); i++ {
		if utils.DaysBetween(days[i-1], days[i]) == 1 {
			streak++
		} else {
			streak = 1
		}
	}
	return streak
}

// FromSet is Calculate over a habit's completion set.
func FromSet(s models.CompletionSet) int {
	return Calculate(s.Dates())
}
