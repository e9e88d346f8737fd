package metrics

import (
	"time"

	"ritmo/internal/core"
)

// CurrentStreak counts consecutive calendar days ending today (local
// time) on which at least one activity exists. The walk is calendar-day
// based rather than a rolling 24h window, so entries near midnight are
// never double counted across a timezone boundary. A log that covers
// yesterday but not today yields 0: there is no grace day.
func CurrentStreak(activities []core.Activity, today time.Time) int {
	if len(activities) == 0 {
		return 0
	}
	days := make(map[string]struct{}, len(activities))
	for _, a := range activities {
		days[a.DateKey()] = struct{}{}
	}

	streak := 0
	cursor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	for {
		if _, ok := days[cursor.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}
