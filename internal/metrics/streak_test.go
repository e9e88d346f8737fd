package metrics

import (
	"testing"
	"time"

	"ritmo/internal/core"
)

func onDay(today time.Time, daysAgo int) core.Activity {
	return core.Activity{
		Timestamp: today.AddDate(0, 0, -daysAgo),
		Category:  "Work",
		Name:      "x",
		Duration:  1,
	}
}

func TestCurrentStreak(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		daysAgo  []int
		want     int
	}{
		{"empty log", nil, 0},
		{"only today", []int{0}, 1},
		{"today and yesterday", []int{0, 1}, 2},
		{"gap two days back stops the walk", []int{0, 1, 3}, 2},
		{"no activity today means no streak", []int{1, 2, 3}, 0},
		{"old activity only", []int{5, 9}, 0},
		{"long unbroken run", []int{0, 1, 2, 3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list []core.Activity
			for _, d := range tt.daysAgo {
				list = append(list, onDay(today, d))
			}
			if got := CurrentStreak(list, today); got != tt.want {
				t.Fatalf("CurrentStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCurrentStreakCalendarDayGranularity(t *testing.T) {
	// 01:00 today and 23:00 yesterday are 2 hours apart but two distinct
	// calendar days, so they form a 2-day streak.
	today := time.Date(2025, 3, 10, 1, 0, 0, 0, time.Local)
	list := []core.Activity{
		{Timestamp: today, Category: "Work", Name: "a", Duration: 1},
		{Timestamp: today.Add(-2 * time.Hour), Category: "Work", Name: "b", Duration: 1},
	}
	if got := CurrentStreak(list, today); got != 2 {
		t.Fatalf("CurrentStreak = %d, want 2", got)
	}
}

func TestCurrentStreakMultipleEntriesPerDay(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 0, 0, 0, time.Local)
	list := []core.Activity{
		onDay(today, 0), onDay(today, 0), onDay(today, 0),
		onDay(today, 1),
	}
	if got := CurrentStreak(list, today); got != 2 {
		t.Fatalf("CurrentStreak = %d, want 2", got)
	}
}
