package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ritmo/internal/core"
	"ritmo/internal/metrics"
)

const topActivityCount = 5

// GoalStatus is a goal together with its progress against the
// activities in the requested range.
type GoalStatus struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Target    float64 `json:"target"`
	Unit      string  `json:"unit"`
	Category  string  `json:"category,omitempty"`
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
}

// Snapshot is one fully computed dashboard view for a date range.
type Snapshot struct {
	Range          string                      `json:"range"`
	GeneratedAt    time.Time                   `json:"generatedAt"`
	TotalEntries   int                         `json:"totalEntries"`
	TotalHours     float64                     `json:"totalHours"`
	AverageHours   float64                     `json:"averageHours"`
	AverageScore   int                         `json:"averageScore"`
	ScoredEntries  int                         `json:"scoredEntries"`
	Streak         int                         `json:"streak"`
	GoalsCompleted int                         `json:"goalsCompleted"`
	HoursDelta     float64                     `json:"hoursDelta"`
	Timeline       map[string]metrics.DayTotal `json:"timeline"`
	ByCategory     map[string]float64          `json:"byCategory"`
	TopActivities  []metrics.NameHours         `json:"topActivities"`
	WeeklyScores   map[string][]int            `json:"weeklyScores"`
	MonthlyScores  map[string][]int            `json:"monthlyScores"`
	DayOfWeek      map[string]int              `json:"dayOfWeek"`
	MostActiveDay  string                      `json:"mostActiveDay,omitempty"`
	BestCategory   string                      `json:"bestCategory,omitempty"`
	PeakHour       *int                        `json:"peakHour,omitempty"`
	PeakHourLabel  string                      `json:"peakHourLabel,omitempty"`
	Goals          []GoalStatus                `json:"goals"`
	Insights       []string                    `json:"insights"`
}

// Snapshot returns the dashboard view for the given range, serving a
// cached copy when one is fresh. Mutations purge the cache, so a hit
// is never stale.
func (s *TrackerService) Snapshot(ctx context.Context, r core.Range) Snapshot {
	key := r.String()
	if s.snapshots != nil {
		if snap, ok := s.snapshots.Get(key); ok {
			slog.DebugContext(ctx, "Dashboard cache hit", "range", key)
			return snap
		}
	}

	snap := s.computeSnapshot(r)
	if s.snapshots != nil {
		s.snapshots.Set(key, snap)
	}
	slog.DebugContext(ctx, "Dashboard computed",
		"range", key, "entries", snap.TotalEntries)
	return snap
}

func (s *TrackerService) computeSnapshot(r core.Range) Snapshot {
	now := s.now()
	all := s.store.Activities()
	filtered := metrics.FilterByRange(all, r, now)
	byCategory := metrics.GroupByCategory(filtered)
	timeline := metrics.GroupByDay(filtered)

	snap := Snapshot{
		Range:         r.String(),
		GeneratedAt:   now,
		TotalEntries:  len(filtered),
		TotalHours:    metrics.TotalDuration(filtered),
		AverageHours:  metrics.AverageDuration(filtered),
		AverageScore:  metrics.AverageScore(filtered),
		ScoredEntries: metrics.ScoredCount(filtered),
		Streak:        metrics.CurrentStreak(all, now),
		Timeline:      timeline,
		ByCategory:    byCategory,
		TopActivities: metrics.TopNames(filtered, topActivityCount),
		WeeklyScores:  metrics.ScoresByPeriod(filtered, metrics.Weekly),
		MonthlyScores: metrics.ScoresByPeriod(filtered, metrics.Monthly),
		DayOfWeek:     metrics.DayOfWeekFrequency(filtered),
	}

	if day, ok := metrics.MostActiveDay(filtered); ok {
		snap.MostActiveDay = day
	}
	if name, _, ok := metrics.TopCategory(byCategory); ok {
		snap.BestCategory = name
	}
	if hour, ok := metrics.PeakHour(filtered); ok {
		h := hour
		snap.PeakHour = &h
		snap.PeakHourLabel = formatHour(hour)
	}

	if !r.All {
		// Change against the window of the same length immediately
		// before the current one, so the two never share entries.
		cutoff := r.Cutoff(now)
		previous := metrics.FilterWindow(all, cutoff.AddDate(0, 0, -r.Days), cutoff)
		snap.HoursDelta = snap.TotalHours - metrics.TotalDuration(previous)
	}

	goals := s.store.Goals()
	snap.Goals = make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		progress := metrics.GoalProgress(g, filtered)
		status := GoalStatus{
			ID:        g.ID,
			Name:      g.Name,
			Target:    g.Target,
			Unit:      g.Unit,
			Category:  g.Category,
			Progress:  progress,
			Completed: progress >= 100,
		}
		if status.Completed {
			snap.GoalsCompleted++
		}
		snap.Goals = append(snap.Goals, status)
	}

	snap.Insights = metrics.Insights(metrics.InsightInput{
		ByCategory:   byCategory,
		AverageScore: snap.AverageScore,
		ScoredCount:  snap.ScoredEntries,
		ActiveDays:   len(timeline),
		RangeDays:    r.DayCount(),
		Streak:       snap.Streak,
	})

	return snap
}

// formatHour renders an hour of day as a 12-hour clock label.
func formatHour(hour int) string {
	suffix := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "PM"
	case hour > 12:
		display = hour - 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}
