package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ritmo/internal/cache"
	"ritmo/internal/core"
	"ritmo/internal/metrics"
	"ritmo/internal/store"
)

// TrackerService orchestrates activity and goal operations and serves
// cached dashboard snapshots on top of the entity store.
type TrackerService struct {
	store     *store.Store
	snapshots *cache.LRUCache[Snapshot]
	now       func() time.Time
}

func NewTrackerService(st *store.Store, snapshots *cache.LRUCache[Snapshot]) *TrackerService {
	return &TrackerService{
		store:     st,
		snapshots: snapshots,
		now:       time.Now,
	}
}

// CreateActivity validates and stores a new activity entry.
func (s *TrackerService) CreateActivity(ctx context.Context, a core.Activity) (core.Activity, error) {
	saved, err := s.store.AddActivity(ctx, a)
	if err != nil {
		return core.Activity{}, fmt.Errorf("create activity: %w", err)
	}

	s.invalidate()
	slog.InfoContext(ctx, "Activity created",
		"id", saved.ID, "category", saved.Category, "duration", saved.Duration)
	return saved, nil
}

// DeleteActivity removes an activity by ID. Unknown IDs are a no-op.
func (s *TrackerService) DeleteActivity(ctx context.Context, id int64) error {
	if err := s.store.DeleteActivity(ctx, id); err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}

	s.invalidate()
	slog.InfoContext(ctx, "Activity deleted", "id", id)
	return nil
}

// CreateGoal validates and stores a new goal.
func (s *TrackerService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	saved, err := s.store.AddGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}

	s.invalidate()
	slog.InfoContext(ctx, "Goal created", "id", saved.ID, "target", saved.Target)
	return saved, nil
}

// DeleteGoal removes a goal by ID. Unknown IDs are a no-op.
func (s *TrackerService) DeleteGoal(ctx context.Context, id int64) error {
	if err := s.store.DeleteGoal(ctx, id); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}

	s.invalidate()
	slog.InfoContext(ctx, "Goal deleted", "id", id)
	return nil
}

// Activities returns all stored activities, newest first.
func (s *TrackerService) Activities(r core.Range) []core.Activity {
	return metrics.FilterByRange(s.store.Activities(), r, s.now())
}

// SearchActivities filters activities by range, category and a free-text
// query matched against name, category and notes.
func (s *TrackerService) SearchActivities(r core.Range, category, query string) []core.Activity {
	list := metrics.FilterByRange(s.store.Activities(), r, s.now())
	if category == "" && query == "" {
		return list
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]core.Activity, 0, len(list))
	for _, a := range list {
		if category != "" && a.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.Name), q) &&
			!strings.Contains(strings.ToLower(a.Category), q) &&
			!strings.Contains(strings.ToLower(a.Notes), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Goals returns all stored goals.
func (s *TrackerService) Goals() []core.Goal {
	return s.store.Goals()
}

// Categories returns the known category names.
func (s *TrackerService) Categories() []string {
	return s.store.Categories()
}

func (s *TrackerService) invalidate() {
	if s.snapshots != nil {
		s.snapshots.Purge()
	}
}
