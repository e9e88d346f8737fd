// Package store owns the in-memory activity, goal and category
// collections. It is the single source of truth: loaded once from the
// blob store at startup, mutated only through its add/delete methods,
// and persisted write-through after every mutation. Other components
// only ever see copies.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"ritmo/internal/core"
)

// Blob store keys for the three persisted collections.
const (
	keyActivities = "activities"
	keyGoals      = "goals"
	keyCategories = "categories"
)

// BlobStore is the persistence boundary: a key-value store of opaque
// serialized blobs.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store holds the tracked collections and persists them through blobs.
type Store struct {
	mu    sync.Mutex
	blobs BlobStore
	now   func() time.Time

	activities []core.Activity
	goals      []core.Goal
	categories []string
	lastID     int64
}

func New(blobs BlobStore) *Store {
	return &Store{
		blobs:      blobs,
		now:        time.Now,
		categories: append([]string(nil), core.DefaultCategories...),
	}
}

// Load reads the persisted collections. Malformed records are skipped
// and a malformed blob is treated as absent; a partial store never fails
// the load.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok, err := s.blobs.Get(ctx, keyActivities); err != nil {
		return fmt.Errorf("load activities: %w", err)
	} else if ok {
		s.activities = decodeActivities(ctx, raw)
	}
	if raw, ok, err := s.blobs.Get(ctx, keyGoals); err != nil {
		return fmt.Errorf("load goals: %w", err)
	} else if ok {
		s.goals = decodeGoals(ctx, raw)
	}
	if raw, ok, err := s.blobs.Get(ctx, keyCategories); err != nil {
		return fmt.Errorf("load categories: %w", err)
	} else if ok {
		if cats := decodeCategories(ctx, raw); len(cats) > 0 {
			s.categories = cats
		}
	}

	sortActivities(s.activities)
	for _, a := range s.activities {
		if a.ID > s.lastID {
			s.lastID = a.ID
		}
	}
	for _, g := range s.goals {
		if g.ID > s.lastID {
			s.lastID = g.ID
		}
	}

	// A category referenced by a loaded activity must never silently
	// disappear from the set.
	for _, a := range s.activities {
		s.ensureCategoryLocked(a.Category)
	}

	slog.InfoContext(ctx, "Store loaded",
		"activities", len(s.activities),
		"goals", len(s.goals),
		"categories", len(s.categories))
	return nil
}

// Activities returns a copy of the activity log, newest first.
func (s *Store) Activities() []core.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Activity(nil), s.activities...)
}

// Goals returns a copy of the goal list in creation order.
func (s *Store) Goals() []core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...)
}

// Categories returns a copy of the ordered category set.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.categories...)
}

// AddActivity validates and inserts an activity, assigns its ID, adds a
// brand-new category to the set as a side effect, and persists. The
// stored activity is returned.
func (s *Store) AddActivity(ctx context.Context, a core.Activity) (core.Activity, error) {
	if err := a.Validate(); err != nil {
		return core.Activity{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prevActivities, prevCategories := s.activities, s.categories
	a.ID = s.nextIDLocked()
	s.activities = append(append([]core.Activity(nil), s.activities...), a)
	sortActivities(s.activities)
	s.ensureCategoryLocked(a.Category)

	if err := s.persistLocked(ctx); err != nil {
		s.activities, s.categories = prevActivities, prevCategories
		return core.Activity{}, err
	}
	slog.InfoContext(ctx, "Activity saved",
		"id", a.ID, "category", a.Category, "name", a.Name, "duration_hours", a.Duration)
	return a, nil
}

// DeleteActivity removes the activity with the given id. Deleting an
// unknown id is a no-op, not an error.
func (s *Store) DeleteActivity(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.activities {
		if a.ID == id {
			prev := s.activities
			next := make([]core.Activity, 0, len(s.activities)-1)
			next = append(next, s.activities[:i]...)
			next = append(next, s.activities[i+1:]...)
			s.activities = next
			if err := s.persistLocked(ctx); err != nil {
				s.activities = prev
				return err
			}
			slog.InfoContext(ctx, "Activity deleted", "id", id)
			return nil
		}
	}
	return nil
}

// AddGoal validates and inserts a goal, defaulting its unit and stamping
// its creation time, and persists. The stored goal is returned.
func (s *Store) AddGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = s.nextIDLocked()
	if strings.TrimSpace(g.Unit) == "" {
		g.Unit = core.DefaultGoalUnit
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.now()
	}
	prevGoals := s.goals
	s.goals = append(append([]core.Goal(nil), s.goals...), g)

	if err := s.persistLocked(ctx); err != nil {
		s.goals = prevGoals
		return core.Goal{}, err
	}
	slog.InfoContext(ctx, "Goal saved", "id", g.ID, "name", g.Name, "target", g.Target, "unit", g.Unit)
	return g, nil
}

// DeleteGoal removes the goal with the given id; unknown ids are a no-op.
func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.goals {
		if g.ID == id {
			prev := s.goals
			next := make([]core.Goal, 0, len(s.goals)-1)
			next = append(next, s.goals[:i]...)
			next = append(next, s.goals[i+1:]...)
			s.goals = next
			if err := s.persistLocked(ctx); err != nil {
				s.goals = prev
				return err
			}
			slog.InfoContext(ctx, "Goal deleted", "id", id)
			return nil
		}
	}
	return nil
}

// nextIDLocked derives an id from the current time but never reuses or
// goes below an already issued one, so two entities created within the
// same millisecond still get distinct ids.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) ensureCategoryLocked(category string) {
	for _, c := range s.categories {
		if c == category {
			return
		}
	}
	s.categories = append(s.categories, category)
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.blobs.Put(ctx, keyActivities, encodeActivities(s.activities)); err != nil {
		return fmt.Errorf("persist activities: %w", err)
	}
	if err := s.blobs.Put(ctx, keyGoals, encodeGoals(s.goals)); err != nil {
		return fmt.Errorf("persist goals: %w", err)
	}
	if err := s.blobs.Put(ctx, keyCategories, encodeCategories(s.categories)); err != nil {
		return fmt.Errorf("persist categories: %w", err)
	}
	return nil
}

// sortActivities keeps the log ordered newest first. The sort is stable
// so same-instant entries keep their insertion order.
func sortActivities(list []core.Activity) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
}
