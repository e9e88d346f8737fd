package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// DefaultCategories seeds the category set of a fresh store.
var DefaultCategories = []string{"Work", "Study", "Exercise", "Personal", "Creative", "Social"}

// DefaultGoalUnit is used when a goal is created without a unit label.
const DefaultGoalUnit = "hours"

type (
	// Activity is a single logged occurrence of a timed action.
	Activity struct {
		ID        int64
		Timestamp time.Time // combined date+time of the event, not the save time
		EntryTime string    // wall-clock "HH:MM" as entered, also folded into Timestamp
		Category  string
		Name      string
		Duration  float64 // hours
		Score     *int    // 0-100, nil when not rated
		Notes     string
	}

	// Goal is a target accumulation of duration the user aims to reach.
	Goal struct {
		ID        int64
		Name      string
		Target    float64
		Unit      string // defaults to DefaultGoalUnit
		Category  string // empty means every category counts
		CreatedAt time.Time
	}
)

var (
	ErrZeroTimestamp    = errors.New("timestamp cannot be zero")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidDuration  = errors.New("duration must be positive")
	ErrInvalidScore     = errors.New("score must be between 0 and 100")
	ErrMissingEntryTime = errors.New("missing entry time")
	ErrInvalidEntryTime = errors.New("invalid entry time")
	ErrInvalidTarget    = errors.New("target must be positive")
)

func (a Activity) Validate() error {
	if a.Timestamp.IsZero() {
		return ErrZeroTimestamp
	}
	if strings.TrimSpace(a.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if len(a.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if a.Duration <= 0 {
		return ErrInvalidDuration
	}
	if a.Score != nil && (*a.Score < 0 || *a.Score > 100) {
		return ErrInvalidScore
	}
	if a.EntryTime == "" {
		return ErrMissingEntryTime
	}
	if _, err := time.Parse("15:04", a.EntryTime); err != nil {
		return ErrInvalidEntryTime
	}
	return nil
}

// EntryHour returns the hour used for peak-hour analysis: the entered
// wall-clock time when present, otherwise the timestamp hour.
func (a Activity) EntryHour() int {
	if a.EntryTime != "" {
		if t, err := time.Parse("15:04", a.EntryTime); err == nil {
			return t.Hour()
		}
	}
	return a.Timestamp.Hour()
}

// DateKey returns the local calendar date of the activity as YYYY-MM-DD.
func (a Activity) DateKey() string {
	return a.Timestamp.Format("2006-01-02")
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if len(g.Name) > 200 {
		return errors.New("name too long (max 200 characters)")
	}
	if g.Target <= 0 {
		return ErrInvalidTarget
	}
	return nil
}

// Range selects a trailing date window over the activity log: either the
// whole log or the last N days, wall-clock.
type Range struct {
	All  bool
	Days int
}

// RangeAll covers the entire activity log.
var RangeAll = Range{All: true}

var ErrInvalidRange = errors.New("invalid range")

// ParseRange parses "all" or a non-negative day count.
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "all" {
		return RangeAll, nil
	}
	days, err := strconv.Atoi(s)
	if err != nil || days < 0 {
		return Range{}, ErrInvalidRange
	}
	return Range{Days: days}, nil
}

func (r Range) String() string {
	if r.All {
		return "all"
	}
	return strconv.Itoa(r.Days)
}

// DayCount returns the number of days the range spans for frequency
// calculations. The open-ended "all" range counts as 30.
func (r Range) DayCount() int {
	if r.All || r.Days == 0 {
		return 30
	}
	return r.Days
}

// Cutoff returns the inclusive lower bound of the window, or the zero
// time when the range covers everything.
func (r Range) Cutoff(now time.Time) time.Time {
	if r.All {
		return time.Time{}
	}
	return now.AddDate(0, 0, -r.Days)
}
