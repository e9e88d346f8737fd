// Package metrics contains the pure aggregation engine of the dashboard:
// date-range filtering, one-pass reducers over the activity log, streak
// and goal-progress calculations, and the insight generator. Every
// function here is deterministic, side-effect-free, and tolerates empty
// input.
package metrics

import (
	"time"

	"ritmo/internal/core"
)

// FilterByRange returns the activities whose timestamp falls within the
// trailing window selected by r, evaluated against now. The input slice
// is never mutated.
func FilterByRange(activities []core.Activity, r core.Range, now time.Time) []core.Activity {
	if r.All {
		return activities
	}
	cutoff := r.Cutoff(now)
	out := make([]core.Activity, 0, len(activities))
	for _, a := range activities {
		if !a.Timestamp.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

// FilterWindow returns the activities with cutoff <= timestamp < until.
// It backs the previous-period trend comparison, which needs a window
// that does not overlap the current one.
func FilterWindow(activities []core.Activity, cutoff, until time.Time) []core.Activity {
	out := make([]core.Activity, 0, len(activities))
	for _, a := range activities {
		if !a.Timestamp.Before(cutoff) && a.Timestamp.Before(until) {
			out = append(out, a)
		}
	}
	return out
}
