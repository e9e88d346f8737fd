package metrics

import "ritmo/internal/core"

// GoalProgress returns the goal's completion percentage over the given
// (already filtered) activities. A category-scoped goal only counts
// matching activities. The result may exceed 100; a goal is complete at
// 100 or more. Goal targets are validated positive at creation time, so
// no division guard is needed here.
func GoalProgress(goal core.Goal, activities []core.Activity) float64 {
	var total float64
	for _, a := range activities {
		if goal.Category != "" && a.Category != goal.Category {
			continue
		}
		total += a.Duration
	}
	return total / goal.Target * 100
}
