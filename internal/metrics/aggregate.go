package metrics

import (
	"math"
	"sort"
	"time"

	"ritmo/internal/core"
)

// DayTotal accumulates hours and entry count for one calendar day.
type DayTotal struct {
	Hours float64 `json:"hours"`
	Count int     `json:"count"`
}

// NameHours pairs an activity name with its accumulated hours.
type NameHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

// Granularity selects the bucketing of score series.
type Granularity string

const (
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// TotalDuration sums the duration of every activity, in hours.
func TotalDuration(activities []core.Activity) float64 {
	var total float64
	for _, a := range activities {
		total += a.Duration
	}
	return total
}

// AverageDuration returns the mean duration in hours, or 0 for empty input.
func AverageDuration(activities []core.Activity) float64 {
	if len(activities) == 0 {
		return 0
	}
	return TotalDuration(activities) / float64(len(activities))
}

// GroupByDay buckets activities by their local calendar date (YYYY-MM-DD),
// accumulating both hours and entry count per day.
func GroupByDay(activities []core.Activity) map[string]DayTotal {
	out := make(map[string]DayTotal, len(activities))
	for _, a := range activities {
		key := a.DateKey()
		d := out[key]
		d.Hours += a.Duration
		d.Count++
		out[key] = d
	}
	return out
}

// GroupByCategory sums hours per category.
func GroupByCategory(activities []core.Activity) map[string]float64 {
	out := make(map[string]float64)
	for _, a := range activities {
		out[a.Category] += a.Duration
	}
	return out
}

// TopNames returns up to topN activity names ordered by accumulated hours
// descending. Ties keep the first-seen order of the input.
func TopNames(activities []core.Activity, topN int) []NameHours {
	totals := make(map[string]float64)
	var order []string
	for _, a := range activities {
		if _, seen := totals[a.Name]; !seen {
			order = append(order, a.Name)
		}
		totals[a.Name] += a.Duration
	}

	out := make([]NameHours, 0, len(order))
	for _, name := range order {
		out = append(out, NameHours{Name: name, Hours: totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hours > out[j].Hours })
	if topN >= 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// AverageScore returns the mean of all present scores rounded to the
// nearest integer, or 0 when no activity is rated. Callers that need to
// tell "no data" apart from a true zero average should also check
// ScoredCount.
func AverageScore(activities []core.Activity) int {
	var sum, n int
	for _, a := range activities {
		if a.Score != nil {
			sum += *a.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// ScoredCount returns how many activities carry a score.
func ScoredCount(activities []core.Activity) int {
	var n int
	for _, a := range activities {
		if a.Score != nil {
			n++
		}
	}
	return n
}

// ScoresByPeriod buckets the scores of rated activities by week or month.
// Weekly keys are the Sunday starting the week, as YYYY-MM-DD; monthly
// keys are YYYY-MM.
func ScoresByPeriod(activities []core.Activity, g Granularity) map[string][]int {
	out := make(map[string][]int)
	for _, a := range activities {
		if a.Score == nil {
			continue
		}
		var key string
		if g == Weekly {
			key = weekStart(a.Timestamp).Format("2006-01-02")
		} else {
			key = a.Timestamp.Format("2006-01")
		}
		out[key] = append(out[key], *a.Score)
	}
	return out
}

// weekStart returns the Sunday beginning the calendar week of t.
func weekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// DayOfWeekFrequency counts activities per weekday name.
func DayOfWeekFrequency(activities []core.Activity) map[string]int {
	out := make(map[string]int)
	for _, a := range activities {
		out[a.Timestamp.Weekday().String()]++
	}
	return out
}

// MostActiveDay returns the weekday with the most activities. Ties break
// toward the earlier weekday (Sunday first). The second return is false
// for empty input.
func MostActiveDay(activities []core.Activity) (string, bool) {
	if len(activities) == 0 {
		return "", false
	}
	counts := make(map[time.Weekday]int)
	for _, a := range activities {
		counts[a.Timestamp.Weekday()]++
	}
	best, bestCount := time.Sunday, -1
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] > bestCount {
			best, bestCount = wd, counts[wd]
		}
	}
	return best.String(), true
}

// TopCategory returns the category with the most hours and its total.
// Ties break toward the lexicographically smaller name so the result is
// deterministic. The third return is false for empty input.
func TopCategory(byCategory map[string]float64) (string, float64, bool) {
	var (
		best  string
		hours float64
		found bool
	)
	for name, h := range byCategory {
		if !found || h > hours || (h == hours && name < best) {
			best, hours, found = name, h, true
		}
	}
	return best, hours, found
}

// PeakHour returns the most frequent hour of day (0-23) across the
// activities, preferring the entered wall-clock time over the timestamp
// hour. Ties break toward the lower hour. The second return is false for
// empty input.
func PeakHour(activities []core.Activity) (int, bool) {
	if len(activities) == 0 {
		return 0, false
	}
	counts := make(map[int]int)
	for _, a := range activities {
		counts[a.EntryHour()]++
	}
	best, bestCount := 0, -1
	for h := 0; h < 24; h++ {
		if counts[h] > bestCount {
			best, bestCount = h, counts[h]
		}
	}
	return best, true
}
