package metrics

import "fmt"

// InsightInput carries the aggregates the insight generator phrases.
// Everything is precomputed by the caller; the generator itself does no
// aggregation of its own.
type InsightInput struct {
	ByCategory   map[string]float64
	AverageScore int
	ScoredCount  int
	ActiveDays   int
	RangeDays    int
	Streak       int
}

// Insights turns the computed aggregates into a fixed-order list of
// short observations: top category, score tier, consistency, streak.
// Observations whose data is missing are omitted without leaving gaps;
// the same input always produces the same list, text included.
func Insights(in InsightInput) []string {
	var out []string

	if name, hours, ok := TopCategory(in.ByCategory); ok {
		out = append(out, fmt.Sprintf("Your most active category is %s with %.1f hours.", name, hours))
	}

	if in.ScoredCount > 0 {
		tier := "needs improvement"
		switch {
		case in.AverageScore >= 80:
			tier = "excellent"
		case in.AverageScore >= 70:
			tier = "good"
		case in.AverageScore >= 60:
			tier = "fair"
		}
		out = append(out, fmt.Sprintf("Your average performance score is %d - %s performance!", in.AverageScore, tier))
	}

	if in.ActiveDays > 0 {
		days := in.RangeDays
		if days <= 0 {
			days = 30
		}
		frequency := float64(in.ActiveDays) / float64(days) * 100
		switch {
		case frequency >= 70:
			out = append(out, fmt.Sprintf("Great consistency! You've been active on %d out of the last %d days.", in.ActiveDays, days))
		case frequency >= 50:
			out = append(out, fmt.Sprintf("You're making progress with activity on %d days. Try to increase frequency!", in.ActiveDays))
		default:
			out = append(out, fmt.Sprintf("You've been active on %d days. Consider building a more consistent routine.", in.ActiveDays))
		}
	}

	if in.Streak > 0 {
		out = append(out, fmt.Sprintf("You're on a %d-day streak! Keep it up!", in.Streak))
	}

	return out
}
