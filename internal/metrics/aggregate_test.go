package metrics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"ritmo/internal/core"
)

func score(v int) *int { return &v }

func act(ts time.Time, category, name string, hours float64, s *int) core.Activity {
	return core.Activity{Timestamp: ts, Category: category, Name: name, Duration: hours, Score: s}
}

func TestTotalDurationOrderIndependent(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	a := act(ts, "Work", "a", 2, nil)
	b := act(ts, "Study", "b", 1.5, nil)
	c := act(ts, "Work", "c", 0.5, nil)

	forward := TotalDuration([]core.Activity{a, b, c})
	backward := TotalDuration([]core.Activity{c, b, a})
	if forward != backward {
		t.Fatalf("sum depends on order: %v vs %v", forward, backward)
	}
	if math.Abs(forward-4) > 1e-9 {
		t.Fatalf("TotalDuration = %v, want 4", forward)
	}
}

func TestAverageDurationEmpty(t *testing.T) {
	if got := AverageDuration(nil); got != 0 {
		t.Fatalf("AverageDuration(nil) = %v, want 0", got)
	}
	if got := AverageScore(nil); got != 0 {
		t.Fatalf("AverageScore(nil) = %v, want 0", got)
	}
}

func TestGroupByDay(t *testing.T) {
	d1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	d2 := time.Date(2025, 3, 11, 20, 0, 0, 0, time.Local)
	got := GroupByDay([]core.Activity{
		act(d1, "Work", "a", 2, nil),
		act(d1.Add(4*time.Hour), "Study", "b", 1, nil),
		act(d2, "Work", "c", 3, nil),
	})
	want := map[string]DayTotal{
		"2025-03-10": {Hours: 3, Count: 2},
		"2025-03-11": {Hours: 3, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GroupByDay = %v, want %v", got, want)
	}
}

func TestGroupByCategory(t *testing.T) {
	today := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)
	got := GroupByCategory([]core.Activity{
		act(today, "Work", "A", 2, score(90)),
		act(yesterday, "Study", "B", 1, score(50)),
	})
	want := map[string]float64{"Work": 2, "Study": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GroupByCategory = %v, want %v", got, want)
	}
}

func TestTopNames(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	list := []core.Activity{
		act(ts, "Work", "alpha", 1, nil),
		act(ts, "Work", "beta", 3, nil),
		act(ts, "Work", "gamma", 1, nil), // ties with alpha, alpha was seen first
		act(ts, "Work", "alpha", 1, nil),
		act(ts, "Work", "delta", 5, nil),
	}
	got := TopNames(list, 3)
	want := []NameHours{
		{Name: "delta", Hours: 5},
		{Name: "beta", Hours: 3},
		{Name: "alpha", Hours: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopNames = %v, want %v", got, want)
	}

	if got := TopNames(nil, 5); len(got) != 0 {
		t.Fatalf("TopNames(nil) = %v, want empty", got)
	}
}

func TestTopNamesTieKeepsFirstSeen(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	got := TopNames([]core.Activity{
		act(ts, "Work", "second", 2, nil),
		act(ts, "Work", "first", 2, nil),
	}, 2)
	if got[0].Name != "second" || got[1].Name != "first" {
		t.Fatalf("tie order lost: %v", got)
	}
}

func TestAverageScore(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	list := []core.Activity{
		act(ts, "Work", "A", 2, score(90)),
		act(ts, "Study", "B", 1, score(50)),
		act(ts, "Work", "C", 1, nil), // unrated, excluded
	}
	if got := AverageScore(list); got != 70 {
		t.Fatalf("AverageScore = %d, want 70", got)
	}
	if got := ScoredCount(list); got != 2 {
		t.Fatalf("ScoredCount = %d, want 2", got)
	}

	// Rounds to nearest: (80+85)/2 = 82.5 -> 83.
	rounded := AverageScore([]core.Activity{
		act(ts, "Work", "A", 1, score(80)),
		act(ts, "Work", "B", 1, score(85)),
	})
	if rounded != 83 {
		t.Fatalf("AverageScore = %d, want 83", rounded)
	}
}

func TestScoresByPeriod(t *testing.T) {
	// 2025-03-12 is a Wednesday; its week starts Sunday 2025-03-09.
	wed := time.Date(2025, 3, 12, 9, 0, 0, 0, time.Local)
	sun := time.Date(2025, 3, 9, 9, 0, 0, 0, time.Local)
	list := []core.Activity{
		act(wed, "Work", "A", 1, score(80)),
		act(sun, "Work", "B", 1, score(60)),
		act(wed, "Work", "C", 1, nil), // unrated, excluded
	}

	weekly := ScoresByPeriod(list, Weekly)
	if !reflect.DeepEqual(weekly, map[string][]int{"2025-03-09": {80, 60}}) {
		t.Fatalf("weekly = %v", weekly)
	}

	monthly := ScoresByPeriod(list, Monthly)
	if !reflect.DeepEqual(monthly, map[string][]int{"2025-03": {80, 60}}) {
		t.Fatalf("monthly = %v", monthly)
	}

	if got := ScoresByPeriod(nil, Weekly); len(got) != 0 {
		t.Fatalf("ScoresByPeriod(nil) = %v, want empty", got)
	}
}

func TestDayOfWeekFrequency(t *testing.T) {
	mon := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	tue := mon.AddDate(0, 0, 1)
	got := DayOfWeekFrequency([]core.Activity{
		act(mon, "Work", "a", 1, nil),
		act(mon, "Work", "b", 1, nil),
		act(tue, "Work", "c", 1, nil),
	})
	want := map[string]int{"Monday": 2, "Tuesday": 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DayOfWeekFrequency = %v, want %v", got, want)
	}
}

func TestMostActiveDay(t *testing.T) {
	mon := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	day, ok := MostActiveDay([]core.Activity{
		act(mon, "Work", "a", 1, nil),
		act(mon, "Work", "b", 1, nil),
		act(mon.AddDate(0, 0, 1), "Work", "c", 1, nil),
	})
	if !ok || day != "Monday" {
		t.Fatalf("MostActiveDay = %q, %v", day, ok)
	}
	if _, ok := MostActiveDay(nil); ok {
		t.Fatal("expected no most active day for empty input")
	}
}

func TestPeakHour(t *testing.T) {
	base := time.Date(2025, 3, 10, 13, 0, 0, 0, time.Local)

	t.Run("entry time preferred over timestamp", func(t *testing.T) {
		list := []core.Activity{
			{Timestamp: base, EntryTime: "07:15", Category: "Work", Name: "a", Duration: 1},
			{Timestamp: base, EntryTime: "07:45", Category: "Work", Name: "b", Duration: 1},
			{Timestamp: base, Category: "Work", Name: "c", Duration: 1}, // falls back to 13
		}
		hour, ok := PeakHour(list)
		if !ok || hour != 7 {
			t.Fatalf("PeakHour = %d, %v; want 7", hour, ok)
		}
	})

	t.Run("tie breaks to lower hour", func(t *testing.T) {
		list := []core.Activity{
			{Timestamp: base, EntryTime: "21:00", Category: "Work", Name: "a", Duration: 1},
			{Timestamp: base, EntryTime: "06:00", Category: "Work", Name: "b", Duration: 1},
		}
		hour, ok := PeakHour(list)
		if !ok || hour != 6 {
			t.Fatalf("PeakHour = %d, %v; want 6", hour, ok)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, ok := PeakHour(nil); ok {
			t.Fatal("expected no peak hour for empty input")
		}
	})
}

func TestFilterByRange(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	tenDaysAgo := act(now.AddDate(0, 0, -10), "Work", "old", 1, nil)
	threeDaysAgo := act(now.AddDate(0, 0, -3), "Work", "recent", 1, nil)
	all := []core.Activity{threeDaysAgo, tenDaysAgo}

	got := FilterByRange(all, core.Range{Days: 7}, now)
	if len(got) != 1 || got[0].Name != "recent" {
		t.Fatalf("7-day filter = %v", got)
	}

	if got := FilterByRange(all, core.RangeAll, now); len(got) != 2 {
		t.Fatalf("all filter should keep everything, got %d", len(got))
	}

	// Range 0 means cutoff = now: only entries at or after now survive.
	atNow := act(now, "Work", "now", 1, nil)
	got = FilterByRange([]core.Activity{atNow, threeDaysAgo}, core.Range{Days: 0}, now)
	if len(got) != 1 || got[0].Name != "now" {
		t.Fatalf("0-day filter = %v", got)
	}

	// Input must not be mutated.
	if all[1].Name != "old" {
		t.Fatal("input slice mutated")
	}
}

func TestFilterWindow(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.Local)
	inside := act(now.AddDate(0, 0, -10), "Work", "inside", 1, nil)
	tooNew := act(now.AddDate(0, 0, -3), "Work", "new", 1, nil)
	tooOld := act(now.AddDate(0, 0, -20), "Work", "ancient", 1, nil)

	got := FilterWindow([]core.Activity{tooNew, inside, tooOld}, now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))
	if len(got) != 1 || got[0].Name != "inside" {
		t.Fatalf("FilterWindow = %v", got)
	}
}

func TestGoalProgress(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	filtered := []core.Activity{
		act(ts, "Work", "a", 7, nil),
		act(ts, "Work", "b", 5, nil),
		act(ts, "Study", "c", 5, nil),
	}

	scoped := core.Goal{Name: "Work sprint", Target: 10, Category: "Work"}
	if got := GoalProgress(scoped, filtered); math.Abs(got-120) > 1e-9 {
		t.Fatalf("scoped progress = %v, want 120", got)
	}

	unscoped := core.Goal{Name: "Everything", Target: 34}
	if got := GoalProgress(unscoped, filtered); math.Abs(got-50) > 1e-9 {
		t.Fatalf("unscoped progress = %v, want 50", got)
	}

	if got := GoalProgress(scoped, nil); got != 0 {
		t.Fatalf("empty progress = %v, want 0", got)
	}
}
