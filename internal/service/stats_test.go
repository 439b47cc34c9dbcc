package service

import (
	"testing"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"
)

func checkinsOn(days ...time.Time) []model.CheckIn {
	checkins := make([]model.CheckIn, len(days))
	for i, d := range days {
		checkins[i] = model.CheckIn{Date: d}
	}
	return checkins
}

func TestCalculateStreaks_ConsecutiveThroughToday(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	checkins := checkinsOn(
		today.AddDate(0, 0, -2),
		today.AddDate(0, 0, -1),
		today,
	)

	streaks := CalculateStreaks(checkins, today)
	if streaks.Current != 3 {
		t.Fatalf("want current 3, got %d", streaks.Current)
	}
	if streaks.Longest != 3 {
		t.Fatalf("want longest 3, got %d", streaks.Longest)
	}
}

func TestCalculateStreaks_GapBreaksCurrentNotLongest(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	// 五连后断一天，然后只有今天
	checkins := checkinsOn(
		today.AddDate(0, 0, -7),
		today.AddDate(0, 0, -6),
		today.AddDate(0, 0, -5),
		today.AddDate(0, 0, -4),
		today.AddDate(0, 0, -3),
		today,
	)

	streaks := CalculateStreaks(checkins, today)
	if streaks.Current != 1 {
		t.Fatalf("want current 1, got %d", streaks.Current)
	}
	if streaks.Longest != 5 {
		t.Fatalf("want longest 5, got %d", streaks.Longest)
	}
}

func TestCalculateStreaks_NoCheckinToday(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	checkins := checkinsOn(
		today.AddDate(0, 0, -2),
		today.AddDate(0, 0, -1),
	)

	streaks := CalculateStreaks(checkins, today)
	if streaks.Current != 0 {
		t.Fatalf("want current 0 without a check-in today, got %d", streaks.Current)
	}
	if streaks.Longest != 2 {
		t.Fatalf("want longest 2, got %d", streaks.Longest)
	}
}

func TestCalculateStreaks_Empty(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	streaks := CalculateStreaks(nil, today)
	if streaks.Current != 0 || streaks.Longest != 0 {
		t.Fatalf("want zero streaks, got %+v", streaks)
	}
}

func TestCalculateStreaks_DuplicateDates(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	checkins := checkinsOn(today, today, today.AddDate(0, 0, -1))

	streaks := CalculateStreaks(checkins, today)
	if streaks.Current != 2 || streaks.Longest != 2 {
		t.Fatalf("want 2/2, got %+v", streaks)
	}
}

func TestBuildActivitySeries(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	checkins := checkinsOn(today, today.AddDate(0, 0, -3))

	series := BuildActivitySeries(checkins, today, 7)
	if len(series) != 7 {
		t.Fatalf("want 7 points, got %d", len(series))
	}
	if !series[0].Date.Equal(today.AddDate(0, 0, -6)) {
		t.Fatalf("want series to start at %v, got %v", today.AddDate(0, 0, -6), series[0].Date)
	}
	if !series[6].Date.Equal(today) {
		t.Fatalf("want series to end today, got %v", series[6].Date)
	}

	wantValues := []int{0, 0, 0, 1, 0, 0, 1}
	for i, p := range series {
		if p.Value != wantValues[i] {
			t.Fatalf("point %d (%v): want %d, got %d", i, p.Date, wantValues[i], p.Value)
		}
	}
}

func TestBuildActivitySeries_NoCheckins(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	series := BuildActivitySeries(nil, today, 30)
	if len(series) != 30 {
		t.Fatalf("want 30 points, got %d", len(series))
	}
	for _, p := range series {
		if p.Value != 0 {
			t.Fatalf("want all zeros, got %d on %v", p.Value, p.Date)
		}
	}
}

func statsGoal(id string, created time.Time, completedDays int) model.Goal {
	g := model.Goal{Name: id, Target: 100}
	g.ID = id
	g.CreatedAt = created
	if completedDays >= 0 {
		done := created.AddDate(0, 0, completedDays)
		g.Current = 100
		g.CompletedAt = &done
	}
	return g
}

func TestStatsCompute_Rates(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := &StatsService{now: func() time.Time { return now }}

	created := now.AddDate(0, 0, -40)
	goals := []model.Goal{
		statsGoal("a", created, 5),
		statsGoal("b", created, -1),
		statsGoal("c", created, -1),
		statsGoal("d", created, -1),
	}

	stats := s.compute(goals, nil, 30)
	if stats.Total != 4 || stats.Completed != 1 {
		t.Fatalf("want 4 total / 1 completed, got %d/%d", stats.Total, stats.Completed)
	}
	// 整数百分比向下取整
	if stats.Rate != 25 {
		t.Fatalf("want rate 25, got %d", stats.Rate)
	}
	if stats.ActiveRate != 75 {
		t.Fatalf("want active_rate 75, got %d", stats.ActiveRate)
	}
}

func TestStatsCompute_FastestFirstWins(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := &StatsService{now: func() time.Time { return now }}

	created := now.AddDate(0, 0, -20)
	goals := []model.Goal{
		statsGoal("first", created, 3),
		statsGoal("tied", created, 3),
		statsGoal("slower", created, 8),
	}

	stats := s.compute(goals, nil, 30)
	if stats.FastestGoal == nil {
		t.Fatal("want a fastest goal")
	}
	// 耗时相同取先出现的
	if stats.FastestGoal.GoalID != "first" {
		t.Fatalf("want goal first, got %s", stats.FastestGoal.GoalID)
	}
	if stats.FastestGoal.Days != 3 {
		t.Fatalf("want 3 days, got %d", stats.FastestGoal.Days)
	}
}

func TestStatsCompute_AvgDaysFloors(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := &StatsService{now: func() time.Time { return now }}

	created := now.AddDate(0, 0, -20)
	goals := []model.Goal{
		statsGoal("a", created, 3),
		statsGoal("b", created, 4),
	}

	stats := s.compute(goals, nil, 30)
	// (3+4)/2 向下取整
	if stats.AvgDaysToComplete != 3 {
		t.Fatalf("want avg 3, got %d", stats.AvgDaysToComplete)
	}
}

func TestStatsCompute_CompletedInLast30Days(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := &StatsService{now: func() time.Time { return now }}

	created := now.AddDate(0, 0, -100)
	goals := []model.Goal{
		statsGoal("old", created, 10),  // 完成于 90 天前
		statsGoal("recent", created, 95), // 完成于 5 天前
	}

	stats := s.compute(goals, nil, 30)
	if stats.CompletedInLast30Days != 1 {
		t.Fatalf("want 1 recent completion, got %d", stats.CompletedInLast30Days)
	}
}

func TestStatsCompute_EmptyUser(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	s := &StatsService{now: func() time.Time { return now }}

	stats := s.compute(nil, nil, 14)
	if stats.Total != 0 || stats.Rate != 0 || stats.FastestGoal != nil {
		t.Fatalf("unexpected stats for empty user: %+v", stats)
	}
	if len(stats.ActivitySeries) != 14 {
		t.Fatalf("want 14 activity points, got %d", len(stats.ActivitySeries))
	}
}
