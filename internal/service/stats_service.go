package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/repository"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// statsCacheTTL 统计缓存的兜底过期时间。正常失效依赖版本号，
// TTL 只是防止冷用户的缓存长期堆积。
const statsCacheTTL = 10 * time.Minute

// StatsService 聚合用户的目标统计：完成率、最快完成、连续打卡、
// 活跃度序列。结果缓存在 Redis，key 带用户版本号，数据变更时
// 版本号自增让旧缓存立即失效（避免按模式扫描删除 key）。
type StatsService struct {
	GoalRepo    *repository.GoalRepository
	CheckinRepo *repository.CheckinRepository
	Redis       *redis.Client

	now func() time.Time
}

func NewStatsService(goalRepo *repository.GoalRepository, checkinRepo *repository.CheckinRepository, rdb *redis.Client) *StatsService {
	return &StatsService{
		GoalRepo:    goalRepo,
		CheckinRepo: checkinRepo,
		Redis:       rdb,
		now:         time.Now,
	}
}

// FastestGoal 完成耗时最短的目标
type FastestGoal struct {
	GoalID      string    `json:"goal_id"`
	Name        string    `json:"name"`
	Days        int       `json:"days"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at"`
	Color       string    `json:"color"`
}

// Streaks 连续打卡统计
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ActivityPoint 活跃度序列中的一天，Value 为 0 或 1
type ActivityPoint struct {
	Date  time.Time `json:"date"`
	Value int       `json:"value"`
}

// UserStats 用户统计汇总
type UserStats struct {
	Total                 int             `json:"total"`
	Completed             int             `json:"completed"`
	Rate                  int             `json:"rate"`
	FastestGoal           *FastestGoal    `json:"fastest_goal"`
	Streaks               Streaks         `json:"streaks"`
	ActivitySeries        []ActivityPoint `json:"activity_series"`
	AvgDaysToComplete     int             `json:"avg_days_to_complete"`
	ActiveRate            int             `json:"active_rate"`
	CompletedInLast30Days int             `json:"completed_in_last_30_days"`
}

// GetUserStats 计算（或从缓存读取）用户统计，period 为活跃度回看天数
func (s *StatsService) GetUserStats(ctx context.Context, userID string, period int) (*UserStats, error) {
	cacheKey := s.cacheKey(ctx, userID, period)

	if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
		var stats UserStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	goals, err := s.GoalRepo.FindAllByUserID(userID)
	if err != nil {
		return nil, err
	}
	checkins, err := s.CheckinRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	stats := s.compute(goals, checkins, period)

	if payload, err := json.Marshal(stats); err == nil {
		if err := s.Redis.Set(ctx, cacheKey, payload, statsCacheTTL).Err(); err != nil {
			logger.Log.Debug("stats cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

// Invalidate 目标或打卡数据变化后调用，递增用户的统计版本号
func (s *StatsService) Invalidate(userID string) {
	ctx := context.Background()
	if err := s.Redis.Incr(ctx, "stats:ver:"+userID).Err(); err != nil {
		logger.Log.Debug("stats cache invalidation failed", zap.Error(err))
	}
}

func (s *StatsService) cacheKey(ctx context.Context, userID string, period int) string {
	ver, err := s.Redis.Get(ctx, "stats:ver:"+userID).Result()
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("stats:%s:%s:%d", userID, ver, period)
}

func (s *StatsService) compute(goals []model.Goal, checkins []model.CheckIn, period int) *UserStats {
	today := dateOnly(s.now())

	var completedGoals []model.Goal
	for _, g := range goals {
		if g.Completed() {
			completedGoals = append(completedGoals, g)
		}
	}

	total := len(goals)
	completed := len(completedGoals)

	rate := 0
	activeRate := 0
	if total > 0 {
		rate = completed * 100 / total
		activeRate = (total - completed) * 100 / total
	}

	var fastest *FastestGoal
	for _, g := range completedGoals {
		days := daysBetween(g.CreatedAt, *g.CompletedAt)
		if fastest == nil || days < fastest.Days {
			fastest = &FastestGoal{
				GoalID:      g.ID,
				Name:        g.Name,
				Days:        days,
				CreatedAt:   dateOnly(g.CreatedAt),
				CompletedAt: dateOnly(*g.CompletedAt),
				Color:       g.Color,
			}
		}
	}

	avgDays := 0
	if completed > 0 {
		totalDays := 0
		for _, g := range completedGoals {
			totalDays += daysBetween(g.CreatedAt, *g.CompletedAt)
		}
		avgDays = totalDays / completed
	}

	thirtyDaysAgo := today.AddDate(0, 0, -30)
	completedLast30 := 0
	for _, g := range completedGoals {
		if !dateOnly(*g.CompletedAt).Before(thirtyDaysAgo) {
			completedLast30++
		}
	}

	return &UserStats{
		Total:                 total,
		Completed:             completed,
		Rate:                  rate,
		FastestGoal:           fastest,
		Streaks:               CalculateStreaks(checkins, today),
		ActivitySeries:        BuildActivitySeries(checkins, today, period),
		AvgDaysToComplete:     avgDays,
		ActiveRate:            activeRate,
		CompletedInLast30Days: completedLast30,
	}
}

// CalculateStreaks 按打卡日期集合计算当前连击和历史最长连击。
// 当前连击从今天向前逐日回数，遇到第一个缺口停止；今天没打卡则为 0。
func CalculateStreaks(checkins []model.CheckIn, today time.Time) Streaks {
	if len(checkins) == 0 {
		return Streaks{}
	}

	dates := distinctDates(checkins)
	set := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}

	current := 0
	for d := today; set[d]; d = d.AddDate(0, 0, -1) {
		current++
	}

	longest := 0
	streak := 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			streak++
		} else {
			if streak > longest {
				longest = streak
			}
			streak = 1
		}
	}
	if streak > longest {
		longest = streak
	}

	return Streaks{Current: current, Longest: longest}
}

// BuildActivitySeries 生成 [today−period+1, today] 每天的 0/1 活跃度序列，
// 按时间升序，长度恒等于 period。
func BuildActivitySeries(checkins []model.CheckIn, today time.Time, period int) []ActivityPoint {
	set := make(map[time.Time]bool, len(checkins))
	for _, c := range checkins {
		set[dateOnly(c.Date)] = true
	}

	start := today.AddDate(0, 0, -(period - 1))
	series := make([]ActivityPoint, 0, period)
	for offset := 0; offset < period; offset++ {
		day := start.AddDate(0, 0, offset)
		value := 0
		if set[day] {
			value = 1
		}
		series = append(series, ActivityPoint{Date: day, Value: value})
	}
	return series
}

// distinctDates 去重并升序排列打卡日期
func distinctDates(checkins []model.CheckIn) []time.Time {
	seen := make(map[time.Time]bool, len(checkins))
	dates := make([]time.Time, 0, len(checkins))
	for _, c := range checkins {
		d := dateOnly(c.Date)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// daysBetween 两个时间戳所在日历日之间的整天数
func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}
