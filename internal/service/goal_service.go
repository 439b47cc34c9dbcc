package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/repository"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/monitoring"

	"gorm.io/gorm"
)

// forceCompleteNote 强制完成时写入流水的固定备注
const forceCompleteNote = "Marked as completed"

// GoalService 处理目标的增删改查和进度流水。
// 进度变更（流水追加、目标更新、当天打卡）在同一个事务内完成。
type GoalService struct {
	GoalRepo    *repository.GoalRepository
	HistoryRepo *repository.GoalHistoryRepository
	CheckinRepo *repository.CheckinRepository
	Stats       *StatsService
	DB          *gorm.DB

	now func() time.Time
}

func NewGoalService(
	goalRepo *repository.GoalRepository,
	historyRepo *repository.GoalHistoryRepository,
	checkinRepo *repository.CheckinRepository,
	stats *StatsService,
	db *gorm.DB,
) *GoalService {
	return &GoalService{
		GoalRepo:    goalRepo,
		HistoryRepo: historyRepo,
		CheckinRepo: checkinRepo,
		Stats:       stats,
		DB:          db,
		now:         time.Now,
	}
}

// CreateGoalRequest 创建目标的请求结构
type CreateGoalRequest struct {
	Name     string  `json:"name" binding:"required,max=200"`
	Unit     string  `json:"unit" binding:"required,max=50"`
	Target   float64 `json:"target" binding:"required,gt=0"`
	Color    string  `json:"color" binding:"required,len=7,hexcolor"`
	Deadline *string `json:"deadline"` // YYYY-MM-DD
}

// UpdateGoalRequest 更新目标的请求结构，缺失的字段不更新。
// Deadline 保留原始 JSON，用来区分“字段缺失”和“显式 null（清除截止日期）”。
type UpdateGoalRequest struct {
	Name     *string         `json:"name" binding:"omitempty,min=1,max=200"`
	Current  *float64        `json:"current" binding:"omitempty,gte=0"`
	Color    *string         `json:"color" binding:"omitempty,len=7,hexcolor"`
	Deadline json.RawMessage `json:"deadline"` // YYYY-MM-DD，null 清除
}

// ProgressRequest 进度增量请求。Delta 用指针区分“字段缺失”和合法的 0
type ProgressRequest struct {
	Delta *float64 `json:"delta" binding:"required"`
	Note  *string  `json:"note" binding:"omitempty,max=500"`
}

// CreateGoal 创建新目标并记录当天打卡
func (s *GoalService) CreateGoal(userID string, req CreateGoalRequest) (*model.Goal, error) {
	today := dateOnly(s.now())

	deadline, err := parseDeadline(req.Deadline, today)
	if err != nil {
		return nil, err
	}

	goal := &model.Goal{
		UserID:   userID,
		Name:     req.Name,
		Unit:     req.Unit,
		Target:   req.Target,
		Current:  0,
		Color:    strings.ToUpper(req.Color),
		Deadline: deadline,
	}

	if err := s.GoalRepo.Create(goal); err != nil {
		return nil, err
	}

	if err := s.CheckinRepo.Record(userID, today); err != nil {
		return nil, err
	}
	s.Stats.Invalidate(userID)

	return goal, nil
}

// GetUserGoals 获取用户的目标列表
func (s *GoalService) GetUserGoals(userID string, filter repository.GoalFilter) ([]model.Goal, error) {
	return s.GoalRepo.FindByUserID(userID, filter, dateOnly(s.now()))
}

// GetGoal 获取单个目标，不存在或不属于该用户时返回 ErrGoalNotFound
func (s *GoalService) GetGoal(userID, goalID string) (*model.Goal, error) {
	goal, err := s.GoalRepo.FindByIDAndUserID(goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// UpdateGoal 部分更新目标信息并记录当天打卡
func (s *GoalService) UpdateGoal(userID, goalID string, req UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now())

	if deadline, set, err := parseDeadlineUpdate(req.Deadline, today); err != nil {
		return nil, err
	} else if set {
		goal.Deadline = deadline
	}
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Current != nil {
		goal.Current = *req.Current
	}
	if req.Color != nil {
		goal.Color = strings.ToUpper(*req.Color)
	}

	if err := s.GoalRepo.Update(goal); err != nil {
		return nil, err
	}

	if err := s.CheckinRepo.Record(userID, today); err != nil {
		return nil, err
	}
	s.Stats.Invalidate(userID)

	return goal, nil
}

// DeleteGoal 删除目标及其流水
func (s *GoalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return err
	}
	if err := s.GoalRepo.Delete(goal); err != nil {
		return err
	}
	s.Stats.Invalidate(userID)
	return nil
}

// ApplyProgress 追加进度增量。流水、目标更新和打卡是一个原子单元，
// 任意一步失败则整体回滚。
func (s *GoalService) ApplyProgress(userID, goalID string, req ProgressRequest) (*model.Goal, error) {
	var goal model.Goal

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrGoalNotFound
			}
			return err
		}

		today := dateOnly(s.now())
		entry, completed := applyDelta(&goal, *req.Delta, req.Note, today, s.now())

		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		if err := tx.Save(&goal).Error; err != nil {
			return err
		}
		if err := s.CheckinRepo.RecordTx(tx, userID, today); err != nil {
			return err
		}

		if completed {
			monitoring.GoalCompletions.Inc()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Stats.Invalidate(userID)
	return &goal, nil
}

// ForceComplete 直接把目标标记为完成：Current 拉到 Target，
// 差值不为零时补一条流水，完成时间总是重新打到当前时刻。
func (s *GoalService) ForceComplete(userID, goalID string) (*model.Goal, error) {
	var goal model.Goal

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrGoalNotFound
			}
			return err
		}

		today := dateOnly(s.now())
		wasCompleted := goal.Completed()
		entry := forceComplete(&goal, today, s.now())

		if entry != nil {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		if err := tx.Save(&goal).Error; err != nil {
			return err
		}
		if err := s.CheckinRepo.RecordTx(tx, userID, today); err != nil {
			return err
		}

		if !wasCompleted {
			monitoring.GoalCompletions.Inc()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Stats.Invalidate(userID)
	return &goal, nil
}

// GetGoalHistory 回放目标流水，生成带完成百分比的进度轨迹（只读视图）
func (s *GoalService) GetGoalHistory(userID, goalID string) (*GoalHistoryView, error) {
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	entries, err := s.HistoryRepo.FindByGoalID(goal.ID)
	if err != nil {
		return nil, err
	}

	return BuildHistory(goal, entries), nil
}

// applyDelta 把增量套用到目标上并生成流水记录。Current 下限为 0，
// 上不封顶（可越过 Target）；首次达到 Target 时打完成时间，之后不再变动。
// 返回值第二项表示本次是否新完成。
func applyDelta(goal *model.Goal, delta float64, note *string, today, now time.Time) (*model.GoalHistory, bool) {
	newCurrent := goal.Current + delta
	if newCurrent < 0 {
		newCurrent = 0
	}
	goal.Current = newCurrent

	entry := &model.GoalHistory{
		GoalID: goal.ID,
		Date:   today,
		Delta:  delta,
		Note:   note,
	}

	completed := false
	if goal.Current >= goal.Target && goal.CompletedAt == nil {
		goal.CompletedAt = &now
		completed = true
	}

	return entry, completed
}

// forceComplete 把 Current 直接设为 Target。差值为零时不产生流水，
// 完成时间无条件刷新（重复调用会重新打点）。
func forceComplete(goal *model.Goal, today, now time.Time) *model.GoalHistory {
	delta := goal.Target - goal.Current
	goal.Current = goal.Target
	goal.CompletedAt = &now

	if delta == 0 {
		return nil
	}

	note := forceCompleteNote
	return &model.GoalHistory{
		GoalID: goal.ID,
		Date:   today,
		Delta:  delta,
		Note:   &note,
	}
}

// parseDeadline 解析 YYYY-MM-DD 截止日期，早于今天视为非法
func parseDeadline(raw *string, today time.Time) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	deadline, err := time.ParseInLocation("2006-01-02", *raw, time.UTC)
	if err != nil {
		return nil, util.ErrInvalidDeadline
	}
	if deadline.Before(today) {
		return nil, util.ErrDeadlinePast
	}
	return &deadline, nil
}

// parseDeadlineUpdate 解析部分更新中的 deadline 字段。字段缺失时 set 为
// false；显式 null 或空串表示清除已有的截止日期。
func parseDeadlineUpdate(raw json.RawMessage, today time.Time) (deadline *time.Time, set bool, err error) {
	if raw == nil {
		return nil, false, nil
	}
	if string(raw) == "null" {
		return nil, true, nil
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, true, util.ErrInvalidDeadline
	}
	deadline, err = parseDeadline(&value, today)
	if err != nil {
		return nil, true, err
	}
	return deadline, true, nil
}

// dateOnly 去掉时分秒，只保留日历日
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
