package repository

import (
	"strings"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"

	"gorm.io/gorm"
)

// GoalRepository 处理目标的数据访问，所有查询都按用户隔离
type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

// GoalFilter 目标列表的筛选与排序条件
type GoalFilter struct {
	Status string // completed | active | overdue
	Color  string
	Sort   string // name_asc | progress_desc | deadline_desc | deadline_asc
}

// Create 创建新目标
func (r *GoalRepository) Create(goal *model.Goal) error {
	return r.DB.Create(goal).Error
}

// FindByIDAndUserID 按 ID 和归属用户查找目标
func (r *GoalRepository) FindByIDAndUserID(id, userID string) (*model.Goal, error) {
	var goal model.Goal
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&goal).Error
	return &goal, err
}

// FindByUserID 获取用户的目标列表，支持状态/颜色筛选和排序
func (r *GoalRepository) FindByUserID(userID string, filter GoalFilter, today time.Time) ([]model.Goal, error) {
	query := r.DB.Where("user_id = ?", userID)

	switch filter.Status {
	case "completed":
		query = query.Where("completed_at IS NOT NULL")
	case "active":
		query = query.Where("completed_at IS NULL")
	case "overdue":
		query = query.Where("completed_at IS NULL AND deadline IS NOT NULL AND deadline < ?", today)
	}

	if filter.Color != "" {
		query = query.Where("color = ?", strings.ToUpper(filter.Color))
	}

	switch filter.Sort {
	case "name_asc":
		query = query.Order("name")
	case "progress_desc":
		query = query.Order("(current / target) DESC")
	case "deadline_desc":
		query = query.Order("deadline DESC NULLS LAST")
	default:
		query = query.Order("deadline ASC NULLS LAST")
	}

	var goals []model.Goal
	err := query.Find(&goals).Error
	return goals, err
}

// FindAllByUserID 获取用户的全部目标（统计用，不排序不筛选）
func (r *GoalRepository) FindAllByUserID(userID string) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.DB.Where("user_id = ?", userID).Find(&goals).Error
	return goals, err
}

// Update 更新目标
func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.DB.Save(goal).Error
}

// Delete 删除目标并级联删除其流水
func (r *GoalRepository) Delete(goal *model.Goal) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goal.ID).Delete(&model.GoalHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(goal).Error
	})
}
