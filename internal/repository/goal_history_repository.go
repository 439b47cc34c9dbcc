package repository

import (
	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"

	"gorm.io/gorm"
)

type GoalHistoryRepository struct {
	DB *gorm.DB
}

func NewGoalHistoryRepository(db *gorm.DB) *GoalHistoryRepository {
	return &GoalHistoryRepository{DB: db}
}

// FindByGoalID 按日期升序获取目标的全部流水，同日内按写入顺序
func (r *GoalHistoryRepository) FindByGoalID(goalID string) ([]model.GoalHistory, error) {
	var entries []model.GoalHistory
	err := r.DB.Where("goal_id = ?", goalID).Order("date ASC, created_at ASC").Find(&entries).Error
	return entries, err
}
