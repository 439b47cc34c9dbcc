package model

import "time"

// GoalHistory 进度流水记录，一旦写入不再修改。Delta 保存原始增量
// （可为负、可超出目标值），回放整个流水即可还原 Goal.Current。
// swagger:model GoalHistory
type GoalHistory struct {
	UUIDBase
	GoalID string    `gorm:"index;type:varchar(36);not null" json:"goal_id"`
	Date   time.Time `gorm:"type:date;not null" json:"date"`
	Delta  float64   `gorm:"not null" json:"delta"`
	Note   *string   `gorm:"size:500" json:"note"`
}

func (GoalHistory) TableName() string {
	return "goal_history"
}
