package model

import "time"

// Goal 数值型目标。Current 从 0 开始累加，达到 Target 时打上 CompletedAt，
// 之后即使 Current 回落也不会自动清除（完成状态单调）。
// swagger:model Goal
type Goal struct {
	UUIDBase
	UserID      string     `gorm:"index;type:varchar(36);not null" json:"user_id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Unit        string     `gorm:"size:50;not null" json:"unit"`
	Target      float64    `gorm:"not null" json:"target"`
	Current     float64    `gorm:"default:0" json:"current"`
	Color       string     `gorm:"size:7;not null" json:"color"`
	Deadline    *time.Time `gorm:"type:date" json:"deadline"`
	CompletedAt *time.Time `json:"completed_at"`

	History []GoalHistory `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Goal) TableName() string {
	return "goals"
}

// Completed 目标是否已完成
func (g *Goal) Completed() bool {
	return g.CompletedAt != nil
}
