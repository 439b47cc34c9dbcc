package model

import "time"

// CheckIn 用户某个日历日的打卡标记，每人每天最多一条。
// 任何影响目标进度的操作都会顺带写入当天的打卡。
// swagger:model CheckIn
type CheckIn struct {
	UUIDBase
	UserID string    `gorm:"type:varchar(36);not null;index:idx_user_checkin_date,unique" json:"user_id"`
	Date   time.Time `gorm:"type:date;not null;index:idx_user_checkin_date,unique" json:"date"`
}

func (CheckIn) TableName() string {
	return "checkins"
}
