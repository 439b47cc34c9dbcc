package repository

import (
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckinRepository struct {
	DB *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) *CheckinRepository {
	return &CheckinRepository{DB: db}
}

// RecordTx 在事务内记录当天打卡。靠唯一索引上的 ON CONFLICT DO NOTHING
// 保证幂等，并发写入同一天也不会让事务失败。
func (r *CheckinRepository) RecordTx(tx *gorm.DB, userID string, date time.Time) error {
	checkin := &model.CheckIn{UserID: userID, Date: date}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(checkin).Error
}

// Record 记录当天打卡
func (r *CheckinRepository) Record(userID string, date time.Time) error {
	return r.RecordTx(r.DB, userID, date)
}

// FindByUserID 获取用户全部打卡记录
func (r *CheckinRepository) FindByUserID(userID string) ([]model.CheckIn, error) {
	var checkins []model.CheckIn
	err := r.DB.Where("user_id = ?", userID).Find(&checkins).Error
	return checkins, err
}
