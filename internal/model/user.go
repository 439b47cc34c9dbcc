package model

// User 用户实体。支持两种注册方式：邮箱+密码，或 Telegram 登录。
// Telegram 用户没有邮箱和密码，Email/Password 为 NULL。
// swagger:model User
type User struct {
	UUIDBase
	Email      *string `gorm:"size:100;uniqueIndex" json:"email"`
	Name       string  `gorm:"size:100;not null" json:"name"`
	Password   *string `gorm:"size:100" json:"-"`
	TelegramID *int64  `gorm:"uniqueIndex" json:"telegram_id,omitempty"`

	Goals    []Goal    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CheckIns []CheckIn `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}
