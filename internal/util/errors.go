package util

import "errors"

var (
	// ErrInvalidCredentials 登录失败的统一错误。无论是账号不存在还是密码错误、
	// Telegram 签名无效还是过期，对外都只返回这一种结果，避免泄露账号是否存在。
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailRegistered = errors.New("email already registered")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDeadlinePast    = errors.New("deadline cannot be in the past")
	ErrInvalidDeadline = errors.New("deadline must be a YYYY-MM-DD date")

	// ErrTelegramNotConfigured 部署错误：未配置 bot token，不是单次请求可恢复的失败
	ErrTelegramNotConfigured = errors.New("telegram bot token not configured")
)
