package service

import (
	"errors"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/config"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/repository"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TelegramTokenTTL Telegram 登录签发的令牌有效期。Telegram 重新认证成本低，
// 给比密码登录更长的固定时长。
const TelegramTokenTTL = 36 * time.Hour

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// Register 注册新用户，邮箱重复返回 ErrEmailRegistered
func (s *AuthService) Register(email, name, password string) (*model.User, error) {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	hash := string(hashedPassword)
	user := &model.User{
		Email:    &email,
		Name:     name,
		Password: &hash,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 密码登录。账号不存在、无密码（Telegram 用户）、密码错误
// 全部返回同一个 ErrInvalidCredentials，不区分原因。
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if user.Password == nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(user.ID, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// IssueTelegramToken 为通过 Telegram 校验的用户签发 36 小时令牌
func (s *AuthService) IssueTelegramToken(user *model.User) (string, error) {
	return util.GenerateJWT(user.ID, s.Cfg.JWT.Secret, TelegramTokenTTL)
}

// GetCurrentUser 从请求上下文的令牌声明中取出当前用户
func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.Subject)
	if err != nil {
		return nil
	}
	return user
}
