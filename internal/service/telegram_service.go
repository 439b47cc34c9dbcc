package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/config"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/model"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/repository"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"

	"gorm.io/gorm"
)

// authDateMaxAge Telegram 签名数据的有效窗口（秒），超过按过期处理
const authDateMaxAge = 86400

// TelegramService 校验 Telegram 两种登录凭据（Login Widget 与 Mini App
// initData）并统一负责按 telegram_id 查找或创建用户。
type TelegramService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config

	// now 可注入，测试时用固定时间
	now func() time.Time
}

func NewTelegramService(userRepo *repository.UserRepository, cfg *config.Config) *TelegramService {
	return &TelegramService{
		UserRepo: userRepo,
		Cfg:      cfg,
		now:      time.Now,
	}
}

// WebAppUser Mini App initData 中 user 字段的结构化形式
type WebAppUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// WebAppInitData 校验通过后的 initData，user 字段已解析
type WebAppInitData struct {
	User     *WebAppUser
	AuthDate int64
	Raw      map[string]string
}

// VerifyLoginWidget 校验 Login Widget 回调数据。
// 返回的 error 仅在 bot token 未配置时非空（部署错误）；
// 签名不符、hash 缺失、auth_date 过期或非法一律返回 false。
func (s *TelegramService) VerifyLoginWidget(data map[string]string) (bool, error) {
	if s.Cfg.Telegram.BotToken == "" {
		return false, util.ErrTelegramNotConfigured
	}

	checkHash, ok := data["hash"]
	if !ok || checkHash == "" {
		return false, nil
	}

	fields := make(map[string]string, len(data))
	for k, v := range data {
		if k != "hash" {
			fields[k] = v
		}
	}

	// secret = SHA256(bot_token)
	secret := sha256.Sum256([]byte(s.Cfg.Telegram.BotToken))
	calculated := hmacSHA256Hex(secret[:], buildCheckString(fields))

	if subtle.ConstantTimeCompare([]byte(calculated), []byte(checkHash)) != 1 {
		return false, nil
	}

	if authDate, ok := fields["auth_date"]; ok {
		if !s.authDateFresh(authDate) {
			return false, nil
		}
	}

	return true, nil
}

// VerifyInitData 校验 Mini App initData（query-string 编码）。
// 校验失败返回 ErrInvalidCredentials，bot token 未配置返回
// ErrTelegramNotConfigured，成功时返回已解析的数据。
func (s *TelegramService) VerifyInitData(initData string) (*WebAppInitData, error) {
	if s.Cfg.Telegram.BotToken == "" {
		return nil, util.ErrTelegramNotConfigured
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}

	checkHash := values.Get("hash")
	if checkHash == "" {
		return nil, util.ErrInvalidCredentials
	}

	// 重复的 key 只取第一个值；user 字段此时保持原始 JSON 文本参与签名
	fields := make(map[string]string, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		fields[key] = values.Get(key)
	}

	// secret = HMAC-SHA256(key="WebAppData", message=bot_token)，
	// 注意 key 与 message 的角色和 Login Widget 相反
	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(s.Cfg.Telegram.BotToken))
	calculated := hmacSHA256Hex(secretMac.Sum(nil), buildCheckString(fields))

	if subtle.ConstantTimeCompare([]byte(calculated), []byte(checkHash)) != 1 {
		return nil, util.ErrInvalidCredentials
	}

	result := &WebAppInitData{Raw: fields}

	if authDate, ok := fields["auth_date"]; ok {
		if !s.authDateFresh(authDate) {
			return nil, util.ErrInvalidCredentials
		}
		result.AuthDate, _ = strconv.ParseInt(authDate, 10, 64)
	}

	if rawUser, ok := fields["user"]; ok && rawUser != "" {
		var user WebAppUser
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			return nil, util.ErrInvalidCredentials
		}
		result.User = &user
	}

	return result, nil
}

// FindOrCreateUser 按 Telegram ID 解析用户，不存在则创建。
// 两种 Telegram 登录方式共用这一条创建路径：无邮箱、无密码，
// 名字由 first_name 和 last_name 拼接。
func (s *TelegramService) FindOrCreateUser(telegramID int64, firstName, lastName string) (*model.User, error) {
	user, err := s.UserRepo.FindByTelegramID(telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		name = "User"
	}

	user = &model.User{
		TelegramID: &telegramID,
		Name:       name,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *TelegramService) authDateFresh(authDate string) bool {
	ts, err := strconv.ParseInt(authDate, 10, 64)
	if err != nil {
		return false
	}
	return s.now().Unix()-ts <= authDateMaxAge
}

// buildCheckString 构造签名用的规范字符串：key 字典序排序，
// 以 "key=value" 形式用换行符连接
func buildCheckString(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}
	return b.String()
}

func hmacSHA256Hex(key []byte, message string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
