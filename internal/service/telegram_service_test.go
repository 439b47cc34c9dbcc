package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/config"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"
)

const testBotToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

func newTestTelegramService(botToken string, now time.Time) *TelegramService {
	return &TelegramService{
		Cfg: &config.Config{
			Telegram: config.TelegramConfig{BotToken: botToken},
		},
		now: func() time.Time { return now },
	}
}

// signWidget computes the Login Widget hash: HMAC-SHA256 keyed with
// SHA256(bot_token) over sorted key=value lines.
func signWidget(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()
	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(buildCheckString(fields)))
	return hex.EncodeToString(mac.Sum(nil))
}

// signInitData computes the Mini App hash: secret is HMAC-SHA256 keyed
// with "WebAppData" over the bot token.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()
	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(buildCheckString(fields)))
	return hex.EncodeToString(mac.Sum(nil))
}

func widgetPayload(t *testing.T, now time.Time, age int64) map[string]string {
	t.Helper()
	fields := map[string]string{
		"id":         "9876543",
		"first_name": "Alice",
		"username":   "alice",
		"auth_date":  strconv.FormatInt(now.Unix()-age, 10),
	}
	hash := signWidget(t, testBotToken, fields)
	fields["hash"] = hash
	return fields
}

func TestVerifyLoginWidget_Valid(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	ok, err := s.VerifyLoginWidget(widgetPayload(t, now, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("valid payload rejected")
	}
}

func TestVerifyLoginWidget_TamperedHash(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	payload := widgetPayload(t, now, 100)
	payload["hash"] = "deadbeef" + payload["hash"][8:]

	ok, err := s.VerifyLoginWidget(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("tampered hash accepted")
	}
}

func TestVerifyLoginWidget_TamperedField(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	payload := widgetPayload(t, now, 100)
	payload["id"] = "1111111"

	ok, _ := s.VerifyLoginWidget(payload)
	if ok {
		t.Fatal("payload with modified field accepted")
	}
}

func TestVerifyLoginWidget_MissingHash(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	payload := widgetPayload(t, now, 100)
	delete(payload, "hash")

	ok, _ := s.VerifyLoginWidget(payload)
	if ok {
		t.Fatal("payload without hash accepted")
	}
}

func TestVerifyLoginWidget_FreshnessWindow(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	// 窗口边界：86399 秒内有效，86401 秒拒绝
	ok, _ := s.VerifyLoginWidget(widgetPayload(t, now, 86399))
	if !ok {
		t.Fatal("payload aged 86399s rejected")
	}

	ok, _ = s.VerifyLoginWidget(widgetPayload(t, now, 86401))
	if ok {
		t.Fatal("payload aged 86401s accepted")
	}
}

func TestVerifyLoginWidget_MalformedAuthDate(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	fields := map[string]string{
		"id":         "9876543",
		"first_name": "Alice",
		"auth_date":  "not-a-number",
	}
	fields["hash"] = signWidget(t, testBotToken, fields)

	ok, _ := s.VerifyLoginWidget(fields)
	if ok {
		t.Fatal("payload with malformed auth_date accepted")
	}
}

func TestVerifyLoginWidget_NoBotToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService("", now)

	_, err := s.VerifyLoginWidget(widgetPayload(t, now, 100))
	if !errors.Is(err, util.ErrTelegramNotConfigured) {
		t.Fatalf("want ErrTelegramNotConfigured, got %v", err)
	}
}

func initDataPayload(t *testing.T, now time.Time, age int64, userJSON string) string {
	t.Helper()
	fields := map[string]string{
		"query_id":  "AAHdF6IQAAAAAN0XohDhrOrc",
		"auth_date": strconv.FormatInt(now.Unix()-age, 10),
	}
	if userJSON != "" {
		fields["user"] = userJSON
	}
	hash := signInitData(t, testBotToken, fields)

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hash)
	return values.Encode()
}

func TestVerifyInitData_Valid(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	userJSON := `{"id":42,"first_name":"Bob","last_name":"Smith","username":"bob"}`
	data, err := s.VerifyInitData(initDataPayload(t, now, 100, userJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.User == nil {
		t.Fatal("user not parsed")
	}
	if data.User.ID != 42 || data.User.FirstName != "Bob" || data.User.LastName != "Smith" {
		t.Fatalf("unexpected user: %+v", data.User)
	}
	if data.AuthDate != now.Unix()-100 {
		t.Fatalf("unexpected auth_date: %d", data.AuthDate)
	}
}

func TestVerifyInitData_TamperedHash(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	payload := initDataPayload(t, now, 100, `{"id":42,"first_name":"Bob"}`)
	values, _ := url.ParseQuery(payload)
	values.Set("hash", "0000000000000000000000000000000000000000000000000000000000000000")

	_, err := s.VerifyInitData(values.Encode())
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyInitData_MissingHash(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	_, err := s.VerifyInitData("auth_date=123&query_id=abc")
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyInitData_Stale(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	_, err := s.VerifyInitData(initDataPayload(t, now, 86401, `{"id":42,"first_name":"Bob"}`))
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyInitData_BadUserJSON(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService(testBotToken, now)

	// 签名正确但 user 字段不是合法 JSON，整体按无效处理
	_, err := s.VerifyInitData(initDataPayload(t, now, 100, `{"id":`))
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestVerifyInitData_NoBotToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s := newTestTelegramService("", now)

	_, err := s.VerifyInitData(initDataPayload(t, now, 100, ""))
	if !errors.Is(err, util.ErrTelegramNotConfigured) {
		t.Fatalf("want ErrTelegramNotConfigured, got %v", err)
	}
}

func TestBuildCheckString_SortedKeys(t *testing.T) {
	got := buildCheckString(map[string]string{
		"b": "2",
		"a": "1",
		"c": "3",
	})
	want := "a=1\nb=2\nc=3"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
