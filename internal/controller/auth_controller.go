package controller

import (
	"errors"
	"strconv"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/service"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService     *service.AuthService
	TelegramService *service.TelegramService
}

func NewAuthController(authService *service.AuthService, telegramService *service.TelegramService) *AuthController {
	return &AuthController{
		AuthService:     authService,
		TelegramService: telegramService,
	}
}

// RegisterRequest 注册请求
// swagger:model RegisterRequest
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 令牌响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TelegramAuthRequest Login Widget 回调数据
type TelegramAuthRequest struct {
	ID        int64  `json:"id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
	AuthDate  int64  `json:"auth_date" binding:"required"`
	Hash      string `json:"hash" binding:"required"`
}

// fields 转成参与签名校验的键值对，未提供的可选字段不参与
func (r TelegramAuthRequest) fields() map[string]string {
	m := map[string]string{
		"id":         strconv.FormatInt(r.ID, 10),
		"first_name": r.FirstName,
		"auth_date":  strconv.FormatInt(r.AuthDate, 10),
		"hash":       r.Hash,
	}
	if r.LastName != "" {
		m["last_name"] = r.LastName
	}
	if r.Username != "" {
		m["username"] = r.Username
	}
	if r.PhotoURL != "" {
		m["photo_url"] = r.PhotoURL
	}
	return m
}

// TelegramMiniAppRequest Mini App 登录请求
type TelegramMiniAppRequest struct {
	InitData string `json:"initData" binding:"required"`
}

// Register godoc
// @Summary 注册新用户
// @Description 使用邮箱和密码注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "注册信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.AuthService.Register(req.Email, req.Name, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "Email already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	})
}

// Login godoc
// @Summary 密码登录
// @Description 邮箱+密码登录，返回访问令牌。账号不存在和密码错误返回同样的 401
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=TokenResponse}
// @Failure 401 {object} util.Response "凭证无效"
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// GetMe godoc
// @Summary 当前用户信息
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/me [get]
func (c *AuthController) GetMe(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, user)
}

// TelegramLogin godoc
// @Summary Telegram Login Widget 登录
// @Description 校验 Login Widget 回调签名，通过后按 telegram_id 查找或创建用户并签发 36 小时令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body TelegramAuthRequest true "Login Widget 数据"
// @Success 200 {object} util.Response{data=TokenResponse}
// @Failure 401 {object} util.Response "签名无效或已过期"
// @Router /api/auth/telegram [post]
func (c *AuthController) TelegramLogin(ctx *gin.Context) {
	var req TelegramAuthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ok, err := c.TelegramService.VerifyLoginWidget(req.fields())
	if err != nil {
		// bot token 未配置属于部署错误
		util.LogInternalError(ctx, err)
		return
	}
	if !ok {
		util.Unauthorized(ctx)
		return
	}

	user, err := c.TelegramService.FindOrCreateUser(req.ID, req.FirstName, req.LastName)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	token, err := c.AuthService.IssueTelegramToken(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// TelegramMiniAppLogin godoc
// @Summary Telegram Mini App 登录
// @Description 校验 Mini App initData 签名并解析其中的用户，之后流程同 Login Widget
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body TelegramMiniAppRequest true "initData"
// @Success 200 {object} util.Response{data=TokenResponse}
// @Failure 401 {object} util.Response "initData 无效或已过期"
// @Router /api/auth/telegram-miniapp [post]
func (c *AuthController) TelegramMiniAppLogin(ctx *gin.Context) {
	var req TelegramMiniAppRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, err := c.TelegramService.VerifyInitData(req.InitData)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if data.User == nil || data.User.ID == 0 {
		util.BadRequest(ctx, "User data not found in initData")
		return
	}

	user, err := c.TelegramService.FindOrCreateUser(data.User.ID, data.User.FirstName, data.User.LastName)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	token, err := c.AuthService.IssueTelegramToken(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
