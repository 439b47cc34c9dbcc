package middleware

import (
	"strings"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/config"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 解析 Bearer 令牌并把声明放进请求上下文。
// 令牌缺失、签名不符、已过期一律 401，不区分原因。
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}
