package app

import (
	"github.com/ToneesSero/goal-tracker-focusloop/docs"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/config"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/middleware"
	"github.com/ToneesSero/goal-tracker-focusloop/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	// 公共路由（无需登录）
	public := router.Group("/api/auth")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.POST("/telegram", c.auth.TelegramLogin)
		public.POST("/telegram-miniapp", c.auth.TelegramMiniAppLogin)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/auth/me", c.auth.GetMe)

		authGroup.GET("/goals", c.goal.GetGoals)
		authGroup.POST("/goals", c.goal.CreateGoal)
		authGroup.GET("/goals/:id", c.goal.GetGoal)
		authGroup.PUT("/goals/:id", c.goal.UpdateGoal)
		authGroup.DELETE("/goals/:id", c.goal.DeleteGoal)
		authGroup.POST("/goals/:id/progress", c.goal.UpdateProgress)
		authGroup.POST("/goals/:id/complete", c.goal.CompleteGoal)
		authGroup.GET("/goals/:id/history", c.goal.GetGoalHistory)

		authGroup.GET("/stats", c.stats.GetUserStats)
	}
}
