package controller

import (
	"strconv"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/service"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// GetUserStats godoc
// @Summary 用户统计
// @Description 完成率、最快完成目标、连续打卡和活跃度序列。period 控制活跃度回看天数（1-365，默认 30）
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param period query int false "活跃度回看天数" default(30) minimum(1) maximum(365)
// @Success 200 {object} util.Response{data=service.UserStats}
// @Failure 400 {object} util.Response
// @Router /api/stats [get]
func (c *StatsController) GetUserStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	period := 30
	if raw := ctx.Query("period"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			util.BadRequest(ctx, "period must be an integer between 1 and 365")
			return
		}
		period = parsed
	}

	stats, err := c.StatsService.GetUserStats(ctx.Request.Context(), user.Subject, period)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}
