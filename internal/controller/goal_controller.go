package controller

import (
	"errors"

	"github.com/ToneesSero/goal-tracker-focusloop/internal/repository"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/service"
	"github.com/ToneesSero/goal-tracker-focusloop/internal/util"

	"github.com/gin-gonic/gin"
)

// GoalController 处理目标相关的 API 请求
type GoalController struct {
	GoalService *service.GoalService
}

func NewGoalController(goalService *service.GoalService) *GoalController {
	return &GoalController{GoalService: goalService}
}

// GetGoals godoc
// @Summary 获取目标列表
// @Description 获取当前用户的目标，支持状态/颜色筛选和排序
// @Tags 目标
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "状态筛选" Enums(completed,active,overdue)
// @Param color query string false "颜色筛选（#RRGGBB）"
// @Param sort query string false "排序" Enums(name_asc,progress_desc,deadline_desc,deadline_asc)
// @Success 200 {object} util.Response
// @Router /api/goals [get]
func (c *GoalController) GetGoals(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	filter := repository.GoalFilter{
		Status: ctx.Query("status"),
		Color:  ctx.Query("color"),
		Sort:   ctx.Query("sort"),
	}

	goals, err := c.GoalService.GetUserGoals(user.Subject, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, goals)
}

// CreateGoal godoc
// @Summary 创建目标
// @Tags 目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateGoalRequest true "目标信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response "参数错误或截止日期在过去"
// @Router /api/goals [post]
func (c *GoalController) CreateGoal(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.CreateGoal(user.Subject, req)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	util.Created(ctx, goal)
}

// GetGoal godoc
// @Summary 获取单个目标
// @Tags 目标
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{id} [get]
func (c *GoalController) GetGoal(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	goal, err := c.GoalService.GetGoal(user.Subject, ctx.Param("id"))
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// UpdateGoal godoc
// @Summary 更新目标
// @Description 部分更新目标信息，未提供的字段保持不变
// @Tags 目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Param body body service.UpdateGoalRequest true "更新信息"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{id} [put]
func (c *GoalController) UpdateGoal(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.UpdateGoal(user.Subject, ctx.Param("id"), req)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// DeleteGoal godoc
// @Summary 删除目标
// @Description 删除目标并级联删除其进度流水
// @Tags 目标
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/goals/{id} [delete]
func (c *GoalController) DeleteGoal(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.GoalService.DeleteGoal(user.Subject, ctx.Param("id")); err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	util.NoContent(ctx)
}

// UpdateProgress godoc
// @Summary 记录进度增量
// @Description 追加一条进度流水并更新目标当前值，进度下限为 0；达到目标值时自动标记完成
// @Tags 目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Param body body service.ProgressRequest true "增量与备注"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{id}/progress [post]
func (c *GoalController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	goal, err := c.GoalService.ApplyProgress(user.Subject, ctx.Param("id"), req)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// CompleteGoal godoc
// @Summary 标记目标完成
// @Description 将当前值直接设为目标值并打上完成时间
// @Tags 目标
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/goals/{id}/complete [post]
func (c *GoalController) CompleteGoal(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	goal, err := c.GoalService.ForceComplete(user.Subject, ctx.Param("id"))
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	util.Success(ctx, goal)
}

// GetGoalHistory godoc
// @Summary 获取目标进度轨迹
// @Description 回放流水得到逐条进度和完成百分比，只读不改动数据
// @Tags 目标
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "目标ID"
// @Success 200 {object} util.Response{data=service.GoalHistoryView}
// @Failure 404 {object} util.Response
// @Router /api/goals/{id}/history [get]
func (c *GoalController) GetGoalHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.GoalService.GetGoalHistory(user.Subject, ctx.Param("id"))
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

func (c *GoalController) handleGoalError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrGoalNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrDeadlinePast), errors.Is(err, util.ErrInvalidDeadline):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
