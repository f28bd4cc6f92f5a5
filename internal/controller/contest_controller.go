package controller

import (
	"errors"
	"strconv"
	"time"

	"quiz_contest_backend/internal/service"
	"quiz_contest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContestController struct {
	ContestService *service.ContestService
}

func NewContestController(contestService *service.ContestService) *ContestController {
	return &ContestController{ContestService: contestService}
}

// Create godoc
// @Summary 创建比赛（版主）
// @Description 创建比赛，可选生成 6 位邀请码；选中的题目会被锁定对普通用户不可见
// @Tags 比赛
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.ContestReq true "比赛信息"
// @Success 201 {object} util.Response{data=model.Contest}
// @Failure 400 {object} util.Response "时间窗口或标题不合法"
// @Router /api/contests [post]
func (c *ContestController) Create(ctx *gin.Context) {
	var req service.ContestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	contest, err := c.ContestService.Create(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidContest), errors.Is(err, util.ErrInvalidTimeWindow):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrJoinCodeTaken):
			util.Conflict(ctx, "邀请码生成冲突，请重试")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, contest)
}

// Get godoc
// @Summary 比赛详情
// @Tags 比赛
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=model.Contest}
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id} [get]
func (c *ContestController) Get(ctx *gin.Context) {
	contest, err := c.ContestService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, contest)
}

// Update godoc
// @Summary 更新比赛（版主）
// @Description 替换题目集合时旧题解锁、新题锁定
// @Tags 比赛
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Param   body body service.ContestReq true "比赛信息"
// @Success 200 {object} util.Response{data=model.Contest}
// @Failure 400 {object} util.Response "时间窗口不合法"
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id} [put]
func (c *ContestController) Update(ctx *gin.Context) {
	var req service.ContestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	contest, err := c.ContestService.Update(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrContestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidTimeWindow):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, contest)
}

// ExtendRequest 延时请求
type ExtendRequest struct {
	EndTime time.Time `json:"endTime" binding:"required"`
}

// Extend godoc
// @Summary 延长比赛结束时间（版主）
// @Tags 比赛
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Param   body body ExtendRequest true "新的结束时间"
// @Success 200 {object} util.Response{data=model.Contest}
// @Failure 400 {object} util.Response "新结束时间不合法"
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id}/extend [put]
func (c *ContestController) Extend(ctx *gin.Context) {
	var req ExtendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	contest, err := c.ContestService.ExtendEndTime(util.MustParseUint(ctx.Param("id")), req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrContestNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidTimeWindow):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, contest)
}

// Delete godoc
// @Summary 删除比赛（版主）
// @Description 级联删除参与和活动记录，并解锁比赛题目
// @Tags 比赛
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id} [delete]
func (c *ContestController) Delete(ctx *gin.Context) {
	if err := c.ContestService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary 比赛列表
// @Tags 比赛
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/contests [get]
func (c *ContestController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	contests, total, err := c.ContestService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: contests, Total: total, Page: page, Limit: limit})
}

// ListActive godoc
// @Summary 进行中的比赛
// @Tags 比赛
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Contest}
// @Router /api/contests/active [get]
func (c *ContestController) ListActive(ctx *gin.Context) {
	contests, err := c.ContestService.ListActive()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, contests)
}
