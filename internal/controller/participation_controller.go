package controller

import (
	"errors"

	"quiz_contest_backend/internal/service"
	"quiz_contest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ParticipationController struct {
	ParticipationService *service.ParticipationService
}

func NewParticipationController(participationService *service.ParticipationService) *ParticipationController {
	return &ParticipationController{ParticipationService: participationService}
}

// Join godoc
// @Summary 加入比赛
// @Description 比赛必须在进行窗口内；重复加入返回已有参与记录
// @Tags 参与
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=model.Participation} "已加入过，返回已有记录"
// @Success 201 {object} util.Response{data=model.Participation} "加入成功"
// @Failure 400 {object} util.Response "比赛未开始或已结束"
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id}/join [post]
func (c *ParticipationController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	contestID := util.MustParseUint(ctx.Param("id"))

	p, err := c.ParticipationService.Join(claims.UserID, contestID)
	c.respondJoin(ctx, p, err)
}

// JoinByCodeRequest 邀请码加入请求
type JoinByCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// JoinByCode godoc
// @Summary 通过邀请码加入比赛
// @Tags 参与
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body JoinByCodeRequest true "6 位邀请码"
// @Success 200 {object} util.Response{data=model.Participation} "已加入过，返回已有记录"
// @Success 201 {object} util.Response{data=model.Participation} "加入成功"
// @Failure 400 {object} util.Response "比赛未开始或已结束"
// @Failure 404 {object} util.Response "邀请码无效"
// @Router /api/contests/join [post]
func (c *ParticipationController) JoinByCode(ctx *gin.Context) {
	var req JoinByCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	p, err := c.ParticipationService.JoinByCode(claims.UserID, req.Code)
	c.respondJoin(ctx, p, err)
}

func (c *ParticipationController) respondJoin(ctx *gin.Context, p interface{}, err error) {
	switch {
	case err == nil:
		util.Created(ctx, p)
	case errors.Is(err, util.ErrAlreadyJoined):
		util.Success(ctx, p)
	case errors.Is(err, util.ErrContestNotFound), errors.Is(err, util.ErrInvalidJoinCode):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrContestNotStarted), errors.Is(err, util.ErrContestEnded):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Get godoc
// @Summary 我的参与记录
// @Tags 参与
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=model.Participation}
// @Failure 404 {object} util.Response "未参与该比赛"
// @Router /api/contests/{id}/participation [get]
func (c *ParticipationController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	p, err := c.ParticipationService.Get(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrParticipationNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, p)
}

// ListByContest godoc
// @Summary 比赛参与者列表（版主）
// @Tags 参与
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=[]model.Participation}
// @Router /api/contests/{id}/participants [get]
func (c *ParticipationController) ListByContest(ctx *gin.Context) {
	ps, err := c.ParticipationService.ListByContest(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, ps)
}
