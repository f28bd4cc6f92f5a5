package controller

import (
	"errors"

	"quiz_contest_backend/internal/service"
	"quiz_contest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	ResultService *service.ResultService
}

func NewResultController(resultService *service.ResultService) *ResultController {
	return &ResultController{ResultService: resultService}
}

// SubmitRequest 交卷请求，键为题目 ID，值为选中的选项文本。
type SubmitRequest struct {
	Answers map[uint]string `json:"answers"`
}

// Submit godoc
// @Summary 提交答卷
// @Description 判分并返回逐题结果；空白或 "null" 的答案视为未作答，不计负分
// @Tags 成绩
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Param   body body SubmitRequest true "答案集合"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 404 {object} util.Response "比赛不存在或未参与"
// @Failure 409 {object} util.Response "已经交过卷"
// @Router /api/contests/{id}/submit [post]
func (c *ResultController) Submit(ctx *gin.Context) {
	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.ResultService.Submit(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrContestNotFound), errors.Is(err, util.ErrParticipationNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, "已经交过卷")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// GetResult godoc
// @Summary 我的成绩
// @Tags 成绩
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=service.SubmissionResult}
// @Failure 404 {object} util.Response "比赛不存在或未参与"
// @Router /api/contests/{id}/result [get]
func (c *ResultController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.ResultService.GetResult(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrContestNotFound), errors.Is(err, util.ErrParticipationNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Leaderboard godoc
// @Summary 比赛排行榜
// @Description 开启负分时按最终得分排序，否则按答对题数；并列时先交卷者在前
// @Tags 成绩
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=[]scoring.LeaderboardEntry}
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id}/leaderboard [get]
func (c *ResultController) Leaderboard(ctx *gin.Context) {
	entries, err := c.ResultService.Leaderboard(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entries)
}

// Stats godoc
// @Summary 比赛统计（版主）
// @Tags 成绩
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=scoring.ContestStats}
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id}/stats [get]
func (c *ResultController) Stats(ctx *gin.Context) {
	stats, err := c.ResultService.Stats(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, stats)
}

// RecordViolation godoc
// @Summary 上报监考违规
// @Description 达到阈值后用已有答题记录自动交卷并返回判分结果
// @Tags 成绩
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=object} "违规次数，触发时附带判分结果"
// @Failure 404 {object} util.Response "未参与该比赛"
// @Failure 409 {object} util.Response "已经交过卷"
// @Router /api/contests/{id}/violation [post]
func (c *ResultController) RecordViolation(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	violations, result, err := c.ResultService.RecordViolation(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrParticipationNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, "已经交过卷")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	payload := gin.H{"violations": violations, "autoSubmitted": result != nil}
	if result != nil {
		payload["result"] = result
	}
	util.Success(ctx, payload)
}
