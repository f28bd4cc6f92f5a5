package controller

import (
	"errors"
	"strconv"

	"quiz_contest_backend/internal/model"
	"quiz_contest_backend/internal/service"
	"quiz_contest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// Create godoc
// @Summary 创建题目（版主）
// @Description 创建一道选择题，必须恰好 4 个选项且正确答案与选项逐字匹配
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.QuestionReq true "题目内容"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "题目校验失败"
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuestion) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, q)
}

// BulkCreateRequest 批量导入请求
type BulkCreateRequest struct {
	Questions []service.QuestionReq `json:"questions" binding:"required,min=1"`
}

// BulkCreate godoc
// @Summary 批量创建题目（版主）
// @Description 整批校验，任何一道不合法则全部不入库
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body BulkCreateRequest true "题目列表"
// @Success 201 {object} util.Response{data=object} "创建数量"
// @Failure 400 {object} util.Response "题目校验失败"
// @Router /api/questions/bulk [post]
func (c *QuestionController) BulkCreate(ctx *gin.Context) {
	var req BulkCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	qs, err := c.QuestionService.BulkCreate(req.Questions)
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuestion) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"created": len(qs)})
}

// Import godoc
// @Summary 从 Excel 批量导入题目（版主）
// @Tags 题库
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "题目表格 (.xlsx)"
// @Success 201 {object} util.Response{data=object} "创建数量"
// @Failure 400 {object} util.Response "文件或题目不合法"
// @Router /api/questions/import [post]
func (c *QuestionController) Import(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少导入文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	reqs, err := service.ParseQuestionsExcel(file)
	if err != nil {
		util.BadRequest(ctx, "无法解析表格: "+err.Error())
		return
	}
	if len(reqs) == 0 {
		util.BadRequest(ctx, "表格中没有题目")
		return
	}

	qs, err := c.QuestionService.BulkCreate(reqs)
	if err != nil {
		if errors.Is(err, util.ErrInvalidQuestion) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"created": len(qs)})
}

// Get godoc
// @Summary 题目详情
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目 ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	q, err := c.QuestionService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// Update godoc
// @Summary 更新题目（版主）
// @Tags 题库
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目 ID"
// @Param   body body service.QuestionReq true "题目内容"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "题目校验失败"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.QuestionService.Update(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidQuestion):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, q)
}

// Delete godoc
// @Summary 删除题目（版主）
// @Description 同步清理比赛题目关联
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "题目 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	if err := c.QuestionService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary 题目列表
// @Description 普通用户只能看到未锁定（未被比赛占用）的题目
// @Tags 题库
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(20)
// @Param   category query string false "分类筛选"
// @Param   difficulty query string false "难度筛选"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	claims := util.GetUserFromContext(ctx)
	visibleOnly := claims == nil || claims.Role == model.RoleUser

	qs, total, err := c.QuestionService.List(page, limit, ctx.Query("category"), ctx.Query("difficulty"), visibleOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: qs, Total: total, Page: page, Limit: limit})
}
