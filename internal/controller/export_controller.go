package controller

import (
	"errors"
	"net/http"

	"quiz_contest_backend/internal/service"
	"quiz_contest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Export godoc
// @Summary 导出比赛成绩（版主）
// @Description 下载含排行榜、逐题分析和汇总的 Excel 工作簿
// @Tags 导出
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {file} file "xlsx 文件"
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id}/export [get]
func (c *ExportController) Export(ctx *gin.Context) {
	f, filename, err := c.ExportService.ExportContestResults(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	defer f.Close()

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Header("Content-Type", xlsxContentType)
	ctx.Status(http.StatusOK)
	if err := f.Write(ctx.Writer); err != nil {
		util.LogInternalError(ctx, err)
	}
}

// Archive godoc
// @Summary 归档比赛成绩到对象存储（版主）
// @Tags 导出
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "比赛 ID"
// @Success 200 {object} util.Response{data=object} "归档文件 URL"
// @Failure 404 {object} util.Response "比赛不存在"
// @Router /api/contests/{id}/export/archive [post]
func (c *ExportController) Archive(ctx *gin.Context) {
	url, err := c.ExportService.ArchiveContestResults(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
