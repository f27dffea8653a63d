package controller

import (
	"astro_class_backend/internal/service"
	"astro_class_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// GetReport godoc
// @Summary 학업 현황 조회
// @Description 학생 페이지 속성을 출석/과제/실습/기말고사 리포트로 정규화해 돌려준다
// @Tags 현황
// @Produce json
// @Param studentId query string true "학생 페이지 ID"
// @Success 200 {object} util.Response{data=model.AcademicReport}
// @Failure 400 {object} util.Response "학생 ID 누락"
// @Failure 500 {object} util.Response
// @Router /data [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	studentID := ctx.Query("studentId")
	if studentID == "" {
		util.BadRequest(ctx, util.MsgStudentIDRequired)
		return
	}

	report, err := c.ReportService.GetReport(ctx.Request.Context(), studentID)
	if err != nil {
		util.LogDependencyError(ctx, err, util.MsgDataFetchError)
		return
	}

	util.Success(ctx, report)
}
