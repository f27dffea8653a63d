package controller

import (
	"net/http"

	"astro_class_backend/internal/util"
	"astro_class_backend/pkg/notion"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Notion *notion.Client
}

func NewHealthController(client *notion.Client) *HealthController {
	return &HealthController{Notion: client}
}

// HealthCheck godoc
// @Summary 상태 확인
// @Description 서비스와 노션 API 연결 상태를 확인한다
// @Tags 시스템
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	if err := c.Notion.Ping(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Notion unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"notion": "up",
		},
	})
}
