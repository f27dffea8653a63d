package app

import (
	"astro_class_backend/docs"
	"astro_class_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 최초 접속 플로우: 이름 조회 → 비밀번호 설정 또는 로그인
		api.GET("/auth", c.auth.Lookup)
		api.POST("/auth", c.auth.Login)
		api.PATCH("/auth", c.auth.SetPassword)

		// 학업 현황
		api.GET("/data", c.report.GetReport)

		// 과제 제출: 스테이징 후 연결
		api.POST("/files", c.file.StageFile)
		api.PATCH("/files", c.file.AttachFile)
	}
}
