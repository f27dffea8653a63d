// @title 천체사진 강좌 대시보드 API
// @version 1.0
// @description 수강생별 출석, 과제 제출, 실습, 기말고사 현황을 제공하는 백엔드 서버.

// @host localhost:8080
// @BasePath /api

package main

import (
	"log"

	"astro_class_backend/internal/app"
	"astro_class_backend/internal/config"
	"astro_class_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}
