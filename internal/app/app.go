package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"astro_class_backend/internal/config"
	"astro_class_backend/internal/controller"
	"astro_class_backend/internal/repository"
	"astro_class_backend/internal/service"
	"astro_class_backend/pkg/logger"
	"astro_class_backend/pkg/monitoring"
	"astro_class_backend/pkg/notion"
	"astro_class_backend/pkg/security"
	"astro_class_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	Notion *notion.Client
}

type services struct {
	auth   *service.AuthService
	report *service.ReportService
	file   *service.FileService
}

type controllers struct {
	auth   *controller.AuthController
	report *controller.ReportController
	file   *controller.FileController
	health *controller.HealthController
}

func (a *App) initServices(client *notion.Client, cfg *config.Config) *services {
	studentRepo := repository.NewStudentRepository(client, cfg.Notion.DatabaseID)

	return &services{
		auth:   service.NewAuthService(studentRepo),
		report: service.NewReportService(studentRepo),
		file:   service.NewFileService(cfg, client, studentRepo),
	}
}

func (a *App) initControllers(s *services, client *notion.Client) *controllers {
	return &controllers{
		auth:   controller.NewAuthController(s.auth),
		report: controller.NewReportController(s.report),
		file:   controller.NewFileController(s.file),
		health: controller.NewHealthController(client),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("logger initialized")

	gin.SetMode(ginMode(cfg.Server.Mode))

	client := notion.NewClient(&cfg.Notion)

	app := &App{
		Config: cfg,
		Notion: client,
	}

	services := app.initServices(client, cfg)
	controllers := app.initControllers(services, client)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("astro-class-dashboard", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers)

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
