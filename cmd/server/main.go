package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/tapovan/attendance-api/api/swagger"
	"github.com/tapovan/attendance-api/internal/handler"
	"github.com/tapovan/attendance-api/internal/middleware"
	"github.com/tapovan/attendance-api/internal/repository"
	"github.com/tapovan/attendance-api/internal/service"
	"github.com/tapovan/attendance-api/pkg/cache"
	"github.com/tapovan/attendance-api/pkg/config"
	"github.com/tapovan/attendance-api/pkg/database"
	"github.com/tapovan/attendance-api/pkg/logger"
	corsmiddleware "github.com/tapovan/attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tapovan/attendance-api/pkg/middleware/requestid"
)

// @title Attendance API
// @version 1.0.0
// @description Classroom attendance recording and reporting service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it, writes skip invalidation and reads skip
	// the cache, both of which degrade gracefully.
	var cacheRepo service.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, cache disabled", zap.Error(err))
	} else {
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close()
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.ReadCacheEnabled)

	attendanceRepo := repository.NewAttendanceRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	directorySvc := service.NewDirectoryService(cfg.Directory, metricsSvc, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, directorySvc, cacheSvc, metricsSvc, logr)
	holidaySvc := service.NewHolidayService(holidayRepo, logr)
	exportSvc := service.NewExportService()

	validate := validator.New()
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc, validate)
	absenceHandler := handler.NewAbsenceHandler(attendanceSvc, exportSvc, validate)
	holidayHandler := handler.NewHolidayHandler(holidaySvc, validate)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.POST("/attendance", attendanceHandler.Mark)
	api.GET("/attendance", attendanceHandler.Monthly)
	api.POST("/update-attendance", attendanceHandler.Update)
	api.GET("/absent-students", absenceHandler.List)
	api.POST("/absent-students", absenceHandler.UpdateReason)
	if cfg.Exports.Enabled {
		api.GET("/absent-students/export", absenceHandler.Export)
	}
	api.GET("/holiday", holidayHandler.List)
	api.POST("/holiday/add", holidayHandler.Create)
	api.DELETE("/holiday/delete", holidayHandler.Delete)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
