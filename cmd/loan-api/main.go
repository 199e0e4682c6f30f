package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tay1orr/notebook-loan-api/api/swagger"
	"github.com/tay1orr/notebook-loan-api/internal/handler"
	"github.com/tay1orr/notebook-loan-api/internal/middleware"
	"github.com/tay1orr/notebook-loan-api/internal/models"
	"github.com/tay1orr/notebook-loan-api/internal/repository"
	"github.com/tay1orr/notebook-loan-api/internal/schoolday"
	"github.com/tay1orr/notebook-loan-api/internal/service"
	"github.com/tay1orr/notebook-loan-api/pkg/cache"
	"github.com/tay1orr/notebook-loan-api/pkg/config"
	"github.com/tay1orr/notebook-loan-api/pkg/database"
	"github.com/tay1orr/notebook-loan-api/pkg/logger"
	corsmiddleware "github.com/tay1orr/notebook-loan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tay1orr/notebook-loan-api/pkg/middleware/requestid"
	"github.com/tay1orr/notebook-loan-api/pkg/storage"
)

// @title Notebook Loan API
// @version 0.1.0
// @description School-day calendar and loan due date service
// @BasePath /api/v1
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
	}

	loc := schoolday.DefaultLocation
	if cfg.Calendar.UTCOffsetHours != 9 {
		loc = time.FixedZone(fmt.Sprintf("UTC%+d", cfg.Calendar.UTCOffsetHours), cfg.Calendar.UTCOffsetHours*60*60)
	}

	calendar := schoolday.NewCalendar()
	calc := schoolday.NewCalculator(calendar, schoolday.CalculatorOptions{
		Location:     loc,
		CutoffHour:   cfg.Calendar.CutoffHour,
		CutoffMinute: cfg.Calendar.CutoffMinute,
		HorizonDays:  cfg.Calendar.HorizonDays,
		Logger:       logr,
		OnExhaustion: metricsSvc.RecordCalendarFallback,
	})

	schoolDayRepo := repository.NewSchoolDayRepository(db)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret, cfg.Exports.ImportKeyHash)
	calendarSvc := service.NewCalendarService(schoolDayRepo, calendar, nil, cacheSvc, metricsSvc, logr)
	dueDateSvc := service.NewDueDateService(calc, cacheSvc, logr)
	exportSvc := service.NewExportService(calendarSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := calendarSvc.Warm(ctx); err != nil {
		logr.Sugar().Fatalw("failed to warm calendar", "error", err)
	}

	var backupSvc *service.BackupService
	if cfg.Backups.Enabled {
		files, err := storage.NewLocalStorage(cfg.Backups.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init backup storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Backups.SignedURLSecret, cfg.Backups.SignedURLTTL)
		backupSvc = service.NewBackupService(repository.NewBackupRepository(db), calendarSvc, files, signer, service.BackupServiceConfig{
			MinInterval:   cfg.Backups.MinInterval,
			HistoryLimit:  cfg.Backups.HistoryLimit,
			WorkerRetries: cfg.Backups.WorkerRetries,
		}, logr)
		backupSvc.Start(ctx)
		defer backupSvc.Stop()
	}

	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	dueDateHandler := handler.NewDueDateHandler(dueDateSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if _, err := schoolDayRepo.Count(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	dueDates := api.Group("/due-dates")
	dueDates.GET("/next", dueDateHandler.Next)
	dueDates.GET("/overdue", dueDateHandler.Overdue)

	cal := api.Group("/calendar")
	cal.GET("/days", calendarHandler.ListDays)
	cal.PUT("/days/:date",
		middleware.JWT(tokenSvc),
		middleware.RequireRoles(models.RoleAdmin, models.RoleHelper),
		calendarHandler.UpsertDay)
	cal.POST("/import", middleware.ImportAuth(tokenSvc), calendarHandler.Import)
	if cfg.Exports.Enabled {
		cal.GET("/export", exportHandler.Export)
	}

	if backupSvc != nil {
		backupHandler := handler.NewBackupHandler(backupSvc)
		// Downloads authenticate via the signed token, not a JWT.
		api.GET("/backups/download", backupHandler.Download)
		backups := api.Group("/backups", middleware.JWT(tokenSvc), middleware.RequireRoles(models.RoleAdmin))
		backups.POST("", backupHandler.Trigger)
		backups.GET("", backupHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
