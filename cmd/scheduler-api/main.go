package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/deptsched/scheduler-api/api/swagger"
	"github.com/deptsched/scheduler-api/internal/handler"
	"github.com/deptsched/scheduler-api/internal/middleware"
	"github.com/deptsched/scheduler-api/internal/repository"
	"github.com/deptsched/scheduler-api/internal/service"
	"github.com/deptsched/scheduler-api/pkg/cache"
	"github.com/deptsched/scheduler-api/pkg/config"
	"github.com/deptsched/scheduler-api/pkg/database"
	"github.com/deptsched/scheduler-api/pkg/jobs"
	"github.com/deptsched/scheduler-api/pkg/logger"
	corsmiddleware "github.com/deptsched/scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/deptsched/scheduler-api/pkg/middleware/requestid"
	"github.com/deptsched/scheduler-api/pkg/storage"
)

// @title Department Scheduler API
// @version 1.0.0
// @description Course scheduling service: catalog, faculty, rooms, placements, conflicts, and merging
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

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	scheduleRepo := repository.NewScheduleRepository(cfg.Schedule.DefaultAnnualLoad)

	var archiveRepo *repository.ArchiveRepository
	if cfg.Archive.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck
		archiveRepo = repository.NewArchiveRepository(db)
	}

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
		}
	}

	courseSvc := service.NewCourseService(scheduleRepo, validate, logr)
	facultySvc := service.NewFacultyService(scheduleRepo, validate, logr)
	roomSvc := service.NewRoomService(scheduleRepo, validate, logr)
	slotSvc := service.NewTimeSlotService(scheduleRepo, validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, validate, logr)
	conflictSvc := service.NewConflictService(scheduleRepo, cacheSvc, validate, logr, cfg.Cache.TTL)
	workloadSvc := service.NewWorkloadService(scheduleRepo, cacheSvc, logr, cfg.Cache.TTL)
	mergeSvc := service.NewMergeService(scheduleRepo, validate, logr, service.MergeConfig{PreviewTTL: cfg.Merge.PreviewTTL})
	var archiveStore service.ArchiveStore
	if archiveRepo != nil {
		archiveStore = archiveRepo
	}
	documentSvc := service.NewDocumentService(scheduleRepo, archiveStore, metricsSvc, validate, logr, cfg.Schedule.DefaultAnnualLoad)
	authSvc := service.NewAuthService(cfg.Auth, validate, logr)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportStore, err := storage.NewLocalStorage(cfg.Export.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Export.SignedURLSecret, cfg.Export.ResultTTL)
		exportSvc = service.NewExportService(scheduleRepo, exportStore, signer, service.ExportConfig{
			APIPrefix:  cfg.APIPrefix,
			ResultTTL:  cfg.Export.ResultTTL,
			MaxRetries: cfg.Export.Retries,
		}, logr)
		exportQueue := jobs.NewQueue("document-export", exportSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Export.Workers,
			MaxRetries: cfg.Export.Retries,
			Logger:     logr,
		})
		queueCtx, cancelQueue := context.WithCancel(context.Background())
		defer cancelQueue()
		exportQueue.Start(queueCtx)
		defer exportQueue.Stop()
		exportSvc.UseQueue(exportQueue)
		exportSvc.StartCleanup(queueCtx, cfg.Export.CleanupInterval)
	}

	courseHandler := handler.NewCourseHandler(courseSvc)
	facultyHandler := handler.NewFacultyHandler(facultySvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	slotHandler := handler.NewTimeSlotHandler(slotSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	conflictHandler := handler.NewConflictHandler(conflictSvc, workloadSvc)
	documentHandler := handler.NewDocumentHandler(documentSvc)
	mergeHandler := handler.NewMergeHandler(mergeSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	var exportHandler *handler.ExportHandler
	if exportSvc != nil {
		exportHandler = handler.NewExportHandler(exportSvc)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc, cfg.Auth.Enabled))

	protected.GET("/courses", courseHandler.List)
	protected.POST("/courses", courseHandler.Create)
	protected.GET("/courses/:id", courseHandler.Get)
	protected.PUT("/courses/:id", courseHandler.Update)
	protected.DELETE("/courses/:id", courseHandler.Delete)
	protected.GET("/courses/:id/next-section", func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "courseId", Value: c.Param("id")})
		scheduleHandler.NextSection(c)
	})

	protected.GET("/faculty", facultyHandler.List)
	protected.POST("/faculty", facultyHandler.Create)
	protected.GET("/faculty/:id", facultyHandler.Get)
	protected.PUT("/faculty/:id", facultyHandler.Update)
	protected.DELETE("/faculty/:id", facultyHandler.Delete)
	protected.GET("/faculty/:id/workload", conflictHandler.Workload)
	protected.GET("/workloads", conflictHandler.Workloads)

	protected.GET("/rooms", roomHandler.List)
	protected.POST("/rooms", roomHandler.Create)
	protected.GET("/rooms/:id", roomHandler.Get)
	protected.PUT("/rooms/:id", roomHandler.Update)
	protected.DELETE("/rooms/:id", roomHandler.Delete)

	protected.GET("/timeslots", slotHandler.List)
	protected.POST("/timeslots", slotHandler.Create)
	protected.DELETE("/timeslots", slotHandler.Delete)

	protected.GET("/schedule", scheduleHandler.List)
	protected.POST("/schedule", scheduleHandler.Create)
	protected.GET("/schedule/:id", scheduleHandler.Get)
	protected.PUT("/schedule/:id", scheduleHandler.Update)
	protected.DELETE("/schedule/:id", scheduleHandler.Delete)
	protected.POST("/schedule/:id/placements", scheduleHandler.AddPlacement)
	protected.PUT("/schedule/:id/placements", scheduleHandler.SetPlacements)
	protected.DELETE("/schedule/:id/placements", scheduleHandler.ClearPlacements)
	protected.POST("/schedule/:id/professors", scheduleHandler.AddProfessor)
	protected.DELETE("/schedule/:id/professors", scheduleHandler.RemoveProfessor)
	protected.PUT("/schedule/:id/tentative", scheduleHandler.SetTentative)
	protected.POST("/schedule/:id/links", scheduleHandler.Link)
	protected.DELETE("/schedule/:id/links", scheduleHandler.Unlink)

	protected.POST("/conflicts/check", conflictHandler.Check)
	protected.GET("/conflicts/scan", conflictHandler.Scan)

	protected.GET("/document", documentHandler.Export)
	protected.PUT("/document", documentHandler.Import)
	protected.POST("/document/reset", documentHandler.Reset)
	protected.GET("/document/options", documentHandler.GetOptions)
	protected.PUT("/document/options", documentHandler.UpdateOptions)
	protected.GET("/document/notes", documentHandler.GetNotes)
	protected.PUT("/document/notes", documentHandler.UpdateNotes)
	protected.GET("/document/archive", documentHandler.ArchiveList)
	protected.POST("/document/archive", documentHandler.ArchiveSave)
	protected.POST("/document/archive/:id/restore", documentHandler.ArchiveRestore)
	protected.DELETE("/document/archive/:id", documentHandler.ArchiveDelete)

	protected.POST("/merge/preview", mergeHandler.Preview)
	protected.POST("/merge/commit", mergeHandler.Commit)

	if exportHandler != nil {
		protected.POST("/document/export", exportHandler.Create)
		protected.GET("/document/export/:id", exportHandler.Status)
		// Download is gated by the signed token alone.
		api.GET("/export/:token", exportHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
