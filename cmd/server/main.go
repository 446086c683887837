package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/config"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/handler"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/middleware"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	envFile := config.GetEnvOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("Warning: %s not found, using environment variables", envFile)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	zapLogger.Info("Starting management-kontraktor service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Project{},
		&entity.WorkItem{},
		&entity.ProgressRecord{},
		&entity.DimensionReport{},
		&entity.MethodReport{},
		&entity.CompactionReport{},
		&entity.LabReport{},
		&entity.TrialMixReport{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	handlers := handler.NewHandlers(services, cfg)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	readTimeout := cfg.Server.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 15 * time.Second
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// Streamed through the storage service so photos resolve on either the
	// local-disk or the object-store backend.
	r.GET("/uploads/:filename", h.File.Download)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/profile/:username", h.Auth.GetProfile)
			authorized.PUT("/profile/:username", h.Auth.UpdateProfile)

			projects := authorized.Group("/projects")
			{
				projects.GET("", h.Project.List)
				projects.POST("", h.Project.Create)
				projects.GET("/:id", h.Project.Get)
				projects.PUT("/:id", h.Project.Update)
				projects.DELETE("/:id", h.Project.Delete)
				projects.GET("/:id/work-items", h.Project.ListWorkItems)
				projects.DELETE("/:id/work-items/:itemId", h.Project.DeleteWorkItem)
				projects.GET("/:id/progress-summary", h.Progress.Summary)
				projects.GET("/:id/progress-export", h.Project.ExportProgress)
			}

			progress := authorized.Group("/project-progress")
			{
				progress.GET("", h.Progress.List)
				progress.POST("", h.Progress.Create)
				progress.PUT("/:id", h.Progress.Update)
				progress.DELETE("/:id", h.Progress.Delete)
			}

			dimensions := authorized.Group("/dimension-reports")
			{
				dimensions.GET("", h.Dimension.List)
				dimensions.POST("", h.Dimension.Submit)
				dimensions.PUT("/:id", h.Dimension.Update)
				dimensions.DELETE("/:id", h.Dimension.Delete)
			}

			methods := authorized.Group("/method-reports")
			{
				methods.GET("", h.Method.List)
				methods.POST("", h.Method.Submit)
				methods.PUT("/:id/review", middleware.RequireRole(entity.UserRoleKonsultan), h.Method.Review)
			}

			compaction := authorized.Group("/compaction-reports")
			{
				compaction.GET("", h.Report.ListCompaction)
				compaction.POST("", h.Report.SubmitCompaction)
				compaction.DELETE("/:id", h.Report.DeleteCompaction)
			}

			lab := authorized.Group("/lab-reports")
			{
				lab.GET("", h.Report.ListLab)
				lab.POST("", h.Report.SubmitLab)
				lab.DELETE("/:id", h.Report.DeleteLab)
			}

			trialMix := authorized.Group("/trial-mix-reports")
			{
				trialMix.GET("", h.Report.ListTrialMix)
				trialMix.POST("", h.Report.SubmitTrialMix)
				trialMix.DELETE("/:id", h.Report.DeleteTrialMix)
			}
		}
	}
}
