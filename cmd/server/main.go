// Package main runs the venue booking HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hayumabar/backend/config"
	"github.com/hayumabar/backend/internal/auth"
	"github.com/hayumabar/backend/internal/bookings"
	"github.com/hayumabar/backend/internal/emaillog"
	"github.com/hayumabar/backend/internal/fields"
	"github.com/hayumabar/backend/internal/middleware"
	"github.com/hayumabar/backend/internal/models"
	"github.com/hayumabar/backend/internal/venues"
	"github.com/hayumabar/backend/pkg/database"
	"github.com/hayumabar/backend/pkg/queue"
	"github.com/hayumabar/backend/pkg/redis"
	"github.com/hayumabar/backend/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	emailLogRepo := emaillog.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, emailLogRepo, jwtService, jobQueue, cfg.OTP.ExpireMinutes, logger)

	// Venues
	venueRepo := venues.NewRepository(pool)
	venueHandler := venues.NewHandler(venueRepo)

	// Fields
	fieldRepo := fields.NewRepository(pool)
	fieldHandler := fields.NewHandler(fieldRepo, venueRepo)

	// Bookings
	bookingRepo := bookings.NewRepository(pool)
	bookingHandler := bookings.NewHandler(bookingRepo, fieldRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	v1 := router.Group("/api/v1")

	// Public
	v1.POST("/register", authHandler.Register)
	v1.POST("/login", authHandler.Login)
	v1.POST("/otp-verification", authHandler.VerifyOtp)

	// Protected API (JWT required)
	api := v1.Group("")
	api.Use(middleware.JWT(jwtService))
	{
		// Venues (writes owner-only; ownership checked in handlers)
		api.GET("/venues", venueHandler.List)
		api.POST("/venues", middleware.RequireRole(models.RoleOwner), venueHandler.Create)
		api.GET("/venues/:id", venueHandler.GetByID)
		api.PUT("/venues/:id", middleware.RequireRole(models.RoleOwner), venueHandler.Update)
		api.DELETE("/venues/:id", middleware.RequireRole(models.RoleOwner), venueHandler.Delete)

		// Fields (nested under venue)
		api.GET("/venues/:id/fields", fieldHandler.List)
		api.POST("/venues/:id/fields", middleware.RequireRole(models.RoleOwner), fieldHandler.Create)
		api.GET("/venues/:id/fields/:fieldId", fieldHandler.GetByID)
		api.PUT("/venues/:id/fields/:fieldId", middleware.RequireRole(models.RoleOwner), fieldHandler.Update)
		api.DELETE("/venues/:id/fields/:fieldId", middleware.RequireRole(models.RoleOwner), fieldHandler.Delete)

		// Bookings
		api.POST("/venues/:id/bookings", middleware.RequireRole(models.RoleUser), bookingHandler.Create)
		api.GET("/bookings", middleware.RequireRole(models.RoleUser), bookingHandler.List)
		api.GET("/bookings/:id", middleware.RequireRole(models.RoleUser), bookingHandler.GetByID)
		api.PUT("/bookings/:id", middleware.RequireRole(models.RoleUser), bookingHandler.Update)
		api.DELETE("/bookings/:id", middleware.RequireRole(models.RoleUser), bookingHandler.Delete)
		api.PUT("/bookings/:id/join", middleware.RequireRole(models.RoleUser), bookingHandler.Join)
		api.PUT("/bookings/:id/unjoin", middleware.RequireRole(models.RoleUser), bookingHandler.Unjoin)
		api.GET("/schedules", middleware.RequireRole(models.RoleUser), bookingHandler.Schedules)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
