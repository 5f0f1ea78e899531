package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/livreacesso/livre-acesso-backend/config"
	"github.com/livreacesso/livre-acesso-backend/internal/app/controller"
	"github.com/livreacesso/livre-acesso-backend/internal/app/repository"
	"github.com/livreacesso/livre-acesso-backend/internal/app/service"
	"github.com/livreacesso/livre-acesso-backend/internal/cache"
	"github.com/livreacesso/livre-acesso-backend/internal/db"
	"github.com/livreacesso/livre-acesso-backend/internal/middleware"
	"github.com/livreacesso/livre-acesso-backend/internal/router"
	"github.com/livreacesso/livre-acesso-backend/internal/scheduler"
	"github.com/livreacesso/livre-acesso-backend/internal/storage"
	"github.com/livreacesso/livre-acesso-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Livre Acesso Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed the canonical feature registry
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional; the feature cache degrades to pass-through without it
	if err := cache.Init(&cfg.Redis); err != nil {
		logger.Warn("Failed to connect to Redis, feature cache disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Select the photo storage backend
	var photoStore storage.PhotoStore
	if cfg.Storage.Driver == "s3" {
		photoStore = storage.NewS3Storage(
			cfg.Storage.Region,
			cfg.Storage.Bucket,
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.PublicBaseURL,
		)
	} else {
		photoStore = storage.NewLocalStorage(cfg.Storage.UploadDir)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	featureRepo := repository.NewFeatureRepository(db.GetDB())
	placeRepo := repository.NewPlaceRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	photoRepo := repository.NewPhotoRepository(db.GetDB())
	feedbackRepo := repository.NewFeedbackRepository(db.GetDB())

	// Initialize services
	featureCache := cache.NewFeatureCache(cache.GetClient(), cfg.Redis.TTL)
	featureService := service.NewFeatureService(featureRepo, featureCache)
	photoService := service.NewPhotoService(photoStore)
	placeService := service.NewPlaceService(placeRepo, featureService, photoService)
	reviewService := service.NewReviewService(reviewRepo, placeService)
	favoriteService := service.NewFavoriteService(favoriteRepo, placeService)
	userService := service.NewUserService(userRepo, placeRepo, reviewRepo, favoriteRepo)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// Initialize controllers
	placeController := controller.NewPlaceController(placeService)
	reviewController := controller.NewReviewController(reviewService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	featureController := controller.NewFeatureController(featureService)
	userController := controller.NewUserController(userService)
	feedbackController := controller.NewFeedbackController(feedbackService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Orphan photo sweeper (local storage only)
	if cfg.Sweeper.Enabled && cfg.Storage.Driver == "local" {
		sweeper := scheduler.NewPhotoSweeper(photoRepo, cfg)
		if err := sweeper.Start(); err != nil {
			logger.Warn("Failed to start photo sweeper", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer sweeper.Stop()
		}
	}

	// Setup router
	r := router.NewRouter(
		placeController,
		reviewController,
		favoriteController,
		featureController,
		userController,
		feedbackController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
