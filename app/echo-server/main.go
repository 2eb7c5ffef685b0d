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

	httpMetrics "localGuide/app/echo-server/metrics"
	"localGuide/app/echo-server/router"
	"localGuide/business/feed"
	"localGuide/business/interest"
	"localGuide/internal/middleware"
	psqlRepo "localGuide/internal/repository/postgres"
	"localGuide/internal/rest"
	"localGuide/pkg/config"
	"localGuide/pkg/database"
	"localGuide/pkg/logger"
	"localGuide/pkg/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Local Guide API", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()
	httpMetrics.Init()

	// Init repo
	businessRepo := psqlRepo.NewBusinessRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	preferenceRepo := psqlRepo.NewPreferenceRepository(db)
	interestRepo := psqlRepo.NewInterestRepository(db)

	// Init service
	feedService := feed.NewService(businessRepo, reviewRepo, preferenceRepo, feed.Config{
		MaxBucketSize:            cfg.Feed.MaxBucketSize,
		BucketMultiplier:         cfg.Feed.BucketMultiplier,
		FetchTimeout:             cfg.Feed.FetchTimeout,
		RecentReviewWindow:       cfg.Feed.RecentReviewWindow,
		PersonalizationProcedure: cfg.Feed.PersonalizationProcedure,
		BreakerFailureThreshold:  cfg.Feed.BreakerFailureThreshold,
		BreakerCooldown:          cfg.Feed.BreakerCooldown,
	})
	interestService := interest.NewInterestService(interestRepo)

	// Init handler
	businessHandler := rest.NewBusinessHandler(feedService, cfg.Server.RequestTimeout)
	interestHandler := rest.NewInterestHandler(interestService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.TraceMiddleware())
	e.Use(httpMetrics.Middleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStoreWithConfig(
		echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RateLimit.RequestsPerSecond),
			Burst:     cfg.RateLimit.Burst,
			ExpiresIn: 3 * time.Minute,
		},
	)))

	// Auth middleware
	authRequired := middleware.AuthMiddleware(cfg.JWT.SecretKey)
	optionalAuth := middleware.OptionalAuth(cfg.JWT.SecretKey)

	// Setup routes
	router.SetupOpsRoutes(e)
	api := e.Group("/api/v1")
	router.SetupBusinessRoutes(api, businessHandler, optionalAuth)
	router.SetupFeedRoutes(api, businessHandler, authRequired)
	router.SetupInterestRoutes(api, interestHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
