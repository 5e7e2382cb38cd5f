package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/allxdamnxday/memory-grove-splash-sub000/adapters/minimax"
	"github.com/allxdamnxday/memory-grove-splash-sub000/adapters/objectstore"
	"github.com/allxdamnxday/memory-grove-splash-sub000/adapters/postgres"
	"github.com/allxdamnxday/memory-grove-splash-sub000/internal/api"
	"github.com/allxdamnxday/memory-grove-splash-sub000/usecase"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load .env when present; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file loaded", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Persistence
	db, err := postgres.NewClient(logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := objectstore.NewMinioStore(ctx, objectstore.NewConfigFromEnv(), logger)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to object storage", zap.Error(err))
	}

	profileRepo := postgres.NewVoiceProfileRepository(db)
	sampleRepo := postgres.NewTrainingSampleRepository(db)
	jobRepo := postgres.NewSynthesisJobRepository(db)
	memoryRepo := postgres.NewMemoryRepository(db)

	// Voice provider; configuration is validated lazily on first use so
	// the service runs even when voice features are unconfigured.
	provider := minimax.NewClient(minimax.NewConfigFromEnv(), logger)

	// Orchestration services
	cloneService := usecase.NewCloneService(profileRepo, sampleRepo, memoryRepo, store, provider, logger)
	synthesisService := usecase.NewSynthesisService(profileRepo, jobRepo, memoryRepo, store, provider, logger)

	// Initialize API routes
	handler := api.NewHandler(cloneService, synthesisService, profileRepo, memoryRepo, logger)
	api.InitRoutes(e, handler)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Memory Grove voice service started", zap.String("port", port))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
