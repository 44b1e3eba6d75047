package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/fincockpit/internal/core/services"
	"github.com/SscSPs/fincockpit/internal/handlers"
	"github.com/SscSPs/fincockpit/internal/middleware"
	"github.com/SscSPs/fincockpit/internal/platform/config"
	"github.com/SscSPs/fincockpit/internal/worker"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title fincockpit API
// @version 1.0
// @description Personal-finance computation engine over a client-held snapshot.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	findingsWorker := worker.New(
		worker.WithLogger(logger),
		worker.WithQueueSize(cfg.WorkerQueueSize),
	)
	defer findingsWorker.Close()
	logger.Info("Findings worker started", slog.Int("queue_size", cfg.WorkerQueueSize))

	serviceContainer := services.NewServiceContainer(findingsWorker)

	rateLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cache *middleware.ResponseCache
	if cfg.ResponseCacheSize > 0 {
		cache = middleware.NewResponseCache(cfg.ResponseCacheSize, cfg.ResponseCacheTTL)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, middleware.CacheHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(rateLimiter))

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, cache)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		findingsWorker.Close()
		os.Exit(1)
	}
}
