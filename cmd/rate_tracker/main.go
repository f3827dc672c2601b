package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/rate_tracker/internal/core/services"
	"github.com/SscSPs/rate_tracker/internal/handlers"
	"github.com/SscSPs/rate_tracker/internal/middleware"
	"github.com/SscSPs/rate_tracker/internal/platform/config"
	"github.com/SscSPs/rate_tracker/internal/platform/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Rate Tracker API
// @version 1.0
// @description EUR reference exchange rates and currency opportunity gain/loss.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	repos, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize rate store", slog.String("store_driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repos.Close()

	serviceContainer := services.NewServiceContainer(cfg, repos, logger)

	if cfg.IngestOnStartup {
		// A failed startup ingestion leaves the store as it was; the server still comes up.
		result, err := serviceContainer.Ingestion.IngestFromSource(middleware.WithLogger(ctx, logger))
		if err != nil {
			logger.Error("Startup ingestion failed", slog.String("error", err.Error()))
		} else {
			logger.Info("Startup ingestion finished", slog.Int("upserted", result.Upserted), slog.Int("skipped", result.Skipped))
		}
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	if cfg.RateLimit != "" {
		ipLimiter, err := middleware.NewIPRateLimiter(cfg.RateLimit)
		if err != nil {
			logger.Error("Failed to configure rate limiting", slog.String("error", err.Error()))
			os.Exit(1)
		}
		r.Use(middleware.RateLimit(ipLimiter))
	}

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
