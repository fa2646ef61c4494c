package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	httpapi "weathertui/internal/api/http"
	"weathertui/internal/cache"
	"weathertui/internal/config"
	"weathertui/internal/forecast"
	"weathertui/internal/forecast/providers"
	"weathertui/internal/quota"
	"weathertui/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// On-disk forecast cache, one file per (location, day, hour) slot.
	diskCache, err := cache.New(cfg.CacheDir)
	if err != nil {
		log.Fatalf("failed to open forecast cache: %v", err)
	}

	// Persisted request ledger; created with a zero count on first run.
	ledger, err := quota.Open(cfg.QuotaFile, cfg.QuotaCeiling)
	if err != nil {
		log.Fatalf("failed to open quota ledger: %v", err)
	}

	// Provider with burst protection on top of the monthly ledger.
	source := providers.NewRateLimitedSource(
		providers.NewMeteosourceSource(httpClient, cfg.RapidAPIKey), 1.0, 2)

	fetcher := forecast.NewFetcher(source, cfg.FetchTimeout)

	// Core engine orchestrating cache, ledger, and bounded fetches.
	engine := forecast.NewEngine(diskCache, ledger, fetcher)

	// Optional cache warming for configured locations.
	sched := scheduler.New(cfg.PrefetchLocations, cfg.PrefetchInterval, engine)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weathertui",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          90 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weathertui",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, engine)

	log.Printf("INFO: %d of %d monthly requests remaining", ledger.Remaining(), cfg.QuotaCeiling)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
