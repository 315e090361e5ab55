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

	httpapi "github.com/weatherboard/weatherboard/internal/api/http"
	"github.com/weatherboard/weatherboard/internal/config"
	"github.com/weatherboard/weatherboard/internal/dashboard"
	"github.com/weatherboard/weatherboard/internal/locate"
	"github.com/weatherboard/weatherboard/internal/openweather"
	"github.com/weatherboard/weatherboard/internal/scheduler"
	"github.com/weatherboard/weatherboard/internal/search"
	"github.com/weatherboard/weatherboard/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Weather API client with resilience (backoff + circuit breaker).
	weatherAPI := openweather.NewClient(httpClient, cfg.OpenWeatherAPIKey)

	// View cache with configured retention.
	viewStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Render pipeline.
	builder := dashboard.NewBuilder(weatherAPI)

	// Caller-IP geolocation with the default-location fallback.
	locator := locate.NewClient(httpClient, cfg.DefaultLocation).
		WithBaseURL(cfg.GeolocateURL)

	// Debounced typeahead sessions.
	searchRegistry := search.NewRegistry(weatherAPI, cfg.SearchDebounce, cfg.SearchSessionTTL)

	// Keep the default location's view warm.
	refresher := scheduler.New(builder, viewStore, cfg.DefaultLocation, cfg.RefreshInterval)
	if err := refresher.Start(); err != nil {
		log.Fatalf("failed to start refresher: %v", err)
	}
	defer refresher.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weatherboard",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response; keeps the one-state
			// contract for rejected requests as well.
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"state":   dashboard.StateError.String(),
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
			"service": "weatherboard",
			"refresh": refresher.Status().State().String(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Builder: builder,
		Store:   viewStore,
		Locator: locator,
		Search:  searchRegistry,
	})

	// Start server with graceful shutdown
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
