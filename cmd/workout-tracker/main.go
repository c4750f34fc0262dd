package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/i474232898/workout-tracker/internal/api/http"
	"github.com/i474232898/workout-tracker/internal/app"
	"github.com/i474232898/workout-tracker/internal/config"
	"github.com/i474232898/workout-tracker/internal/geolocation"
	"github.com/i474232898/workout-tracker/internal/persistence"
	"github.com/i474232898/workout-tracker/internal/persistence/sqlite"
	"github.com/i474232898/workout-tracker/internal/scheduler"
	"github.com/i474232898/workout-tracker/internal/store"
	"github.com/i474232898/workout-tracker/internal/view"
	"github.com/i474232898/workout-tracker/internal/weather"
	"github.com/i474232898/workout-tracker/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Durable slot for the workout snapshot.
	var slot persistence.Slot
	switch cfg.StorageDriver {
	case "memory":
		slot = persistence.NewMemorySlot()
	default:
		db, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
		slot = db
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Providers with resilience (backoff + circuit breaker). Keyed providers
	// are only used when a key is configured.
	var provs []weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}
	// Open-Meteo needs no key but returns no place name; the geocoder fills it in.
	if cfg.OpenMeteoEnabled {
		provs = append(provs, providers.NewOpenMeteoProvider(httpClient))
	}

	var annotator *weather.Annotator
	if len(provs) > 0 {
		annotator = weather.NewAnnotator(provs, weather.NewGoogleResolver(cfg.GeocoderAPIKey), cfg.WeatherLookupTimeout)
	} else {
		log.Printf("INFO: no weather providers configured, rows will not be annotated")
	}

	layer := view.NewLayer()
	state := app.New(app.Deps{
		Store:     store.NewMemoryStore(),
		Persist:   persistence.NewAdapter(slot, cfg.StorageKey),
		Layer:     layer,
		View:      view.NewSynchronizer(layer, cfg.MapZoomLevel),
		Annotator: annotator,
		Locator:   geolocation.NewStatic(cfg.Home),
	})

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	state.Start(startCtx)
	cancelStart()

	// Scheduler that periodically retries missing weather annotations.
	sched := scheduler.New(cfg.AnnotationRetryInterval, state)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	fa := fiber.New(fiber.Config{
		AppName:               "workout-tracker",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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
	fa.Use(logger.New())
	fa.Use(recover.New())

	// Basic health endpoint
	fa.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "workout-tracker",
			"workouts": len(state.Workouts()),
		})
	})

	fa.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes.
	httpapi.RegisterRoutes(fa, state)

	go func() {
		if err := fa.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s", cfg.Port)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fa.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	sched.Stop()
	state.Wait()
}
