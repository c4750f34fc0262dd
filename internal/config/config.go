package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/workout-tracker/internal/workout"
)

type AppConfig struct {
	Port string

	// Durable slot backend: "sqlite" or "memory".
	StorageDriver string
	DBPath        string
	StorageKey    string

	OpenWeatherAPIKey string
	WeatherAPIKey     string
	OpenMeteoEnabled  bool
	GeocoderAPIKey    string

	HTTPTimeout          time.Duration // outbound provider calls
	WeatherLookupTimeout time.Duration // one whole annotation lookup

	// AnnotationRetryInterval controls how often rows without weather are retried (0 = never).
	AnnotationRetryInterval time.Duration

	MapZoomLevel int

	// Home is the position reported by the geolocation capability; nil when unset.
	Home *workout.Coords
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	cfg.StorageDriver = strings.ToLower(getenvDefault("STORAGE_DRIVER", "sqlite"))
	if cfg.StorageDriver != "sqlite" && cfg.StorageDriver != "memory" {
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: want sqlite or memory", cfg.StorageDriver)
	}
	cfg.DBPath = getenvDefault("DB_PATH", "./data/workouts.db")
	cfg.StorageKey = getenvDefault("STORAGE_KEY", "workout")

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GOOGLE_GEOCODER_API_KEY")

	enabled, err := strconv.ParseBool(getenvDefault("OPENMETEO_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid OPENMETEO_ENABLED: %w", err)
	}
	cfg.OpenMeteoEnabled = enabled

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WeatherLookupTimeout, err = getenvDuration("WEATHER_LOOKUP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.AnnotationRetryInterval, err = getenvDuration("ANNOTATION_RETRY_INTERVAL", "30m"); err != nil {
		return nil, err
	}

	cfg.MapZoomLevel = getenvInt("MAP_ZOOM_LEVEL", 13)

	home, err := loadHome()
	if err != nil {
		return nil, err
	}
	cfg.Home = home

	return cfg, nil
}

func loadHome() (*workout.Coords, error) {
	lat := os.Getenv("HOME_LAT")
	lng := os.Getenv("HOME_LNG")
	if lat == "" && lng == "" {
		return nil, nil
	}
	if lat == "" || lng == "" {
		return nil, fmt.Errorf("HOME_LAT and HOME_LNG must be set together")
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HOME_LAT: %w", err)
	}
	ln, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HOME_LNG: %w", err)
	}

	c := workout.Coords{Lat: la, Lng: ln}
	if !c.Valid() {
		return nil, fmt.Errorf("HOME_LAT/HOME_LNG %v,%v is not a valid location", la, ln)
	}
	return &c, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
