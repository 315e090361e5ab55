package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/weatherboard/weatherboard/internal/locate"
)

// Default fallback location used when geolocation is unavailable:
// London.
const (
	DefaultFallbackLat = 51.5073219
	DefaultFallbackLon = -0.1276474
)

type AppConfig struct {
	OpenWeatherAPIKey string

	// HTTPTimeout bounds every outbound API call.
	HTTPTimeout time.Duration

	// DefaultLocation is rendered when geolocation fails and is kept
	// warm by the refresh scheduler.
	DefaultLocation locate.Location

	// GeolocateURL overrides the IP geolocation endpoint.
	GeolocateURL string

	// RefreshInterval controls how often the default location's view
	// is rebuilt.
	RefreshInterval time.Duration

	// SearchDebounce is the typeahead quiet interval.
	SearchDebounce time.Duration

	// SearchSessionTTL retires idle typeahead sessions.
	SearchSessionTTL time.Duration

	// View cache retention.
	StoreMaxHistory int           // max views per location (0 = unlimited)
	StoreMaxAge     time.Duration // max view age (0 = unlimited)

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.DefaultLocation = locate.Location{
		Lat: getenvFloat("DEFAULT_LAT", DefaultFallbackLat),
		Lon: getenvFloat("DEFAULT_LON", DefaultFallbackLon),
	}
	if cfg.DefaultLocation.Lat < -90 || cfg.DefaultLocation.Lat > 90 ||
		cfg.DefaultLocation.Lon < -180 || cfg.DefaultLocation.Lon > 180 {
		return nil, fmt.Errorf("DEFAULT_LAT/DEFAULT_LON out of range")
	}

	cfg.GeolocateURL = os.Getenv("GEOLOCATE_URL")

	interval, err := getenvDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval = interval

	debounce, err := getenvDuration("SEARCH_DEBOUNCE", "500ms")
	if err != nil {
		return nil, err
	}
	cfg.SearchDebounce = debounce

	sessionTTL, err := getenvDuration("SEARCH_SESSION_TTL", "30m")
	if err != nil {
		return nil, err
	}
	cfg.SearchSessionTTL = sessionTTL

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96)

	maxAge, err := getenvDuration("STORE_MAX_AGE", "1h")
	if err != nil {
		return nil, err
	}
	cfg.StoreMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
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

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
