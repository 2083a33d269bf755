// Package config reads service configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings of cmd/server.
type Config struct {
	Port        string
	DBPath      string
	DatabaseURL string
	RedisURL    string
	RouteTTL    time.Duration
	SeedPath    string
	Partners    []string

	GeocoderBaseURL   string
	GeocoderUserAgent string
	GeocoderSuffix    string

	// MaxPasses caps 2-opt passes; 0 means one pass per location.
	MaxPasses int
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		RedisURL:    Get("REDIS_URL", ""),
		RouteTTL:    GetDuration("ROUTE_CACHE_TTL_SECONDS", 600),
		SeedPath:    Get("SEED_PATH", "data/seeds/orders.json"),
		Partners:    GetList("PARTNERS", []string{"Partner A", "Partner B", "Partner C"}),

		GeocoderBaseURL:   Get("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocoderUserAgent: Get("GEOCODER_USER_AGENT", ""),
		GeocoderSuffix:    Get("GEOCODER_SUFFIX", ", Delhi, India"),

		MaxPasses: GetInt("OPTIMIZER_MAX_PASSES", 0),
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Port) == "" {
		errs = append(errs, errors.New("PORT must be non-empty"))
	}
	if c.RouteTTL < 0 {
		errs = append(errs, errors.New("ROUTE_CACHE_TTL_SECONDS must be >= 0"))
	}
	if c.MaxPasses < 0 {
		errs = append(errs, errors.New("OPTIMIZER_MAX_PASSES must be >= 0"))
	}
	if len(c.Partners) == 0 {
		errs = append(errs, errors.New("PARTNERS must name at least one partner"))
	}
	return errors.Join(errs...)
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetInt parses key as an integer and falls back when missing or malformed.
func GetInt(key string, fallback int) int {
	if v := Get(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// GetDuration reads key as whole seconds.
func GetDuration(key string, fallbackSeconds int) time.Duration {
	return time.Duration(GetInt(key, fallbackSeconds)) * time.Second
}

// GetList splits a comma-separated value, dropping empty items.
func GetList(key string, fallback []string) []string {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
