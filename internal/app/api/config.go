package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries environment-driven settings for the dashboard process.
type Config struct {
	Port                 string
	Environment          string
	BackendBaseURL       string
	SessionSecret        string
	SessionTTL           time.Duration
	SessionPurgeInterval time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                 envDefault("PORT", "8080"),
		Environment:          envDefault("ENVIRONMENT", "local"),
		BackendBaseURL:       envDefault("BACKEND_BASE_URL", "http://localhost:3001"),
		SessionSecret:        strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		SessionTTL:           24 * time.Hour,
		SessionPurgeInterval: 10 * time.Minute,
	}
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET must be set")
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("SESSION_TTL_HOURS must be a positive integer")
		}
		cfg.SessionTTL = time.Duration(hours) * time.Hour
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_PURGE_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("SESSION_PURGE_INTERVAL_MINUTES must be a positive integer")
		}
		cfg.SessionPurgeInterval = time.Duration(minutes) * time.Minute
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
