package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	PostgresDSN string
	// RequestTimeout bounds every unit of work; the transaction rolls back
	// when the deadline fires mid-flight.
	RequestTimeout time.Duration
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:           envDefault("PORT", "8080"),
		PostgresDSN:    strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		RequestTimeout: 30 * time.Second,
	}
	if raw := strings.TrimSpace(os.Getenv("REQUEST_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("REQUEST_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.RequestTimeout = time.Duration(seconds) * time.Second
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
