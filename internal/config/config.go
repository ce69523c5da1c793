// Package config provides environment-driven configuration for the
// good-neighbor service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goodneighborlab/goodneighbor/internal/models"
)

// Dataset source kinds.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	Port        string
	ListenHost  string
	CORSOrigins []string
	LogLevel    string

	DatasetSource    string
	DatasetItems     string
	DatasetNeighbors string
	DatabaseURL      Secret

	RedisURL   string
	SessionTTL time.Duration

	NodeBudget     int
	ScoreThreshold float64
	Weights        models.Weights

	CommunityIterations int
	LayoutTickRate      int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             envOrDefault("PORT", "3040"),
		ListenHost:       envOrDefault("LISTEN_HOST", "127.0.0.1"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		DatasetSource:    envOrDefault("DATASET_SOURCE", SourceFile),
		DatasetItems:     envOrDefault("DATASET_ITEMS", "data/items.json"),
		DatasetNeighbors: envOrDefault("DATASET_NEIGHBORS", "data/neighbors.json"),
		DatabaseURL:      Secret(envOrDefault("DATABASE_URL", "")),
		RedisURL:         envOrDefault("REDIS_URL", ""),
	}

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3002")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	sessionTTL, err := time.ParseDuration(envOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL must be a valid duration: %w", err)
	}
	cfg.SessionTTL = sessionTTL

	cfg.NodeBudget, err = envInt("NODE_BUDGET", 500)
	if err != nil {
		return nil, err
	}

	cfg.ScoreThreshold, err = envFloat("SCORE_THRESHOLD", 0.35)
	if err != nil {
		return nil, err
	}

	cfg.Weights, err = loadWeights()
	if err != nil {
		return nil, err
	}

	cfg.CommunityIterations, err = envInt("COMMUNITY_ITERATIONS", 40)
	if err != nil {
		return nil, err
	}

	cfg.LayoutTickRate, err = envInt("LAYOUT_TICK_RATE", 30)
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// loadWeights reads the blend weights, falling back to the pipeline defaults.
func loadWeights() (models.Weights, error) {
	defaults := models.DefaultWeights()

	text, err := envFloat("WEIGHT_TEXT", defaults.Text)
	if err != nil {
		return models.Weights{}, err
	}

	date, err := envFloat("WEIGHT_DATE", defaults.Date)
	if err != nil {
		return models.Weights{}, err
	}

	place, err := envFloat("WEIGHT_PLACE", defaults.Place)
	if err != nil {
		return models.Weights{}, err
	}

	user, err := envFloat("WEIGHT_USER", defaults.User)
	if err != nil {
		return models.Weights{}, err
	}

	return models.Weights{Text: text, Date: date, Place: place, User: user}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}

	return v, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}

	return v, nil
}
