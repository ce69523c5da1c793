package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func (c *Config) validate() error {
	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateRedis(); err != nil {
		return err
	}

	if err := c.validateTuning(); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Allow loopback addresses for local deployments and 0.0.0.0/:: for
	// containerized deployments where the network boundary is enforced
	// externally (e.g. Docker, Kubernetes).
	validHosts := map[string]bool{
		"127.0.0.1": true,
		"::1":       true,
		"localhost": true,
		"0.0.0.0":   true,
		"::":        true,
	}
	if !validHosts[c.ListenHost] {
		return fmt.Errorf("LISTEN_HOST must be a loopback address or 0.0.0.0/:: for containers (got %q)", c.ListenHost)
	}

	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

func (c *Config) validateDataset() error {
	switch c.DatasetSource {
	case SourceFile:
		if c.DatasetItems == "" {
			return fmt.Errorf("DATASET_ITEMS is required when DATASET_SOURCE is file")
		}
	case SourcePostgres:
		if c.DatabaseURL.Value() == "" {
			return fmt.Errorf("DATABASE_URL is required when DATASET_SOURCE is postgres")
		}

		dbURL, err := url.Parse(c.DatabaseURL.Value())
		if err != nil {
			return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
		}

		if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
			return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
		}

		if dbURL.Hostname() == "" {
			return fmt.Errorf("DATABASE_URL must include a host")
		}

		dbHost := dbURL.Hostname()
		if dbHost != "localhost" && dbHost != "127.0.0.1" && dbHost != "::1" {
			if dbURL.Query().Get("sslmode") == "disable" {
				return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbHost)
			}
		}
	default:
		return fmt.Errorf("DATASET_SOURCE must be 'file' or 'postgres', got %q", c.DatasetSource)
	}

	return nil
}

func (c *Config) validateRedis() error {
	if c.RedisURL == "" {
		return nil
	}

	u, err := url.Parse(c.RedisURL)
	if err != nil {
		return fmt.Errorf("REDIS_URL is not a valid URL: %w", err)
	}

	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return fmt.Errorf("REDIS_URL scheme must be redis:// or rediss://")
	}

	return nil
}

func (c *Config) validateTuning() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.NodeBudget < 1 {
		return fmt.Errorf("NODE_BUDGET must be at least 1")
	}

	if c.ScoreThreshold < 0 || c.ScoreThreshold > 1 {
		return fmt.Errorf("SCORE_THRESHOLD must be between 0 and 1")
	}

	for _, w := range []float64{c.Weights.Text, c.Weights.Date, c.Weights.Place, c.Weights.User} {
		if w < 0 {
			return fmt.Errorf("blend weights must be non-negative")
		}
	}

	if c.CommunityIterations < 1 {
		return fmt.Errorf("COMMUNITY_ITERATIONS must be at least 1")
	}

	if c.LayoutTickRate < 1 || c.LayoutTickRate > 120 {
		return fmt.Errorf("LAYOUT_TICK_RATE must be between 1 and 120")
	}

	return nil
}
