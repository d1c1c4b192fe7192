// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse parses the process environment into a Config without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	ports := []struct {
		name  string
		value int
	}{
		{"GRPC_PORT", c.GRPCPort},
		{"HTTP_PORT", c.HTTPPort},
		{"METRICS_PORT", c.MetricsPort},
	}
	for _, p := range ports {
		if p.value < 1 || p.value > 65535 {
			return fmt.Errorf("invalid %s: %d (must be 1-65535)", p.name, p.value)
		}
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch c.StoreBackend {
	case StoreBackendRedis, StoreBackendMemory:
	case StoreBackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when STORE_BACKEND=sqlite")
		}
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q (must be redis, sqlite or memory)", c.StoreBackend)
	}

	if c.RedisMaxRetries < 0 || c.RedisRetryDelayMs < 0 {
		return fmt.Errorf("REDIS_MAX_RETRIES and REDIS_RETRY_DELAY_MS must be non-negative")
	}

	if _, err := time.LoadLocation(c.PuzzleTimezone); err != nil {
		return fmt.Errorf("invalid PUZZLE_TIMEZONE: %w", err)
	}

	if c.PuzzleRareChance < 0 || c.PuzzleRareChance > 1 {
		return fmt.Errorf("invalid PUZZLE_RARE_CHANCE: %v (must be 0-1)", c.PuzzleRareChance)
	}

	if c.PuzzleTickInterval <= 0 {
		return fmt.Errorf("invalid PUZZLE_TICK_INTERVAL: %v (must be positive)", c.PuzzleTickInterval)
	}

	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("RATE_LIMIT and RATE_BURST must be non-negative")
	}

	if c.ABEnabled {
		if c.ABNamespace == "" {
			return fmt.Errorf("AB_NAMESPACE is required when AB_ENABLED=true")
		}
		if c.ABBaseURL == "" || c.ABClientID == "" || c.ABClientSecret == "" {
			return fmt.Errorf("AB_BASE_URL, AB_CLIENT_ID and AB_CLIENT_SECRET are required when AB_ENABLED=true")
		}
	}

	return nil
}

// Location returns the puzzle rotation timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.PuzzleTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
