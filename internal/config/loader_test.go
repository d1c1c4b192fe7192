// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.HTTPPort != 8000 {
		t.Errorf("Expected HTTP port 8000, got %d", cfg.HTTPPort)
	}
	if cfg.StoreBackend != StoreBackendRedis {
		t.Errorf("Expected store backend redis, got %s", cfg.StoreBackend)
	}
	if cfg.PuzzleTickInterval != 30*time.Second {
		t.Errorf("Expected tick interval 30s, got %v", cfg.PuzzleTickInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/puzzle.db")
	t.Setenv("PUZZLE_TIMEZONE", "Asia/Jakarta")
	t.Setenv("PUZZLE_TICK_INTERVAL", "5s")
	t.Setenv("RATE_LIMIT", "2.5")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.StoreBackend != StoreBackendSQLite || cfg.SQLitePath != "/tmp/puzzle.db" {
		t.Errorf("Expected sqlite at /tmp/puzzle.db, got %s at %s", cfg.StoreBackend, cfg.SQLitePath)
	}
	if cfg.PuzzleTickInterval != 5*time.Second {
		t.Errorf("Expected tick interval 5s, got %v", cfg.PuzzleTickInterval)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("Expected rate limit 2.5, got %v", cfg.RateLimit)
	}
	if cfg.Location().String() != "Asia/Jakarta" {
		t.Errorf("Expected location Asia/Jakarta, got %s", cfg.Location())
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			GRPCPort:           6565,
			HTTPPort:           8000,
			MetricsPort:        8080,
			LogLevel:           "info",
			StoreBackend:       StoreBackendMemory,
			PuzzleTimezone:     "UTC",
			PuzzleRareChance:   0.1,
			PuzzleTickInterval: time.Second,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad http port", func(c *Config) { c.HTTPPort = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"unknown backend", func(c *Config) { c.StoreBackend = "mongo" }, true},
		{"sqlite without path", func(c *Config) { c.StoreBackend = StoreBackendSQLite }, true},
		{"bad timezone", func(c *Config) { c.PuzzleTimezone = "Mars/Olympus" }, true},
		{"rare chance above one", func(c *Config) { c.PuzzleRareChance = 1.5 }, true},
		{"zero tick", func(c *Config) { c.PuzzleTickInterval = 0 }, true},
		{"negative burst", func(c *Config) { c.RateBurst = -1 }, true},
		{"accelbyte without namespace", func(c *Config) { c.ABEnabled = true }, true},
		{"accelbyte complete", func(c *Config) {
			c.ABEnabled = true
			c.ABNamespace = "ns"
			c.ABBaseURL = "https://example.accelbyte.io"
			c.ABClientID = "id"
			c.ABClientSecret = "secret"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
