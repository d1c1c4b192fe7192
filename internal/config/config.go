// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Store backends selectable through STORE_BACKEND.
const (
	StoreBackendRedis  = "redis"
	StoreBackendSQLite = "sqlite"
	StoreBackendMemory = "memory"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// Game tuning (trait conditions, notifiers, missions) lives in the YAML file
// at GameConfigPath, not here.
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ExtendWordPuzzle"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// HTTP API configuration
	// ============================================================
	JWTSecret string  `env:"JWT_SECRET"`
	RateLimit float64 `env:"RATE_LIMIT" envDefault:"20"`
	RateBurst int     `env:"RATE_BURST" envDefault:"40"`

	// ============================================================
	// Storage configuration
	// ============================================================
	StoreBackend      string `env:"STORE_BACKEND" envDefault:"redis"`
	RedisHost         string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int    `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	SQLitePath        string `env:"SQLITE_PATH" envDefault:"data/word_puzzle.db"`

	// ============================================================
	// Game configuration
	// ============================================================
	GameConfigPath     string        `env:"GAME_CONFIG_PATH" envDefault:"config/game.yaml"`
	PuzzleTimezone     string        `env:"PUZZLE_TIMEZONE" envDefault:"UTC"`
	PuzzleRareChance   float64       `env:"PUZZLE_RARE_CHANCE" envDefault:"0.1"`
	PuzzleTickInterval time.Duration `env:"PUZZLE_TICK_INTERVAL" envDefault:"30s"`

	// ============================================================
	// AccelByte configuration (required when AB_ENABLED)
	// ============================================================
	ABEnabled      bool   `env:"AB_ENABLED" envDefault:"false"`
	ABNamespace    string `env:"AB_NAMESPACE"`
	ABBaseURL      string `env:"AB_BASE_URL"`
	ABClientID     string `env:"AB_CLIENT_ID"`
	ABClientSecret string `env:"AB_CLIENT_SECRET"`

	// ============================================================
	// Rewards service defaults for the rewards_api notifier
	// ============================================================
	RewardsBaseURL string `env:"REWARDS_BASE_URL"`
	RewardsAPIKey  string `env:"REWARDS_API_KEY"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled        bool   `env:"OTEL_ENABLED" envDefault:"true"`
	OtelZipkinEndpoint string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT"`
}
