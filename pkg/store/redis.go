// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is the default TTL for player records in Redis (90 days)
	DefaultTTL = 90 * 24 * time.Hour
	// DefaultKeyPrefix is the prefix for all word puzzle keys
	DefaultKeyPrefix = "word_puzzle:"
)

// RedisKVConfig configures key layout and expiry for RedisKV.
type RedisKVConfig struct {
	KeyPrefix string
	TTL       time.Duration
}

// RedisKV implements KV using Redis.
type RedisKV struct {
	client *redis.Client
	cfg    RedisKVConfig
}

// NewRedisKV creates a new Redis-backed KV.
func NewRedisKV(client *redis.Client, cfg RedisKVConfig) *RedisKV {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &RedisKV{
		client: client,
		cfg:    cfg,
	}
}

// makeKey creates the Redis key for a store key
func (r *RedisKV) makeKey(key string) string {
	return fmt.Sprintf("%s%s", r.cfg.KeyPrefix, key)
}

// Get retrieves the raw value for key.
func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.makeKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		logrus.Errorf("failed to get key %s: %v", key, err)
		return nil, fmt.Errorf("failed to get key: %w", err)
	}
	return data, nil
}

// Set stores value under key with the configured TTL.
func (r *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.makeKey(key), value, r.cfg.TTL).Err(); err != nil {
		logrus.Errorf("failed to set key %s: %v", key, err)
		return fmt.Errorf("failed to set key: %w", err)
	}

	logrus.Debugf("set key %s with TTL %v", key, r.cfg.TTL)
	return nil
}

// Delete removes key.
func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.makeKey(key)).Err(); err != nil {
		logrus.Errorf("failed to delete key %s: %v", key, err)
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (r *RedisKV) Close() error {
	return r.client.Close()
}
