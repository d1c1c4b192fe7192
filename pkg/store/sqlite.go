// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteKV implements KV on a single SQLite table.
type SQLiteKV struct {
	sqlDB *sql.DB
}

// OpenSQLite opens a SQLite KV at path and creates its table.
// The path ":memory:" opens a private in-memory database.
func OpenSQLite(path string) (*SQLiteKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := ":memory:"
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// each connection would otherwise see its own empty database
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteKV{sqlDB: sqlDB}, nil
}

// Get retrieves the raw value for key.
func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get key %s: %w", key, err)
	}
	return value, nil
}

// Set upserts value under key.
func (s *SQLiteKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("set key %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Ping checks the database handle.
func (s *SQLiteKV) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Close closes the SQLite handle.
func (s *SQLiteKV) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
