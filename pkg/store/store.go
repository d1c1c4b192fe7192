// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/sirupsen/logrus"
)

const (
	progressKeyPrefix = "progress:"
	profileKeyPrefix  = "profile:"
)

// Store persists player progress and profiles as JSON documents on a KV backend.
// Absent or unreadable records load as nil so callers can start fresh.
type Store struct {
	kv KV
}

// New creates a Store on top of a KV backend.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// KV returns the underlying backend.
func (s *Store) KV() KV {
	return s.kv
}

// LoadProgress returns the player's progress record, or nil on first run.
func (s *Store) LoadProgress(ctx context.Context, playerID string) (*player.Progress, error) {
	var progress player.Progress
	found, err := s.load(ctx, progressKeyPrefix+playerID, &progress)
	if err != nil || !found {
		return nil, err
	}
	return &progress, nil
}

// SaveProgress writes the player's progress record.
func (s *Store) SaveProgress(ctx context.Context, playerID string, progress *player.Progress) error {
	return s.save(ctx, progressKeyPrefix+playerID, progress)
}

// LoadProfile returns the player's profile, or nil on first run.
func (s *Store) LoadProfile(ctx context.Context, playerID string) (*player.Profile, error) {
	var profile player.Profile
	found, err := s.load(ctx, profileKeyPrefix+playerID, &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

// SaveProfile writes the player's profile.
func (s *Store) SaveProfile(ctx context.Context, profile *player.Profile) error {
	if profile == nil || profile.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	return s.save(ctx, profileKeyPrefix+profile.ID, profile)
}

func (s *Store) load(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		logrus.Debugf("no record for %s", key)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		logrus.Warnf("discarding unreadable record %s: %v", key, err)
		return false, nil
	}
	return true, nil
}

func (s *Store) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
