// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return NewRedisKV(client, RedisKVConfig{}), mr
}

func setupTestSQLite(t *testing.T) *SQLiteKV {
	kv, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func backends(t *testing.T) map[string]KV {
	redisKV, mr := setupTestRedis(t)
	t.Cleanup(mr.Close)

	return map[string]KV{
		"redis":  redisKV,
		"sqlite": setupTestSQLite(t),
		"memory": NewMemoryKV(),
	}
}

func TestKV_GetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get() on missing key error = %v, expected ErrNotFound", err)
			}

			if err := kv.Set(ctx, "k", []byte("v1")); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if err := kv.Set(ctx, "k", []byte("v2")); err != nil {
				t.Fatalf("Set() overwrite error = %v", err)
			}

			got, err := kv.Get(ctx, "k")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if string(got) != "v2" {
				t.Errorf("Get() = %q, expected %q", got, "v2")
			}

			if err := kv.Delete(ctx, "k"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}
			if _, err := kv.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() after delete error = %v, expected ErrNotFound", err)
			}

			if err := kv.Ping(ctx); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}

func TestRedisKV_KeyPrefixAndTTL(t *testing.T) {
	kv, mr := setupTestRedis(t)
	defer mr.Close()

	if err := kv.Set(context.Background(), "profile:p1", []byte("{}")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	key := DefaultKeyPrefix + "profile:p1"
	if !mr.Exists(key) {
		t.Fatalf("expected key %s to exist", key)
	}
	if ttl := mr.TTL(key); ttl != DefaultTTL {
		t.Errorf("TTL = %v, expected %v", ttl, DefaultTTL)
	}
}

func TestStore_FirstRunReturnsNil(t *testing.T) {
	s := New(NewMemoryKV())
	ctx := context.Background()

	progress, err := s.LoadProgress(ctx, "p1")
	if err != nil || progress != nil {
		t.Errorf("LoadProgress() = %v, %v, expected nil, nil", progress, err)
	}

	profile, err := s.LoadProfile(ctx, "p1")
	if err != nil || profile != nil {
		t.Errorf("LoadProfile() = %v, %v, expected nil, nil", profile, err)
	}
}

func TestStore_ProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 14, 5, 0, 0, time.UTC)

	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := New(kv)

			profile := player.NewProfile("p1", now)
			profile.AddXP(1250)
			profile.StreakCount = 2
			profile.AddTrait(player.Trait{
				ID:       "speed_demon",
				Name:     "Speed Demon",
				Benefits: player.Benefits{player.XPBoost{Factor: 1.5, Desc: "50% XP boost"}},
			})
			profile.PuzzleHistory = append(profile.PuzzleHistory, player.Attempt{
				ID: "a1", PuzzleID: "puzzle_1", EndTime: now, Accuracy: 100, Completed: true,
			})

			if err := s.SaveProfile(ctx, profile); err != nil {
				t.Fatalf("SaveProfile() error = %v", err)
			}

			got, err := s.LoadProfile(ctx, "p1")
			if err != nil {
				t.Fatalf("LoadProfile() error = %v", err)
			}
			if got == nil {
				t.Fatal("LoadProfile() returned nil")
			}
			if got.TotalXP != 1250 || got.Level != 2 {
				t.Errorf("TotalXP/Level = %d/%d, expected 1250/2", got.TotalXP, got.Level)
			}
			if !got.HasTrait("speed_demon") {
				t.Error("expected speed_demon trait to survive the round trip")
			}
			if boost, ok := got.Traits[0].Benefits[0].(player.XPBoost); !ok || boost.Factor != 1.5 {
				t.Errorf("benefit = %+v, expected XPBoost 1.5", got.Traits[0].Benefits[0])
			}
			if len(got.PuzzleHistory) != 1 || !got.PuzzleHistory[0].EndTime.Equal(now) {
				t.Errorf("history = %+v", got.PuzzleHistory)
			}
		})
	}
}

func TestStore_ProgressRoundTrip(t *testing.T) {
	s := New(setupTestSQLite(t))
	ctx := context.Background()

	want := &player.Progress{Level: 3, TotalScore: 420, SoundEnabled: false}
	if err := s.SaveProgress(ctx, "p1", want); err != nil {
		t.Fatalf("SaveProgress() error = %v", err)
	}

	got, err := s.LoadProgress(ctx, "p1")
	if err != nil {
		t.Fatalf("LoadProgress() error = %v", err)
	}
	if got == nil || *got != *want {
		t.Errorf("LoadProgress() = %+v, expected %+v", got, want)
	}
}

func TestStore_CorruptRecordLoadsAsFirstRun(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	_ = kv.Set(ctx, profileKeyPrefix+"p1", []byte("{not json"))

	profile, err := New(kv).LoadProfile(ctx, "p1")
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	if profile != nil {
		t.Errorf("expected nil profile for corrupt record, got %+v", profile)
	}
}

func TestStore_SaveProfileRequiresID(t *testing.T) {
	if err := New(NewMemoryKV()).SaveProfile(context.Background(), &player.Profile{}); err == nil {
		t.Error("expected error for profile without id")
	}
}

func TestHealthChecker(t *testing.T) {
	kv, mr := setupTestRedis(t)

	checker := NewHealthChecker(kv)
	if !checker.IsHealthy(context.Background()) {
		t.Error("expected healthy redis")
	}

	mr.Close()
	if checker.IsHealthy(context.Background()) {
		t.Error("expected unhealthy redis after close")
	}
}
