// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-word-puzzle/internal/config"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/progression"
	"github.com/AccelByte/extend-word-puzzle/pkg/store"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// This is a manual integration test for the Redis player store
// Run this with: go run -tags integration test_redis_integration.go
// Requires: Redis reachable at REDIS_HOST:REDIS_PORT (default localhost:6379)

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	cfg, err := config.Parse()
	if err != nil {
		logrus.Fatalf("Failed to parse config: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	defer client.Close()

	kv := store.NewRedisKV(client, store.RedisKVConfig{KeyPrefix: "word_puzzle_it:", TTL: time.Hour})
	if err := store.NewHealthChecker(kv).Check(ctx); err != nil {
		logrus.Fatalf("Redis is not reachable: %v", err)
	}
	st := store.New(kv)

	testPlayerID := fmt.Sprintf("test-player-%d", time.Now().Unix())
	logrus.Infof("Testing with player ID: %s", testPlayerID)

	// Test 1: Unknown player has no profile
	logrus.Infof("\n=== Test 1: Load profile for new player ===")
	profile, err := st.LoadProfile(ctx, testPlayerID)
	if err != nil {
		logrus.Fatalf("LoadProfile failed: %v", err)
	}
	if profile != nil {
		logrus.Fatalf("❌ Expected no profile for new player")
	}
	logrus.Infof("✓ No profile stored yet")

	// Test 2: Save a profile with a completed attempt
	logrus.Infof("\n=== Test 2: Save profile ===")
	profile = player.NewProfile(testPlayerID, time.Now())
	attempt := player.Attempt{
		ID:         "attempt-1",
		PuzzleID:   "puzzle_1",
		PlayerID:   testPlayerID,
		WordsFound: []string{"cat", "act"},
		Accuracy:   100,
		XPEarned:   60,
		Completed:  true,
	}
	progression.RecordAttempt(profile, attempt)
	profile.AddXP(attempt.XPEarned)

	if err := st.SaveProfile(ctx, profile); err != nil {
		logrus.Fatalf("SaveProfile failed: %v", err)
	}
	logrus.Infof("✓ Saved profile")

	// Test 3: Retrieve the profile
	logrus.Infof("\n=== Test 3: Retrieve profile ===")
	loaded, err := st.LoadProfile(ctx, testPlayerID)
	if err != nil || loaded == nil {
		logrus.Fatalf("LoadProfile failed: %v", err)
	}
	logrus.Infof("✓ Retrieved profile: TotalXP=%d, Streak=%d, History=%d",
		loaded.TotalXP, loaded.StreakCount, len(loaded.PuzzleHistory))

	if loaded.TotalXP != 60 || loaded.StreakCount != 1 || len(loaded.PuzzleHistory) != 1 {
		logrus.Fatalf("❌ Profile mismatch: %+v", loaded)
	}

	// Test 4: Progress record
	logrus.Infof("\n=== Test 4: Save and load progress ===")
	progress := player.DefaultProgress()
	progress.TotalScore = 60
	progress.SoundEnabled = false
	if err := st.SaveProgress(ctx, testPlayerID, progress); err != nil {
		logrus.Fatalf("SaveProgress failed: %v", err)
	}
	loadedProgress, err := st.LoadProgress(ctx, testPlayerID)
	if err != nil || loadedProgress == nil {
		logrus.Fatalf("LoadProgress failed: %v", err)
	}
	if loadedProgress.TotalScore != 60 || loadedProgress.SoundEnabled {
		logrus.Fatalf("❌ Progress mismatch: %+v", loadedProgress)
	}
	logrus.Infof("✓ Progress round-trip OK")

	// Test 5: Clean up
	logrus.Infof("\n=== Test 5: Clean up ===")
	for _, key := range []string{"profile:" + testPlayerID, "progress:" + testPlayerID} {
		if err := kv.Delete(ctx, key); err != nil {
			logrus.Fatalf("Delete %s failed: %v", key, err)
		}
	}
	profile, err = st.LoadProfile(ctx, testPlayerID)
	if err != nil {
		logrus.Fatalf("LoadProfile after delete failed: %v", err)
	}
	if profile != nil {
		logrus.Fatalf("❌ Profile should be gone after deletion")
	}
	logrus.Infof("✓ Verified player data was deleted")

	logrus.Infof("\n==================================================")
	logrus.Infof("✅ All Redis integration tests passed!")
	logrus.Infof("==================================================")
}
