// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"context"

	"github.com/AccelByte/extend-word-puzzle/pkg/mission"
	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/puzzle"
	"github.com/samber/lo"
)

// ReputationDivisor converts attempt XP into reputation points.
const ReputationDivisor = 10

// RecordAttempt appends a finished attempt to the profile history and updates
// the streak and reputation. A perfect completion extends the streak, anything
// else resets it.
func RecordAttempt(profile *player.Profile, attempt player.Attempt) {
	profile.PuzzleHistory = append(profile.PuzzleHistory, attempt)

	if attempt.Completed && attempt.Accuracy == 100 {
		profile.StreakCount++
	} else {
		profile.StreakCount = 0
	}
	if profile.StreakCount > profile.LongestStreak {
		profile.LongestStreak = profile.StreakCount
	}

	profile.Reputation += attempt.XPEarned / ReputationDivisor
}

// HasAttempted reports whether the history holds an attempt on the puzzle.
func HasAttempted(profile *player.Profile, puzzleID string) bool {
	return lo.ContainsBy(profile.PuzzleHistory, func(a player.Attempt) bool {
		return a.PuzzleID == puzzleID
	})
}

// Recipient returns the notifier recipient for a profile.
func Recipient(profile *player.Profile) notifier.Recipient {
	return notifier.Recipient{
		PlayerID:      profile.ID,
		WalletAddress: profile.WalletAddress,
	}
}

// WindowOf returns the mission window of a puzzle.
func WindowOf(p *puzzle.Puzzle) mission.Window {
	return mission.Window{
		PuzzleID: p.ID,
		Start:    p.ReleaseTime,
		End:      p.ExpiryTime,
	}
}

// MissionMetadata describes a puzzle for the rewards notifiers.
func MissionMetadata(p *puzzle.Puzzle) notifier.MissionMetadata {
	return notifier.MissionMetadata{
		PuzzleID:    p.ID,
		Category:    string(p.Category),
		Difficulty:  string(p.Difficulty),
		XPReward:    p.XPReward,
		IsRare:      p.IsRare,
		ReleaseTime: p.ReleaseTime,
		ExpiryTime:  p.ExpiryTime,
	}
}

// ReleaseHook registers every released puzzle as a mission.
func ReleaseHook(dispatcher *notifier.Dispatcher) puzzle.ReleaseHook {
	return func(ctx context.Context, p *puzzle.Puzzle) {
		dispatcher.MissionCreated(ctx, MissionMetadata(p))
	}
}

func snapshotProfile(p *player.Profile) *player.Profile {
	clone := *p
	clone.Traits = append([]player.Trait(nil), p.Traits...)
	clone.PuzzleHistory = append([]player.Attempt(nil), p.PuzzleHistory...)
	clone.Badges = append([]string(nil), p.Badges...)
	clone.ClaimedMissions = append([]string(nil), p.ClaimedMissions...)
	return &clone
}

func snapshotProgress(p *player.Progress) *player.Progress {
	clone := *p
	return &clone
}
