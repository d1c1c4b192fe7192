// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package player

import (
	"time"
)

// XPPerLevel is the amount of XP between two player levels.
const XPPerLevel = 1000

// Profile is the persisted player aggregate.
type Profile struct {
	ID              string    `json:"id"`
	WalletAddress   string    `json:"walletAddress,omitempty"`
	TotalXP         int       `json:"totalXP"`
	Level           int       `json:"level"`
	Traits          []Trait   `json:"traits"`
	PuzzleHistory   []Attempt `json:"puzzleHistory"`
	StreakCount     int       `json:"streakCount"`
	LongestStreak   int       `json:"longestStreak"`
	Badges          []string  `json:"badges"`
	Reputation      int       `json:"reputation"`
	ClaimedMissions []string  `json:"claimedMissions,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Attempt is the immutable record of one finished puzzle.
type Attempt struct {
	ID                string    `json:"id"`
	PuzzleID          string    `json:"puzzleId"`
	PlayerID          string    `json:"playerId"`
	PuzzleReleaseTime time.Time `json:"puzzleReleaseTime"`
	StartTime         time.Time `json:"startTime"`
	EndTime           time.Time `json:"endTime"`
	WordsFound        []string  `json:"wordsFound"`
	Accuracy          int       `json:"accuracy"`       // 0..100
	CompletionTime    int       `json:"completionTime"` // seconds
	XPEarned          int       `json:"xpEarned"`
	TraitsAwarded     []string  `json:"traitsAwarded,omitempty"`

	// Completed is false for attempts finished before every word was found.
	Completed bool `json:"completed"`
}

// Progress is the lightweight progress record kept next to the profile.
type Progress struct {
	Level        int  `json:"level"`
	TotalScore   int  `json:"totalScore"`
	SoundEnabled bool `json:"soundEnabled"`
}

// NewProfile returns the first-run profile for a player.
func NewProfile(id string, now time.Time) *Profile {
	return &Profile{
		ID:            id,
		TotalXP:       0,
		Level:         1,
		Traits:        []Trait{},
		PuzzleHistory: []Attempt{},
		Badges:        []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// DefaultProgress returns the first-run progress record.
func DefaultProgress() *Progress {
	return &Progress{
		Level:        1,
		TotalScore:   0,
		SoundEnabled: true,
	}
}

// LevelForXP returns floor(xp/1000)+1.
func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// AddXP adds xp to the profile and recomputes the level.
func (p *Profile) AddXP(xp int) {
	p.TotalXP += xp
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
	p.Level = LevelForXP(p.TotalXP)
}

// HasTrait reports whether the profile already holds a trait.
func (p *Profile) HasTrait(id string) bool {
	for _, t := range p.Traits {
		if t.ID == id {
			return true
		}
	}
	return false
}

// AddTrait appends the trait unless the profile already holds one with the same id.
func (p *Profile) AddTrait(t Trait) bool {
	if p.HasTrait(t.ID) {
		return false
	}
	p.Traits = append(p.Traits, t)
	return true
}

// IsStreak reports whether the player is on an active streak.
func (p *Profile) IsStreak() bool {
	return p.StreakCount > 0
}

// HasClaimed reports whether a mission instance was already claimed.
func (p *Profile) HasClaimed(missionID string) bool {
	for _, id := range p.ClaimedMissions {
		if id == missionID {
			return true
		}
	}
	return false
}

// HasWallet reports whether a wallet address is linked.
func (p *Profile) HasWallet() bool {
	return p.WalletAddress != ""
}
