package mission

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
)

// Type identifies a mission definition.
type Type string

const (
	TypeHourlyPuzzle    Type = "hourly_puzzle"
	TypeStreakChallenge Type = "streak_challenge"
)

// Window is the puzzle the board is evaluated against.
type Window struct {
	PuzzleID string
	Start    time.Time
	End      time.Time
}

// Requirement is SolvePuzzles or MaintainStreak.
type Requirement interface {
	// Target is the progress value that completes the requirement.
	Target() int
	// Progress is the current value for the profile, not capped.
	Progress(profile *player.Profile, window Window) int
	requirement()
}

// SolvePuzzles requires completing the window's puzzle Count times.
type SolvePuzzles struct {
	Count int
}

// MaintainStreak requires a streak of at least Length.
type MaintainStreak struct {
	Length int
}

func (r SolvePuzzles) Target() int { return r.Count }

func (r SolvePuzzles) Progress(profile *player.Profile, window Window) int {
	n := 0
	for _, a := range profile.PuzzleHistory {
		if a.Completed && a.PuzzleID == window.PuzzleID {
			n++
		}
	}
	return n
}

func (r MaintainStreak) Target() int { return r.Length }

func (r MaintainStreak) Progress(profile *player.Profile, _ Window) int {
	return profile.StreakCount
}

func (SolvePuzzles) requirement()   {}
func (MaintainStreak) requirement() {}

// Reward is XPReward or TraitReward.
type Reward interface {
	Description() string
	reward()
}

// XPReward grants bonus XP.
type XPReward struct {
	Amount int
}

// TraitReward grants a trait.
type TraitReward struct {
	Trait player.Trait
}

func (r XPReward) Description() string    { return fmt.Sprintf("%d XP", r.Amount) }
func (r TraitReward) Description() string { return r.Trait.Name + " Trait" }

func (XPReward) reward()    {}
func (TraitReward) reward() {}

func (r XPReward) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string `json:"type"`
		Value       int    `json:"value"`
		Description string `json:"description"`
	}{"xp", r.Amount, r.Description()})
}

func (r TraitReward) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string `json:"type"`
		Value       string `json:"value"`
		Description string `json:"description"`
	}{"trait", r.Trait.ID, r.Description()})
}

// Definition describes a mission offered to every player.
type Definition struct {
	Type        Type
	Title       string
	Description string
	Requirement Requirement
	Rewards     []Reward
	// PerPuzzle missions get a fresh instance for every released puzzle.
	PerPuzzle bool
}

// InstanceID returns the claimable id of the definition for a window.
func (d Definition) InstanceID(window Window) string {
	if d.PerPuzzle {
		return string(d.Type) + ":" + window.PuzzleID
	}
	return string(d.Type)
}

// Mission is a definition evaluated for one player.
type Mission struct {
	ID          string     `json:"id"`
	Type        Type       `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Progress    int        `json:"progress"`
	MaxProgress int        `json:"maxProgress"`
	Completed   bool       `json:"isCompleted"`
	Claimed     bool       `json:"isClaimed"`
	ExpiryTime  *time.Time `json:"expiryTime,omitempty"`
	Rewards     []Reward   `json:"rewards"`
}

// StreakMasterTrait is granted by the streak challenge.
var StreakMasterTrait = player.Trait{
	ID:   "streak_master",
	Name: "Streak Master",
	Benefits: player.Benefits{
		player.SpecialContent{Content: "streak_master_badge", Desc: "Streak Master badge"},
	},
}

// DefaultDefinitions returns the hourly puzzle and streak challenge missions.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Type:        TypeHourlyPuzzle,
			Title:       "Hourly Challenge",
			Description: "Complete the current hourly puzzle",
			Requirement: SolvePuzzles{Count: 1},
			Rewards:     []Reward{XPReward{Amount: 100}},
			PerPuzzle:   true,
		},
		{
			Type:        TypeStreakChallenge,
			Title:       "Streak Master",
			Description: "Solve 5 hourly puzzles in a row",
			Requirement: MaintainStreak{Length: 5},
			Rewards:     []Reward{TraitReward{Trait: StreakMasterTrait}, XPReward{Amount: 500}},
		},
	}
}
