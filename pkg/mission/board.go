package mission

import (
	"errors"
	"fmt"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownMission is returned when the mission id matches no current instance.
	ErrUnknownMission = errors.New("unknown mission")
	// ErrNotCompleted is returned when claiming an unfinished mission.
	ErrNotCompleted = errors.New("mission not completed")
	// ErrAlreadyClaimed is returned when a mission instance was already claimed.
	ErrAlreadyClaimed = errors.New("mission already claimed")
)

// Board evaluates mission definitions against player profiles.
type Board struct {
	definitions []Definition
}

// NewBoard creates a board. No definitions means DefaultDefinitions.
func NewBoard(definitions ...Definition) *Board {
	if len(definitions) == 0 {
		definitions = DefaultDefinitions()
	}
	return &Board{definitions: definitions}
}

// For returns every mission with the player's progress in the window.
func (b *Board) For(profile *player.Profile, window Window) []Mission {
	return lo.Map(b.definitions, func(d Definition, _ int) Mission {
		return b.evaluate(d, profile, window)
	})
}

func (b *Board) evaluate(d Definition, profile *player.Profile, window Window) Mission {
	target := d.Requirement.Target()
	progress := lo.Clamp(d.Requirement.Progress(profile, window), 0, target)
	id := d.InstanceID(window)

	m := Mission{
		ID:          id,
		Type:        d.Type,
		Title:       d.Title,
		Description: d.Description,
		Progress:    progress,
		MaxProgress: target,
		Completed:   progress >= target,
		Claimed:     profile.HasClaimed(id),
		Rewards:     d.Rewards,
	}
	if d.PerPuzzle && !window.End.IsZero() {
		expiry := window.End
		m.ExpiryTime = &expiry
	}
	return m
}

// Claimed is the outcome of a successful claim.
type Claimed struct {
	Mission Mission        `json:"mission"`
	XP      int            `json:"xp"`
	Traits  []player.Trait `json:"traits,omitempty"`
}

// Claim grants a completed mission's rewards to the profile once.
// The profile is modified in place; the caller persists it.
func (b *Board) Claim(profile *player.Profile, missionID string, window Window) (*Claimed, error) {
	def, ok := lo.Find(b.definitions, func(d Definition) bool {
		return d.InstanceID(window) == missionID
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMission, missionID)
	}

	m := b.evaluate(def, profile, window)
	if m.Claimed {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyClaimed, missionID)
	}
	if !m.Completed {
		return nil, fmt.Errorf("%w: %s (%d/%d)", ErrNotCompleted, missionID, m.Progress, m.MaxProgress)
	}

	result := &Claimed{Mission: m}
	for _, r := range def.Rewards {
		switch reward := r.(type) {
		case XPReward:
			profile.AddXP(reward.Amount)
			result.XP += reward.Amount
		case TraitReward:
			if profile.AddTrait(reward.Trait) {
				result.Traits = append(result.Traits, reward.Trait)
			}
		}
	}

	profile.ClaimedMissions = append(profile.ClaimedMissions, missionID)
	result.Mission.Claimed = true

	logrus.Infof("player %s claimed mission %s: xp=%d, traits=%d", profile.ID, missionID, result.XP, len(result.Traits))
	return result, nil
}
