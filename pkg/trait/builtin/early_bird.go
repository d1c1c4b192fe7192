package builtin

import (
	"context"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	"github.com/sirupsen/logrus"
)

const (
	// EarlyBirdID is the identifier for the early bird trait
	EarlyBirdID = "early_bird"

	// DefaultEarlyBirdWindowMinutes is how soon after release the attempt must end
	DefaultEarlyBirdWindowMinutes = 10

	// DefaultEarlyAccessMinutes is the early access granted by the trait
	DefaultEarlyAccessMinutes = 5
)

// EarlyBird unlocks when a puzzle is solved shortly after its release.
type EarlyBird struct {
	config        trait.Config
	window        time.Duration
	boost         float64
	accessMinutes int
}

// NewEarlyBird creates a new early bird condition.
func NewEarlyBird(config trait.Config) *EarlyBird {
	windowMinutes := config.GetInt("window_minutes", DefaultEarlyBirdWindowMinutes)

	logrus.Infof("creating early bird trait with window=%dm", windowMinutes)

	return &EarlyBird{
		config:        config,
		window:        time.Duration(windowMinutes) * time.Minute,
		boost:         config.GetFloat("xp_boost", 1.2),
		accessMinutes: config.GetInt("early_access_minutes", DefaultEarlyAccessMinutes),
	}
}

// ID returns the trait identifier.
func (c *EarlyBird) ID() string {
	return c.config.ID
}

// Name returns the trait name.
func (c *EarlyBird) Name() string {
	return c.config.DisplayName("Early Bird")
}

// Config returns the condition configuration.
func (c *EarlyBird) Config() trait.Config {
	return c.config
}

// Trait returns the early bird trait with its benefits.
func (c *EarlyBird) Trait() player.Trait {
	return player.Trait{
		ID:   c.ID(),
		Name: c.Name(),
		Benefits: player.Benefits{
			player.XPBoost{Factor: c.boost, Desc: percentDesc(c.boost, "XP boost")},
			player.EarlyAccess{Minutes: c.accessMinutes, Desc: minutesDesc(c.accessMinutes, "early access to next drop")},
		},
	}
}

// Evaluate checks whether the attempt ended within the window after release.
func (c *EarlyBird) Evaluate(ctx context.Context, evalCtx *trait.EvalContext) (bool, error) {
	a := evalCtx.Attempt
	if a.PuzzleReleaseTime.IsZero() {
		return false, nil
	}

	elapsed := a.EndTime.Sub(a.PuzzleReleaseTime)
	logrus.Debugf("evaluating early bird for player %s: elapsed=%s, window=%s", a.PlayerID, elapsed, c.window)

	return elapsed >= 0 && elapsed <= c.window, nil
}
