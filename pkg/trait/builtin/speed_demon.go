package builtin

import (
	"context"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	"github.com/sirupsen/logrus"
)

const (
	// SpeedDemonID is the identifier for the speed demon trait
	SpeedDemonID = "speed_demon"

	// DefaultSpeedDemonMaxSeconds is the exclusive completion time limit
	DefaultSpeedDemonMaxSeconds = 120
)

// SpeedDemon unlocks when a puzzle is completed quickly.
type SpeedDemon struct {
	config     trait.Config
	maxSeconds int
	boost      float64
}

// NewSpeedDemon creates a new speed demon condition.
func NewSpeedDemon(config trait.Config) *SpeedDemon {
	maxSeconds := config.GetInt("max_seconds", DefaultSpeedDemonMaxSeconds)

	logrus.Infof("creating speed demon trait with max_seconds=%d", maxSeconds)

	return &SpeedDemon{
		config:     config,
		maxSeconds: maxSeconds,
		boost:      config.GetFloat("xp_boost", 1.5),
	}
}

// ID returns the trait identifier.
func (c *SpeedDemon) ID() string {
	return c.config.ID
}

// Name returns the trait name.
func (c *SpeedDemon) Name() string {
	return c.config.DisplayName("Speed Demon")
}

// Config returns the condition configuration.
func (c *SpeedDemon) Config() trait.Config {
	return c.config
}

// Trait returns the speed demon trait with its benefits.
func (c *SpeedDemon) Trait() player.Trait {
	return player.Trait{
		ID:   c.ID(),
		Name: c.Name(),
		Benefits: player.Benefits{
			player.XPBoost{Factor: c.boost, Desc: percentDesc(c.boost, "XP boost for speed")},
		},
	}
}

// Evaluate checks the attempt's completion time.
func (c *SpeedDemon) Evaluate(ctx context.Context, evalCtx *trait.EvalContext) (bool, error) {
	a := evalCtx.Attempt
	logrus.Debugf("evaluating speed demon for player %s: seconds=%d, max=%d", a.PlayerID, a.CompletionTime, c.maxSeconds)

	return a.Completed && a.CompletionTime < c.maxSeconds, nil
}
