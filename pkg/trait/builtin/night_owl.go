package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	"github.com/sirupsen/logrus"
)

const (
	// NightOwlID is the identifier for the night owl trait
	NightOwlID = "night_owl"

	// DefaultNightOwlStartHour is the first hour of the night window (inclusive)
	DefaultNightOwlStartHour = 0

	// DefaultNightOwlEndHour is the end of the night window (exclusive)
	DefaultNightOwlEndHour = 4

	// DefaultNightOwlContent is the content pack granted by the trait
	DefaultNightOwlContent = "night_theme"
)

// NightOwl unlocks when an attempt ends during the night window.
type NightOwl struct {
	config    trait.Config
	startHour int
	endHour   int
	content   string
}

// NewNightOwl creates a new night owl condition.
func NewNightOwl(config trait.Config) *NightOwl {
	startHour := config.GetInt("start_hour", DefaultNightOwlStartHour)
	endHour := config.GetInt("end_hour", DefaultNightOwlEndHour)

	logrus.Infof("creating night owl trait with window=[%d,%d)", startHour, endHour)

	return &NightOwl{
		config:    config,
		startHour: startHour,
		endHour:   endHour,
		content:   config.GetString("content", DefaultNightOwlContent),
	}
}

// ID returns the trait identifier.
func (c *NightOwl) ID() string {
	return c.config.ID
}

// Name returns the trait name.
func (c *NightOwl) Name() string {
	return c.config.DisplayName("Night Owl")
}

// Config returns the condition configuration.
func (c *NightOwl) Config() trait.Config {
	return c.config
}

// Trait returns the night owl trait with its benefits.
func (c *NightOwl) Trait() player.Trait {
	return player.Trait{
		ID:   c.ID(),
		Name: c.Name(),
		Benefits: player.Benefits{
			player.SpecialContent{Content: c.content, Desc: "Night-themed puzzle content"},
		},
	}
}

// Evaluate checks the hour the attempt ended in the evaluation location.
func (c *NightOwl) Evaluate(ctx context.Context, evalCtx *trait.EvalContext) (bool, error) {
	if c.startHour < 0 || c.endHour > 24 || c.startHour >= c.endHour {
		return false, fmt.Errorf("invalid night window [%d,%d)", c.startHour, c.endHour)
	}

	hour := evalCtx.Attempt.EndTime.In(evalCtx.Location).Hour()
	logrus.Debugf("evaluating night owl for player %s: hour=%d", evalCtx.Attempt.PlayerID, hour)

	return hour >= c.startHour && hour < c.endHour, nil
}
