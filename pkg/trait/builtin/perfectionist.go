package builtin

import (
	"context"
	"sort"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// PerfectionistID is the identifier for the perfectionist trait
	PerfectionistID = "perfectionist"

	// DefaultPerfectionistWindow is the number of most recent attempts inspected
	DefaultPerfectionistWindow = 5
)

// Perfectionist unlocks when the most recent completed attempts all hit 100% accuracy.
type Perfectionist struct {
	config trait.Config
	window int
	boost  float64
}

// NewPerfectionist creates a new perfectionist condition.
func NewPerfectionist(config trait.Config) *Perfectionist {
	window := config.GetInt("window", DefaultPerfectionistWindow)

	logrus.Infof("creating perfectionist trait with window=%d", window)

	return &Perfectionist{
		config: config,
		window: window,
		boost:  config.GetFloat("xp_boost", 1.3),
	}
}

// ID returns the trait identifier.
func (c *Perfectionist) ID() string {
	return c.config.ID
}

// Name returns the trait name.
func (c *Perfectionist) Name() string {
	return c.config.DisplayName("Perfectionist")
}

// Config returns the condition configuration.
func (c *Perfectionist) Config() trait.Config {
	return c.config
}

// Trait returns the perfectionist trait with its benefits.
func (c *Perfectionist) Trait() player.Trait {
	return player.Trait{
		ID:   c.ID(),
		Name: c.Name(),
		Benefits: player.Benefits{
			player.XPBoost{Factor: c.boost, Desc: percentDesc(c.boost, "XP boost for accuracy")},
		},
	}
}

// Evaluate inspects the most recent completed attempts by end time.
func (c *Perfectionist) Evaluate(ctx context.Context, evalCtx *trait.EvalContext) (bool, error) {
	if c.window <= 0 {
		return false, nil
	}

	completed := lo.Filter(evalCtx.History, func(a player.Attempt, _ int) bool {
		return a.Completed
	})
	if len(completed) < c.window {
		return false, nil
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].EndTime.After(completed[j].EndTime)
	})

	recent := completed[:c.window]
	perfect := lo.EveryBy(recent, func(a player.Attempt) bool {
		return a.Accuracy == 100
	})

	logrus.Debugf("evaluating perfectionist for player %s: recent=%d, perfect=%t", evalCtx.Attempt.PlayerID, len(recent), perfect)

	return perfect, nil
}
