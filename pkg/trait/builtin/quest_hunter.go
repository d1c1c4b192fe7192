package builtin

import (
	"context"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	// QuestHunterID is the identifier for the quest hunter trait
	QuestHunterID = "quest_hunter"

	// DefaultQuestHunterMinAttempts is the number of completions needed in one day
	DefaultQuestHunterMinAttempts = 10
)

// QuestHunter unlocks after many completed puzzles on the same calendar day.
type QuestHunter struct {
	config      trait.Config
	minAttempts int
	factor      float64
}

// NewQuestHunter creates a new quest hunter condition.
func NewQuestHunter(config trait.Config) *QuestHunter {
	minAttempts := config.GetInt("min_attempts", DefaultQuestHunterMinAttempts)

	logrus.Infof("creating quest hunter trait with min_attempts=%d", minAttempts)

	return &QuestHunter{
		config:      config,
		minAttempts: minAttempts,
		factor:      config.GetFloat("double_xp", 2),
	}
}

// ID returns the trait identifier.
func (c *QuestHunter) ID() string {
	return c.config.ID
}

// Name returns the trait name.
func (c *QuestHunter) Name() string {
	return c.config.DisplayName("Quest Hunter")
}

// Config returns the condition configuration.
func (c *QuestHunter) Config() trait.Config {
	return c.config
}

// Trait returns the quest hunter trait with its benefits.
func (c *QuestHunter) Trait() player.Trait {
	return player.Trait{
		ID:   c.ID(),
		Name: c.Name(),
		Benefits: player.Benefits{
			player.DoubleXP{Factor: c.factor, Desc: "Double XP on streaks"},
		},
	}
}

// Evaluate counts completed attempts that ended on today's date.
func (c *QuestHunter) Evaluate(ctx context.Context, evalCtx *trait.EvalContext) (bool, error) {
	today := evalCtx.Now.In(evalCtx.Location)
	count := lo.CountBy(evalCtx.History, func(a player.Attempt) bool {
		return a.Completed && sameDay(a.EndTime.In(evalCtx.Location), today)
	})

	logrus.Debugf("evaluating quest hunter for player %s: today=%d, min=%d", evalCtx.Attempt.PlayerID, count, c.minAttempts)

	return count >= c.minAttempts, nil
}
