package trait

import (
	"context"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/sirupsen/logrus"
)

// Evaluator decides which traits a finished attempt newly unlocks.
type Evaluator struct {
	registry *Registry
	now      func() time.Time
	location *time.Location
}

// NewEvaluator creates an evaluator over a registry.
func NewEvaluator(registry *Registry, now func() time.Time, loc *time.Location) *Evaluator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Evaluator{
		registry: registry,
		now:      now,
		location: loc,
	}
}

// Evaluate returns the traits that unlock for the attempt and are not yet held.
// It does not modify the profile.
func (e *Evaluator) Evaluate(ctx context.Context, profile *player.Profile, attempt player.Attempt) []player.Trait {
	evalCtx := NewEvalContext(profile, attempt, e.now(), e.location)

	var unlocked []player.Trait
	for _, condition := range e.registry.GetEnabled() {
		if profile.HasTrait(condition.ID()) {
			continue
		}

		matched, err := condition.Evaluate(ctx, evalCtx)
		if err != nil {
			logrus.Errorf("trait %s evaluation failed: %v", condition.ID(), err)
			// Continue evaluating other traits even if one fails
			continue
		}

		if matched {
			logrus.Infof("trait %s unlocked for player %s", condition.ID(), profile.ID)
			unlocked = append(unlocked, condition.Trait())
		}
	}

	return unlocked
}
