package trait

import (
	"context"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
)

// Condition decides whether a finished attempt unlocks a trait.
// Conditions are registered in a Registry and evaluated by the Evaluator.
type Condition interface {
	// ID returns the trait identifier the condition unlocks.
	ID() string

	// Name returns the human-readable trait name.
	Name() string

	// Evaluate reports whether the trait unlocks for the attempt.
	// Returns error only for unexpected failures, not mismatches.
	Evaluate(ctx context.Context, evalCtx *EvalContext) (bool, error)

	// Trait returns the trait instance granted when the condition holds.
	Trait() player.Trait

	// Config returns the condition's configuration.
	Config() Config
}

// EvalContext is the input shared by all conditions for one attempt.
type EvalContext struct {
	Profile *player.Profile
	Attempt player.Attempt
	// History is the profile history with the attempt appended when absent.
	History  []player.Attempt
	Now      time.Time
	Location *time.Location
}

// NewEvalContext builds the context for an attempt, appending it to the history
// when the profile does not hold it yet.
func NewEvalContext(profile *player.Profile, attempt player.Attempt, now time.Time, loc *time.Location) *EvalContext {
	if loc == nil {
		loc = time.Local
	}

	history := append([]player.Attempt(nil), profile.PuzzleHistory...)
	seen := false
	for _, a := range history {
		if attempt.ID != "" && a.ID == attempt.ID {
			seen = true
			break
		}
	}
	if !seen {
		history = append(history, attempt)
	}

	return &EvalContext{
		Profile:  profile,
		Attempt:  attempt,
		History:  history,
		Now:      now,
		Location: loc,
	}
}
