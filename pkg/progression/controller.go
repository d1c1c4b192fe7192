// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package progression

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/common"
	"github.com/AccelByte/extend-word-puzzle/pkg/dictionary"
	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
	"github.com/AccelByte/extend-word-puzzle/pkg/metrics"
	"github.com/AccelByte/extend-word-puzzle/pkg/mission"
	"github.com/AccelByte/extend-word-puzzle/pkg/notifier"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/puzzle"
	"github.com/AccelByte/extend-word-puzzle/pkg/session"
	"github.com/AccelByte/extend-word-puzzle/pkg/store"
	"github.com/AccelByte/extend-word-puzzle/pkg/trait"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// PuzzleSource supplies the current puzzle and the game clock.
type PuzzleSource interface {
	Current(ctx context.Context) *puzzle.Puzzle
	Now() time.Time
}

// SessionView is the client view of a player's session.
type SessionView struct {
	SessionID   string                     `json:"sessionId"`
	PlayerID    string                     `json:"playerId"`
	PuzzleID    string                     `json:"puzzleId"`
	CurrentWord string                     `json:"currentWord"`
	Selected    []letters.Tile             `json:"selected"`
	Discovered  []dictionary.CandidateWord `json:"discovered"`
	TotalWords  int                        `json:"totalWords"`
	Score       int                        `json:"score"`
	HintsUsed   int                        `json:"hintsUsed"`
	HintsLeft   int                        `json:"hintsLeft"`
	Accuracy    int                        `json:"accuracy"`
	Completed   bool                       `json:"completed"`
	StartTime   time.Time                  `json:"startTime"`
}

// SubmitResult is a submission outcome with the player's updated totals.
type SubmitResult struct {
	session.Result
	SessionScore   int             `json:"sessionScore"`
	TotalXP        int             `json:"totalXP"`
	Level          int             `json:"level"`
	UnlockedTraits []player.Trait  `json:"unlockedTraits,omitempty"`
	Attempt        *player.Attempt `json:"attempt,omitempty"`
}

// Controller owns player sessions and applies their results to profiles.
// Every mutation is persisted; notifications are fire-and-forget.
type Controller struct {
	puzzles    PuzzleSource
	store      *store.Store
	evaluator  *trait.Evaluator
	dispatcher *notifier.Dispatcher
	board      *mission.Board

	mu      sync.Mutex
	players map[string]*playerState
}

type playerState struct {
	mu          sync.Mutex
	profile     *player.Profile
	progress    *player.Progress
	session     *session.Session
	lastAttempt *player.Attempt
}

// NewController creates a progression controller.
// A nil evaluator, dispatcher or board falls back to an empty or default one.
func NewController(
	puzzles PuzzleSource,
	st *store.Store,
	evaluator *trait.Evaluator,
	dispatcher *notifier.Dispatcher,
	board *mission.Board,
) *Controller {
	if evaluator == nil {
		logrus.Warnf("[TEST MODE] no trait evaluator configured, traits will not unlock")
		evaluator = trait.NewEvaluator(trait.NewRegistry(), puzzles.Now, nil)
	}
	if dispatcher == nil {
		logrus.Warnf("[TEST MODE] no notifier dispatcher configured, rewards service will not be notified")
		dispatcher = notifier.NewDispatcher(notifier.NewRegistry(), 0)
	}
	if board == nil {
		board = mission.NewBoard()
	}

	return &Controller{
		puzzles:    puzzles,
		store:      st,
		evaluator:  evaluator,
		dispatcher: dispatcher,
		board:      board,
		players:    make(map[string]*playerState),
	}
}

// StartSession starts a session on the current puzzle or resumes the existing one.
func (c *Controller) StartSession(ctx context.Context, playerID string) (*SessionView, error) {
	scope := common.GetScopeFromContext(ctx, "Controller.StartSession")
	defer scope.Finish()

	current := c.puzzles.Current(scope.Ctx)

	st, err := c.acquire(scope.Ctx, playerID)
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}
	defer st.mu.Unlock()

	if st.session != nil && st.session.Puzzle.ID == current.ID {
		scope.Log.Debugf("resuming session %s for player %s", st.session.ID, playerID)
		return newSessionView(st.session), nil
	}
	if HasAttempted(st.profile, current.ID) {
		return nil, fmt.Errorf("%w: %s", ErrPuzzleFinished, current.ID)
	}
	if st.session != nil && !st.session.IsComplete() {
		scope.Log.Infof("player %s left puzzle %s unfinished", playerID, st.session.Puzzle.ID)
	}

	st.session = session.New(playerID, current, session.Options{
		Traits:   append([]player.Trait(nil), st.profile.Traits...),
		IsStreak: st.profile.IsStreak(),
		Now:      c.puzzles.Now,
	})
	st.lastAttempt = nil

	if err := c.save(scope.Ctx, st); err != nil {
		scope.TraceError(err)
		return nil, err
	}

	scope.Log.Infof("started session %s for player %s on puzzle %s", st.session.ID, playerID, current.ID)
	return newSessionView(st.session), nil
}

// Session returns the player's session view.
func (c *Controller) Session(ctx context.Context, playerID string) (*SessionView, error) {
	var view *SessionView
	err := c.withSession(ctx, playerID, func(st *playerState) error {
		view = newSessionView(st.session)
		return nil
	})
	return view, err
}

// Select appends a tile to the player's selection.
func (c *Controller) Select(ctx context.Context, playerID, tileID string) (session.Selection, error) {
	var sel session.Selection
	err := c.withSession(ctx, playerID, func(st *playerState) error {
		var err error
		sel, err = st.session.Select(tileID)
		return err
	})
	return sel, err
}

// Deselect rewinds the player's selection to before a tile.
func (c *Controller) Deselect(ctx context.Context, playerID, tileID string) (session.Selection, error) {
	var sel session.Selection
	err := c.withSession(ctx, playerID, func(st *playerState) error {
		var err error
		sel, err = st.session.Deselect(tileID)
		return err
	})
	return sel, err
}

// Clear drops the player's selection.
func (c *Controller) Clear(ctx context.Context, playerID string) (session.Selection, error) {
	var sel session.Selection
	err := c.withSession(ctx, playerID, func(st *playerState) error {
		sel = st.session.Clear()
		return nil
	})
	return sel, err
}

// Hint reveals the start of an undiscovered word.
func (c *Controller) Hint(ctx context.Context, playerID string) (string, error) {
	var hint string
	err := c.withSession(ctx, playerID, func(st *playerState) error {
		var err error
		if hint, err = st.session.Hint(); err != nil {
			return err
		}
		metrics.HintsUsedTotal.Inc()
		return nil
	})
	return hint, err
}

// Submit validates the current word. Accepted words are credited to the
// profile right away; the last word completes the puzzle.
func (c *Controller) Submit(ctx context.Context, playerID string) (*SubmitResult, error) {
	scope := common.GetScopeFromContext(ctx, "Controller.Submit")
	defer scope.Finish()
	scope.AddBaggage("player_id", playerID)

	var out *SubmitResult
	err := c.withSession(scope.Ctx, playerID, func(st *playerState) error {
		result := st.session.Submit()
		metrics.SubmissionsTotal.WithLabelValues(string(result.Outcome)).Inc()
		scope.TraceTag("outcome", string(result.Outcome))

		out = &SubmitResult{Result: result}
		if result.Outcome == session.OutcomeAccepted {
			c.recordWord(scope, st, result.XP)
			if result.Completed {
				out.Attempt, out.UnlockedTraits = c.complete(scope, st)
			}
		}

		out.SessionScore = st.session.Score()
		out.TotalXP = st.profile.TotalXP
		out.Level = st.profile.Level
		return nil
	})
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}
	return out, nil
}

// Finish ends the player's session. An unfinished puzzle is recorded as a
// partial attempt, which breaks the streak.
func (c *Controller) Finish(ctx context.Context, playerID string) (*player.Attempt, error) {
	scope := common.GetScopeFromContext(ctx, "Controller.Finish")
	defer scope.Finish()

	var attempt *player.Attempt
	err := c.withSession(scope.Ctx, playerID, func(st *playerState) error {
		s := st.session
		st.session = nil

		if s.IsComplete() {
			attempt = st.lastAttempt
			return nil
		}

		partial := c.newAttempt(s, false)
		RecordAttempt(st.profile, partial)
		c.persist(scope, st)

		scope.Log.Infof("player %s finished puzzle %s early: accuracy=%d, words=%d",
			playerID, partial.PuzzleID, partial.Accuracy, len(partial.WordsFound))
		attempt = &partial
		return nil
	})
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}
	return attempt, nil
}

// Profile returns a snapshot of the player's profile.
func (c *Controller) Profile(ctx context.Context, playerID string) (*player.Profile, error) {
	st, err := c.acquire(ctx, playerID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	return snapshotProfile(st.profile), nil
}

// Progress returns a snapshot of the player's progress record.
func (c *Controller) Progress(ctx context.Context, playerID string) (*player.Progress, error) {
	st, err := c.acquire(ctx, playerID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	return snapshotProgress(st.progress), nil
}

// LinkWallet stores the player's wallet address.
func (c *Controller) LinkWallet(ctx context.Context, playerID, walletAddress string) (*player.Profile, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return nil, ErrInvalidWallet
	}

	st, err := c.acquire(ctx, playerID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	st.profile.WalletAddress = walletAddress
	if err := c.save(ctx, st); err != nil {
		return nil, err
	}

	logrus.Infof("player %s linked wallet %s", playerID, walletAddress)
	return snapshotProfile(st.profile), nil
}

// SetSound stores the player's sound preference.
func (c *Controller) SetSound(ctx context.Context, playerID string, enabled bool) (*player.Progress, error) {
	st, err := c.acquire(ctx, playerID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	st.progress.SoundEnabled = enabled
	if err := c.save(ctx, st); err != nil {
		return nil, err
	}
	return snapshotProgress(st.progress), nil
}

// Missions returns the player's missions for the current puzzle.
func (c *Controller) Missions(ctx context.Context, playerID string) ([]mission.Mission, error) {
	current := c.puzzles.Current(ctx)

	st, err := c.acquire(ctx, playerID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	return c.board.For(st.profile, WindowOf(current)), nil
}

// Claim grants a completed mission's rewards.
func (c *Controller) Claim(ctx context.Context, playerID, missionID string) (*mission.Claimed, error) {
	scope := common.GetScopeFromContext(ctx, "Controller.Claim")
	defer scope.Finish()

	current := c.puzzles.Current(scope.Ctx)

	st, err := c.acquire(scope.Ctx, playerID)
	if err != nil {
		scope.TraceError(err)
		return nil, err
	}
	defer st.mu.Unlock()

	claimed, err := c.board.Claim(st.profile, missionID, WindowOf(current))
	if err != nil {
		return nil, err
	}

	st.progress.Level = st.profile.Level
	for _, t := range claimed.Traits {
		metrics.TraitsUnlockedTotal.WithLabelValues(t.ID).Inc()
	}
	c.persist(scope, st)
	c.refreshSession(st)

	recipient := Recipient(st.profile)
	c.dispatcher.MissionClaimed(scope.Ctx, recipient, missionID)
	if len(claimed.Traits) > 0 {
		c.dispatcher.TraitsUnlocked(scope.Ctx, recipient, heldTraits(st.profile))
	}

	return claimed, nil
}

func (c *Controller) recordWord(scope *common.Scope, st *playerState, xp int) {
	before := st.profile.Level

	st.profile.AddXP(xp)
	st.progress.TotalScore += xp
	st.progress.Level = st.profile.Level

	if st.profile.Level > before {
		scope.Log.Infof("player %s reached level %d", st.profile.ID, st.profile.Level)
	}
	c.persist(scope, st)
}

func (c *Controller) complete(parent *common.Scope, st *playerState) (*player.Attempt, []player.Trait) {
	scope := parent.NewChildScope("Controller.complete")
	defer scope.Finish()

	attempt := c.newAttempt(st.session, true)
	scope.SetAttributes("completion_seconds", attempt.CompletionTime)
	scope.SetAttributes("words_found", attempt.WordsFound)

	unlocked := c.evaluator.Evaluate(scope.Ctx, st.profile, attempt)
	for _, t := range unlocked {
		if st.profile.AddTrait(t) {
			metrics.TraitsUnlockedTotal.WithLabelValues(t.ID).Inc()
		}
	}
	attempt.TraitsAwarded = lo.Map(unlocked, func(t player.Trait, _ int) string { return t.ID })

	RecordAttempt(st.profile, attempt)
	c.persist(scope, st)
	c.refreshSession(st)
	st.lastAttempt = &attempt
	metrics.CompletionsTotal.Inc()
	scope.TraceEvent("puzzle completed")

	scope.Log.Infof("player %s completed puzzle %s in %ds: xp=%d, traits=%v, streak=%d",
		st.profile.ID, attempt.PuzzleID, attempt.CompletionTime, attempt.XPEarned, attempt.TraitsAwarded, st.profile.StreakCount)

	recipient := Recipient(st.profile)
	c.dispatcher.MissionCompleted(scope.Ctx, recipient, attempt.PuzzleID, notifier.MissionResults{
		CompletionTime: attempt.CompletionTime,
		Accuracy:       attempt.Accuracy,
		WordsFound:     attempt.WordsFound,
		XPEarned:       attempt.XPEarned,
	})
	if len(unlocked) > 0 {
		c.dispatcher.TraitsUnlocked(scope.Ctx, recipient, heldTraits(st.profile))
	}

	return &attempt, unlocked
}

// heldTraits copies the player's full trait set. The rewards service replaces
// its record on every update.
func heldTraits(profile *player.Profile) []player.Trait {
	return append([]player.Trait(nil), profile.Traits...)
}

func (c *Controller) newAttempt(s *session.Session, completed bool) player.Attempt {
	end := c.puzzles.Now()
	return player.Attempt{
		ID:                uuid.NewString(),
		PuzzleID:          s.Puzzle.ID,
		PlayerID:          s.PlayerID,
		PuzzleReleaseTime: s.Puzzle.ReleaseTime,
		StartTime:         s.StartTime,
		EndTime:           end,
		WordsFound:        s.FoundWords(),
		Accuracy:          s.Accuracy(),
		CompletionTime:    int(end.Sub(s.StartTime).Seconds()),
		XPEarned:          s.Score(),
		Completed:         completed,
	}
}

// refreshSession lets the remaining words of a session score with newly
// unlocked traits and the updated streak.
func (c *Controller) refreshSession(st *playerState) {
	if st.session == nil {
		return
	}
	st.session.UpdateContext(append([]player.Trait(nil), st.profile.Traits...), st.profile.IsStreak())
}

// acquire returns the player's state locked, loading it on first use.
func (c *Controller) acquire(ctx context.Context, playerID string) (*playerState, error) {
	if playerID == "" {
		return nil, ErrInvalidPlayer
	}

	c.mu.Lock()
	st, ok := c.players[playerID]
	if !ok {
		st = &playerState{}
		c.players[playerID] = st
	}
	c.mu.Unlock()

	st.mu.Lock()
	if st.profile == nil {
		if err := c.load(ctx, playerID, st); err != nil {
			st.mu.Unlock()
			return nil, err
		}
	}
	return st, nil
}

func (c *Controller) withSession(ctx context.Context, playerID string, fn func(st *playerState) error) error {
	st, err := c.acquire(ctx, playerID)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	if st.session == nil {
		return ErrNoSession
	}
	return fn(st)
}

func (c *Controller) load(ctx context.Context, playerID string, st *playerState) error {
	profile, err := c.store.LoadProfile(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		logrus.Infof("no saved profile for player %s, starting fresh", playerID)
		profile = player.NewProfile(playerID, c.puzzles.Now())
	}

	progress, err := c.store.LoadProgress(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	if progress == nil {
		progress = player.DefaultProgress()
		progress.Level = profile.Level
	}

	st.profile = profile
	st.progress = progress
	return nil
}

func (c *Controller) save(ctx context.Context, st *playerState) error {
	st.profile.UpdatedAt = c.puzzles.Now()
	if err := c.store.SaveProfile(ctx, st.profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if err := c.store.SaveProgress(ctx, st.profile.ID, st.progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// persist saves after a game mutation. The in-memory state stays
// authoritative on failure and is written again on the next mutation.
func (c *Controller) persist(scope *common.Scope, st *playerState) {
	if err := c.save(scope.Ctx, st); err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("failed to persist player %s: %v", st.profile.ID, err)
	}
}

func newSessionView(s *session.Session) *SessionView {
	sel := s.Selection()
	return &SessionView{
		SessionID:   s.ID,
		PlayerID:    s.PlayerID,
		PuzzleID:    s.Puzzle.ID,
		CurrentWord: sel.Word,
		Selected:    sel.Selected,
		Discovered:  s.Discovered(),
		TotalWords:  len(s.Puzzle.AvailableWords),
		Score:       s.Score(),
		HintsUsed:   s.HintsUsed(),
		HintsLeft:   session.MaxHints - s.HintsUsed(),
		Accuracy:    s.Accuracy(),
		Completed:   s.IsComplete(),
		StartTime:   s.StartTime,
	}
}
