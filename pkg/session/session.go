package session

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AccelByte/extend-word-puzzle/pkg/dictionary"
	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/puzzle"
	"github.com/AccelByte/extend-word-puzzle/pkg/scoring"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	// MaxHints is the number of hints available per session.
	MaxHints = 3
	// HintRevealLength is how many leading letters a hint shows.
	HintRevealLength = 2
	// RejectionClearDelay is the suggested debounce before clearing a rejected selection.
	RejectionClearDelay = 500 * time.Millisecond
)

// Outcome classifies a submission.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeTooShort  Outcome = "too_short"
	OutcomeInvalid   Outcome = "invalid"
	OutcomeDuplicate Outcome = "duplicate"
)

// Selection is the state after a selection change.
type Selection struct {
	Word     string         `json:"word"`
	Selected []letters.Tile `json:"selected"`
	// PendingSubmit is set once the word is long enough to be submitted.
	// The caller confirms it by calling Submit after its own debounce.
	PendingSubmit bool `json:"pendingSubmit"`
}

// Result is the outcome of a submission.
type Result struct {
	Outcome      Outcome `json:"outcome"`
	Word         string  `json:"word"`
	XP           int     `json:"xp"`
	Completed    bool    `json:"completed"`
	ClearPending bool    `json:"clearPending"`
}

// Options carries the player context a session scores with.
type Options struct {
	Traits   []player.Trait
	IsStreak bool
	Now      func() time.Time
	Rand     *rand.Rand
}

// Session is one player's state on one puzzle. It is not safe for concurrent use.
type Session struct {
	ID        string
	PlayerID  string
	Puzzle    *puzzle.Puzzle
	StartTime time.Time

	opts       Options
	selected   []letters.Tile
	discovered []dictionary.CandidateWord
	score      int
	hintsUsed  int
	completed  bool
}

// New starts a session on a puzzle.
func New(playerID string, p *puzzle.Puzzle, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Session{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Puzzle:    p,
		StartTime: opts.Now(),
		opts:      opts,
	}
}

// CurrentWord returns the concatenation of the selected tiles.
func (s *Session) CurrentWord() string {
	var sb strings.Builder
	for _, t := range s.selected {
		sb.WriteString(t.Char)
	}
	return sb.String()
}

// Select appends a tile to the selection. Selecting a tile twice is a no-op.
func (s *Session) Select(tileID string) (Selection, error) {
	tile, ok := s.Puzzle.Letters.Tile(tileID)
	if !ok {
		return s.Selection(), ErrUnknownTile
	}

	if !s.isSelected(tileID) {
		s.selected = append(s.selected, tile)
	}
	return s.Selection(), nil
}

// Deselect rewinds the selection to just before the given tile.
func (s *Session) Deselect(tileID string) (Selection, error) {
	if _, ok := s.Puzzle.Letters.Tile(tileID); !ok {
		return s.Selection(), ErrUnknownTile
	}

	_, idx, found := lo.FindIndexOf(s.selected, func(t letters.Tile) bool { return t.ID == tileID })
	if found {
		s.selected = s.selected[:idx]
	}
	return s.Selection(), nil
}

// Clear drops the whole selection.
func (s *Session) Clear() Selection {
	s.selected = nil
	return s.Selection()
}

// Submit classifies the word currently selected. The word is read at call time.
func (s *Session) Submit() Result {
	current := s.CurrentWord()
	word := strings.ToLower(current)

	if utf8.RuneCountInString(word) < dictionary.MinWordLength || !s.Puzzle.ActiveAt(s.opts.Now()) {
		return Result{Outcome: OutcomeTooShort, Word: current, ClearPending: true}
	}

	candidate, ok := s.Puzzle.HasWord(word)
	if !ok {
		return Result{Outcome: OutcomeInvalid, Word: current, ClearPending: true}
	}

	if s.isDiscovered(word) {
		return Result{Outcome: OutcomeDuplicate, Word: current, ClearPending: true}
	}

	candidate.Found = true
	s.discovered = append(s.discovered, candidate)

	xp := scoring.Award(word, s.Puzzle.Level, s.opts.Traits, scoring.Context{IsStreak: s.opts.IsStreak}, s.Puzzle.IsRare)
	s.score += xp
	s.selected = nil

	result := Result{Outcome: OutcomeAccepted, Word: current, XP: xp}
	if !s.completed && len(s.discovered) == len(s.Puzzle.AvailableWords) {
		s.completed = true
		result.Completed = true
	}
	return result
}

// Hint reveals the first letters of a random undiscovered word.
func (s *Session) Hint() (string, error) {
	if s.hintsUsed >= MaxHints {
		return "", ErrNoHintsLeft
	}

	remaining := lo.Filter(s.Puzzle.AvailableWords, func(w dictionary.CandidateWord, _ int) bool {
		return !s.isDiscovered(w.Word)
	})
	if len(remaining) == 0 {
		return "", ErrNothingToHint
	}

	s.hintsUsed++
	return Mask(remaining[s.opts.Rand.Intn(len(remaining))].Word), nil
}

// Mask shows the first two letters of a word and hides the rest behind '*'.
func Mask(word string) string {
	runes := []rune(word)
	if len(runes) <= HintRevealLength {
		return word
	}
	return string(runes[:HintRevealLength]) + strings.Repeat("*", len(runes)-HintRevealLength)
}

// Discovered returns the words found so far in discovery order.
func (s *Session) Discovered() []dictionary.CandidateWord {
	return append([]dictionary.CandidateWord(nil), s.discovered...)
}

// FoundWords returns the discovered word texts.
func (s *Session) FoundWords() []string {
	return lo.Map(s.discovered, func(w dictionary.CandidateWord, _ int) string { return w.Word })
}

// Score returns the XP earned in this session.
func (s *Session) Score() int { return s.score }

// HintsUsed returns the number of hints revealed.
func (s *Session) HintsUsed() int { return s.hintsUsed }

// IsComplete reports whether every available word was found.
func (s *Session) IsComplete() bool { return s.completed }

// Accuracy returns floor(found/available*100).
func (s *Session) Accuracy() int {
	total := len(s.Puzzle.AvailableWords)
	if total == 0 {
		return 0
	}
	return len(s.discovered) * 100 / total
}

// UpdateContext replaces the traits and streak flag used for future awards.
func (s *Session) UpdateContext(traits []player.Trait, isStreak bool) {
	s.opts.Traits = traits
	s.opts.IsStreak = isStreak
}

// Selection returns the current selection state.
func (s *Session) Selection() Selection {
	word := s.CurrentWord()
	return Selection{
		Word:          word,
		Selected:      append([]letters.Tile(nil), s.selected...),
		PendingSubmit: utf8.RuneCountInString(word) >= dictionary.MinWordLength,
	}
}

func (s *Session) isSelected(tileID string) bool {
	return lo.ContainsBy(s.selected, func(t letters.Tile) bool { return t.ID == tileID })
}

func (s *Session) isDiscovered(word string) bool {
	return lo.ContainsBy(s.discovered, func(w dictionary.CandidateWord) bool { return w.Word == word })
}
