package session

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/dictionary"
	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
	"github.com/AccelByte/extend-word-puzzle/pkg/player"
	"github.com/AccelByte/extend-word-puzzle/pkg/puzzle"
)

var testNow = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

// newTestPuzzle builds a level-1 puzzle over CATS with a fixed word list.
func newTestPuzzle(rare bool, words ...string) *puzzle.Puzzle {
	bag := letters.Bag{Anchor: "C"}
	for i, r := range "CATS" {
		bag.Tiles = append(bag.Tiles, letters.Tile{ID: "t" + string(rune('0'+i)), Char: string(r), Position: i})
	}

	release := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	return &puzzle.Puzzle{
		ID:             puzzle.MakeID(release),
		ReleaseTime:    release,
		ExpiryTime:     release.Add(time.Hour),
		Difficulty:     puzzle.DifficultyMedium,
		Level:          1,
		Letters:        bag,
		AvailableWords: dictionary.New(words).ComputeAvailable(bag, 1),
		IsActive:       true,
		IsRare:         rare,
	}
}

func newTestSession(p *puzzle.Puzzle, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(7))
	}
	return New("player-1", p, opts)
}

func selectAll(t *testing.T, s *Session, ids ...string) Selection {
	t.Helper()
	var sel Selection
	for _, id := range ids {
		var err error
		sel, err = s.Select(id)
		if err != nil {
			t.Fatalf("Select(%s) error = %v", id, err)
		}
	}
	return sel
}

func TestSelect(t *testing.T) {
	s := newTestSession(newTestPuzzle(false, "cat", "act"), Options{})

	sel := selectAll(t, s, "t0", "t1")
	if sel.Word != "CA" {
		t.Errorf("Word = %s, expected CA", sel.Word)
	}
	if sel.PendingSubmit {
		t.Error("PendingSubmit should be false below three letters")
	}

	// selecting again is a no-op
	sel = selectAll(t, s, "t1")
	if sel.Word != "CA" || len(sel.Selected) != 2 {
		t.Errorf("re-selecting a tile changed the selection to %s", sel.Word)
	}

	sel = selectAll(t, s, "t2")
	if sel.Word != "CAT" {
		t.Errorf("Word = %s, expected CAT", sel.Word)
	}
	if !sel.PendingSubmit {
		t.Error("PendingSubmit should be true at three letters")
	}

	if _, err := s.Select("missing"); !errors.Is(err, ErrUnknownTile) {
		t.Errorf("Select(missing) error = %v, expected ErrUnknownTile", err)
	}
}

func TestDeselect_Rewinds(t *testing.T) {
	s := newTestSession(newTestPuzzle(false, "cat"), Options{})
	selectAll(t, s, "t0", "t1", "t2", "t3")

	sel, err := s.Deselect("t1")
	if err != nil {
		t.Fatalf("Deselect() error = %v", err)
	}
	if sel.Word != "C" || len(sel.Selected) != 1 {
		t.Errorf("Deselect() left %q (%d tiles), expected C (1 tile)", sel.Word, len(sel.Selected))
	}
	if s.CurrentWord() != "C" {
		t.Errorf("CurrentWord() = %s, expected C", s.CurrentWord())
	}

	// deselecting an unselected tile keeps the selection
	sel, _ = s.Deselect("t3")
	if sel.Word != "C" {
		t.Errorf("Deselect(unselected) changed the word to %s", sel.Word)
	}
}

func TestSubmit_Outcomes(t *testing.T) {
	p := newTestPuzzle(false, "cat", "act", "sat")

	tests := []struct {
		name     string
		tiles    []string
		prepare  func(t *testing.T, s *Session)
		now      time.Time
		expected Outcome
	}{
		{name: "too short", tiles: []string{"t0", "t1"}, expected: OutcomeTooShort},
		{name: "invalid", tiles: []string{"t3", "t0", "t1"}, expected: OutcomeInvalid},
		{name: "accepted", tiles: []string{"t0", "t1", "t2"}, expected: OutcomeAccepted},
		{
			name:  "duplicate",
			tiles: []string{"t0", "t1", "t2"},
			prepare: func(t *testing.T, s *Session) {
				selectAll(t, s, "t0", "t1", "t2")
				s.Submit()
			},
			expected: OutcomeDuplicate,
		},
		{name: "inactive puzzle", tiles: []string{"t0", "t1", "t2"}, now: testNow.Add(2 * time.Hour), expected: OutcomeTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{}
			if !tt.now.IsZero() {
				now := tt.now
				opts.Now = func() time.Time { return now }
			}
			s := newTestSession(p, opts)
			if tt.prepare != nil {
				tt.prepare(t, s)
			}
			selectAll(t, s, tt.tiles...)

			result := s.Submit()
			if result.Outcome != tt.expected {
				t.Errorf("Submit() = %s, expected %s", result.Outcome, tt.expected)
			}
			if tt.expected != OutcomeAccepted {
				if !result.ClearPending {
					t.Error("rejections should request a debounced clear")
				}
				if s.CurrentWord() == "" {
					t.Error("rejections should leave the selection for the caller to clear")
				}
			}
		})
	}
}

func TestSubmit_AcceptedClearsAndScores(t *testing.T) {
	s := newTestSession(newTestPuzzle(false, "cat", "act"), Options{})
	selectAll(t, s, "t0", "t1", "t2")

	result := s.Submit()
	if result.Outcome != OutcomeAccepted || result.XP != 30 {
		t.Fatalf("Submit() = %+v, expected accepted with 30 XP", result)
	}
	if s.CurrentWord() != "" {
		t.Errorf("CurrentWord() = %q, expected cleared selection", s.CurrentWord())
	}
	if s.Score() != 30 {
		t.Errorf("Score() = %d, expected 30", s.Score())
	}
	if got := s.Discovered(); len(got) != 1 || !got[0].Found || got[0].Word != "cat" {
		t.Errorf("Discovered() = %+v, expected [cat found]", got)
	}
}

func TestSubmit_RereadsWordAtSubmitTime(t *testing.T) {
	s := newTestSession(newTestPuzzle(false, "cat", "cats"), Options{})

	sel := selectAll(t, s, "t0", "t1", "t2")
	if !sel.PendingSubmit {
		t.Fatal("expected a pending submit at CAT")
	}
	// another tile arrives before the debounced submit fires
	selectAll(t, s, "t3")

	result := s.Submit()
	if result.Word != "CATS" || result.Outcome != OutcomeAccepted {
		t.Errorf("Submit() = %+v, expected CATS accepted", result)
	}
}

func TestSubmit_RareAndTraitMultipliers(t *testing.T) {
	p := newTestPuzzle(true, "cat")
	boost := player.Trait{ID: "early_bird", Benefits: player.Benefits{player.XPBoost{Factor: 1.2}}}
	s := newTestSession(p, Options{Traits: []player.Trait{boost}})

	selectAll(t, s, "t0", "t1", "t2")
	result := s.Submit()

	// 30 base * 1.2 = 36, tripled for rarity
	if result.XP != 108 {
		t.Errorf("XP = %d, expected 108", result.XP)
	}
}

func TestSubmit_RarePuzzleTriplesBaseXP(t *testing.T) {
	p := newTestPuzzle(true, "cats")
	s := newTestSession(p, Options{})

	selectAll(t, s, "t0", "t1", "t2", "t3")
	if result := s.Submit(); result.XP != 120 {
		t.Errorf("XP = %d, expected 120", result.XP)
	}
}

func TestSubmit_CompletionFiresOnce(t *testing.T) {
	s := newTestSession(newTestPuzzle(false, "cat", "act"), Options{})

	selectAll(t, s, "t0", "t1", "t2")
	if result := s.Submit(); result.Completed {
		t.Fatal("completion fired before all words were found")
	}

	selectAll(t, s, "t1", "t0", "t2")
	result := s.Submit()
	if !result.Completed {
		t.Fatal("completion should fire when the last word is found")
	}
	if !s.IsComplete() || s.Accuracy() != 100 {
		t.Errorf("IsComplete() = %v, Accuracy() = %d, expected complete at 100", s.IsComplete(), s.Accuracy())
	}

	selectAll(t, s, "t0", "t1", "t2")
	if result := s.Submit(); result.Completed || result.Outcome != OutcomeDuplicate {
		t.Errorf("Submit() after completion = %+v, expected duplicate without completion", result)
	}
}

func TestSubmit_DiscoveredIsSubsetWithoutDuplicates(t *testing.T) {
	p := newTestPuzzle(false, "cat", "act", "sat", "cast")
	s := newTestSession(p, Options{})

	sequences := [][]string{
		{"t0", "t1", "t2"},
		{"t0", "t1", "t2"},
		{"t3", "t1", "t2"},
		{"t2", "t1", "t0"},
		{"t0", "t1", "t3", "t2"},
		{"t1", "t0", "t2"},
	}
	for _, seq := range sequences {
		selectAll(t, s, seq...)
		s.Submit()
		s.Clear()
	}

	seen := make(map[string]bool)
	for _, w := range s.Discovered() {
		if seen[w.Word] {
			t.Errorf("word %q discovered twice", w.Word)
		}
		seen[w.Word] = true
		if _, ok := p.HasWord(w.Word); !ok {
			t.Errorf("discovered word %q is not available", w.Word)
		}
	}
	if len(seen) != 4 {
		t.Errorf("discovered %d words, expected 4", len(seen))
	}
}

func TestHint(t *testing.T) {
	s := newTestSession(newTestPuzzle(false, "cat", "cats"), Options{})

	for i := 0; i < MaxHints; i++ {
		hint, err := s.Hint()
		if err != nil {
			t.Fatalf("Hint() error = %v", err)
		}
		if !strings.HasPrefix(hint, "ca") || !strings.HasSuffix(hint, "*") {
			t.Errorf("Hint() = %q, expected a masked word starting with ca", hint)
		}
	}

	if _, err := s.Hint(); !errors.Is(err, ErrNoHintsLeft) {
		t.Errorf("Hint() error = %v, expected ErrNoHintsLeft", err)
	}
	if s.HintsUsed() != MaxHints {
		t.Errorf("HintsUsed() = %d, expected %d", s.HintsUsed(), MaxHints)
	}
}

func TestHint_NothingLeft(t *testing.T) {
	s := newTestSession(newTestPuzzle(false, "cat"), Options{})
	selectAll(t, s, "t0", "t1", "t2")
	s.Submit()

	if _, err := s.Hint(); !errors.Is(err, ErrNothingToHint) {
		t.Errorf("Hint() error = %v, expected ErrNothingToHint", err)
	}
	if s.HintsUsed() != 0 {
		t.Errorf("HintsUsed() = %d, expected 0", s.HintsUsed())
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"cat":      "ca*",
		"planters": "pl******",
		"at":       "at",
	}
	for word, expected := range tests {
		if got := Mask(word); got != expected {
			t.Errorf("Mask(%q) = %q, expected %q", word, got, expected)
		}
	}
}
