package puzzle

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/dictionary"
	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
	"github.com/AccelByte/extend-word-puzzle/pkg/metrics"
	"github.com/sirupsen/logrus"
)

// DefaultRareChance is the probability that a generated puzzle is rare.
const DefaultRareChance = 0.1

// ReleaseHook is called after a new puzzle becomes current.
type ReleaseHook func(ctx context.Context, p *Puzzle)

// Config configures a Manager. Zero values fall back to defaults.
type Config struct {
	Location   *time.Location
	RareChance float64
	Now        func() time.Time
	Rand       *rand.Rand
	OnRelease  ReleaseHook
}

// Manager owns the current puzzle and rotates it lazily on read.
type Manager struct {
	generator *letters.Generator
	index     *dictionary.Index
	cfg       Config

	mu      sync.Mutex
	current *Puzzle
}

// NewManager creates a puzzle manager.
func NewManager(generator *letters.Generator, index *dictionary.Index, cfg Config) *Manager {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.RareChance <= 0 {
		cfg.RareChance = DefaultRareChance
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Manager{
		generator: generator,
		index:     index,
		cfg:       cfg,
	}
}

// Now returns the manager's clock reading.
func (m *Manager) Now() time.Time {
	return m.cfg.Now()
}

// Current returns the active puzzle, generating a new one when there is none
// or the current one has expired.
func (m *Manager) Current(ctx context.Context) *Puzzle {
	p, _ := m.Tick(ctx)
	return p
}

// Tick performs the expiry check and reports whether a new puzzle was released.
func (m *Manager) Tick(ctx context.Context) (*Puzzle, bool) {
	m.mu.Lock()
	now := m.cfg.Now()
	if m.current != nil && !m.current.IsExpired(now) {
		p := m.current
		m.mu.Unlock()
		return p, false
	}

	if m.current != nil {
		logrus.Infof("puzzle %s expired at %s", m.current.ID, m.current.ExpiryTime.Format(time.RFC3339))
	}
	p := m.generate(now)
	m.current = p
	m.mu.Unlock()

	if m.cfg.OnRelease != nil {
		m.cfg.OnRelease(ctx, p)
	}
	return p, true
}

// TimeUntilNext returns the time left until the next release.
func (m *Manager) TimeUntilNext() time.Duration {
	now := m.cfg.Now()
	next := ReleaseTime(now, m.cfg.Location).Add(RotationWindow)
	if d := next.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Run calls Tick every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p, rotated := m.Tick(ctx); rotated {
				logrus.Debugf("rotated to puzzle %s", p.ID)
			}
		}
	}
}

func (m *Manager) generate(now time.Time) *Puzzle {
	release := ReleaseTime(now, m.cfg.Location)
	difficulty := DifficultyForHour(release.Hour())
	level := DifficultyLevel(difficulty)
	isRare := m.cfg.Rand.Float64() < m.cfg.RareChance

	category := CategoryStandard
	if isRare {
		category = CategoryRareDrop
	}

	bag := m.generator.Shuffled(level, m.cfg.Rand)
	p := &Puzzle{
		ID:             MakeID(release),
		ReleaseTime:    release,
		ExpiryTime:     release.Add(RotationWindow),
		Category:       category,
		Difficulty:     difficulty,
		Level:          level,
		Letters:        bag,
		AvailableWords: m.index.ComputeAvailable(bag, level),
		XPReward:       XPReward(difficulty, isRare),
		IsActive:       true,
		IsRare:         isRare,
	}

	metrics.PuzzlesGeneratedTotal.WithLabelValues(string(difficulty), strconv.FormatBool(isRare)).Inc()
	logrus.Infof("generated puzzle %s (difficulty=%s, rare=%v, letters=%s, words=%d, vowels=%.2f, commonness=%.1f)",
		p.ID, p.Difficulty, p.IsRare, bag.String(), len(p.AvailableWords), bag.VowelRatio(), bag.Commonness())

	return p
}
