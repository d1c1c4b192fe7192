package puzzle

import (
	"fmt"
	"time"

	"github.com/AccelByte/extend-word-puzzle/pkg/dictionary"
	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
)

// Difficulty of a puzzle.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
	DifficultyMaster Difficulty = "master"
)

// Category of a puzzle.
type Category string

const (
	CategoryStandard  Category = "standard"
	CategoryThemed    Category = "themed"
	CategoryChallenge Category = "challenge"
	CategoryRareDrop  Category = "rare_drop"
)

// RotationWindow is how long a puzzle stays active.
const RotationWindow = time.Hour

var xpRewards = map[Difficulty]int{
	DifficultyEasy:   100,
	DifficultyMedium: 200,
	DifficultyHard:   350,
	DifficultyExpert: 500,
	DifficultyMaster: 750,
}

var difficultyLevels = map[Difficulty]int{
	DifficultyEasy:   1,
	DifficultyMedium: 3,
	DifficultyHard:   6,
	DifficultyExpert: 10,
	DifficultyMaster: 15,
}

// Puzzle is one hourly puzzle. It is never mutated after creation.
type Puzzle struct {
	ID             string                     `json:"id"`
	ReleaseTime    time.Time                  `json:"releaseTime"`
	ExpiryTime     time.Time                  `json:"expiryTime"`
	Category       Category                   `json:"category"`
	Difficulty     Difficulty                 `json:"difficulty"`
	Level          int                        `json:"level"`
	Letters        letters.Bag                `json:"letters"`
	AvailableWords []dictionary.CandidateWord `json:"availableWords"`
	XPReward       int                        `json:"xpReward"`
	IsActive       bool                       `json:"isActive"`
	IsRare         bool                       `json:"isRare"`
}

// IsExpired reports whether now is past the expiry time.
func (p *Puzzle) IsExpired(now time.Time) bool {
	return now.After(p.ExpiryTime)
}

// ActiveAt reports whether the puzzle accepts submissions at now.
func (p *Puzzle) ActiveAt(now time.Time) bool {
	return p.IsActive && !p.IsExpired(now)
}

// HasWord reports whether word is one of the puzzle's available words.
func (p *Puzzle) HasWord(word string) (dictionary.CandidateWord, bool) {
	for _, w := range p.AvailableWords {
		if w.Word == word {
			return w, true
		}
	}
	return dictionary.CandidateWord{}, false
}

// MakeID returns puzzle_<release unix millis>.
func MakeID(release time.Time) string {
	return fmt.Sprintf("puzzle_%d", release.UnixMilli())
}

// ReleaseTime returns the top of the hour containing now in loc.
func ReleaseTime(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, loc)
}

// DifficultyForHour maps an hour of the day to a difficulty.
func DifficultyForHour(hour int) Difficulty {
	switch {
	case hour >= 6 && hour < 9:
		return DifficultyEasy
	case hour >= 9 && hour < 12:
		return DifficultyMedium
	case hour >= 12 && hour < 14:
		return DifficultyHard
	case hour >= 14 && hour < 18:
		return DifficultyMedium
	case hour >= 18 && hour < 22:
		return DifficultyHard
	default:
		return DifficultyExpert
	}
}

// XPReward returns the reward budget of a puzzle, tripled when rare.
func XPReward(d Difficulty, isRare bool) int {
	xp := xpRewards[d]
	if isRare {
		xp *= 3
	}
	return xp
}

// DifficultyLevel returns the generator level used for a difficulty.
func DifficultyLevel(d Difficulty) int {
	if level, ok := difficultyLevels[d]; ok {
		return level
	}
	return 1
}
