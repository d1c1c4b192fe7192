package scoring

import (
	"strings"
	"testing"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
)

func TestLengthBonus(t *testing.T) {
	tests := []struct {
		length   int
		expected int
	}{
		{length: 3, expected: 0},
		{length: 5, expected: 0},
		{length: 6, expected: 20},
		{length: 7, expected: 40},
		{length: 8, expected: 60},
		{length: 10, expected: 60},
	}

	for _, tt := range tests {
		if got := LengthBonus(tt.length); got != tt.expected {
			t.Errorf("LengthBonus(%d) = %d, expected %d", tt.length, got, tt.expected)
		}
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		level    int
		expected int
	}{
		{name: "puzzle at level 1", word: "puzzle", level: 1, expected: 80},
		{name: "three letters level 1", word: "cat", level: 1, expected: 30},
		{name: "three letters level 3", word: "cat", level: 3, expected: 36},
		{name: "seven letters level 2", word: "trained", level: 2, expected: 121},
		{name: "eight letters level 10", word: "planters", level: 10, expected: 266},
		{name: "level below one clamps", word: "cat", level: 0, expected: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.word, tt.level); got != tt.expected {
				t.Errorf("Score(%q, %d) = %d, expected %d", tt.word, tt.level, got, tt.expected)
			}
		})
	}
}

func TestScore_Monotonic(t *testing.T) {
	for length := 3; length <= 8; length++ {
		word := strings.Repeat("a", length)
		for level := 1; level < 20; level++ {
			if Score(word, level+1) < Score(word, level) {
				t.Errorf("Score decreased with level for length %d at level %d", length, level)
			}
		}
	}

	for level := 1; level <= 20; level++ {
		for length := 3; length < 8; length++ {
			shorter := Score(strings.Repeat("a", length), level)
			longer := Score(strings.Repeat("a", length+1), level)
			if longer < shorter {
				t.Errorf("Score decreased with length at level %d, length %d", level, length)
			}
		}
	}
}

func TestApplyTraitMultiplier(t *testing.T) {
	boost := player.Trait{ID: "early_bird", Benefits: player.Benefits{player.XPBoost{Factor: 1.2}}}
	speed := player.Trait{ID: "speed_demon", Benefits: player.Benefits{player.XPBoost{Factor: 1.5}}}
	double := player.Trait{ID: "quest_hunter", Benefits: player.Benefits{player.DoubleXP{Factor: 2}}}
	fifteen := player.Trait{ID: "custom", Benefits: player.Benefits{player.XPBoost{Factor: 1.15}}}
	cosmetic := player.Trait{ID: "night_owl", Benefits: player.Benefits{player.SpecialContent{Content: "night"}}}

	tests := []struct {
		name     string
		base     int
		traits   []player.Trait
		ctx      Context
		expected int
	}{
		{name: "single xp boost", base: 100, traits: []player.Trait{boost}, expected: 120},
		{name: "no traits", base: 77, expected: 77},
		{name: "boosts multiply", base: 100, traits: []player.Trait{boost, speed}, expected: 180},
		{name: "double xp without streak", base: 100, traits: []player.Trait{double}, expected: 100},
		{name: "double xp on streak", base: 100, traits: []player.Trait{double}, ctx: Context{IsStreak: true}, expected: 200},
		{name: "non-xp benefits ignored", base: 50, traits: []player.Trait{cosmetic}, expected: 50},
		{name: "floors fractional xp", base: 33, traits: []player.Trait{boost}, expected: 39},
		{name: "exact product survives float error", base: 100, traits: []player.Trait{fifteen}, expected: 115},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyTraitMultiplier(tt.base, tt.traits, tt.ctx); got != tt.expected {
				t.Errorf("ApplyTraitMultiplier(%d) = %d, expected %d", tt.base, got, tt.expected)
			}
		})
	}
}

func TestApplyRarity(t *testing.T) {
	if got := ApplyRarity(50, true); got != 150 {
		t.Errorf("ApplyRarity(50, true) = %d, expected 150", got)
	}
	if got := ApplyRarity(50, false); got != 50 {
		t.Errorf("ApplyRarity(50, false) = %d, expected 50", got)
	}
}

func TestAward(t *testing.T) {
	boost := player.Trait{ID: "early_bird", Benefits: player.Benefits{player.XPBoost{Factor: 1.2}}}

	// 30 base -> 36 with boost -> 108 on a rare puzzle
	if got := Award("cat", 1, []player.Trait{boost}, Context{}, true); got != 108 {
		t.Errorf("Award() = %d, expected 108", got)
	}
}
