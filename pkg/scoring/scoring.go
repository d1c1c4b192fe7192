package scoring

import (
	"math"
	"unicode/utf8"

	"github.com/AccelByte/extend-word-puzzle/pkg/player"
)

const (
	// PointsPerLetter is the base score for each letter of a word.
	PointsPerLetter = 10
	// RareMultiplier is applied to every award on a rare puzzle.
	RareMultiplier = 3

	// epsilon absorbs float error such as 100*1.15 = 114.99999999999999.
	epsilon = 1e-9
)

// Context carries player state that affects trait multipliers.
type Context struct {
	IsStreak bool
}

// LengthBonus returns the bonus of the highest length tier reached: 20 at 6, 40 at 7, 60 at 8+.
func LengthBonus(length int) int {
	switch {
	case length >= 8:
		return 60
	case length >= 7:
		return 40
	case length >= 6:
		return 20
	default:
		return 0
	}
}

// Score returns floor((len*10 + bonus) * (1 + (level-1)*0.1)).
// The level multiplier is applied in tenths so the result is exact.
func Score(word string, level int) int {
	if level < 1 {
		level = 1
	}
	length := utf8.RuneCountInString(word)
	points := length*PointsPerLetter + LengthBonus(length)
	return points * (10 + level - 1) / 10
}

// TraitMultiplier returns the combined multiplier of the given traits.
func TraitMultiplier(traits []player.Trait, ctx Context) float64 {
	multiplier := 1.0
	for _, t := range traits {
		for _, b := range t.Benefits {
			switch v := b.(type) {
			case player.XPBoost:
				multiplier *= v.Factor
			case player.DoubleXP:
				if ctx.IsStreak {
					multiplier *= v.Factor
				}
			case player.EarlyAccess, player.SpecialContent:
				// no scoring effect
			}
		}
	}
	return multiplier
}

// ApplyTraitMultiplier scales baseXP by the traits' XP benefits and floors the result.
func ApplyTraitMultiplier(baseXP int, traits []player.Trait, ctx Context) int {
	return int(math.Floor(float64(baseXP)*TraitMultiplier(traits, ctx) + epsilon))
}

// ApplyRarity triples xp for rare puzzles.
func ApplyRarity(xp int, isRare bool) int {
	if isRare {
		return xp * RareMultiplier
	}
	return xp
}

// Award is the XP for a word after traits and rarity.
func Award(word string, level int, traits []player.Trait, ctx Context, isRare bool) int {
	return ApplyRarity(ApplyTraitMultiplier(Score(word, level), traits, ctx), isRare)
}
