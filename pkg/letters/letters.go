package letters

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	// MinBagSize is the smallest bag handed to a player.
	MinBagSize = 6
	// MaxBagSize is the largest bag handed to a player.
	MaxBagSize = 8
)

// templates are vowel/consonant balanced letter sets. A level picks one by (level-1) mod len.
var templates = []string{
	"AEIOURST",
	"BRAINSTE",
	"CARETSIN",
	"DARESTIN",
	"FIRESTAN",
	"GRAINSTE",
	"HEARTSIN",
	"LATERSIN",
	"MASTERIN",
	"PLANTERS",
	"STRAINED",
	"TRAINEDS",
	"WATERSIN",
}

// Tile is a single letter placed on the wheel.
type Tile struct {
	ID       string `json:"id"`
	Char     string `json:"char"`
	Position int    `json:"position"`
}

// Bag is the ordered set of tiles for a puzzle.
type Bag struct {
	Tiles  []Tile `json:"tiles"`
	Anchor string `json:"anchor"`
}

// String returns the bag's letters in tile order.
func (b Bag) String() string {
	var sb strings.Builder
	for _, t := range b.Tiles {
		sb.WriteString(t.Char)
	}
	return sb.String()
}

// Counts returns the multiplicity of each lowercase letter in the bag.
func (b Bag) Counts() map[rune]int {
	counts := make(map[rune]int, len(b.Tiles))
	for _, t := range b.Tiles {
		for _, r := range strings.ToLower(t.Char) {
			counts[r]++
		}
	}
	return counts
}

// Tile returns the tile with the given id.
func (b Bag) Tile(id string) (Tile, bool) {
	for _, t := range b.Tiles {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// Generator builds letter bags from the fixed template table.
type Generator struct {
	templates []string
}

// NewGenerator creates a generator over the built-in templates.
func NewGenerator() *Generator {
	return &Generator{templates: templates}
}

// TemplateCount returns how many templates the generator rotates through.
func (g *Generator) TemplateCount() int {
	return len(g.templates)
}

// BagSize returns clamp(5+level/2, 6, 8).
func BagSize(level int) int {
	n := 5 + level/2
	if n < MinBagSize {
		return MinBagSize
	}
	if n > MaxBagSize {
		return MaxBagSize
	}
	return n
}

// Generate returns the bag for a level. The result is deterministic for a given level.
// Levels below 1 are treated as 1.
func (g *Generator) Generate(level int) Bag {
	if level < 1 {
		level = 1
	}

	template := g.templates[(level-1)%len(g.templates)]
	size := BagSize(level)
	if size > len(template) {
		size = len(template)
	}

	bag := Bag{Tiles: make([]Tile, 0, size)}
	for i, r := range template[:size] {
		bag.Tiles = append(bag.Tiles, Tile{
			ID:       fmt.Sprintf("tile-%d", i),
			Char:     string(r),
			Position: i,
		})
	}
	bag.Anchor = bag.Tiles[0].Char

	return bag
}

// Shuffled returns the level's bag with tile order permuted by rng. Tile ids keep following the
// new positions; the letter multiset and anchor are unchanged.
func (g *Generator) Shuffled(level int, rng *rand.Rand) Bag {
	bag := g.Generate(level)
	chars := make([]string, len(bag.Tiles))
	for i, t := range bag.Tiles {
		chars[i] = t.Char
	}

	rng.Shuffle(len(chars), func(i, j int) { chars[i], chars[j] = chars[j], chars[i] })

	for i := range bag.Tiles {
		bag.Tiles[i].Char = chars[i]
	}
	return bag
}
