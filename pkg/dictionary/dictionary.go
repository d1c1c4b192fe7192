package dictionary

import (
	_ "embed"
	"sort"
	"strings"
	"sync"

	"github.com/AccelByte/extend-word-puzzle/pkg/letters"
	"github.com/AccelByte/extend-word-puzzle/pkg/scoring"
	"github.com/samber/lo"
)

const (
	// MinWordLength is the shortest word a player can submit.
	MinWordLength = 3
	// MaxWordLength is the longest word kept in the dictionary.
	MaxWordLength = 8
)

//go:embed words.txt
var bundledWords string

var (
	bundledOnce  sync.Once
	bundledIndex *Index
)

// CandidateWord is a word that can be formed from the current puzzle's letters.
type CandidateWord struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
	Found bool   `json:"found"`
}

// Index is a read-only dictionary grouped by word length.
type Index struct {
	byLength map[int][]string
	words    map[string]struct{}
}

// New builds an index from a word list. Words are lowercased, deduplicated and
// kept in list order; words outside 3..8 letters are dropped.
func New(words []string) *Index {
	normalized := lo.Uniq(lo.Map(words, func(w string, _ int) string {
		return strings.ToLower(strings.TrimSpace(w))
	}))

	idx := &Index{
		byLength: make(map[int][]string),
		words:    make(map[string]struct{}, len(normalized)),
	}
	for _, w := range normalized {
		n := len(w)
		if n < MinWordLength || n > MaxWordLength {
			continue
		}
		idx.byLength[n] = append(idx.byLength[n], w)
		idx.words[w] = struct{}{}
	}
	return idx
}

// Bundled returns the index over the embedded word list.
func Bundled() *Index {
	bundledOnce.Do(func() {
		bundledIndex = New(parse(bundledWords))
	})
	return bundledIndex
}

func parse(raw string) []string {
	var words []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.Fields(line)...)
	}
	return words
}

// Words returns the dictionary bucket for a word length.
func (i *Index) Words(length int) []string {
	return i.byLength[length]
}

// Contains reports whether the word is in the dictionary.
func (i *Index) Contains(word string) bool {
	_, ok := i.words[strings.ToLower(word)]
	return ok
}

// Size returns the number of words in the index.
func (i *Index) Size() int {
	return len(i.words)
}

// MaxLength returns min(8, 5+level), the longest word length offered at a level.
func MaxLength(level int) int {
	return lo.Min([]int{MaxWordLength, 5 + level})
}

// CanSpell reports whether word uses each letter no more often than counts allows.
func CanSpell(word string, counts map[rune]int) bool {
	need := make(map[rune]int, len(word))
	for _, r := range strings.ToLower(word) {
		need[r]++
		if need[r] > counts[r] {
			return false
		}
	}
	return true
}

// ComputeAvailable returns every dictionary word spellable from the bag with a
// length in [3, MaxLength(level)], scored for the level. Results are ordered by
// length, then by dictionary order.
func (i *Index) ComputeAvailable(bag letters.Bag, level int) []CandidateWord {
	counts := bag.Counts()

	var result []CandidateWord
	for length := MinWordLength; length <= MaxLength(level); length++ {
		for _, w := range i.byLength[length] {
			if !CanSpell(w, counts) {
				continue
			}
			result = append(result, CandidateWord{
				Word:  w,
				Score: scoring.Score(w, level),
			})
		}
	}

	sort.SliceStable(result, func(a, b int) bool {
		return len(result[a].Word) < len(result[b].Word)
	})
	return result
}
