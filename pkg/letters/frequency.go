package letters

import "strings"

// frequency is the relative frequency (percent) of letters in English text.
var frequency = map[string]float64{
	"E": 12.7, "T": 9.1, "A": 8.2, "O": 7.5, "I": 7.0, "N": 6.7,
	"S": 6.3, "H": 6.1, "R": 6.0, "D": 4.3, "L": 4.0, "C": 2.8,
	"U": 2.8, "M": 2.4, "W": 2.4, "F": 2.2, "G": 2.0, "Y": 2.0,
	"P": 1.9, "B": 1.3, "V": 1.0, "K": 0.8, "J": 0.15, "X": 0.15,
	"Q": 0.10, "Z": 0.07,
}

// Frequency returns the relative frequency of a letter, or 0 for non-letters.
func Frequency(letter string) float64 {
	return frequency[strings.ToUpper(letter)]
}

// IsVowel reports whether the letter is one of AEIOU.
func IsVowel(letter string) bool {
	return strings.ContainsAny(strings.ToUpper(letter), "AEIOU") && len(letter) == 1
}

// VowelRatio returns the share of vowels in the bag.
func (b Bag) VowelRatio() float64 {
	if len(b.Tiles) == 0 {
		return 0
	}
	vowels := 0
	for _, t := range b.Tiles {
		if IsVowel(t.Char) {
			vowels++
		}
	}
	return float64(vowels) / float64(len(b.Tiles))
}

// Commonness returns the mean English frequency of the bag's letters.
// Bags of rare letters yield fewer dictionary words.
func (b Bag) Commonness() float64 {
	if len(b.Tiles) == 0 {
		return 0
	}
	total := 0.0
	for _, t := range b.Tiles {
		total += Frequency(t.Char)
	}
	return total / float64(len(b.Tiles))
}
