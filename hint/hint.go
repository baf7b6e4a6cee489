// Package hint masks secret words and discloses letters progressively.
// Masks are strings of the same rune length as the word, with '_' for hidden positions.
package hint

import (
	"math/rand"
	"strings"
)

const Hidden = '_'

// Mask hides every non-space rune of word; spaces stay visible.
func Mask(word string) string {
	var b strings.Builder
	for _, r := range word {
		if r == ' ' {
			b.WriteRune(' ')
		} else {
			b.WriteRune(Hidden)
		}
	}
	return b.String()
}

// RevealOne discloses one hidden position of word chosen uniformly at random. The mask is
// returned unchanged when nothing is left to reveal or when word and mask disagree in length.
func RevealOne(rng *rand.Rand, word, mask string) string {
	w := []rune(word)
	m := []rune(mask)
	if len(w) != len(m) {
		return mask
	}

	hidden := make([]int, 0, len(m))
	for i, r := range m {
		if r == Hidden && w[i] != ' ' {
			hidden = append(hidden, i)
		}
	}
	if len(hidden) == 0 {
		return mask
	}

	i := hidden[rng.Intn(len(hidden))]
	m[i] = w[i]
	return string(m)
}

// Revealed counts disclosed letters, not spaces.
func Revealed(mask string) int {
	n := 0
	for _, r := range mask {
		if r != Hidden && r != ' ' {
			n++
		}
	}
	return n
}

// Letters counts non-space positions.
func Letters(mask string) int {
	n := 0
	for _, r := range mask {
		if r != ' ' {
			n++
		}
	}
	return n
}

// Consistent reports whether candidate could be the masked word: same length and every
// disclosed position matches.
func Consistent(mask, candidate string) bool {
	m := []rune(mask)
	c := []rune(candidate)
	if len(m) != len(c) {
		return false
	}
	for i, r := range m {
		if r == Hidden {
			continue
		}
		if r != c[i] {
			return false
		}
	}
	return true
}
