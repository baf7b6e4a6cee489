// Package ai implements the synthetic guesser: a gate deciding when the bot may guess and one
// guessing strategy per difficulty tier.
package ai

import "strings"

type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty accepts the tier names case-insensitively. Anything else yields Easy, false.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy, true
	case Medium:
		return Medium, true
	case Hard:
		return Hard, true
	}
	return Easy, false
}

func (d Difficulty) String() string {
	return string(d)
}

// Title is the display form used in bot names, e.g. "Medium".
func (d Difficulty) Title() string {
	switch d {
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	}
	return "Easy"
}
