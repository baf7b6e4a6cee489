package ai

import (
	"math/rand"

	"github.com/wfunc/drawguess/words"
)

// Guesser is the single synthetic guesser shared by every room.
type Guesser struct {
	policy     Policy
	strategies map[Difficulty]Strategy
}

func NewGuesser(p Policy) *Guesser {
	return &Guesser{
		policy: p,
		strategies: map[Difficulty]Strategy{
			Easy:   StrategyFor(Easy, p),
			Medium: StrategyFor(Medium, p),
			Hard:   StrategyFor(Hard, p),
		},
	}
}

func (g *Guesser) Policy() Policy {
	return g.policy
}

// Next returns the bot's next guess if the gate allows one. The guess is normalized and never
// a member of in.Used.
func (g *Guesser) Next(d Difficulty, gate GateState, in Input, rng *rand.Rand) (string, bool) {
	if !g.policy.Ready(d, gate) {
		return "", false
	}
	s, ok := g.strategies[d]
	if !ok {
		s = g.strategies[Easy]
	}
	in.GuessNumber = gate.Guesses + 1

	guess := words.Normalize(s.Guess(in, rng))
	if guess == "" || in.used(guess) {
		return "", false
	}
	return guess, true
}
