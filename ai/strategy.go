package ai

import (
	"math/rand"

	"github.com/wfunc/drawguess/hint"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/words"
)

// Input is everything a strategy may look at when producing one guess.
type Input struct {
	Target      string
	Mask        string
	GuessNumber int
	Elapsed     int
	Duration    int
	Used        map[string]struct{}
	Catalog     *words.Catalog
	Strokes     []models.Point
}

func (in Input) used(w string) bool {
	_, ok := in.Used[words.Normalize(w)]
	return ok
}

// Strategy produces a guess, or "" to pass this turn.
type Strategy interface {
	Guess(in Input, rng *rand.Rand) string
}

// EasyStrategy opens with non-words, then picks any catalog word of the right length.
type EasyStrategy struct {
	Nonsense int
}

func (s EasyStrategy) Guess(in Input, rng *rand.Rand) string {
	n := len([]rune(in.Target))
	if in.GuessNumber <= s.Nonsense {
		return nonsenseWord(rng, n, in)
	}
	return pick(rng, filter(in.Catalog.WithLength(n), func(w string) bool { return !in.used(w) }))
}

// MediumStrategy picks any catalog word that fits the disclosed letters.
type MediumStrategy struct{}

func (MediumStrategy) Guess(in Input, rng *rand.Rand) string {
	return pick(rng, candidates(in))
}

// CheatModel gives the probability of guessing the secret outright, growing with how much of
// the word or the round has gone by.
type CheatModel struct {
	Base float64
	Gain float64
	Max  float64
}

func (c CheatModel) Probability(in Input) float64 {
	var known, elapsed float64
	if letters := hint.Letters(in.Mask); letters > 0 {
		known = float64(hint.Revealed(in.Mask)) / float64(letters)
	}
	if in.Duration > 0 {
		elapsed = float64(in.Elapsed) / float64(in.Duration)
	}
	p := c.Base + c.Gain*max(known, elapsed)
	return max(0, min(c.Max, p))
}

// HardStrategy sometimes knows the answer, otherwise ranks mask-consistent candidates by
// letter evidence and the drawing's inferred shape.
type HardStrategy struct {
	Cheat CheatModel
}

func (s HardStrategy) Guess(in Input, rng *rand.Rand) string {
	if !in.used(in.Target) && rng.Float64() < s.Cheat.Probability(in) {
		return words.Normalize(in.Target)
	}

	cands := candidates(in)
	if len(cands) == 0 {
		return ""
	}
	shape, haveShape := InferShape(in.Strokes)

	best, bestScore := "", -1.0
	for _, w := range cands {
		score := letterScore(in.Mask, w) + 0.5
		if haveShape {
			p := in.Catalog.Profile(w)
			if p.Shape == shape.Shape {
				score += 0.75
			}
			if p.Complexity == shape.Complexity {
				score += 0.25
			}
		}
		score += rng.Float64() * 0.2
		if score > bestScore {
			best, bestScore = w, score
		}
	}
	return best
}

// StrategyFor returns the canonical strategy of a tier.
func StrategyFor(d Difficulty, p Policy) Strategy {
	switch d {
	case Medium:
		return MediumStrategy{}
	case Hard:
		return HardStrategy{Cheat: CheatModel{Base: 0.1, Gain: 0.05, Max: 0.98}}
	}
	return EasyStrategy{Nonsense: p.NonsenseGuesses}
}

// letterScore is one point per disclosed letter the candidate shares, plus half a point when
// that letter repeats within the candidate.
func letterScore(mask, candidate string) float64 {
	m := []rune(mask)
	c := []rune(candidate)
	counts := make(map[rune]int, len(c))
	for _, r := range c {
		counts[r]++
	}

	score := 0.0
	for i, r := range m {
		if r == hint.Hidden || r == ' ' || i >= len(c) || c[i] != r {
			continue
		}
		score++
		if counts[r] > 1 {
			score += 0.5
		}
	}
	return score
}

func candidates(in Input) []string {
	return filter(in.Catalog.WithLength(len([]rune(in.Target))), func(w string) bool {
		return hint.Consistent(in.Mask, w) && !in.used(w)
	})
}

func filter(ws []string, keep func(string) bool) []string {
	out := ws[:0:0]
	for _, w := range ws {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

func pick(rng *rand.Rand, ws []string) string {
	if len(ws) == 0 {
		return ""
	}
	return ws[rng.Intn(len(ws))]
}

const nonsenseAttempts = 32

func nonsenseWord(rng *rand.Rand, target int, in Input) string {
	lo := max(3, target-2)
	hi := max(lo, target+2)
	for i := 0; i < nonsenseAttempts; i++ {
		n := lo + rng.Intn(hi-lo+1)
		b := make([]byte, n)
		for j := range b {
			b[j] = byte('a' + rng.Intn(26))
		}
		w := string(b)
		if in.Catalog.Contains(w) || in.used(w) {
			continue
		}
		return w
	}
	return ""
}
