package ai

// Policy gates synthetic guesses. All durations are in round ticks.
type Policy struct {
	MinDelay        int
	MinDelayMedium  int
	MinStrokes      int
	MaxGuesses      int
	Spacing         int
	NonsenseGuesses int
}

func DefaultPolicy() Policy {
	return Policy{
		MinDelay:        10,
		MinDelayMedium:  5,
		MinStrokes:      40,
		MaxGuesses:      6,
		Spacing:         5,
		NonsenseGuesses: 3,
	}
}

// GateState is the per-round bookkeeping the gate looks at.
type GateState struct {
	Elapsed     int
	Guesses     int
	LastGuessAt int
	Strokes     int
}

// Ready reports whether a bot of tier d may guess now.
func (p Policy) Ready(d Difficulty, s GateState) bool {
	delay := p.MinDelay
	if d == Medium {
		delay = p.MinDelayMedium
	}
	switch {
	case s.Elapsed < delay:
		return false
	case s.Guesses >= p.MaxGuesses:
		return false
	case s.Guesses > 0 && s.Elapsed-s.LastGuessAt < p.Spacing:
		return false
	case s.Strokes < p.MinStrokes:
		return false
	}
	return true
}
