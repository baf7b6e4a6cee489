package state

import (
	"errors"
	"fmt"
)

// Phase is the round lifecycle position of a room.
type Phase string

const (
	Idle               Phase = "idle"
	Preparing          Phase = "preparing"
	AwaitingWordChoice Phase = "awaitingWordChoice"
	Active             Phase = "active"
	Ended              Phase = "ended"
	GameOver           Phase = "gameOver"
)

// ErrTransitionNotAllowed is returned when a state transition is not allowed.
var ErrTransitionNotAllowed = errors.New("state transition not allowed")

// Machine tracks one room's phase. It is owned by the event loop and not safe for concurrent use.
type Machine struct {
	current     Phase
	transitions map[Phase]map[Phase]struct{}
	onChange    func(from, to Phase)
}

// NewMachine starts in Idle with the round transition table installed.
func NewMachine() *Machine {
	sm := &Machine{
		current:     Idle,
		transitions: make(map[Phase]map[Phase]struct{}),
	}
	sm.AddTransition(Idle, Preparing)
	sm.AddTransition(Preparing, AwaitingWordChoice)
	sm.AddTransition(Preparing, Active)
	sm.AddTransition(AwaitingWordChoice, Active)
	sm.AddTransition(AwaitingWordChoice, Ended)
	sm.AddTransition(Active, Ended)
	sm.AddTransition(Ended, Preparing)
	sm.AddTransition(Ended, GameOver)
	sm.AddTransition(GameOver, Preparing)
	return sm
}

func (sm *Machine) AddTransition(from, to Phase) {
	if _, exists := sm.transitions[from]; !exists {
		sm.transitions[from] = make(map[Phase]struct{})
	}
	sm.transitions[from][to] = struct{}{}
}

// OnChange registers a hook run after every successful transition.
func (sm *Machine) OnChange(fn func(from, to Phase)) {
	sm.onChange = fn
}

func (sm *Machine) Can(to Phase) bool {
	_, ok := sm.transitions[sm.current][to]
	return ok
}

func (sm *Machine) ChangeState(to Phase) error {
	if !sm.Can(to) {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, sm.current, to)
	}
	from := sm.current
	sm.current = to
	if sm.onChange != nil {
		sm.onChange(from, to)
	}
	return nil
}

func (sm *Machine) Current() Phase {
	return sm.current
}

// Is reports whether the current phase is any of phases.
func (sm *Machine) Is(phases ...Phase) bool {
	for _, p := range phases {
		if sm.current == p {
			return true
		}
	}
	return false
}

// InGame reports whether a game is running, i.e. neither Idle nor GameOver.
func (sm *Machine) InGame() bool {
	return !sm.Is(Idle, GameOver)
}

// Reset forces Idle regardless of the table.
func (sm *Machine) Reset() {
	from := sm.current
	sm.current = Idle
	if sm.onChange != nil && from != Idle {
		sm.onChange(from, Idle)
	}
}
