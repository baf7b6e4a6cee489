package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_InitialState(t *testing.T) {
	sm := NewMachine()
	assert.Equal(t, Idle, sm.Current())
	assert.False(t, sm.InGame())
}

func TestMachine_RoundLifecycle(t *testing.T) {
	sm := NewMachine()
	var seen [][2]Phase
	sm.OnChange(func(from, to Phase) { seen = append(seen, [2]Phase{from, to}) })

	steps := []Phase{Preparing, AwaitingWordChoice, Active, Ended, Preparing, Active, Ended, GameOver, Preparing}
	for _, p := range steps {
		require.NoError(t, sm.ChangeState(p), "-> %s", p)
	}
	assert.Len(t, seen, len(steps))
	assert.Equal(t, [2]Phase{Idle, Preparing}, seen[0])
	assert.Equal(t, [2]Phase{GameOver, Preparing}, seen[len(seen)-1])
}

func TestMachine_RejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []Phase
		to   Phase
	}{
		{"idle to active", nil, Active},
		{"idle to ended", nil, Ended},
		{"preparing to ended", []Phase{Preparing}, Ended},
		{"active to preparing", []Phase{Preparing, Active}, Preparing},
		{"active to game over", []Phase{Preparing, Active}, GameOver},
		{"game over twice", []Phase{Preparing, Active, Ended, GameOver}, GameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewMachine()
			for _, p := range tt.path {
				require.NoError(t, sm.ChangeState(p))
			}
			before := sm.Current()

			err := sm.ChangeState(tt.to)
			assert.True(t, errors.Is(err, ErrTransitionNotAllowed))
			assert.Equal(t, before, sm.Current())
		})
	}
}

func TestMachine_ResetAndIs(t *testing.T) {
	sm := NewMachine()
	require.NoError(t, sm.ChangeState(Preparing))
	require.NoError(t, sm.ChangeState(Active))

	assert.True(t, sm.Is(Active, Ended))
	assert.True(t, sm.InGame())

	sm.Reset()
	assert.Equal(t, Idle, sm.Current())
}
