package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrokeEvent_Valid(t *testing.T) {
	assert.True(t, StrokeEvent{Type: StrokePenUp}.Valid())
	assert.True(t, StrokeEvent{Type: StrokePenDown}.Valid())
	assert.True(t, StrokeEvent{Type: StrokeDraw, X: 10, Y: 20}.Valid())
	assert.True(t, StrokeEvent{Type: StrokeErase, X: 10, Y: 20}.Valid())
	assert.False(t, StrokeEvent{Type: StrokeErase, X: math.Inf(-1), Y: 20}.Valid())
	assert.False(t, StrokeEvent{Type: "fill"}.Valid())
	assert.False(t, StrokeEvent{Type: StrokeDraw, X: math.NaN()}.Valid())
	assert.False(t, StrokeEvent{Type: StrokeDraw, Y: math.Inf(1)}.Valid())
}

func TestNewGameRecord(t *testing.T) {
	finished := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := GameSummary{
		RoomCode: "ABCD",
		Rounds:   2,
		Scores: []ScoreEntry{
			{ID: "a", Name: "Alice", Score: 15},
			{ID: "b", Name: "Bob", Score: 15},
			{ID: "c", Name: "Cleo", Score: 5},
		},
		History: []HistoryEntry{
			{Round: 1, Word: "cat", DrawerName: "Alice", CorrectGuessers: []string{"Bob"}, Reason: "allGuessed"},
		},
		FinishedAt: finished,
	}

	rec, err := NewGameRecord(s)
	require.NoError(t, err)
	assert.Equal(t, "Alice", rec.Winner)
	assert.Equal(t, finished, rec.CreatedAt)
	assert.JSONEq(t, `[{"round":1,"word":"cat","drawerName":"Alice","correctGuessers":["Bob"],"reason":"allGuessed"}]`, string(rec.History))

	back, err := rec.Summary()
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestNewGameRecord_EmptyHistory(t *testing.T) {
	rec, err := NewGameRecord(GameSummary{RoomCode: "WXYZ"})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(rec.History))
	assert.Equal(t, "", rec.Winner)
}
