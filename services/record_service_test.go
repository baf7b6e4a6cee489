package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/persistence"
)

type failingDB struct {
	*persistence.MemoryStore
}

func (f *failingDB) SaveGameRecord(context.Context, *models.GameRecord) error {
	return errors.New("connection refused")
}

func TestRecordService_RecordAndRecent(t *testing.T) {
	store := persistence.NewMemoryStore(10)
	svc := NewRecordService(store, time.Second)

	svc.RecordGame(models.GameSummary{
		RoomCode: "ABCD",
		Rounds:   3,
		Scores:   []models.ScoreEntry{{ID: "a", Name: "Alice", Score: 20}},
		History:  []models.HistoryEntry{{Round: 1, Word: "cat", DrawerName: "Alice", Reason: "timeUp"}},
	})
	svc.RecordGame(models.GameSummary{RoomCode: "WXYZ", Rounds: 1})
	svc.Wait()

	games, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, games, 2)

	codes := []string{games[0].RoomCode, games[1].RoomCode}
	assert.ElementsMatch(t, []string{"ABCD", "WXYZ"}, codes)
	for _, g := range games {
		if g.RoomCode == "ABCD" {
			assert.Equal(t, "cat", g.History[0].Word)
			assert.Equal(t, 20, g.Scores[0].Score)
		}
	}
}

func TestRecordService_SaveFailureIsLogged(t *testing.T) {
	db := &failingDB{MemoryStore: persistence.NewMemoryStore(1)}
	svc := NewRecordService(db, time.Second)

	assert.NotPanics(t, func() {
		svc.RecordGame(models.GameSummary{RoomCode: "ABCD"})
		svc.Wait()
	})

	games, err := svc.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestRecordService_ByRoom(t *testing.T) {
	store := persistence.NewMemoryStore(10)
	svc := NewRecordService(store, time.Second)

	svc.RecordGame(models.GameSummary{RoomCode: "ABCD", Rounds: 1})
	svc.RecordGame(models.GameSummary{RoomCode: "WXYZ", Rounds: 2})
	svc.RecordGame(models.GameSummary{RoomCode: "ABCD", Rounds: 3})
	svc.Wait()

	games, err := svc.ByRoom(context.Background(), "ABCD")
	require.NoError(t, err)
	require.Len(t, games, 2)
	for _, g := range games {
		assert.Equal(t, "ABCD", g.RoomCode)
	}

	games, err = svc.ByRoom(context.Background(), "QQQQ")
	require.NoError(t, err)
	assert.Empty(t, games)
}
