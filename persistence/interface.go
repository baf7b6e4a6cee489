// persistence/interface.go
package persistence

import (
	"context"
	"errors"

	"github.com/wfunc/drawguess/models"
)

// Database archives finished games. Nothing is ever read back into a live room.
type Database interface {
	SaveGameRecord(ctx context.Context, record *models.GameRecord) error
	RecentGameRecords(ctx context.Context, limit int) ([]models.GameRecord, error)
	GameRecordsByRoom(ctx context.Context, roomCode string) ([]models.GameRecord, error)
	Close() error
}

var (
	ErrRecordNotFound = errors.New("record not found")
)
