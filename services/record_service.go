// services/record_service.go
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/persistence"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

// RecordService archives finished games off the event loop.
type RecordService struct {
	db      persistence.Database
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRecordService(db persistence.Database, timeout time.Duration) *RecordService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RecordService{db: db, timeout: timeout}
}

// RecordGame stores a summary on its own goroutine. Failures are logged, never returned.
func (s *RecordService) RecordGame(summary models.GameSummary) {
	rec, err := models.NewGameRecord(summary)
	if err != nil {
		logger.Log.Errorw("encode game record", "room", summary.RoomCode, "error", err)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.db.SaveGameRecord(ctx, rec); err != nil {
			logger.Log.Errorw("save game record", "room", summary.RoomCode, "error", err)
			return
		}
		logger.Log.Infow("game archived", "room", summary.RoomCode, "id", rec.ID, "winner", rec.Winner)
	}()
}

// Recent returns archived games newest first. limit is clamped to [1, MaxRecentLimit].
func (s *RecordService) Recent(ctx context.Context, limit int) ([]models.GameSummary, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	limit = min(limit, MaxRecentLimit)

	records, err := s.db.RecentGameRecords(ctx, limit)
	if err != nil {
		return nil, err
	}
	return summaries(records), nil
}

// ByRoom returns every archived game played under a room code.
func (s *RecordService) ByRoom(ctx context.Context, roomCode string) ([]models.GameSummary, error) {
	records, err := s.db.GameRecordsByRoom(ctx, roomCode)
	if errors.Is(err, persistence.ErrRecordNotFound) {
		return []models.GameSummary{}, nil
	}
	if err != nil {
		return nil, err
	}
	return summaries(records), nil
}

func summaries(records []models.GameRecord) []models.GameSummary {
	out := make([]models.GameSummary, 0, len(records))
	for i := range records {
		sum, err := records[i].Summary()
		if err != nil {
			logger.Log.Warnw("skipping unreadable game record", "id", records[i].ID, "error", err)
			continue
		}
		out = append(out, sum)
	}
	return out
}

// Wait blocks until pending writes finish, used on shutdown.
func (s *RecordService) Wait() {
	s.wg.Wait()
}
