package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/wfunc/drawguess/models"
)

const DefaultMemoryCapacity = 100

// MemoryStore keeps the most recent game records in process, for when no database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	records  []models.GameRecord
	capacity int
	nextID   uint
}

func NewMemoryStore(capacity int) *MemoryStore {
	if capacity < 1 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{capacity: capacity, nextID: 1}
}

func (m *MemoryStore) SaveGameRecord(ctx context.Context, record *models.GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	record.ID = m.nextID
	m.nextID++
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = record.CreatedAt

	m.records = append(m.records, *record)
	if len(m.records) > m.capacity {
		m.records = m.records[len(m.records)-m.capacity:]
	}
	return nil
}

// RecentGameRecords returns up to limit records, newest first.
func (m *MemoryStore) RecentGameRecords(ctx context.Context, limit int) ([]models.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]models.GameRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *MemoryStore) GameRecordsByRoom(ctx context.Context, roomCode string) ([]models.GameRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.GameRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].RoomCode == roomCode {
			out = append(out, m.records[i])
		}
	}
	if len(out) == 0 {
		return nil, ErrRecordNotFound
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
