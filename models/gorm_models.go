// models/gorm_models.go
package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GameRecord is the archived form of a finished game.
type GameRecord struct {
	gorm.Model
	RoomCode string         `gorm:"index;not null"`
	Rounds   int            `gorm:"not null"`
	Winner   string         `gorm:"not null;default:''"`
	Scores   datatypes.JSON `gorm:"type:jsonb;not null"`
	History  datatypes.JSON `gorm:"type:jsonb;not null"`
}

// NewGameRecord encodes a summary for storage. The winner is the highest score, first listed on ties.
func NewGameRecord(s GameSummary) (*GameRecord, error) {
	scores, err := json.Marshal(s.Scores)
	if err != nil {
		return nil, fmt.Errorf("encode scores: %w", err)
	}
	if s.History == nil {
		s.History = []HistoryEntry{}
	}
	history, err := json.Marshal(s.History)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}

	rec := &GameRecord{
		RoomCode: s.RoomCode,
		Rounds:   s.Rounds,
		Scores:   datatypes.JSON(scores),
		History:  datatypes.JSON(history),
	}
	best := -1
	for _, e := range s.Scores {
		if e.Score > best {
			best = e.Score
			rec.Winner = e.Name
		}
	}
	if !s.FinishedAt.IsZero() {
		rec.CreatedAt = s.FinishedAt
	}
	return rec, nil
}

// Summary decodes the stored JSON columns back into a GameSummary.
func (r *GameRecord) Summary() (GameSummary, error) {
	s := GameSummary{RoomCode: r.RoomCode, Rounds: r.Rounds, FinishedAt: r.CreatedAt}
	if len(r.Scores) > 0 {
		if err := json.Unmarshal(r.Scores, &s.Scores); err != nil {
			return s, fmt.Errorf("decode scores: %w", err)
		}
	}
	if len(r.History) > 0 {
		if err := json.Unmarshal(r.History, &s.History); err != nil {
			return s, fmt.Errorf("decode history: %w", err)
		}
	}
	return s, nil
}
