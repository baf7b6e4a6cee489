// models/models.go
package models

import (
	"math"
	"time"
)

// Stroke event kinds.
const (
	StrokePenUp   = "penUp"
	StrokePenDown = "penDown"
	StrokeDraw    = "draw"
	StrokeErase   = "erase"
)

// StrokeEvent is one drawing primitive relayed between clients. Coordinates are canvas pixels
// and only meaningful for draw and erase events.
type StrokeEvent struct {
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Color     string  `json:"color,omitempty"`
	LineWidth float64 `json:"lineWidth,omitempty"`
}

// Valid reports whether the event has a known kind and finite coordinates.
func (e StrokeEvent) Valid() bool {
	switch e.Type {
	case StrokePenUp, StrokePenDown:
		return true
	case StrokeDraw, StrokeErase:
		return finite(e.X) && finite(e.Y)
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type Point struct {
	X float64
	Y float64
}

// PlayerInfo is the public view of a roster entry.
type PlayerInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	IsAI  bool   `json:"isAI"`
}

type ScoreEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// HistoryEntry records one finished round.
type HistoryEntry struct {
	Round           int      `json:"round"`
	Word            string   `json:"word"`
	DrawerName      string   `json:"drawerName"`
	CorrectGuessers []string `json:"correctGuessers"`
	Reason          string   `json:"reason"`
}

// GameSummary is what the server knows about a game once it reaches game over.
type GameSummary struct {
	RoomCode   string         `json:"roomCode"`
	Rounds     int            `json:"rounds"`
	Scores     []ScoreEntry   `json:"scores"`
	History    []HistoryEntry `json:"history"`
	FinishedAt time.Time      `json:"finishedAt"`
}
