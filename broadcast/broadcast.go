// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/session"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Broadcaster delivers notifications to the members of a room or to one player.
type Broadcaster interface {
	BroadcastToRoom(code string, event string, payload any) error
	SendTo(playerID string, event string, payload any) error
}

// RoomBroadcaster resolves room members to their sessions. Synthetic players are skipped.
type RoomBroadcaster struct {
	registry       *room.Registry
	sessionManager *session.Manager
}

func NewRoomBroadcaster(registry *room.Registry, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		registry:       registry,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(code string, event string, payload any) error {
	r, exists := b.registry.Get(code)
	if !exists {
		return ErrRoomNotFound
	}

	frame, err := network.Encode(event, payload)
	if err != nil {
		return err
	}

	for _, p := range r.Players {
		if p.IsAI {
			continue
		}
		s, ok := b.sessionManager.Get(p.ID)
		if !ok {
			continue
		}
		if err := s.Send(frame); err != nil {
			logger.Log.Warnw("dropped notification", "room", code, "player", p.ID, "event", event, "error", err)
		}
	}
	return nil
}

func (b *RoomBroadcaster) SendTo(playerID string, event string, payload any) error {
	s, ok := b.sessionManager.Get(playerID)
	if !ok {
		return ErrSessionNotFound
	}
	frame, err := network.Encode(event, payload)
	if err != nil {
		return err
	}
	return s.Send(frame)
}
