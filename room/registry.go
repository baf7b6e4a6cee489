package room

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/wfunc/drawguess/ai"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/timer"
)

const (
	codeAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength    = 4
	MaxNameLength = 24
	aiIDPrefix    = "AI:"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrAlreadyJoined = errors.New("already in this room")
	ErrNameRequired  = errors.New("name is required")
)

// Registry is the session store: every live room keyed by code. It is owned by the event loop.
type Registry struct {
	rooms          map[string]*Room
	scheduler      timer.Scheduler
	rng            *rand.Rand
	strokeCapacity int
}

func NewRegistry(scheduler timer.Scheduler, rng *rand.Rand, strokeCapacity int) *Registry {
	return &Registry{
		rooms:          make(map[string]*Room),
		scheduler:      scheduler,
		rng:            rng,
		strokeCapacity: strokeCapacity,
	}
}

// CleanName trims a display name and caps its length.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	for utf8.RuneCountInString(name) > MaxNameLength {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	return strings.TrimSpace(name)
}

// NormalizeCode upper-cases and trims a room code as typed by a player.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (m *Registry) newCode() string {
	for {
		b := make([]byte, codeLength)
		for i := range b {
			b[i] = codeAlphabet[m.rng.Intn(len(codeAlphabet))]
		}
		code := string(b)
		if _, taken := m.rooms[code]; !taken {
			return code
		}
	}
}

// Create opens a room with the caller as host and only player.
func (m *Registry) Create(hostID, hostName string) (*Room, error) {
	name := CleanName(hostName)
	if name == "" {
		return nil, ErrNameRequired
	}

	r := newRoom(m.newCode(), m.strokeCapacity)
	r.HostID = hostID
	r.Players = append(r.Players, &Player{ID: hostID, Name: name})
	m.rooms[r.Code] = r

	logger.Log.Infow("room created", "room", r.Code, "host", hostID)
	return r, nil
}

// Join appends a player to an existing room.
func (m *Registry) Join(code, playerID, name string) (*Room, error) {
	name = CleanName(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	r, ok := m.rooms[NormalizeCode(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if r.Has(playerID) {
		return nil, ErrAlreadyJoined
	}

	r.Players = append(r.Players, &Player{ID: playerID, Name: name})
	logger.Log.Infow("player joined", "room", r.Code, "player", playerID)
	return r, nil
}

func (m *Registry) Get(code string) (*Room, bool) {
	r, ok := m.rooms[NormalizeCode(code)]
	return r, ok
}

// Live reports whether r is still the registered room for its code.
func (m *Registry) Live(r *Room) bool {
	cur, ok := m.rooms[r.Code]
	return ok && cur == r
}

func (m *Registry) Len() int {
	return len(m.rooms)
}

// RoomsOf lists the rooms a player is in.
func (m *Registry) RoomsOf(playerID string) []*Room {
	var out []*Room
	for _, r := range m.rooms {
		if r.Has(playerID) {
			out = append(out, r)
		}
	}
	return out
}

// RemovePlayer drops a player from r. Host passes to the first remaining human. The drawer
// index moves down one when the removed player sat at or before it. A room left without
// humans is torn down and destroyed is true.
func (m *Registry) RemovePlayer(r *Room, playerID string) (removed *Player, destroyed bool) {
	p, idx := r.Player(playerID)
	if p == nil {
		return nil, false
	}
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	if idx <= r.DrawerIndex && r.DrawerIndex > 0 {
		r.DrawerIndex--
	}

	if r.Humans() == 0 {
		m.Destroy(r)
		return p, true
	}

	if r.HostID == playerID {
		r.HostID = ""
		for _, other := range r.Players {
			if !other.IsAI {
				r.HostID = other.ID
				break
			}
		}
		logger.Log.Infow("host transferred", "room", r.Code, "host", r.HostID)
	}

	if r.DrawerIndex >= len(r.Players) {
		logger.Log.Errorw("drawer index out of range", "room", r.Code, "index", r.DrawerIndex, "players", len(r.Players))
		r.DrawerIndex = len(r.Players) - 1
	}
	return p, false
}

// Destroy cancels every timer a room owns and forgets it.
func (m *Registry) Destroy(r *Room) {
	m.CancelTimers(r)
	if m.Live(r) {
		delete(m.rooms, r.Code)
	}
	logger.Log.Infow("room destroyed", "room", r.Code)
}

func (m *Registry) CancelTimers(r *Room) {
	for _, h := range []*int64{&r.RoundTimer, &r.DrawTimer, &r.CooldownTimer, &r.DebugTimer} {
		m.Cancel(h)
	}
}

// Cancel removes the timer behind a handle and zeroes it.
func (m *Registry) Cancel(handle *int64) {
	if *handle != 0 {
		m.scheduler.RemoveTimer(*handle)
		*handle = 0
	}
}

// AddSyntheticPlayer lets the host add the room's one bot. Unknown tiers become easy.
func (m *Registry) AddSyntheticPlayer(r *Room, requesterID, difficulty string) (*Player, bool) {
	if !r.IsHost(requesterID) || r.AI() != nil {
		return nil, false
	}
	d, _ := ai.ParseDifficulty(difficulty)

	p := &Player{
		ID:         aiIDPrefix + r.Code,
		Name:       fmt.Sprintf("AI Bot (%s)", d.Title()),
		IsAI:       true,
		Difficulty: d,
	}
	r.Players = append(r.Players, p)
	r.AIDifficulty = d

	logger.Log.Infow("synthetic player added", "room", r.Code, "difficulty", d)
	return p, true
}
