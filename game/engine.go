// Package game runs rooms through their rounds: word choice, timing, hints, guess
// adjudication, scoring and the synthetic players. Every exported method must be called from
// the event loop that owns the room registry.
package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/wfunc/drawguess/ai"
	"github.com/wfunc/drawguess/broadcast"
	"github.com/wfunc/drawguess/config"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/monitor"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/timer"
	"github.com/wfunc/drawguess/words"
)

// Round end reasons.
const (
	ReasonTimeUp     = "timeUp"
	ReasonAllGuessed = "allGuessed"
	ReasonDrawerLeft = "drawerLeft"
)

const (
	guesserPoints = 10
	drawerPoints  = 5
	maxChatLength = 200
)

type Settings struct {
	RoundDuration    int
	TickInterval     time.Duration
	HintCheckpoints  []int
	Cooldown         time.Duration
	DrawInterval     time.Duration
	DebugInterval    time.Duration
	DebugPause       time.Duration
	DefaultMaxRounds int
	MaxRoundsLimit   int
	WordOptions      int
}

func DefaultSettings() Settings {
	return Settings{
		RoundDuration:    180,
		TickInterval:     time.Second,
		HintCheckpoints:  []int{120, 60},
		Cooldown:         3 * time.Second,
		DrawInterval:     60 * time.Millisecond,
		DebugInterval:    30 * time.Millisecond,
		DebugPause:       1200 * time.Millisecond,
		DefaultMaxRounds: 3,
		MaxRoundsLimit:   20,
		WordOptions:      3,
	}
}

// SettingsFromConfig overlays configured values on the defaults.
func SettingsFromConfig(c config.GameConfig) Settings {
	s := DefaultSettings()
	if c.RoundDuration > 0 {
		s.RoundDuration = c.RoundDuration
	}
	if c.TickInterval > 0 {
		s.TickInterval = c.TickInterval
	}
	if c.HintCheckpoints != nil {
		s.HintCheckpoints = c.HintCheckpoints
	}
	if c.Cooldown > 0 {
		s.Cooldown = c.Cooldown
	}
	if c.DrawInterval > 0 {
		s.DrawInterval = c.DrawInterval
	}
	if c.DefaultMaxRounds > 0 {
		s.DefaultMaxRounds = c.DefaultMaxRounds
	}
	if c.MaxRoundsLimit > 0 {
		s.MaxRoundsLimit = c.MaxRoundsLimit
	}
	if c.WordOptions > 0 {
		s.WordOptions = c.WordOptions
	}
	return s
}

// PolicyFromConfig builds the synthetic guesser gate.
func PolicyFromConfig(c config.AIConfig) ai.Policy {
	p := ai.DefaultPolicy()
	if c.MinDelay > 0 {
		p.MinDelay = c.MinDelay
	}
	if c.MinDelayMedium > 0 {
		p.MinDelayMedium = c.MinDelayMedium
	}
	if c.MinStrokes > 0 {
		p.MinStrokes = c.MinStrokes
	}
	if c.MaxGuesses > 0 {
		p.MaxGuesses = c.MaxGuesses
	}
	if c.GuessSpacing > 0 {
		p.Spacing = c.GuessSpacing
	}
	if c.NonsenseGuesses >= 0 {
		p.NonsenseGuesses = c.NonsenseGuesses
	}
	return p
}

// Recorder receives every finished game.
type Recorder interface {
	RecordGame(summary models.GameSummary)
}

type Engine struct {
	settings  Settings
	registry  *room.Registry
	scheduler timer.Scheduler
	out       broadcast.Broadcaster
	catalog   *words.Catalog
	picker    words.Picker
	guesser   *ai.Guesser
	rng       *rand.Rand
	monitor   *monitor.Monitor
	recorder  Recorder
}

type Option func(*Engine)

func WithCatalog(c *words.Catalog) Option { return func(e *Engine) { e.catalog = c } }
func WithPicker(p words.Picker) Option { return func(e *Engine) { e.picker = p } }
func WithGuesser(g *ai.Guesser) Option { return func(e *Engine) { e.guesser = g } }
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }
func WithMonitor(m *monitor.Monitor) Option { return func(e *Engine) { e.monitor = m } }
func WithRecorder(r Recorder) Option { return func(e *Engine) { e.recorder = r } }

func NewEngine(settings Settings, registry *room.Registry, scheduler timer.Scheduler, out broadcast.Broadcaster, opts ...Option) *Engine {
	e := &Engine{
		settings:  settings,
		registry:  registry,
		scheduler: scheduler,
		out:       out,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.catalog == nil {
		e.catalog = words.Default()
	}
	if e.picker == nil {
		e.picker = words.NewRandomPicker(e.catalog, e.rng)
	}
	if e.guesser == nil {
		e.guesser = ai.NewGuesser(ai.DefaultPolicy())
	}
	return e
}

func (e *Engine) Registry() *room.Registry {
	return e.registry
}

// member returns the room only if playerID belongs to it.
func (e *Engine) member(playerID, code string) (*room.Room, *room.Player) {
	r, ok := e.registry.Get(code)
	if !ok {
		return nil, nil
	}
	p, _ := r.Player(playerID)
	if p == nil {
		return nil, nil
	}
	return r, p
}

func (e *Engine) emit(r *room.Room, event string, payload any) {
	if err := e.out.BroadcastToRoom(r.Code, event, payload); err != nil {
		logger.Log.Debugw("broadcast failed", "room", r.Code, "event", event, "error", err)
	}
}

func (e *Engine) sendTo(playerID, event string, payload any) {
	if err := e.out.SendTo(playerID, event, payload); err != nil {
		logger.Log.Debugw("send failed", "player", playerID, "event", event, "error", err)
	}
}

func (e *Engine) systemChat(r *room.Room, text string) {
	e.emit(r, network.EventChatMessage, network.ChatMessage{Name: network.SystemName, Text: text, Type: network.ChatKindSystem})
}

func (e *Engine) sendError(playerID string, err error) {
	msg := "Something went wrong."
	switch {
	case errors.Is(err, room.ErrRoomNotFound):
		msg = "Room not found."
	case errors.Is(err, room.ErrAlreadyJoined):
		msg = "You are already in this room."
	case errors.Is(err, room.ErrNameRequired):
		msg = "Please enter a name."
	}
	e.sendTo(playerID, network.EventRoomError, network.RoomError{Message: msg})
}

func (e *Engine) broadcastRoster(r *room.Room) {
	e.emit(r, network.EventPlayerListUpdate, network.PlayerList{Players: r.PlayerList()})
	e.emit(r, network.EventScoresUpdate, network.Scores{Scores: r.Scores()})
}
