// room/room.go
package room

import (
	"github.com/wfunc/drawguess/ai"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/state"
)

// Player is one roster entry. The synthetic player has IsAI set and never owns a connection.
type Player struct {
	ID         string
	Name       string
	Score      int
	IsAI       bool
	Difficulty ai.Difficulty
}

// Guesser is a player credited with a correct guess in the current round.
type Guesser struct {
	ID   string
	Name string
}

// Room is a live game session. Every field is owned by the event loop.
type Room struct {
	Code      string
	HostID    string
	Players   []*Player
	MaxRounds int

	Machine     *state.Machine
	Round       int
	DrawerIndex int
	DrawerID    string
	DrawerName  string
	Word        string
	Mask        string
	WordOptions []string
	TimeLeft    int

	CorrectGuessers []Guesser
	History         []models.HistoryEntry

	AIDifficulty  ai.Difficulty
	AIGuessCount  int
	AILastGuessAt int
	AIUsedGuesses map[string]struct{}
	Strokes       *StrokeBuffer

	// CanvasClean is true when nothing was drawn since the last clear.
	CanvasClean bool

	RoundTimer    int64
	DrawTimer     int64
	CooldownTimer int64
	DebugTimer    int64
}

func newRoom(code string, strokeCapacity int) *Room {
	r := &Room{
		Code:          code,
		Machine:       state.NewMachine(),
		AIDifficulty:  ai.Easy,
		AIUsedGuesses: make(map[string]struct{}),
		Strokes:       NewStrokeBuffer(strokeCapacity),
		CanvasClean:   true,
	}
	r.Machine.OnChange(func(from, to state.Phase) {
		logger.Log.Debugw("phase changed", "room", code, "from", from, "to", to)
	})
	return r
}

func (r *Room) Player(id string) (*Player, int) {
	for i, p := range r.Players {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}

func (r *Room) Has(id string) bool {
	_, i := r.Player(id)
	return i >= 0
}

func (r *Room) IsHost(id string) bool {
	return id != "" && r.HostID == id
}

// AI returns the synthetic player, if any.
func (r *Room) AI() *Player {
	for _, p := range r.Players {
		if p.IsAI {
			return p
		}
	}
	return nil
}

// Humans counts players backed by a connection.
func (r *Room) Humans() int {
	n := 0
	for _, p := range r.Players {
		if !p.IsAI {
			n++
		}
	}
	return n
}

// Drawer is the current drawer, or nil outside a round.
func (r *Room) Drawer() *Player {
	if r.DrawerID == "" {
		return nil
	}
	p, _ := r.Player(r.DrawerID)
	return p
}

func (r *Room) IsDrawer(id string) bool {
	return id != "" && r.DrawerID == id
}

func (r *Room) HasGuessed(id string) bool {
	for _, g := range r.CorrectGuessers {
		if g.ID == id {
			return true
		}
	}
	return false
}

// AllGuessed reports whether at least one guess landed and every non-drawer still in the
// roster has guessed correctly.
func (r *Room) AllGuessed() bool {
	if len(r.CorrectGuessers) == 0 {
		return false
	}
	for _, p := range r.Players {
		if p.ID == r.DrawerID {
			continue
		}
		if !r.HasGuessed(p.ID) {
			return false
		}
	}
	return true
}

// AIGuessing reports whether the synthetic player takes part as a guesser this round.
func (r *Room) AIGuessing() bool {
	bot := r.AI()
	return bot != nil && bot.ID != r.DrawerID && !r.HasGuessed(bot.ID)
}

// ResetRound clears the per-round projection before a new round is prepared.
func (r *Room) ResetRound() {
	r.Word = ""
	r.Mask = ""
	r.WordOptions = nil
	r.TimeLeft = 0
	r.CorrectGuessers = nil
	r.AIGuessCount = 0
	r.AILastGuessAt = 0
	r.AIUsedGuesses = make(map[string]struct{})
	r.Strokes.Reset()
}

// ResetGame zeroes scores and history for a (re)start.
func (r *Room) ResetGame() {
	r.Round = 0
	r.DrawerIndex = 0
	r.DrawerID = ""
	r.DrawerName = ""
	r.History = nil
	for _, p := range r.Players {
		p.Score = 0
	}
	r.ResetRound()
}

func (r *Room) PlayerList() []models.PlayerInfo {
	out := make([]models.PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, models.PlayerInfo{ID: p.ID, Name: p.Name, Score: p.Score, IsAI: p.IsAI})
	}
	return out
}

func (r *Room) Scores() []models.ScoreEntry {
	out := make([]models.ScoreEntry, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, models.ScoreEntry{ID: p.ID, Name: p.Name, Score: p.Score})
	}
	return out
}

func (r *Room) GuesserNames() []string {
	out := make([]string, 0, len(r.CorrectGuessers))
	for _, g := range r.CorrectGuessers {
		out = append(out, g.Name)
	}
	return out
}
