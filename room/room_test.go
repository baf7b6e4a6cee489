package room

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/drawguess/ai"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/state"
	"github.com/wfunc/drawguess/timer"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRegistry() (*Registry, *timer.Manual) {
	sched := timer.NewManual()
	return NewRegistry(sched, rand.New(rand.NewSource(1)), 1000), sched
}

func TestRegistry_CreateAndGet(t *testing.T) {
	reg, _ := newTestRegistry()

	r, err := reg.Create("alice", "  Alice ")
	require.NoError(t, err)

	assert.Len(t, r.Code, 4)
	for _, c := range r.Code {
		assert.True(t, strings.ContainsRune(codeAlphabet, c), "unexpected %q in code", c)
	}
	assert.Equal(t, "alice", r.HostID)
	require.Len(t, r.Players, 1)
	assert.Equal(t, "Alice", r.Players[0].Name)

	got, ok := reg.Get(strings.ToLower(r.Code))
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Equal(t, 1, reg.Len())

	_, err = reg.Create("bob", "   ")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRegistry_CodesAreUnique(t *testing.T) {
	reg, _ := newTestRegistry()
	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		r, err := reg.Create("p", "P")
		require.NoError(t, err)
		assert.False(t, seen[r.Code])
		seen[r.Code] = true
	}
	assert.Equal(t, 500, reg.Len())
}

func TestRegistry_Join(t *testing.T) {
	reg, _ := newTestRegistry()
	r, _ := reg.Create("alice", "Alice")

	joined, err := reg.Join(" "+strings.ToLower(r.Code)+" ", "bob", "Bob")
	require.NoError(t, err)
	assert.Same(t, r, joined)
	assert.Len(t, r.Players, 2)

	_, err = reg.Join(r.Code, "bob", "Bob")
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	_, err = reg.Join("ZZZZ", "carol", "Carol")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = reg.Join(r.Code, "carol", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestRegistry_RemovePlayer_HostAndDrawer(t *testing.T) {
	reg, _ := newTestRegistry()
	r, _ := reg.Create("a", "A")
	reg.Join(r.Code, "b", "B")
	reg.Join(r.Code, "c", "C")
	reg.Join(r.Code, "d", "D")
	r.DrawerIndex = 2

	removed, destroyed := reg.RemovePlayer(r, "a")
	require.NotNil(t, removed)
	assert.False(t, destroyed)
	assert.Equal(t, "b", r.HostID)
	assert.Equal(t, 1, r.DrawerIndex)
	assert.Equal(t, "C", r.Players[r.DrawerIndex].Name)

	// after the drawer: index untouched
	reg.RemovePlayer(r, "d")
	assert.Equal(t, 1, r.DrawerIndex)

	removed, _ = reg.RemovePlayer(r, "nobody")
	assert.Nil(t, removed)
}

func TestRegistry_RemovePlayer_IndexNeverNegative(t *testing.T) {
	reg, _ := newTestRegistry()
	r, _ := reg.Create("a", "A")
	reg.Join(r.Code, "b", "B")
	r.DrawerIndex = 0

	reg.RemovePlayer(r, "a")
	assert.Equal(t, 0, r.DrawerIndex)
	assert.Equal(t, "b", r.HostID)
}

func TestRegistry_RemoveLastHumanDestroysRoom(t *testing.T) {
	reg, sched := newTestRegistry()
	r, _ := reg.Create("a", "A")
	_, ok := reg.AddSyntheticPlayer(r, "a", "hard")
	require.True(t, ok)

	fired := false
	r.RoundTimer = sched.AddTimer(time.Second, time.Second, func() { fired = true })
	r.CooldownTimer = sched.AddTimer(3*time.Second, 0, func() { fired = true })

	_, destroyed := reg.RemovePlayer(r, "a")
	assert.True(t, destroyed)
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Live(r))
	assert.Zero(t, r.RoundTimer)
	assert.Zero(t, r.CooldownTimer)

	sched.Advance(10 * time.Second)
	assert.False(t, fired)
	assert.Equal(t, 0, sched.Pending())
}

func TestRegistry_AddSyntheticPlayer(t *testing.T) {
	reg, _ := newTestRegistry()
	r, _ := reg.Create("a", "A")
	reg.Join(r.Code, "b", "B")

	_, ok := reg.AddSyntheticPlayer(r, "b", "hard")
	assert.False(t, ok, "only the host may add a bot")

	bot, ok := reg.AddSyntheticPlayer(r, "a", "nonsense")
	require.True(t, ok)
	assert.Equal(t, "AI:"+r.Code, bot.ID)
	assert.Equal(t, "AI Bot (Easy)", bot.Name)
	assert.Equal(t, ai.Easy, r.AIDifficulty)
	assert.True(t, bot.IsAI)

	_, ok = reg.AddSyntheticPlayer(r, "a", "medium")
	assert.False(t, ok, "at most one bot")
	assert.Len(t, r.Players, 3)
	assert.Equal(t, 2, r.Humans())
}

func TestRoom_AllGuessed(t *testing.T) {
	reg, _ := newTestRegistry()
	r, _ := reg.Create("a", "A")
	reg.Join(r.Code, "b", "B")
	reg.Join(r.Code, "c", "C")
	r.DrawerID = "a"

	assert.False(t, r.AllGuessed())
	r.CorrectGuessers = append(r.CorrectGuessers, Guesser{ID: "b", Name: "B"})
	assert.False(t, r.AllGuessed())

	reg.RemovePlayer(r, "c")
	assert.True(t, r.AllGuessed())
	assert.Equal(t, []string{"B"}, r.GuesserNames())
}

func TestRoom_ResetGame(t *testing.T) {
	reg, _ := newTestRegistry()
	r, _ := reg.Create("a", "A")
	r.Players[0].Score = 15
	r.Round = 3
	r.History = []models.HistoryEntry{{Round: 1}}
	r.Strokes.Add(models.Point{X: 1})
	r.AIUsedGuesses["cat"] = struct{}{}

	r.ResetGame()
	assert.Zero(t, r.Players[0].Score)
	assert.Zero(t, r.Round)
	assert.Empty(t, r.History)
	assert.Zero(t, r.Strokes.Len())
	assert.Empty(t, r.AIUsedGuesses)
}

func TestStrokeBuffer_EvictsOldest(t *testing.T) {
	b := NewStrokeBuffer(3)
	for i := 1; i <= 5; i++ {
		b.Add(models.Point{X: float64(i)})
	}
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []models.Point{{X: 3}, {X: 4}, {X: 5}}, b.Points())

	b.Reset()
	assert.Empty(t, b.Points())
	b.Add(models.Point{X: 9})
	assert.Equal(t, []models.Point{{X: 9}}, b.Points())
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Bob", CleanName("  Bob "))
	assert.Equal(t, 24, len([]rune(CleanName(strings.Repeat("é", 40)))))
}

func TestRoom_PhaseChangesAreLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core).Sugar()
	defer func() { logger.Log = prev }()

	reg, _ := newTestRegistry()
	r, err := reg.Create("alice", "Alice")
	require.NoError(t, err)

	require.NoError(t, r.Machine.ChangeState(state.Preparing))
	require.NoError(t, r.Machine.ChangeState(state.AwaitingWordChoice))

	changes := logs.FilterMessage("phase changed").All()
	require.Len(t, changes, 2)
	fields := changes[1].ContextMap()
	assert.Equal(t, r.Code, fields["room"])
	assert.Equal(t, string(state.AwaitingWordChoice), fmt.Sprint(fields["to"]))
}
