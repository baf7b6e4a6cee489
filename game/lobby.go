package game

import (
	"fmt"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/state"
)

func (e *Engine) CreateRoom(playerID, name string) {
	r, err := e.registry.Create(playerID, name)
	if err != nil {
		e.sendError(playerID, err)
		return
	}
	e.monitor.SetActiveRooms(e.registry.Len())

	e.sendTo(playerID, network.EventRoomCreated, network.RoomJoined{
		RoomCode: r.Code,
		PlayerID: playerID,
		Players:  r.PlayerList(),
		IsHost:   true,
	})
}

func (e *Engine) JoinRoom(playerID, code, name string) {
	r, err := e.registry.Join(code, playerID, name)
	if err != nil {
		e.sendError(playerID, err)
		return
	}
	p, _ := r.Player(playerID)

	e.sendTo(playerID, network.EventRoomJoined, network.RoomJoined{
		RoomCode: r.Code,
		PlayerID: playerID,
		Players:  r.PlayerList(),
		IsHost:   r.IsHost(playerID),
	})
	e.broadcastRoster(r)
	e.systemChat(r, fmt.Sprintf("%s joined the room.", p.Name))

	switch r.Machine.Current() {
	case state.AwaitingWordChoice:
		e.sendTo(playerID, network.EventRoundPreparing, network.RoundPreparing{
			Round: r.Round, MaxRounds: r.MaxRounds, DrawerName: r.DrawerName,
		})
	case state.Active:
		e.sendTo(playerID, network.EventRoundInfo, network.RoundInfo{
			Round: r.Round, MaxRounds: r.MaxRounds, DrawerName: r.DrawerName, MaskedWord: r.Mask,
		})
		e.sendTo(playerID, network.EventTimerUpdate, network.TimerUpdate{TimeLeft: r.TimeLeft})
	}
}

func (e *Engine) LeaveRoom(playerID, code string) {
	r, p := e.member(playerID, code)
	if p == nil {
		return
	}
	e.leave(r, playerID)
}

// Disconnect removes a player from every room they are in.
func (e *Engine) Disconnect(playerID string) {
	for _, r := range e.registry.RoomsOf(playerID) {
		e.leave(r, playerID)
	}
}

func (e *Engine) leave(r *room.Room, playerID string) {
	wasDrawer := r.IsDrawer(playerID)

	removed, destroyed := e.registry.RemovePlayer(r, playerID)
	if removed == nil {
		return
	}
	if destroyed {
		e.monitor.SetActiveRooms(e.registry.Len())
		return
	}

	e.systemChat(r, fmt.Sprintf("%s left the room.", removed.Name))
	e.broadcastRoster(r)

	switch {
	case wasDrawer && r.Machine.Is(state.AwaitingWordChoice, state.Active):
		r.DrawerID = ""
		e.endRound(r, ReasonDrawerLeft)
	case r.Machine.Is(state.Active) && r.AllGuessed():
		e.endRound(r, ReasonAllGuessed)
	}
}

func (e *Engine) AddAIPlayer(playerID, code, difficulty string) {
	r, p := e.member(playerID, code)
	if p == nil {
		return
	}
	bot, ok := e.registry.AddSyntheticPlayer(r, playerID, difficulty)
	if !ok {
		logger.Log.Debugw("add synthetic player refused", "room", r.Code, "player", playerID)
		return
	}
	e.broadcastRoster(r)
	e.systemChat(r, fmt.Sprintf("%s joined the room.", bot.Name))
}

// StartGame (re)starts a game from the lobby or after game over. Only the host may start.
func (e *Engine) StartGame(playerID, code string, maxRounds int) {
	r, p := e.member(playerID, code)
	if p == nil {
		return
	}
	if !r.IsHost(playerID) {
		logger.Log.Warnw("non-host tried to start", "room", r.Code, "player", playerID)
		return
	}
	if r.Machine.InGame() {
		logger.Log.Debugw("start ignored, game running", "room", r.Code, "phase", r.Machine.Current())
		return
	}

	rounds := maxRounds
	if rounds < 1 {
		rounds = e.settings.DefaultMaxRounds
	}
	rounds = min(rounds, e.settings.MaxRoundsLimit)

	e.registry.CancelTimers(r)
	r.ResetGame()
	r.MaxRounds = rounds

	logger.Log.Infow("game started", "room", r.Code, "rounds", rounds, "players", len(r.Players))
	e.emit(r, network.EventGameStarted, network.GameStarted{MaxRounds: rounds})
	e.emit(r, network.EventScoresUpdate, network.Scores{Scores: r.Scores()})
	e.prepareRound(r)
}
