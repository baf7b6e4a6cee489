package server

import (
	"time"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/network"
)

// dispatch decodes one intent and hands it to the event loop.
func (s *GameServer) dispatch(playerID string, env *network.Envelope) error {
	var apply func()

	switch env.Event {
	case network.EventCreateRoom:
		req, err := network.Decode[network.CreateRoomRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.CreateRoom(playerID, req.Name) }
	case network.EventJoinRoom:
		req, err := network.Decode[network.JoinRoomRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.JoinRoom(playerID, req.RoomCode, req.Name) }
	case network.EventLeaveRoom:
		req, err := network.Decode[network.RoomRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.LeaveRoom(playerID, req.RoomCode) }
	case network.EventStartGame:
		req, err := network.Decode[network.StartGameRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.StartGame(playerID, req.RoomCode, int(req.MaxRounds)) }
	case network.EventAddAIPlayer:
		req, err := network.Decode[network.AddAIPlayerRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.AddAIPlayer(playerID, req.RoomCode, req.Difficulty) }
	case network.EventWordChosen:
		req, err := network.Decode[network.WordChosenRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.ChooseWord(playerID, req.RoomCode, req.Word) }
	case network.EventGuessWord:
		req, err := network.Decode[network.GuessRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.Guess(playerID, req.RoomCode, req.Guess) }
	case network.EventDrawEvent:
		req, err := network.Decode[network.DrawRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.Draw(playerID, req.RoomCode, req.Event) }
	case network.EventClearCanvas:
		req, err := network.Decode[network.RoomRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.ClearCanvas(playerID, req.RoomCode) }
	case network.EventDebugDrawAll:
		req, err := network.Decode[network.RoomRequest](env)
		if err != nil {
			return err
		}
		apply = func() { s.engine.DebugDrawAll(playerID, req.RoomCode) }
	default:
		return network.ErrUnknownEvent
	}

	event := env.Event
	received := time.Now()
	s.monitor.IncIntent(event)
	if !s.loop.Post(func() {
		apply()
		s.monitor.ObserveIntentLatency(time.Since(received))
	}) {
		logger.Log.Warnw("intent dropped, loop stopped", "player", playerID, "event", event)
		return ErrLoopStopped
	}
	return nil
}
