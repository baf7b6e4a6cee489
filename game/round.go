package game

import (
	"slices"
	"strings"
	"time"

	"github.com/wfunc/drawguess/hint"
	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/state"
	"github.com/wfunc/drawguess/words"
)

// prepareRound rotates the drawer and offers word options. A synthetic drawer takes the
// first option straight away.
func (e *Engine) prepareRound(r *room.Room) {
	e.registry.Cancel(&r.RoundTimer)
	e.registry.Cancel(&r.DrawTimer)
	e.registry.Cancel(&r.CooldownTimer)

	if err := r.Machine.ChangeState(state.Preparing); err != nil {
		logger.Log.Errorw("prepare round", "room", r.Code, "error", err)
		return
	}

	r.Round++
	r.ResetRound()
	n := len(r.Players)
	if r.Round == 1 {
		r.DrawerIndex = 0
	} else {
		r.DrawerIndex = (r.DrawerIndex + 1) % n
	}
	drawer := r.Players[r.DrawerIndex]
	r.DrawerID = drawer.ID
	r.DrawerName = drawer.Name

	logger.Log.Infow("round preparing", "room", r.Code, "round", r.Round, "drawer", drawer.Name)
	e.emit(r, network.EventRoundPreparing, network.RoundPreparing{
		Round:      r.Round,
		MaxRounds:  r.MaxRounds,
		DrawerName: drawer.Name,
	})
	e.clearCanvas(r, true)

	options := e.picker.Options(e.settings.WordOptions)
	if len(options) == 0 {
		logger.Log.Errorw("no word options", "room", r.Code)
		r.Machine.Reset()
		return
	}
	r.WordOptions = options

	if drawer.IsAI {
		e.startRound(r, options[0])
		return
	}
	if err := r.Machine.ChangeState(state.AwaitingWordChoice); err != nil {
		logger.Log.Errorw("await word choice", "room", r.Code, "error", err)
		return
	}
	e.sendTo(drawer.ID, network.EventChooseWord, network.ChooseWord{
		RoomCode:  r.Code,
		Round:     r.Round,
		MaxRounds: r.MaxRounds,
		Options:   options,
	})
}

// ChooseWord accepts the human drawer's pick from the offered options.
func (e *Engine) ChooseWord(playerID, code, word string) {
	r, p := e.member(playerID, code)
	if p == nil || p.IsAI {
		return
	}
	if !r.Machine.Is(state.AwaitingWordChoice) || !r.IsDrawer(playerID) {
		return
	}
	w := words.Normalize(word)
	if w == "" {
		return
	}
	if !slices.ContainsFunc(r.WordOptions, func(o string) bool { return strings.EqualFold(o, w) }) {
		logger.Log.Debugw("word not offered", "room", r.Code, "word", w)
		return
	}
	e.startRound(r, w)
}

func (e *Engine) startRound(r *room.Room, word string) {
	if err := r.Machine.ChangeState(state.Active); err != nil {
		logger.Log.Errorw("start round", "room", r.Code, "error", err)
		return
	}
	r.Word = word
	r.Mask = hint.Mask(word)
	r.TimeLeft = e.settings.RoundDuration

	logger.Log.Infow("round active", "room", r.Code, "round", r.Round, "drawer", r.DrawerName)
	e.emit(r, network.EventRoundInfo, network.RoundInfo{
		Round:      r.Round,
		MaxRounds:  r.MaxRounds,
		DrawerName: r.DrawerName,
		MaskedWord: r.Mask,
	})

	drawer := r.Drawer()
	if drawer != nil && !drawer.IsAI {
		e.sendTo(drawer.ID, network.EventYourWord, network.YourWord{Word: word})
	}

	var handle int64
	handle = e.scheduler.AddTimer(e.settings.TickInterval, e.settings.TickInterval, func() {
		if r.RoundTimer != handle {
			return
		}
		e.tick(r)
	})
	r.RoundTimer = handle

	if drawer != nil && drawer.IsAI {
		e.startPlayback(r)
	}
}

func (e *Engine) tick(r *room.Room) {
	if !e.registry.Live(r) || !r.Machine.Is(state.Active) {
		e.registry.Cancel(&r.RoundTimer)
		return
	}

	r.TimeLeft = max(r.TimeLeft-1, 0)
	e.emit(r, network.EventTimerUpdate, network.TimerUpdate{TimeLeft: r.TimeLeft})

	if r.TimeLeft > 0 && slices.Contains(e.settings.HintCheckpoints, r.TimeLeft) {
		if mask := hint.RevealOne(e.rng, r.Word, r.Mask); mask != r.Mask {
			r.Mask = mask
			e.emit(r, network.EventHintUpdate, network.HintUpdate{MaskedWord: mask})
		}
	}

	e.aiGuess(r)

	if r.Machine.Is(state.Active) && r.TimeLeft == 0 {
		e.endRound(r, ReasonTimeUp)
	}
}

// endRound closes the current round once and schedules the cooldown.
func (e *Engine) endRound(r *room.Room, reason string) {
	if !r.Machine.Is(state.AwaitingWordChoice, state.Active) {
		return
	}
	e.registry.Cancel(&r.RoundTimer)
	e.registry.Cancel(&r.DrawTimer)

	if err := r.Machine.ChangeState(state.Ended); err != nil {
		logger.Log.Errorw("end round", "room", r.Code, "error", err)
		return
	}

	entry := models.HistoryEntry{
		Round:           r.Round,
		Word:            r.Word,
		DrawerName:      r.DrawerName,
		CorrectGuessers: r.GuesserNames(),
		Reason:          reason,
	}
	r.History = append(r.History, entry)

	logger.Log.Infow("round ended", "room", r.Code, "round", r.Round, "word", r.Word, "reason", reason)
	e.monitor.IncRoundEnded(reason)
	e.emit(r, network.EventRoundEnded, network.RoundEnded{
		Round:           entry.Round,
		Word:            entry.Word,
		DrawerName:      entry.DrawerName,
		CorrectGuessers: entry.CorrectGuessers,
		Reason:          reason,
	})

	var handle int64
	handle = e.scheduler.AddTimer(e.settings.Cooldown, 0, func() {
		if r.CooldownTimer != handle {
			return
		}
		r.CooldownTimer = 0
		e.afterCooldown(r)
	})
	r.CooldownTimer = handle
}

func (e *Engine) afterCooldown(r *room.Room) {
	if !e.registry.Live(r) || !r.Machine.Is(state.Ended) {
		return
	}
	if r.Round >= r.MaxRounds {
		e.gameOver(r)
		return
	}
	e.prepareRound(r)
}

func (e *Engine) gameOver(r *room.Room) {
	if err := r.Machine.ChangeState(state.GameOver); err != nil {
		logger.Log.Errorw("game over", "room", r.Code, "error", err)
		return
	}
	r.DrawerID = ""

	scores := r.Scores()
	history := slices.Clone(r.History)
	logger.Log.Infow("game over", "room", r.Code, "rounds", r.Round)
	e.emit(r, network.EventGameOver, network.GameOver{Scores: scores, History: history})
	e.monitor.IncGamesFinished()

	if e.recorder != nil {
		e.recorder.RecordGame(models.GameSummary{
			RoomCode:   r.Code,
			Rounds:     r.Round,
			Scores:     scores,
			History:    history,
			FinishedAt: time.Now(),
		})
	}
}
