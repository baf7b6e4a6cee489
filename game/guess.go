package game

import (
	"fmt"
	"strings"

	"github.com/wfunc/drawguess/ai"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/state"
	"github.com/wfunc/drawguess/words"
)

// Guess adjudicates a chat line. Outside an active round it is plain chat. During one the
// drawer and players who already guessed are ignored.
func (e *Engine) Guess(playerID, code, text string) {
	r, p := e.member(playerID, code)
	if p == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if runes := []rune(text); len(runes) > maxChatLength {
		text = string(runes[:maxChatLength])
	}

	if !r.Machine.Is(state.Active) {
		e.emit(r, network.EventChatMessage, network.ChatMessage{Name: p.Name, Text: text, Type: network.ChatKindChat})
		return
	}
	if r.IsDrawer(playerID) || r.HasGuessed(playerID) {
		return
	}
	e.adjudicate(r, p, text)
}

func (e *Engine) adjudicate(r *room.Room, p *room.Player, text string) {
	guess := words.Normalize(text)
	if guess != r.Word {
		e.emit(r, network.EventChatMessage, network.ChatMessage{Name: p.Name, Text: text, Type: network.ChatKindChat})
		if p.IsAI {
			r.AIUsedGuesses[guess] = struct{}{}
		}
		return
	}

	p.Score += guesserPoints
	if drawer := r.Drawer(); drawer != nil {
		drawer.Score += drawerPoints
	}
	r.CorrectGuessers = append(r.CorrectGuessers, room.Guesser{ID: p.ID, Name: p.Name})
	e.monitor.IncCorrectGuess(p.IsAI)

	e.systemChat(r, fmt.Sprintf("%s guessed the word!", p.Name))
	e.emit(r, network.EventScoresUpdate, network.Scores{Scores: r.Scores()})

	if r.AllGuessed() {
		e.endRound(r, ReasonAllGuessed)
	}
}

// aiGuess lets the room's synthetic guesser take one turn if the gate allows it.
func (e *Engine) aiGuess(r *room.Room) {
	if !r.AIGuessing() {
		return
	}
	bot := r.AI()
	elapsed := e.settings.RoundDuration - r.TimeLeft

	gate := ai.GateState{
		Elapsed:     elapsed,
		Guesses:     r.AIGuessCount,
		LastGuessAt: r.AILastGuessAt,
		Strokes:     r.Strokes.Len(),
	}
	in := ai.Input{
		Target:   r.Word,
		Mask:     r.Mask,
		Elapsed:  elapsed,
		Duration: e.settings.RoundDuration,
		Used:     r.AIUsedGuesses,
		Catalog:  e.catalog,
		Strokes:  r.Strokes.Points(),
	}
	guess, ok := e.guesser.Next(bot.Difficulty, gate, in, e.rng)
	if !ok {
		return
	}
	r.AIGuessCount++
	r.AILastGuessAt = elapsed
	e.monitor.IncAIGuess(bot.Difficulty.String())

	e.adjudicate(r, bot, guess)
}
