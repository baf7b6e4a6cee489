package game

import (
	"fmt"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/models"
	"github.com/wfunc/drawguess/network"
	"github.com/wfunc/drawguess/room"
	"github.com/wfunc/drawguess/sketch"
	"github.com/wfunc/drawguess/state"
)

// canDraw: during a game only the drawer of an active round, otherwise anyone.
func canDraw(r *room.Room, playerID string) bool {
	if !r.Machine.InGame() {
		return true
	}
	return r.Machine.Is(state.Active) && r.IsDrawer(playerID)
}

// Draw relays one stroke event to the room, sender included.
func (e *Engine) Draw(playerID, code string, ev models.StrokeEvent) {
	r, p := e.member(playerID, code)
	if p == nil || !ev.Valid() {
		return
	}
	if !canDraw(r, playerID) {
		return
	}
	if r.Machine.Is(state.Active) && ev.Type == models.StrokeDraw {
		r.Strokes.Add(models.Point{X: ev.X, Y: ev.Y})
	}
	r.CanvasClean = false
	e.emit(r, network.EventRemoteDrawEvent, ev)
}

func (e *Engine) ClearCanvas(playerID, code string) {
	r, p := e.member(playerID, code)
	if p == nil || !canDraw(r, playerID) {
		return
	}
	e.clearCanvas(r, false)
}

// clearCanvas tells clients to wipe the canvas unless it is already blank.
func (e *Engine) clearCanvas(r *room.Room, force bool) {
	if r.CanvasClean && !force {
		return
	}
	r.CanvasClean = true
	e.emit(r, network.EventClearCanvasAll, struct{}{})
}

// startPlayback streams the sketch for the round's word while the synthetic player draws.
func (e *Engine) startPlayback(r *room.Room) {
	seq := sketch.Sequence(r.Word)
	i := 0

	var handle int64
	handle = e.scheduler.AddTimer(e.settings.DrawInterval, e.settings.DrawInterval, func() {
		if r.DrawTimer != handle {
			return
		}
		if !e.registry.Live(r) || !r.Machine.Is(state.Active) || i >= len(seq) {
			e.registry.Cancel(&r.DrawTimer)
			return
		}
		ev := seq[i]
		i++
		r.CanvasClean = false
		e.emit(r, network.EventRemoteDrawEvent, ev)
	})
	r.DrawTimer = handle
}

// DebugDrawAll plays every sketch template in the room, one word after another. Host only,
// and only while no game runs.
func (e *Engine) DebugDrawAll(playerID, code string) {
	r, p := e.member(playerID, code)
	if p == nil || !r.IsHost(playerID) {
		return
	}
	if r.Machine.InGame() || r.DebugTimer != 0 {
		return
	}

	pause := 0
	if e.settings.DebugInterval > 0 {
		pause = int(e.settings.DebugPause / e.settings.DebugInterval)
	}

	var steps []func()
	for _, word := range e.catalog.Words() {
		steps = append(steps, func() {
			e.systemChat(r, fmt.Sprintf("AI drawing: %s", word))
			e.clearCanvas(r, true)
		})
		for _, ev := range sketch.Sequence(word) {
			steps = append(steps, func() {
				r.CanvasClean = false
				e.emit(r, network.EventRemoteDrawEvent, ev)
			})
		}
		for range pause {
			steps = append(steps, nil)
		}
	}
	steps = append(steps, func() {
		e.systemChat(r, "Finished drawing all words.")
	})

	logger.Log.Infow("debug playback", "room", r.Code, "steps", len(steps))
	i := 0
	var handle int64
	handle = e.scheduler.AddTimer(e.settings.DebugInterval, e.settings.DebugInterval, func() {
		if r.DebugTimer != handle {
			return
		}
		if !e.registry.Live(r) || i >= len(steps) {
			e.registry.Cancel(&r.DebugTimer)
			return
		}
		step := steps[i]
		i++
		if step != nil {
			step()
		}
		if i >= len(steps) {
			e.registry.Cancel(&r.DebugTimer)
		}
	})
	r.DebugTimer = handle
}
