package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/drawguess/network"
)

// echoPeer captures the frames the client writes.
func echoPeer(t *testing.T) (*websocket.Conn, <-chan *network.Envelope) {
	t.Helper()
	frames := make(chan *network.Envelope, 16)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			env, err := network.DecodeEnvelope(data)
			if err == nil {
				frames <- env
			}
		}
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, frames
}

func next(t *testing.T, frames <-chan *network.Envelope) *network.Envelope {
	t.Helper()
	select {
	case env := <-frames:
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("no frame")
		return nil
	}
}

func TestCommands(t *testing.T) {
	conn, frames := echoPeer(t)
	cl := &client{conn: conn, room: "ABCD"}

	require.NoError(t, cl.command("hello there"))
	env := next(t, frames)
	assert.Equal(t, network.EventGuessWord, env.Event)
	guess, err := network.Decode[network.GuessRequest](env)
	require.NoError(t, err)
	assert.Equal(t, network.GuessRequest{RoomCode: "ABCD", Guess: "hello there"}, guess)

	require.NoError(t, cl.command("/start 5"))
	env = next(t, frames)
	start, err := network.Decode[network.StartGameRequest](env)
	require.NoError(t, err)
	assert.Equal(t, network.EventStartGame, env.Event)
	assert.Equal(t, network.LooseInt(5), start.MaxRounds)

	require.NoError(t, cl.command("/word  ice cream"))
	env = next(t, frames)
	word, err := network.Decode[network.WordChosenRequest](env)
	require.NoError(t, err)
	assert.Equal(t, "ice cream", word.Word)

	require.NoError(t, cl.command("/ai hard"))
	env = next(t, frames)
	assert.Equal(t, network.EventAddAIPlayer, env.Event)

	require.NoError(t, cl.command("/bogus"))
	require.NoError(t, cl.command("/leave"))
	assert.Equal(t, network.EventLeaveRoom, next(t, frames).Event)
}

func TestShowTracksRoom(t *testing.T) {
	cl := &client{}
	frame, err := network.Encode(network.EventRoomJoined, network.RoomJoined{RoomCode: "WXYZ"})
	require.NoError(t, err)
	env, err := network.DecodeEnvelope(frame)
	require.NoError(t, err)

	cl.show(env)
	assert.Equal(t, "WXYZ", cl.room)
}
