package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/drawguess/models"
)

func TestEncode(t *testing.T) {
	frame, err := Encode(EventTimerUpdate, TimerUpdate{TimeLeft: 120})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"timerUpdate","data":{"timeLeft":120}}`, string(frame))

	frame, err = Encode(EventClearCanvasAll, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"clearCanvasAll","data":{}}`, string(frame))
}

func TestEncode_StrokeAtCanvasEdge(t *testing.T) {
	frame, err := Encode(EventRemoteDrawEvent, models.StrokeEvent{Type: models.StrokeDraw, X: 0, Y: 15, Color: "#000", LineWidth: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"remoteDrawEvent","data":{"type":"draw","x":0,"y":15,"color":"#000","lineWidth":3}}`, string(frame))

	frame, err = Encode(EventRemoteDrawEvent, models.StrokeEvent{Type: models.StrokeErase, X: 12, Y: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"remoteDrawEvent","data":{"type":"erase","x":12,"y":0}}`, string(frame))
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"event":"drawEvent","data":{"roomCode":"abcd","event":{"type":"draw","x":1.5,"y":2}}}`))
	require.NoError(t, err)
	assert.Equal(t, EventDrawEvent, env.Event)

	req, err := Decode[DrawRequest](env)
	require.NoError(t, err)
	assert.Equal(t, "abcd", req.RoomCode)
	assert.Equal(t, models.StrokeEvent{Type: models.StrokeDraw, X: 1.5, Y: 2}, req.Event)

	_, err = DecodeEnvelope([]byte("  "))
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = DecodeEnvelope([]byte(`{"data":{}}`))
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = DecodeEnvelope([]byte(`{not json`))
	assert.Error(t, err)
}

func TestDecode_MissingData(t *testing.T) {
	req, err := Decode[RoomRequest](&Envelope{Event: EventClearCanvas})
	require.NoError(t, err)
	assert.Empty(t, req.RoomCode)

	_, err = Decode[RoomRequest](&Envelope{Event: EventClearCanvas, Data: []byte(`"oops"`)})
	assert.Error(t, err)
}

func TestLooseInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"maxRounds":5}`, 5},
		{`{"maxRounds":"7"}`, 7},
		{`{"maxRounds":2.9}`, 2},
		{`{"maxRounds":"lots"}`, 0},
		{`{"maxRounds":null}`, 0},
		{`{}`, 0},
	}
	for _, tt := range tests {
		req, err := Decode[StartGameRequest](&Envelope{Data: []byte(tt.raw)})
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, int(req.MaxRounds), tt.raw)
	}
}
