package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/wfunc/drawguess/models"
)

// Inbound intents.
const (
	EventCreateRoom   = "createRoom"
	EventJoinRoom     = "joinRoom"
	EventLeaveRoom    = "leaveRoom"
	EventStartGame    = "startGame"
	EventAddAIPlayer  = "addAIPlayer"
	EventWordChosen   = "wordChosen"
	EventGuessWord    = "guessWord"
	EventDrawEvent    = "drawEvent"
	EventClearCanvas  = "clearCanvas"
	EventDebugDrawAll = "debugDrawAll"
)

// Outbound notifications.
const (
	EventRoomCreated      = "roomCreated"
	EventRoomJoined       = "roomJoined"
	EventRoomError        = "roomError"
	EventPlayerListUpdate = "playerListUpdate"
	EventScoresUpdate     = "scoresUpdate"
	EventGameStarted      = "gameStarted"
	EventRoundPreparing   = "roundPreparing"
	EventChooseWord       = "chooseWord"
	EventRoundInfo        = "roundInfo"
	EventYourWord         = "yourWord"
	EventTimerUpdate      = "timerUpdate"
	EventHintUpdate       = "hintUpdate"
	EventRoundEnded       = "roundEnded"
	EventGameOver         = "gameOver"
	EventChatMessage      = "chatMessage"
	EventRemoteDrawEvent  = "remoteDrawEvent"
	EventClearCanvasAll   = "clearCanvasAll"
)

// Chat message kinds.
const (
	ChatKindChat   = "chat"
	ChatKindSystem = "system"
	SystemName     = "System"
)

var (
	ErrEmptyPayload   = errors.New("empty payload")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrMalformedFrame = errors.New("malformed frame")
)

// Envelope is the frame carried in every websocket text message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode wraps a payload in an envelope. A nil payload encodes as an empty object.
func Encode(event string, payload any) ([]byte, error) {
	if payload == nil {
		payload = struct{}{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// DecodeEnvelope parses one frame.
func DecodeEnvelope(frame []byte) (*Envelope, error) {
	if len(bytes.TrimSpace(frame)) == 0 {
		return nil, ErrEmptyPayload
	}
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, err
	}
	if env.Event == "" {
		return nil, ErrUnknownEvent
	}
	return &env, nil
}

// Decode unmarshals an envelope's data. Missing data decodes to the zero value.
func Decode[T any](env *Envelope) (T, error) {
	var v T
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return v, nil
	}
	err := json.Unmarshal(env.Data, &v)
	return v, err
}

// LooseInt accepts a JSON number or a numeric string. Anything else decodes to zero.
type LooseInt int

func (n *LooseInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if v, err := strconv.Atoi(s); err == nil {
		*n = LooseInt(v)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= -1e9 && f <= 1e9 {
		*n = LooseInt(int(f))
		return nil
	}
	*n = 0
	return nil
}

// Inbound payloads.

type CreateRoomRequest struct {
	Name string `json:"name"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
}

type RoomRequest struct {
	RoomCode string `json:"roomCode"`
}

type StartGameRequest struct {
	RoomCode  string   `json:"roomCode"`
	MaxRounds LooseInt `json:"maxRounds"`
}

type AddAIPlayerRequest struct {
	RoomCode   string `json:"roomCode"`
	Difficulty string `json:"difficulty"`
}

type WordChosenRequest struct {
	RoomCode string `json:"roomCode"`
	Word     string `json:"word"`
}

type GuessRequest struct {
	RoomCode string `json:"roomCode"`
	Guess    string `json:"guess"`
}

type DrawRequest struct {
	RoomCode string             `json:"roomCode"`
	Event    models.StrokeEvent `json:"event"`
}

// Outbound payloads.

type RoomJoined struct {
	RoomCode string              `json:"roomCode"`
	PlayerID string              `json:"playerId"`
	Players  []models.PlayerInfo `json:"players"`
	IsHost   bool                `json:"isHost"`
}

type RoomError struct {
	Message string `json:"message"`
}

type PlayerList struct {
	Players []models.PlayerInfo `json:"players"`
}

type Scores struct {
	Scores []models.ScoreEntry `json:"scores"`
}

type GameStarted struct {
	MaxRounds int `json:"maxRounds"`
}

type RoundPreparing struct {
	Round      int    `json:"round"`
	MaxRounds  int    `json:"maxRounds"`
	DrawerName string `json:"drawerName"`
}

type ChooseWord struct {
	RoomCode  string   `json:"roomCode"`
	Round     int      `json:"round"`
	MaxRounds int      `json:"maxRounds"`
	Options   []string `json:"options"`
}

type RoundInfo struct {
	Round      int    `json:"round"`
	MaxRounds  int    `json:"maxRounds"`
	DrawerName string `json:"drawerName"`
	MaskedWord string `json:"maskedWord"`
}

type YourWord struct {
	Word string `json:"word"`
}

type TimerUpdate struct {
	TimeLeft int `json:"timeLeft"`
}

type HintUpdate struct {
	MaskedWord string `json:"maskedWord"`
}

type RoundEnded struct {
	Round           int      `json:"round"`
	Word            string   `json:"word"`
	DrawerName      string   `json:"drawerName"`
	CorrectGuessers []string `json:"correctGuessers"`
	Reason          string   `json:"reason"`
}

type GameOver struct {
	Scores  []models.ScoreEntry   `json:"scores"`
	History []models.HistoryEntry `json:"history"`
}

type ChatMessage struct {
	Name string `json:"name"`
	Text string `json:"text"`
	Type string `json:"type"`
}
