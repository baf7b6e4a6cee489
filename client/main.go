package main

import (
	"bufio"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/pflag"
	"github.com/wfunc/drawguess/network"
)

// send wraps a payload in an envelope and writes it as a text frame.
func send(c *websocket.Conn, event string, payload any) error {
	frame, err := network.Encode(event, payload)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, frame)
}

type client struct {
	conn *websocket.Conn
	room string
}

// command turns one line of input into an intent. Lines without a leading slash are guesses.
func (cl *client) command(line string) error {
	if !strings.HasPrefix(line, "/") {
		return send(cl.conn, network.EventGuessWord, network.GuessRequest{RoomCode: cl.room, Guess: line})
	}
	fields := strings.Fields(line)
	arg := ""
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}

	switch fields[0] {
	case "/start":
		rounds, _ := strconv.Atoi(arg)
		return send(cl.conn, network.EventStartGame, network.StartGameRequest{RoomCode: cl.room, MaxRounds: network.LooseInt(rounds)})
	case "/ai":
		return send(cl.conn, network.EventAddAIPlayer, network.AddAIPlayerRequest{RoomCode: cl.room, Difficulty: arg})
	case "/word":
		return send(cl.conn, network.EventWordChosen, network.WordChosenRequest{RoomCode: cl.room, Word: arg})
	case "/clear":
		return send(cl.conn, network.EventClearCanvas, network.RoomRequest{RoomCode: cl.room})
	case "/drawall":
		return send(cl.conn, network.EventDebugDrawAll, network.RoomRequest{RoomCode: cl.room})
	case "/leave":
		return send(cl.conn, network.EventLeaveRoom, network.RoomRequest{RoomCode: cl.room})
	default:
		log.Printf("unknown command %s (try /start [rounds], /ai [easy|medium|hard], /word <word>, /clear, /drawall, /leave)", fields[0])
	}
	return nil
}

// show prints one server notification. Stroke events are too chatty and are skipped.
func (cl *client) show(env *network.Envelope) {
	switch env.Event {
	case network.EventRoomCreated, network.EventRoomJoined:
		joined, err := network.Decode[network.RoomJoined](env)
		if err == nil {
			cl.room = joined.RoomCode
			log.Printf("in room %s (host: %v)", joined.RoomCode, joined.IsHost)
		}
	case network.EventChatMessage:
		msg, err := network.Decode[network.ChatMessage](env)
		if err == nil {
			fmt.Printf("%s: %s\n", msg.Name, msg.Text)
		}
	case network.EventChooseWord:
		choose, err := network.Decode[network.ChooseWord](env)
		if err == nil {
			log.Printf("round %d/%d, pick a word with /word: %s", choose.Round, choose.MaxRounds, strings.Join(choose.Options, ", "))
		}
	case network.EventTimerUpdate, network.EventRemoteDrawEvent:
	default:
		log.Printf("<- %s %s", env.Event, string(env.Data))
	}
}

func main() {
	addr := pflag.String("addr", "localhost:3000", "server host:port")
	name := pflag.String("name", "Player", "display name")
	roomCode := pflag.String("room", "", "room code to join; a new room is created when empty")
	pflag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	cl := &client{conn: c}
	incoming := make(chan *network.Envelope, 64)
	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			env, err := network.DecodeEnvelope(message)
			if err != nil {
				log.Printf("bad frame: %v", err)
				continue
			}
			incoming <- env
		}
	}()

	if *roomCode == "" {
		err = send(c, network.EventCreateRoom, network.CreateRoomRequest{Name: *name})
	} else {
		err = send(c, network.EventJoinRoom, network.JoinRoomRequest{RoomCode: *roomCode, Name: *name})
	}
	if err != nil {
		log.Println("Write error:", err)
		return
	}

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if text := strings.TrimSpace(scanner.Text()); text != "" {
				lines <- text
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case env := <-incoming:
			cl.show(env)
		case line := <-lines:
			if err := cl.command(line); err != nil {
				log.Println("Write error:", err)
				return
			}
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}
