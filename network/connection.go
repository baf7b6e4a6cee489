// network/connection.go
package network

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wfunc/drawguess/logger"
)

const (
	writeWait      = 10 * time.Second
	maxFrameLength = 64 * 1024
)

type Connection interface {
	Send(frame []byte) error
	Ping() error
	Close() error
	RemoteAddr() net.Addr
	SetHeartbeat(interval time.Duration)
	ReadEnvelope() (*Envelope, error)
}

type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
	heartbeat time.Duration
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	conn.SetReadLimit(maxFrameLength)
	return &WSConnection{conn: conn}
}

// Send writes one text frame. Safe for concurrent use.
func (c *WSConnection) Send(frame []byte) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

func (c *WSConnection) Ping() error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ReadEnvelope blocks for the next frame. Binary frames are treated like text. Frames that
// fail to decode come back wrapped in ErrMalformedFrame and leave the connection usable.
func (c *WSConnection) ReadEnvelope() (*Envelope, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	env, err := DecodeEnvelope(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return env, nil
}

// SetHeartbeat expects a pong within twice the interval; each pong extends the deadline.
func (c *WSConnection) SetHeartbeat(interval time.Duration) {
	c.heartbeat = interval
	if interval <= 0 {
		return
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(interval * 2)); err != nil {
		logger.Log.Warnw("set read deadline", "remote", c.conn.RemoteAddr().String(), "error", err)
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.heartbeat * 2))
	})
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
