// session/session.go
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/wfunc/drawguess/logger"
	"github.com/wfunc/drawguess/network"
	"golang.org/x/time/rate"
)

var (
	ErrSendQueueFull = errors.New("send queue full")
	ErrSessionClosed = errors.New("session closed")
)

// Session is one websocket connection. Its ID doubles as the player ID in every room it joins.
type Session struct {
	ID         string
	Conn       network.Connection
	Limiter    *rate.Limiter
	CreatedAt  time.Time
	LastActive time.Time

	outbox    chan []byte
	done      chan struct{}
	closeOnce sync.Once
	mutex     sync.RWMutex
}

func NewSession(id string, conn network.Connection, limiter *rate.Limiter, queue int) *Session {
	if queue < 1 {
		queue = 1
	}
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		Limiter:    limiter,
		CreatedAt:  now,
		LastActive: now,
		outbox:     make(chan []byte, queue),
		done:       make(chan struct{}),
	}
}

func (s *Session) GetID() string {
	return s.ID
}

// Send queues a frame without blocking.
func (s *Session) Send(frame []byte) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.outbox <- frame:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Allow applies the inbound rate limit. Sessions without a limiter accept everything.
func (s *Session) Allow() bool {
	s.Touch()
	return s.Limiter == nil || s.Limiter.Allow()
}

func (s *Session) Touch() {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
}

func (s *Session) IdleFor() time.Duration {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return time.Since(s.LastActive)
}

// WritePump drains the outbox onto the connection and pings every pingInterval. It returns
// when the session is closed or a write fails.
func (s *Session) WritePump(pingInterval time.Duration) {
	var ping <-chan time.Time
	if pingInterval > 0 {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		ping = ticker.C
	}

	for {
		select {
		case <-s.done:
			return
		case frame := <-s.outbox:
			if err := s.Conn.Send(frame); err != nil {
				logger.Log.Debugw("write failed", "session", s.ID, "error", err)
				s.Close()
				return
			}
		case <-ping:
			if err := s.Conn.Ping(); err != nil {
				logger.Log.Debugw("ping failed", "session", s.ID, "error", err)
				s.Close()
				return
			}
		}
	}
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Close stops the write pump and closes the connection. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.Conn.Close()
	})
	return err
}

type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// CloseIdle closes every session that sent nothing for longer than maxIdle and returns their IDs.
func (m *Manager) CloseIdle(maxIdle time.Duration) []string {
	m.mutex.RLock()
	var idle []*Session
	for _, s := range m.sessions {
		if s.IdleFor() > maxIdle {
			idle = append(idle, s)
		}
	}
	m.mutex.RUnlock()

	ids := make([]string, 0, len(idle))
	for _, s := range idle {
		logger.Log.Infow("closing idle session", "session", s.ID, "idle", s.IdleFor().String())
		s.Close()
		ids = append(ids, s.ID)
	}
	return ids
}

// CloseAll closes every session, used on shutdown.
func (m *Manager) CloseAll() {
	m.mutex.RLock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mutex.RUnlock()

	for _, s := range sessions {
		s.Close()
	}
}
