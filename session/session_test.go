package session

import (
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wfunc/drawguess/network"
	"golang.org/x/time/rate"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct {
	mu      sync.Mutex
	sent    [][]byte
	pings   int
	closed  bool
	sendErr error
}

func (m *MockConnection) Send(frame []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, frame)
	return nil
}

func (m *MockConnection) Ping() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pings++
	return nil
}

func (m *MockConnection) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockConnection) RemoteAddr() net.Addr                     { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)      {}
func (m *MockConnection) ReadEnvelope() (*network.Envelope, error) { return nil, errors.New("eof") }

func (m *MockConnection) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *MockConnection) isClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sess := NewSession("s1", &MockConnection{}, nil, 4)

	manager.Add(sess)
	assert.Equal(t, 1, manager.Count())

	got, ok := manager.Get("s1")
	require.True(t, ok)
	assert.Same(t, sess, got)

	manager.Remove("s1")
	_, ok = manager.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, manager.Count())
}

func TestSession_SendQueueFull(t *testing.T) {
	sess := NewSession("s1", &MockConnection{}, nil, 2)

	require.NoError(t, sess.Send([]byte("a")))
	require.NoError(t, sess.Send([]byte("b")))
	assert.ErrorIs(t, sess.Send([]byte("c")), ErrSendQueueFull)
}

func TestSession_WritePumpDelivers(t *testing.T) {
	conn := &MockConnection{}
	sess := NewSession("s1", conn, nil, 8)
	go sess.WritePump(time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, sess.Send([]byte("x")))
	}
	assert.Eventually(t, func() bool { return conn.sentCount() == 5 }, time.Second, time.Millisecond)

	require.NoError(t, sess.Close())
	require.NoError(t, sess.Close())
	assert.True(t, conn.isClosed())
	assert.ErrorIs(t, sess.Send([]byte("y")), ErrSessionClosed)
}

func TestSession_WriteFailureCloses(t *testing.T) {
	conn := &MockConnection{sendErr: errors.New("broken pipe")}
	sess := NewSession("s1", conn, nil, 8)
	go sess.WritePump(0)

	require.NoError(t, sess.Send([]byte("x")))
	select {
	case <-sess.Done():
	case <-time.After(time.Second):
		t.Fatal("session was not closed after a write failure")
	}
}

func TestSession_Allow(t *testing.T) {
	sess := NewSession("s1", &MockConnection{}, rate.NewLimiter(rate.Every(time.Hour), 2), 1)
	assert.True(t, sess.Allow())
	assert.True(t, sess.Allow())
	assert.False(t, sess.Allow())

	open := NewSession("s2", &MockConnection{}, nil, 1)
	for i := 0; i < 100; i++ {
		assert.True(t, open.Allow())
	}
}

func TestManager_CloseAll(t *testing.T) {
	manager := NewManager()
	conns := []*MockConnection{{}, {}}
	manager.Add(NewSession("a", conns[0], nil, 1))
	manager.Add(NewSession("b", conns[1], nil, 1))

	manager.CloseAll()
	for _, c := range conns {
		assert.True(t, c.isClosed())
	}
}

func TestManager_CloseIdle(t *testing.T) {
	manager := NewManager()
	staleConn, freshConn := &MockConnection{}, &MockConnection{}
	stale := NewSession("stale", staleConn, nil, 1)
	stale.LastActive = time.Now().Add(-time.Hour)
	manager.Add(stale)
	manager.Add(NewSession("fresh", freshConn, nil, 1))

	ids := manager.CloseIdle(10 * time.Minute)
	assert.Equal(t, []string{"stale"}, ids)
	assert.True(t, staleConn.isClosed())
	assert.False(t, freshConn.isClosed())
}

func TestSession_AllowRefreshesActivity(t *testing.T) {
	sess := NewSession("s1", &MockConnection{}, nil, 1)
	sess.LastActive = time.Now().Add(-time.Hour)
	require.Greater(t, sess.IdleFor(), 30*time.Minute)

	assert.True(t, sess.Allow())
	assert.Less(t, sess.IdleFor(), time.Minute)
}
