package monitor

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonitor_Records(t *testing.T) {
	m, err := NewMonitor("test", prometheus.NewRegistry())
	require.NoError(t, err)

	m.IncOnlinePlayers()
	m.IncOnlinePlayers()
	m.DecOnlinePlayers()
	m.SetActiveRooms(4)
	m.IncIntent("guessWord")
	m.IncIntent("guessWord")
	m.IncRoundEnded("timeUp")
	m.IncCorrectGuess(true)
	m.IncAIGuess("hard")
	m.IncGamesFinished()
	m.ObserveIntentLatency(time.Millisecond)

	metrics := m.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OnlinePlayers))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.ActiveRooms))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Intents.WithLabelValues("guessWord")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RoundsEnded.WithLabelValues("timeUp")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CorrectGuesses.WithLabelValues("ai")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.CorrectGuesses.WithLabelValues("human")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GamesFinished))
}

func TestMonitor_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMonitor("dup", reg)
	require.NoError(t, err)

	_, err = NewMonitor("dup", reg)
	assert.Error(t, err)
}

func TestMonitor_NilIsNoop(t *testing.T) {
	var m *Monitor
	assert.NotPanics(t, func() {
		m.IncOnlinePlayers()
		m.SetActiveRooms(1)
		m.IncIntent("x")
		m.IncRoundEnded("timeUp")
		m.IncCorrectGuess(false)
		m.IncGamesFinished()
	})
	assert.Nil(t, m.Metrics())
}

func TestMonitor_Handler(t *testing.T) {
	m, err := NewMonitor("drawguess", prometheus.NewRegistry())
	require.NoError(t, err)
	m.SetActiveRooms(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "drawguess_active_rooms 2"))
}
