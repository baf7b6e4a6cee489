// monitor/monitor.go
package monitor

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	OnlinePlayers  prometheus.Gauge
	ActiveRooms    prometheus.Gauge
	Intents        *prometheus.CounterVec
	IntentLatency  prometheus.Histogram
	RoundsEnded    *prometheus.CounterVec
	CorrectGuesses *prometheus.CounterVec
	AIGuesses      *prometheus.CounterVec
	GamesFinished  prometheus.Counter
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		OnlinePlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_players",
			Help:      "Number of connected players",
		}),
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of live rooms",
		}),
		Intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_total",
			Help:      "Inbound intents by event name",
		}, []string{"event"}),
		IntentLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "intent_latency_seconds",
			Help:      "Time from receipt to handling of an intent",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		RoundsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_ended_total",
			Help:      "Finished rounds by reason",
		}, []string{"reason"}),
		CorrectGuesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "correct_guesses_total",
			Help:      "Correct guesses by guesser kind",
		}, []string{"kind"}),
		AIGuesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_guesses_total",
			Help:      "Synthetic guesses by difficulty",
		}, []string{"difficulty"}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that reached game over",
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.OnlinePlayers,
		m.ActiveRooms,
		m.Intents,
		m.IntentLatency,
		m.RoundsEnded,
		m.CorrectGuesses,
		m.AIGuesses,
		m.GamesFinished,
	}
}

// Monitor records game metrics. A nil *Monitor is valid and records nothing.
type Monitor struct {
	metrics   *Metrics
	gatherer  prometheus.Gatherer
	startTime time.Time
}

// NewMonitor registers metrics on reg. Pass prometheus.NewRegistry() in tests.
func NewMonitor(namespace string, reg *prometheus.Registry) (*Monitor, error) {
	metrics := NewMetrics(namespace)
	for _, c := range metrics.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return &Monitor{
		metrics:   metrics,
		gatherer:  reg,
		startTime: time.Now(),
	}, nil
}

func (m *Monitor) Metrics() *Metrics {
	if m == nil {
		return nil
	}
	return m.metrics
}

// Handler serves the registry in the prometheus exposition format.
func (m *Monitor) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Monitor) Uptime() time.Duration {
	if m == nil {
		return 0
	}
	return time.Since(m.startTime)
}

func (m *Monitor) IncOnlinePlayers() {
	if m == nil {
		return
	}
	m.metrics.OnlinePlayers.Inc()
}

func (m *Monitor) DecOnlinePlayers() {
	if m == nil {
		return
	}
	m.metrics.OnlinePlayers.Dec()
}

func (m *Monitor) SetActiveRooms(count int) {
	if m == nil {
		return
	}
	m.metrics.ActiveRooms.Set(float64(count))
}

func (m *Monitor) IncIntent(event string) {
	if m == nil {
		return
	}
	m.metrics.Intents.WithLabelValues(event).Inc()
}

func (m *Monitor) ObserveIntentLatency(duration time.Duration) {
	if m == nil {
		return
	}
	m.metrics.IntentLatency.Observe(duration.Seconds())
}

func (m *Monitor) IncRoundEnded(reason string) {
	if m == nil {
		return
	}
	m.metrics.RoundsEnded.WithLabelValues(reason).Inc()
}

func (m *Monitor) IncCorrectGuess(synthetic bool) {
	if m == nil {
		return
	}
	kind := "human"
	if synthetic {
		kind = "ai"
	}
	m.metrics.CorrectGuesses.WithLabelValues(kind).Inc()
}

func (m *Monitor) IncAIGuess(difficulty string) {
	if m == nil {
		return
	}
	m.metrics.AIGuesses.WithLabelValues(difficulty).Inc()
}

func (m *Monitor) IncGamesFinished() {
	if m == nil {
		return
	}
	m.metrics.GamesFinished.Inc()
}
