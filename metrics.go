package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for all sessions. Each Metrics owns
// its registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	tickSeconds   prometheus.Histogram
	sessions      prometheus.Gauge
	clients       prometheus.Gauge
	enemies       *prometheus.GaugeVec
	projectiles   *prometheus.GaugeVec
	shots         prometheus.Counter
	spawned       prometheus.Counter
	expired       prometheus.Counter
	droppedFrames prometheus.Counter
	rateLimited   prometheus.Counter
}

// NewMetrics creates and registers the collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "horde",
			Name:      "tick_duration_seconds",
			Help:      "Time spent in one simulation tick including broadcast encoding.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "horde",
			Name:      "sessions_active",
			Help:      "Running sessions.",
		}),
		clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "horde",
			Name:      "clients_connected",
			Help:      "Open websocket connections.",
		}),
		enemies: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "horde",
			Name:      "enemies",
			Help:      "Live enemies per session.",
		}, []string{"session"}),
		projectiles: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "horde",
			Name:      "projectiles",
			Help:      "Live projectiles per session.",
		}, []string{"session"}),
		shots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "horde",
			Name:      "shots_fired_total",
			Help:      "Projectiles emitted.",
		}),
		spawned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "horde",
			Name:      "enemies_spawned_total",
			Help:      "Enemies added by the population manager.",
		}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "horde",
			Name:      "projectiles_expired_total",
			Help:      "Projectiles removed after their lifetime.",
		}),
		droppedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "horde",
			Name:      "frames_dropped_total",
			Help:      "State frames not queued because a client send buffer was full.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "horde",
			Name:      "clients_rate_limited_total",
			Help:      "Connections closed for exceeding the inbound message rate.",
		}),
	}
	m.registry.MustRegister(
		m.tickSeconds, m.sessions, m.clients, m.enemies, m.projectiles,
		m.shots, m.spawned, m.expired, m.droppedFrames, m.rateLimited,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// forgetSession drops the per-session series once a session ends
func (m *Metrics) forgetSession(sid string) {
	m.enemies.DeleteLabelValues(sid)
	m.projectiles.DeleteLabelValues(sid)
}
