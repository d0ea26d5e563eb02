// Package metrics exposes Prometheus instrumentation for the server,
// following the teacher's Collector pattern: a struct of Gauge/Counter
// fields constructed once and registered against a Registerer.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "antcolonyd"
	subsystem = "server"
)

// Collector holds every Prometheus metric the server reports.
type Collector struct {
	// Sessions tracks the number of currently active game sessions.
	Sessions prometheus.Gauge

	// Players holds the player count most recently reported by any one
	// session (that session's channel-table size); it is not summed across
	// sessions.
	Players prometheus.Gauge

	// MovesProcessed counts every move command successfully applied by a
	// session engine.
	MovesProcessed prometheus.Counter

	// EvaporateCycles counts pheromone decay ticks run across all sessions.
	EvaporateCycles prometheus.Counter

	// Reconnects counts join requests whose player id the lobby resolved to
	// a live session.
	Reconnects prometheus.Counter

	// MatchmakingErrors counts lobby replies other than JoinedGame.
	MatchmakingErrors prometheus.Counter
}

// NewCollector builds a Collector and registers every metric against reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "sessions",
			Help: "Number of currently active game sessions.",
		}),
		Players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "players",
			Help: "Number of players registered in the session that last reported its count.",
		}),
		MovesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "moves_processed_total",
			Help: "Total move commands successfully applied.",
		}),
		EvaporateCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "evaporate_cycles_total",
			Help: "Total pheromone decay ticks run.",
		}),
		Reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "reconnects_total",
			Help: "Total join requests whose player id resolved to a live session.",
		}),
		MatchmakingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "matchmaking_errors_total",
			Help: "Total lobby matchmaking replies that were not JoinedGame.",
		}),
	}

	reg.MustRegister(c.Sessions, c.Players, c.MovesProcessed, c.EvaporateCycles, c.Reconnects, c.MatchmakingErrors)

	return c
}

// RegisterSession increments the active sessions gauge.
func (c *Collector) RegisterSession() { c.Sessions.Inc() }

// UnregisterSession decrements the active sessions gauge.
func (c *Collector) UnregisterSession() { c.Sessions.Dec() }

// SetPlayerCount overwrites the players gauge with one session's current
// channel-table size. This is a coarse, last-writer-wins signal across
// sessions, acceptable for the dashboard use this metric serves.
func (c *Collector) SetPlayerCount(n int) { c.Players.Set(float64(n)) }

// IncMovesProcessed increments the moves-processed counter by one.
func (c *Collector) IncMovesProcessed() { c.MovesProcessed.Inc() }

// IncEvaporateCycles increments the evaporate-cycles counter by one.
func (c *Collector) IncEvaporateCycles() { c.EvaporateCycles.Inc() }

// IncReconnects increments the reconnects counter by one.
func (c *Collector) IncReconnects() { c.Reconnects.Inc() }

// IncMatchmakingErrors increments the matchmaking-errors counter by one.
func (c *Collector) IncMatchmakingErrors() { c.MatchmakingErrors.Inc() }
