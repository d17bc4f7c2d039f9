package metrics

import (
	"net/http"
	"strconv"

	"github.com/cameroncuttingedge/tictactoe_ai/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// gamesStarted counts new games by mode and whether the computer plays
	gamesStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_games_started_total",
		Help: "Total games started by mode and AI setting",
	}, []string{"mode", "ai_enabled"})

	// movesTotal counts move requests by outcome kind
	movesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_moves_total",
		Help: "Total move requests by kind (applied or rejected)",
	}, []string{"kind", "mode"})

	// gamesFinished counts results reached on a call
	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tictactoe_games_finished_total",
		Help: "Total games that reached a result, by result",
	}, []string{"result"})

	// aiSelectDuration tracks how long the computer took to pick a move
	aiSelectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tictactoe_ai_select_duration_seconds",
		Help:    "AI move selection duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
	})

	// OpenConnections is the number of live websocket play connections
	OpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tictactoe_ws_connections",
		Help: "Open websocket play connections",
	})
)

// Record updates the collectors for one game event.
func Record(e events.GameEvent) {
	switch e.Kind {
	case events.GameStarted:
		gamesStarted.WithLabelValues(e.Mode, strconv.FormatBool(e.AIEnabled)).Inc()
	case events.MoveApplied, events.MoveRejected:
		movesTotal.WithLabelValues(string(e.Kind), e.Mode).Inc()
	}
	if e.AIMove != nil {
		aiSelectDuration.Observe(e.AIElapsed.Seconds())
	}
	if e.Kind != events.MoveRejected && e.Result != "" && e.Result != "in_progress" {
		gamesFinished.WithLabelValues(e.Result).Inc()
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
