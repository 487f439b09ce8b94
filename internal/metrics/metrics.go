// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tamkeen_http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tamkeen_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	scoreEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tamkeen_score_events_total",
		Help: "Ledger entries appended, by point value.",
	}, []string{"points"})

	scoreUndosTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tamkeen_score_undos_total",
		Help: "Ledger entries removed by undo.",
	})

	gamesFinalizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tamkeen_games_finalized_total",
		Help: "Games moved to final status.",
	})
)

// ObserveRequest records one served HTTP request.
func ObserveRequest(method string, status int, duration time.Duration) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// IncScoreEvent counts one appended ledger entry.
func IncScoreEvent(points int64) {
	scoreEventsTotal.WithLabelValues(strconv.FormatInt(points, 10)).Inc()
}

// IncScoreUndo counts one undone ledger entry.
func IncScoreUndo() {
	scoreUndosTotal.Inc()
}

// IncGameFinalized counts one finalized game.
func IncGameFinalized() {
	gamesFinalizedTotal.Inc()
}

// Handler exposes the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
