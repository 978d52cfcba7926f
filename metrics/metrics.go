// Package metrics exposes Prometheus counters for the scoring pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pointsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racket",
		Name:      "points_applied_total",
		Help:      "Point-won events applied by the scoring engines.",
	}, []string{"sport"})

	matchesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racket",
		Name:      "matches_completed_total",
		Help:      "Matches that reached a terminal score.",
	}, []string{"sport"})

	pointsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "racket",
		Name:      "points_rejected_total",
		Help:      "Point submissions rejected before reaching an engine.",
	}, []string{"sport", "reason"})
)

func RecordPointApplied(sport string) {
	pointsApplied.WithLabelValues(sport).Inc()
}

func RecordMatchCompleted(sport string) {
	matchesCompleted.WithLabelValues(sport).Inc()
}

func RecordPointRejected(sport, reason string) {
	pointsRejected.WithLabelValues(sport, reason).Inc()
}

// Handler отдаёт метрики для /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
