package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReportsSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "safetymap_reports_submitted_total",
		Help: "Total accepted incident reports",
	}, []string{"type"})
	ReportsRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "safetymap_reports_rejected_total",
		Help: "Total incident reports rejected at validation",
	})
	VotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "safetymap_votes_total",
		Help: "Total applied votes",
	}, []string{"choice"})
	VoteConflictRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "safetymap_vote_conflict_retries_total",
		Help: "Total vote retries after a concurrent write conflict",
	})
	AlertsPublishedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "safetymap_alerts_published_total",
		Help: "Total incident alerts published to the fanout bus",
	})
	AlertsDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "safetymap_alerts_dropped_total",
		Help: "Total alerts dropped because of slow or failed delivery",
	})
	SubscribersGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "safetymap_cell_subscribers",
		Help: "Current number of connected cell subscribers",
	})
	ScoreRecomputeDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "safetymap_score_recompute_duration_ms",
		Help:    "Full score recompute batch duration in milliseconds",
		Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000, 30000},
	})
	ScoreRecomputeFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "safetymap_score_recompute_failures_total",
		Help: "Total per-neighborhood recompute failures",
	})
)

func init() {
	prometheus.MustRegister(
		ReportsSubmittedTotal,
		ReportsRejectedTotal,
		VotesTotal,
		VoteConflictRetriesTotal,
		AlertsPublishedTotal,
		AlertsDroppedTotal,
		SubscribersGauge,
		ScoreRecomputeDurationMs,
		ScoreRecomputeFailuresTotal,
	)
}

// Handler возвращает HTTP-хэндлер для /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
