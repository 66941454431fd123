// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "code"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "health_http_request_duration_seconds",
			Help:    "Histogram of response latency (seconds) for HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	// PredictionsTotal counts prediction service calls by kind and outcome
	// (ok, rejected, error).
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_predictions_total",
			Help: "Prediction service calls by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
	SessionsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "health_sessions_purged_total",
		Help: "Expired sessions removed by the cleanup job",
	})
	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "health_events_dropped_total",
		Help: "Health events discarded because the publish queue was full or closed",
	})
)

// Prediction kinds.
const (
	KindDisease   = "disease"
	KindQuiz      = "mental_health_quiz"
	KindSentiment = "sentiment"
	KindFitness   = "fitness"
)

// ObservePrediction records one prediction call outcome.
func ObservePrediction(kind, outcome string) {
	PredictionsTotal.WithLabelValues(kind, outcome).Inc()
}
