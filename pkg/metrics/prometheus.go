package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	ingested     *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	anomalyScore *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		ingested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vitalpull_records_ingested_total",
				Help: "Total number of health records routed to a backend",
			},
			[]string{"backend", "user_id"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vitalpull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		anomalyScore: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vitalpull_anomaly_score",
				Help: "Latest anomaly score computed for a user",
			},
			[]string{"user_id"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vitalpull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordIngest records a health record routed to a backend.
func (r *Recorder) RecordIngest(backend, userID string) {
	r.ingested.WithLabelValues(backend, userID).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordAnomalyScore records the most recent anomaly score for a user.
func (r *Recorder) RecordAnomalyScore(userID string, score float64) {
	r.anomalyScore.WithLabelValues(userID).Set(score)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
