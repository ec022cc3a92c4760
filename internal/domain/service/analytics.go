package service

import (
	"math/rand"

	"VitalPull/internal/domain/models"
)

// TrustEngine scores per-metric confidence and cohort-level similarity.
// Operations are CPU-bound pure functions; no context is threaded through.
type TrustEngine interface {
	TrustScores(series []models.Record) []models.TrustEntry
	Correlations(series []models.Record) []models.CorrelationEntry
	FederatedTrust(userSeries, cohortSeries []models.Record) float64
}

// AnomalyDetector scores daily deviations, simulates adversarial tampering
// and evaluates detection posture. The random source for simulation is
// caller-supplied so runs stay reproducible.
type AnomalyDetector interface {
	Anomalies(series []models.Record) []models.AnomalyResult
	Simulate(series []models.Record, mode string, fraction float64, rng *rand.Rand) ([]models.Record, error)
	SecurityMetrics(series []models.Record) models.SecurityMetrics
}
