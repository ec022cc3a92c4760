// Package analytics implements the statistical scoring engine for daily
// health telemetry: robust baseline estimation, cross-signal linear
// prediction, multiplicative trust composition, anomaly aggregation with
// narrative generation, attack simulation and federated embedding
// comparison. All operations are synchronous pure functions of their inputs;
// results are freshly constructed per call and never alias caller data.
package analytics

import (
	"math/rand"

	"VitalPull/internal/domain/models"
	domsvc "VitalPull/internal/domain/service"
)

// Engine is the scoring facade over the statistical components. It carries
// no mutable state beyond its configuration, so a single instance is safe
// for concurrent use across users.
type Engine struct {
	window int
}

// EngineOption configures Engine.
type EngineOption func(*Engine)

// WithWindow overrides the rolling baseline window (days).
func WithWindow(days int) EngineOption {
	return func(e *Engine) {
		if days > 0 {
			e.window = days
		}
	}
}

// NewEngine creates the scoring engine with the default 14-day window.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{window: DefaultWindow}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TrustScores computes one trust entry per metric per day. Records must be
// ordered ascending by date with no duplicate dates; the caller guarantees
// this. Starved of history the result degrades to neutral scores rather
// than erroring.
func (e *Engine) TrustScores(series []models.Record) []models.TrustEntry {
	baseline := EstimateBaseline(series, e.window)
	weights := FitPredictor(series)
	return ScoreTrust(series, baseline, weights)
}

// Anomalies computes one result per day. Callers enforce the minimum record
// count; below it the output simply carries zero scores and empty drivers.
func (e *Engine) Anomalies(series []models.Record) []models.AnomalyResult {
	baseline := EstimateBaseline(series, e.window)
	return DetectAnomalies(series, baseline)
}

// Correlations returns the pairwise Pearson correlations between metrics.
func (e *Engine) Correlations(series []models.Record) []models.CorrelationEntry {
	return Correlations(series)
}

// Simulate perturbs a copy of the series under the given adversarial mode.
func (e *Engine) Simulate(series []models.Record, mode string, fraction float64, rng *rand.Rand) ([]models.Record, error) {
	return SimulateAttack(series, AttackMode(mode), fraction, rng)
}

// FederatedTrust compares the user's aggregate embedding to the cohort's.
func (e *Engine) FederatedTrust(userSeries, cohortSeries []models.Record) float64 {
	return FederatedTrust(userSeries, cohortSeries)
}

// SecurityMetrics evaluates detection posture over the series.
func (e *Engine) SecurityMetrics(series []models.Record) models.SecurityMetrics {
	return EvaluateSecurity(series, e.window)
}

var (
	_ domsvc.TrustEngine     = (*Engine)(nil)
	_ domsvc.AnomalyDetector = (*Engine)(nil)
)
