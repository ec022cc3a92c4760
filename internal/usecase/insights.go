package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"VitalPull/internal/domain/models"
	domrepo "VitalPull/internal/domain/repository"
	domsvc "VitalPull/internal/domain/service"
)

// Minimum record counts enforced at this layer; the engine itself only
// degrades gracefully when starved of history.
const (
	minRecordsAnomaly     = 5
	minRecordsCorrelation = 3
)

var (
	// ErrNoData means the user has no records at all.
	ErrNoData = errors.New("no data found for user")
	// ErrInsufficientData means the user has records, but fewer than the
	// operation requires.
	ErrInsufficientData = errors.New("insufficient data")
)

// SimulationOutcome pairs the tampered series with the detections it triggers.
type SimulationOutcome struct {
	Modified   []models.Record
	Detections []models.AnomalyResult
}

// Insights orchestrates the scoring engine over stored per-user series.
// Storage supplies records ordered ascending by date; the engine never
// touches storage itself.
type Insights struct {
	store   domrepo.RecordStore
	trust   domsvc.TrustEngine
	anomaly domsvc.AnomalyDetector
	metrics domrepo.Metrics
}

func NewInsights(store domrepo.RecordStore, trust domsvc.TrustEngine, anomaly domsvc.AnomalyDetector, metrics domrepo.Metrics) *Insights {
	return &Insights{store: store, trust: trust, anomaly: anomaly, metrics: metrics}
}

func (s *Insights) fetch(ctx context.Context, userID string, minRecords int) ([]models.Record, error) {
	series, err := s.store.FetchUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}
	if len(series) < minRecords {
		return nil, fmt.Errorf("%w: need at least %d records, have %d", ErrInsufficientData, minRecords, len(series))
	}
	return series, nil
}

// TrustScores computes per-metric, per-day trust entries for a user.
func (s *Insights) TrustScores(ctx context.Context, userID string) ([]models.TrustEntry, error) {
	series, err := s.fetch(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	entries := s.trust.TrustScores(series)
	s.metrics.RecordLatency("trust_scores", time.Since(start).Seconds())
	return entries, nil
}

// Anomalies computes daily anomaly results for a user.
func (s *Insights) Anomalies(ctx context.Context, userID string) ([]models.AnomalyResult, error) {
	series, err := s.fetch(ctx, userID, minRecordsAnomaly)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	results := s.anomaly.Anomalies(series)
	s.metrics.RecordLatency("anomalies", time.Since(start).Seconds())
	if len(results) > 0 {
		last := results[len(results)-1]
		s.metrics.RecordAnomalyScore(userID, last.AnomalyScore)
	}
	return results, nil
}

// Correlations computes pairwise metric correlations for a user.
func (s *Insights) Correlations(ctx context.Context, userID string) ([]models.CorrelationEntry, error) {
	series, err := s.fetch(ctx, userID, minRecordsCorrelation)
	if err != nil {
		return nil, err
	}
	return s.trust.Correlations(series), nil
}

// Simulate perturbs the user's series under an adversarial mode and re-runs
// anomaly detection on the tampered copy. rng must not be nil.
func (s *Insights) Simulate(ctx context.Context, userID, mode string, fraction float64, rng *rand.Rand) (*SimulationOutcome, error) {
	series, err := s.fetch(ctx, userID, minRecordsAnomaly)
	if err != nil {
		return nil, err
	}
	tampered, err := s.anomaly.Simulate(series, mode, fraction, rng)
	if err != nil {
		s.metrics.RecordError("simulate")
		return nil, err
	}
	return &SimulationOutcome{
		Modified:   tampered,
		Detections: s.anomaly.Anomalies(tampered),
	}, nil
}

// FederatedTrust compares the user's aggregate embedding against the cohort
// of all other users.
func (s *Insights) FederatedTrust(ctx context.Context, userID string) (float64, error) {
	series, err := s.fetch(ctx, userID, 1)
	if err != nil {
		return 0, err
	}
	cohort, err := s.store.FetchCohort(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("fetch cohort: %w", err)
	}
	if len(cohort) == 0 {
		return 0, fmt.Errorf("%w: cohort is empty", ErrInsufficientData)
	}
	return s.trust.FederatedTrust(series, cohort), nil
}

// SecurityMetrics evaluates detection posture over the user's series.
func (s *Insights) SecurityMetrics(ctx context.Context, userID string) (models.SecurityMetrics, error) {
	series, err := s.fetch(ctx, userID, minRecordsAnomaly)
	if err != nil {
		return models.SecurityMetrics{}, err
	}
	start := time.Now()
	sm := s.anomaly.SecurityMetrics(series)
	s.metrics.RecordLatency("security_metrics", time.Since(start).Seconds())
	return sm, nil
}
