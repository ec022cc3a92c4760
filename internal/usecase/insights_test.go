package usecase

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"VitalPull/internal/domain/models"
	"VitalPull/internal/services/analytics"
)

// memStore is an in-memory RecordStore for orchestration tests.
type memStore struct {
	records map[string][]models.Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string][]models.Record)}
}

func (s *memStore) Init(ctx context.Context) error { return nil }

func (s *memStore) Upsert(ctx context.Context, rec *models.Record) error {
	s.records[rec.UserID] = append(s.records[rec.UserID], rec.Clone())
	return nil
}

func (s *memStore) UpsertBatch(ctx context.Context, recs []*models.Record) error {
	for _, r := range recs {
		if err := s.Upsert(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (s *memStore) FetchUser(ctx context.Context, userID string) ([]models.Record, error) {
	return models.CloneSeries(s.records[userID]), nil
}

func (s *memStore) FetchCohort(ctx context.Context, excludeUser string) ([]models.Record, error) {
	var out []models.Record
	for user, series := range s.records {
		if user == excludeUser {
			continue
		}
		out = append(out, models.CloneSeries(series)...)
	}
	return out, nil
}

func (s *memStore) Health(ctx context.Context) error { return nil }
func (s *memStore) Close() error                     { return nil }

// nopMetrics discards all observations.
type nopMetrics struct{}

func (nopMetrics) RecordIngest(backend, userID string)          {}
func (nopMetrics) RecordError(kind string)                      {}
func (nopMetrics) RecordAnomalyScore(userID string, sc float64) {}
func (nopMetrics) RecordLatency(op string, seconds float64)     {}

func seedUser(s *memStore, userID string, n int) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rec := models.Record{UserID: userID, Date: base.AddDate(0, 0, i).Format("2006-01-02")}
		rec.Set(models.MetricSleepHours, 7)
		rec.Set(models.MetricRestingHR, 60)
		rec.Set(models.MetricHRV, 45)
		rec.Set(models.MetricSteps, 8000)
		rec.Set(models.MetricCalories, 2100)
		rec.Set(models.MetricWeight, 70)
		_ = s.Upsert(context.Background(), &rec)
	}
}

func newTestInsights(store *memStore) *Insights {
	engine := analytics.NewEngine()
	return NewInsights(store, engine, engine, nopMetrics{})
}

func TestTrustScoresNoData(t *testing.T) {
	svc := newTestInsights(newMemStore())
	_, err := svc.TrustScores(context.Background(), "ghost")
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}

func TestAnomaliesInsufficientData(t *testing.T) {
	store := newMemStore()
	seedUser(store, "u1", 3)
	svc := newTestInsights(store)
	_, err := svc.Anomalies(context.Background(), "u1")
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestAnomaliesSuccess(t *testing.T) {
	store := newMemStore()
	seedUser(store, "u1", 10)
	svc := newTestInsights(store)
	results, err := svc.Anomalies(context.Background(), "u1")
	if err != nil {
		t.Fatalf("anomalies: %v", err)
	}
	if len(results) != 10 {
		t.Fatalf("len = %d, want 10", len(results))
	}
}

func TestCorrelationsInsufficientData(t *testing.T) {
	store := newMemStore()
	seedUser(store, "u1", 2)
	svc := newTestInsights(store)
	_, err := svc.Correlations(context.Background(), "u1")
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestSimulateInvalidMode(t *testing.T) {
	store := newMemStore()
	seedUser(store, "u1", 10)
	svc := newTestInsights(store)
	rng := rand.New(rand.NewSource(1))
	_, err := svc.Simulate(context.Background(), "u1", "tamper", 0.1, rng)
	if err == nil {
		t.Fatalf("expected error for invalid mode")
	}
}

func TestSimulateOutcome(t *testing.T) {
	store := newMemStore()
	seedUser(store, "u1", 10)
	svc := newTestInsights(store)
	rng := rand.New(rand.NewSource(1))
	out, err := svc.Simulate(context.Background(), "u1", "missing", 0.2, rng)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(out.Modified) != 10 || len(out.Detections) != 10 {
		t.Fatalf("modified/detections = %d/%d, want 10/10", len(out.Modified), len(out.Detections))
	}
}

func TestFederatedTrustEmptyCohort(t *testing.T) {
	store := newMemStore()
	seedUser(store, "u1", 10)
	svc := newTestInsights(store)
	_, err := svc.FederatedTrust(context.Background(), "u1")
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestFederatedTrustWithCohort(t *testing.T) {
	store := newMemStore()
	seedUser(store, "u1", 10)
	seedUser(store, "u2", 10)
	svc := newTestInsights(store)
	score, err := svc.FederatedTrust(context.Background(), "u1")
	if err != nil {
		t.Fatalf("federated: %v", err)
	}
	if score < 0.999 || score > 1 {
		t.Fatalf("score = %v, want ~1 for identical users", score)
	}
}

func TestSecurityMetricsInsufficientData(t *testing.T) {
	store := newMemStore()
	seedUser(store, "u1", 2)
	svc := newTestInsights(store)
	_, err := svc.SecurityMetrics(context.Background(), "u1")
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}
