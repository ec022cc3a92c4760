package analytics

import (
	"math/rand"
	"testing"

	"VitalPull/internal/domain/models"
)

func TestEngineTrustScoresShape(t *testing.T) {
	e := NewEngine()
	series := constantSeries(8)
	entries := e.TrustScores(series)
	if want := len(series) * len(models.Metrics); len(entries) != want {
		t.Fatalf("len = %d, want %d", len(entries), want)
	}
}

func TestEngineWithWindow(t *testing.T) {
	// a 6-day window needs only 5 prior observations, so day 5 of an 8-day
	// series is already scored against a baseline
	e := NewEngine(WithWindow(6))
	series := constantSeries(8)
	series[6].Set(models.MetricRestingHR, 600)

	results := e.Anomalies(series)
	if !results[6].IsAnomaly {
		t.Fatalf("expected spike detected with shortened window, score %v", results[6].AnomalyScore)
	}

	// the default 14-day window has no baseline this early
	wide := NewEngine().Anomalies(series)
	if wide[6].IsAnomaly {
		t.Fatalf("default window should lack baseline on day 6")
	}
}

func TestEngineWithWindowIgnoresNonPositive(t *testing.T) {
	e := NewEngine(WithWindow(0))
	if e.window != DefaultWindow {
		t.Fatalf("window = %d, want default %d", e.window, DefaultWindow)
	}
}

func TestEngineSimulateInvalidMode(t *testing.T) {
	e := NewEngine()
	rng := rand.New(rand.NewSource(1))
	if _, err := e.Simulate(constantSeries(10), "tamper", 0.1, rng); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
