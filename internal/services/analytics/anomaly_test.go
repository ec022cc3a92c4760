package analytics

import (
	"strings"
	"testing"

	"VitalPull/internal/domain/models"
)

func detect(series []models.Record) []models.AnomalyResult {
	return DetectAnomalies(series, EstimateBaseline(series, DefaultWindow))
}

func TestDetectAnomaliesQuietSeries(t *testing.T) {
	series := constantSeries(30)
	for _, r := range detect(series) {
		if r.IsAnomaly {
			t.Fatalf("%s flagged anomalous in constant series", r.Date)
		}
		if r.AnomalyScore != 0 {
			t.Fatalf("%s score %v, want 0", r.Date, r.AnomalyScore)
		}
		if !strings.HasSuffix(r.Narrative, "Within normal variation.") {
			t.Fatalf("narrative = %q", r.Narrative)
		}
	}
}

func TestDetectAnomaliesSpikeDay(t *testing.T) {
	series := constantSeries(30)
	series[20].Set(models.MetricRestingHR, 600)

	results := detect(series)
	r := results[20]
	if !r.IsAnomaly {
		t.Fatalf("expected day 20 anomalous, score %v", r.AnomalyScore)
	}
	if len(r.Drivers) != 1 {
		t.Fatalf("drivers = %+v, want exactly the spiked metric", r.Drivers)
	}
	d := r.Drivers[0]
	if d.Metric != models.MetricRestingHR || d.Direction != "high" || d.Value != 600 {
		t.Fatalf("driver = %+v", d)
	}
	if !strings.HasPrefix(r.Narrative, day(20)+": Anomaly (score=") {
		t.Fatalf("narrative = %q", r.Narrative)
	}
	if !strings.Contains(r.Narrative, "resting hr is above baseline") {
		t.Fatalf("narrative = %q", r.Narrative)
	}
}

func TestDetectAnomaliesLowSpikeDirection(t *testing.T) {
	series := constantSeries(30)
	series[25].Set(models.MetricHRV, -500)

	r := detect(series)[25]
	if len(r.Drivers) != 1 || r.Drivers[0].Direction != "low" {
		t.Fatalf("drivers = %+v, want single low driver", r.Drivers)
	}
}

func TestDetectAnomaliesExcludesMetricsWithoutBaseline(t *testing.T) {
	// too short for any baseline: every metric is excluded, every day zero
	series := constantSeries(6)
	series[5].Set(models.MetricSteps, 1e9)

	for _, r := range detect(series) {
		if r.AnomalyScore != 0 || r.IsAnomaly {
			t.Fatalf("%s scored %v without baseline history", r.Date, r.AnomalyScore)
		}
		if len(r.Drivers) != 0 {
			t.Fatalf("%s drivers = %+v, want none", r.Date, r.Drivers)
		}
	}
}

func TestDetectAnomaliesExcludesMissingValues(t *testing.T) {
	series := constantSeries(30)
	// missing is excluded from aggregation, not treated as a deviation
	for _, m := range models.Metrics {
		series[20].Unset(m)
	}
	r := detect(series)[20]
	if r.AnomalyScore != 0 || r.IsAnomaly {
		t.Fatalf("all-missing day scored %v", r.AnomalyScore)
	}
}

func TestRenderNarrativeNormal(t *testing.T) {
	got := renderNarrative("2025-02-01", 0.4, nil)
	if got != "2025-02-01: Within normal variation." {
		t.Fatalf("narrative = %q", got)
	}
}

func TestRenderNarrativeElevatedNoDrivers(t *testing.T) {
	got := renderNarrative("2025-02-01", 1.2, nil)
	if got != "2025-02-01: Elevated deviation detected but no specific metric stands out." {
		t.Fatalf("narrative = %q", got)
	}
}

func TestRenderNarrativeTopTwoDrivers(t *testing.T) {
	drivers := []models.AnomalyDriver{
		{Metric: models.MetricHRV, Value: 20, ZScore: -2.5, Direction: "low"},
		{Metric: models.MetricRestingHR, Value: 90, ZScore: 3.2, Direction: "high"},
		{Metric: models.MetricSteps, Value: 100, ZScore: -2.1, Direction: "low"},
	}
	got := renderNarrative("2025-02-01", 2.5, drivers)
	want := "2025-02-01: Anomaly (score=2.50). resting hr is above baseline (z=3.2); hrv is below baseline (z=-2.5)."
	if got != want {
		t.Fatalf("narrative = %q, want %q", got, want)
	}
}
