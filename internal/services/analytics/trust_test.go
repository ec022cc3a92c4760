package analytics

import (
	"testing"

	"VitalPull/internal/domain/models"
)

func scoreTrust(series []models.Record) []models.TrustEntry {
	baseline := EstimateBaseline(series, DefaultWindow)
	weights := FitPredictor(series)
	return ScoreTrust(series, baseline, weights)
}

func findEntry(t *testing.T, entries []models.TrustEntry, metric, date string) models.TrustEntry {
	t.Helper()
	for _, e := range entries {
		if e.Metric == metric && e.Date == date {
			return e
		}
	}
	t.Fatalf("entry %s/%s not found", metric, date)
	return models.TrustEntry{}
}

func TestScoreTrustMissingMetric(t *testing.T) {
	series := constantSeries(10)
	series[4].Unset(models.MetricHRV)

	entries := scoreTrust(series)
	e := findEntry(t, entries, models.MetricHRV, day(4))
	if e.Score != 0 {
		t.Fatalf("score = %v, want 0 for missing value", e.Score)
	}
	if len(e.Drivers) != 1 || e.Drivers[0] != DriverMissing {
		t.Fatalf("drivers = %v, want [%s]", e.Drivers, DriverMissing)
	}
}

func TestScoreTrustBounds(t *testing.T) {
	series := constantSeries(20)
	series[10].Set(models.MetricSteps, 40000)
	series[12].Unset(models.MetricWeight)

	for _, e := range scoreTrust(series) {
		if e.Score < 0 || e.Score > 1 {
			t.Fatalf("%s/%s score %v out of [0,1]", e.Metric, e.Date, e.Score)
		}
		if e.Drivers == nil {
			t.Fatalf("%s/%s drivers must not be nil", e.Metric, e.Date)
		}
	}
}

func TestScoreTrustShape(t *testing.T) {
	series := constantSeries(5)
	entries := scoreTrust(series)
	if want := len(series) * len(models.Metrics); len(entries) != want {
		t.Fatalf("len = %d, want %d", len(entries), want)
	}
}

func TestScoreTrustNoBaselineIsNotAShift(t *testing.T) {
	// 3 days can never accumulate baseline history, so the distribution
	// factor must stay neutral
	series := constantSeries(3)
	for _, e := range scoreTrust(series) {
		for _, d := range e.Drivers {
			if d == DriverDistShift {
				t.Fatalf("%s/%s flagged distribution shift without baseline", e.Metric, e.Date)
			}
		}
	}
}

func TestScoreTrustSpikeDrivesScoreDown(t *testing.T) {
	series := constantSeries(30)
	series[20].Set(models.MetricSleepHours, 70)

	entries := scoreTrust(series)
	e := findEntry(t, entries, models.MetricSleepHours, day(20))
	if e.Score != 0 {
		t.Fatalf("score = %v, want 0 for extreme spike", e.Score)
	}
	var shifted bool
	for _, d := range e.Drivers {
		if d == DriverDistShift {
			shifted = true
		}
	}
	if !shifted {
		t.Fatalf("drivers = %v, expected %q", e.Drivers, DriverDistShift)
	}
}
