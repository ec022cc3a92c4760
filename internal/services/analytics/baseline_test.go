package analytics

import (
	"testing"

	"VitalPull/internal/domain/models"
)

func TestBaselineNeedsHistory(t *testing.T) {
	series := constantSeries(10)
	baseline := EstimateBaseline(series, DefaultWindow)

	// minPeriods(14) = 7, so days 0..6 have no baseline
	entries := baseline[models.MetricSleepHours]
	for i := 0; i < 7; i++ {
		if entries[i].Valid {
			t.Fatalf("day %d: expected invalid baseline", i)
		}
	}
	for i := 7; i < 10; i++ {
		if !entries[i].Valid {
			t.Fatalf("day %d: expected valid baseline", i)
		}
	}
}

func TestBaselineValues(t *testing.T) {
	series := constantSeries(10)
	b := EstimateBaseline(series, DefaultWindow)[models.MetricSleepHours][9]
	if b.Median != 7 {
		t.Fatalf("median = %v, want 7", b.Median)
	}
	if b.MAD != madEpsilon {
		t.Fatalf("mad = %v, want floor %v", b.MAD, madEpsilon)
	}
}

func TestBaselineExcludesCurrentDay(t *testing.T) {
	series := constantSeries(20)
	before := EstimateBaseline(series, DefaultWindow)

	// tampering with day 15 must not move day 15's own baseline
	series[15].Set(models.MetricSleepHours, 700)
	after := EstimateBaseline(series, DefaultWindow)

	b0 := before[models.MetricSleepHours][15]
	b1 := after[models.MetricSleepHours][15]
	if b0 != b1 {
		t.Fatalf("baseline for tampered day changed: %+v -> %+v", b0, b1)
	}
}

func TestBaselineSkipsMissing(t *testing.T) {
	series := constantSeries(12)
	// knock out enough history that day 11's window drops below minPeriods
	for i := 0; i < 6; i++ {
		series[i].Unset(models.MetricHRV)
	}
	baseline := EstimateBaseline(series, DefaultWindow)
	if baseline[models.MetricHRV][11].Valid {
		t.Fatalf("expected invalid baseline with only 5 observations")
	}
	// other metrics unaffected
	if !baseline[models.MetricSleepHours][11].Valid {
		t.Fatalf("expected valid baseline for untouched metric")
	}
}

func TestBaselineZeroWindowUsesDefault(t *testing.T) {
	series := constantSeries(10)
	baseline := EstimateBaseline(series, 0)
	if !baseline[models.MetricSleepHours][9].Valid {
		t.Fatalf("expected default window to apply")
	}
}

func TestRobustZ(t *testing.T) {
	b := BaselineEntry{Median: 10, MAD: 1, Valid: true}
	z := robustZ(10+madToSigma, b)
	if z < 0.999 || z > 1.001 {
		t.Fatalf("z = %v, want ~1", z)
	}
}
