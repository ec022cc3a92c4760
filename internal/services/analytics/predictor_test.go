package analytics

import (
	"math"
	"testing"

	"VitalPull/internal/domain/models"
)

func TestCorrelationsBounds(t *testing.T) {
	series := constantSeries(10)
	// introduce variation so correlations are defined
	for i := range series {
		series[i].Set(models.MetricSleepHours, 7+float64(i%3))
		series[i].Set(models.MetricRestingHR, 60-float64(i%3))
		series[i].Set(models.MetricSteps, 8000+100*float64(i))
	}
	entries := Correlations(series)
	if len(entries) == 0 {
		t.Fatalf("expected some defined correlations")
	}
	maxPairs := len(models.Metrics) * (len(models.Metrics) - 1) / 2
	if len(entries) > maxPairs {
		t.Fatalf("got %d entries, max %d", len(entries), maxPairs)
	}
	for _, e := range entries {
		if e.Correlation < -1 || e.Correlation > 1 {
			t.Fatalf("%s/%s correlation %v out of [-1,1]", e.MetricX, e.MetricY, e.Correlation)
		}
	}
}

func TestCorrelationsUndefinedPairsOmitted(t *testing.T) {
	// constant metrics have zero variance; no pair is defined
	series := constantSeries(10)
	if got := Correlations(series); len(got) != 0 {
		t.Fatalf("expected no defined pairs, got %d", len(got))
	}
}

func TestCorrelationPerfectPair(t *testing.T) {
	series := constantSeries(10)
	for i := range series {
		series[i].Set(models.MetricSteps, float64(1000*i))
		series[i].Set(models.MetricCalories, float64(2000+500*i))
	}
	for _, e := range Correlations(series) {
		if e.MetricX == models.MetricSteps && e.MetricY == models.MetricCalories {
			if math.Abs(e.Correlation-1) > 1e-9 {
				t.Fatalf("correlation = %v, want 1", e.Correlation)
			}
			return
		}
	}
	t.Fatalf("steps/calories pair not found")
}

func TestFitPredictorSingularFallback(t *testing.T) {
	// every metric perfectly tracks every other one, so the correlation
	// submatrix is all ones and singular
	series := make([]models.Record, 10)
	for i := range series {
		series[i] = models.Record{UserID: "u1", Date: day(i)}
		for _, m := range models.Metrics {
			series[i].Set(m, float64(i))
		}
	}
	weights := FitPredictor(series)
	for metric, w := range weights {
		for other, v := range w {
			if v != 0 {
				t.Fatalf("weights[%s][%s] = %v, want 0 on singular system", metric, other, v)
			}
		}
	}
}

func TestPredictMissingInputsContributeZero(t *testing.T) {
	pw := PredictorWeights{
		models.MetricSleepHours: {
			models.MetricRestingHR: 0.5,
			models.MetricHRV:       2.0,
		},
	}
	rec := models.Record{UserID: "u1", Date: day(0)}
	rec.Set(models.MetricRestingHR, 60)
	// hrv missing

	got := pw.predict(models.MetricSleepHours, &rec)
	if got != 30 {
		t.Fatalf("predict = %v, want 30", got)
	}
}
