package analytics

import (
	"math/rand"
	"reflect"
	"testing"

	"VitalPull/internal/domain/models"
)

func TestParseModeValid(t *testing.T) {
	for _, s := range []string{"missing", "delay", "spoof", "noise"} {
		if _, err := ParseMode(s); err != nil {
			t.Fatalf("ParseMode(%q): %v", s, err)
		}
	}
}

func TestParseModeInvalid(t *testing.T) {
	if _, err := ParseMode("replay"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestSimulateInvalidFraction(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := SimulateAttack(constantSeries(10), ModeMissing, 1.5, rng); err == nil {
		t.Fatalf("expected error for fraction > 1")
	}
	if _, err := SimulateAttack(constantSeries(10), ModeMissing, -0.1, rng); err == nil {
		t.Fatalf("expected error for negative fraction")
	}
}

func TestSimulateFractionZeroRoundTrip(t *testing.T) {
	series := constantSeries(10)
	rng := rand.New(rand.NewSource(1))
	got, err := SimulateAttack(series, ModeSpoof, 0, rng)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !reflect.DeepEqual(got, series) {
		t.Fatalf("fraction 0 must return an identical series")
	}
}

func TestSimulateInputUnchanged(t *testing.T) {
	series := constantSeries(10)
	want := models.CloneSeries(series)
	rng := rand.New(rand.NewSource(1))
	if _, err := SimulateAttack(series, ModeSpoof, 1, rng); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !reflect.DeepEqual(series, want) {
		t.Fatalf("input series was mutated")
	}
}

func TestSimulateMissingCount(t *testing.T) {
	series := constantSeries(20)
	rng := rand.New(rand.NewSource(7))
	got, err := SimulateAttack(series, ModeMissing, 0.25, rng)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	// floor(20*0.25) = 5 distinct days dropped per metric
	for _, metric := range models.Metrics {
		present := 0
		for i := range got {
			if _, ok := got[i].Value(metric); ok {
				present++
			}
		}
		if present != 15 {
			t.Fatalf("%s: %d present, want 15", metric, present)
		}
	}
}

func TestSimulateDelayReadsOriginal(t *testing.T) {
	// values encode the day index, so a delayed value names its source day
	series := make([]models.Record, 10)
	for i := range series {
		series[i] = models.Record{UserID: "u1", Date: day(i)}
		for _, m := range models.Metrics {
			series[i].Set(m, float64(i))
		}
	}
	rng := rand.New(rand.NewSource(3))
	got, err := SimulateAttack(series, ModeDelay, 1, rng)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for i := range got {
		src := i - 3
		if src < 0 {
			src = 0
		}
		for _, m := range models.Metrics {
			v, ok := got[i].Value(m)
			if !ok {
				t.Fatalf("day %d %s unexpectedly missing", i, m)
			}
			if v != float64(src) {
				t.Fatalf("day %d %s = %v, want value of day %d", i, m, v, src)
			}
		}
	}
}

func TestSimulateDelayFromMissingSource(t *testing.T) {
	series := constantSeries(10)
	for i := 0; i < 4; i++ {
		series[i].Unset(models.MetricWeight)
	}
	rng := rand.New(rand.NewSource(3))
	got, err := SimulateAttack(series, ModeDelay, 1, rng)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	// day 5's source is day 2, which has no weight: the delayed copy loses it
	if _, ok := got[5].Value(models.MetricWeight); ok {
		t.Fatalf("expected weight missing after delay from missing source")
	}
}

func TestSimulateSeededDeterminism(t *testing.T) {
	series := constantSeries(20)
	a, err := SimulateAttack(series, ModeNoise, 0.5, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	b, err := SimulateAttack(series, ModeNoise, 0.5, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different series")
	}
}

func TestSimulateNoiseTriggersDetections(t *testing.T) {
	series := constantSeries(30)
	rng := rand.New(rand.NewSource(11))
	tampered, err := SimulateAttack(series, ModeNoise, 0.3, rng)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	clean := 0
	for _, r := range detect(series) {
		if r.IsAnomaly {
			clean++
		}
	}
	noisy := 0
	for _, r := range detect(tampered) {
		if r.IsAnomaly {
			noisy++
		}
	}
	if noisy < clean {
		t.Fatalf("noise reduced detections: %d -> %d", clean, noisy)
	}
	if noisy == 0 {
		t.Fatalf("expected at least one detection in tampered series")
	}
}
