package analytics

import (
	"testing"

	"VitalPull/internal/domain/models"
)

func TestEvaluateSecurityCleanSeries(t *testing.T) {
	sm := EvaluateSecurity(constantSeries(30), DefaultWindow)
	if sm.AnomalyPrecision != 1.0 || sm.AnomalyRecall != 1.0 {
		t.Fatalf("precision/recall = %v/%v, want 1/1 without ground truth", sm.AnomalyPrecision, sm.AnomalyRecall)
	}
	if sm.MeanTimeToDetect != 0 {
		t.Fatalf("mttd = %v, want 0", sm.MeanTimeToDetect)
	}
	if sm.SignalIntegrity < 0 || sm.SignalIntegrity > 1 {
		t.Fatalf("signal integrity %v out of [0,1]", sm.SignalIntegrity)
	}
	if sm.AttackSurfaceScore != 1-sm.SignalIntegrity {
		t.Fatalf("attack surface %v is not the integrity complement", sm.AttackSurfaceScore)
	}
}

func TestEvaluateSecuritySameDayDetection(t *testing.T) {
	series := constantSeries(30)
	// day 20 both loses a signal (ground truth) and spikes another
	// (detectable), so detection lands on the truth day itself
	series[20].Unset(models.MetricSleepHours)
	series[20].Set(models.MetricRestingHR, 600)

	sm := EvaluateSecurity(series, DefaultWindow)
	if sm.AnomalyPrecision != 1.0 {
		t.Fatalf("precision = %v, want 1", sm.AnomalyPrecision)
	}
	if sm.AnomalyRecall != 1.0 {
		t.Fatalf("recall = %v, want 1", sm.AnomalyRecall)
	}
	if sm.MeanTimeToDetect != 0 {
		t.Fatalf("mttd = %v, want 0 for same-day detection", sm.MeanTimeToDetect)
	}
}

func TestEvaluateSecurityMissedTruth(t *testing.T) {
	series := constantSeries(30)
	// a quiet dropout: nothing spikes, so the detector never fires
	series[20].Unset(models.MetricSleepHours)

	sm := EvaluateSecurity(series, DefaultWindow)
	if sm.AnomalyPrecision != 0 {
		t.Fatalf("precision = %v, want 0 with no detections", sm.AnomalyPrecision)
	}
	if sm.AnomalyRecall != 0 {
		t.Fatalf("recall = %v, want 0 with no detections", sm.AnomalyRecall)
	}
	if sm.MeanTimeToDetect != 0 {
		t.Fatalf("mttd = %v, want 0 when never detected", sm.MeanTimeToDetect)
	}
}

func TestEvaluateSecurityLaggedDetection(t *testing.T) {
	series := constantSeries(30)
	// truth at day 10, first detectable spike two days later
	series[10].Unset(models.MetricHRV)
	series[12].Set(models.MetricRestingHR, 600)

	sm := EvaluateSecurity(series, DefaultWindow)
	if sm.AnomalyPrecision != 0 {
		t.Fatalf("precision = %v, want 0 (detection day is not truth)", sm.AnomalyPrecision)
	}
	if sm.AnomalyRecall != 0 {
		t.Fatalf("recall = %v, want 0", sm.AnomalyRecall)
	}
	if sm.MeanTimeToDetect != 2 {
		t.Fatalf("mttd = %v, want 2", sm.MeanTimeToDetect)
	}
}
