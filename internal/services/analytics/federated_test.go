package analytics

import (
	"math"
	"testing"

	"VitalPull/internal/domain/models"
)

func TestFederatedTrustIdenticalSeries(t *testing.T) {
	series := constantSeries(10)
	got := FederatedTrust(series, models.CloneSeries(series))
	if got < 0.999 || got > 1 {
		t.Fatalf("trust = %v, want ~1 for identical embeddings", got)
	}
}

func TestFederatedTrustOppositeEmbeddings(t *testing.T) {
	user := constantSeries(10)
	cohort := models.CloneSeries(user)
	for i := range cohort {
		for _, m := range models.Metrics {
			v, _ := cohort[i].Value(m)
			cohort[i].Set(m, -v)
		}
	}
	got := FederatedTrust(user, cohort)
	if got > 0.001 {
		t.Fatalf("trust = %v, want ~0 for opposite embeddings", got)
	}
}

func TestFederatedTrustBounds(t *testing.T) {
	user := constantSeries(10)
	cohort := constantSeries(10)
	for i := range cohort {
		cohort[i].Set(models.MetricSteps, 100)
		cohort[i].Set(models.MetricRestingHR, 90)
	}
	got := FederatedTrust(user, cohort)
	if got < 0 || got > 1 {
		t.Fatalf("trust = %v out of [0,1]", got)
	}
}

func TestEmbeddingUnitNorm(t *testing.T) {
	vec := embedding(constantSeries(10))
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if math.Abs(math.Sqrt(norm)-1) > 1e-6 {
		t.Fatalf("norm = %v, want ~1", math.Sqrt(norm))
	}
}

func TestEmbeddingMissingMetricZero(t *testing.T) {
	series := constantSeries(10)
	for i := range series {
		series[i].Unset(models.MetricWeight)
	}
	vec := embedding(series)
	// weight is last in the canonical metric order
	if vec[len(vec)-1] != 0 {
		t.Fatalf("unobserved metric embedding = %v, want 0", vec[len(vec)-1])
	}
}
