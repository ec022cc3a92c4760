package analytics

import (
	"math"

	"VitalPull/internal/domain/models"
)

// embedding summarises a series as the unit-normalised vector of per-metric
// means over non-missing values. A metric with no observations contributes 0.
// Only this aggregate ever crosses the trust boundary; no raw per-day value
// is exchanged.
func embedding(series []models.Record) []float64 {
	vec := make([]float64, len(models.Metrics))
	for mi, metric := range models.Metrics {
		var sum float64
		var count int
		for i := range series {
			if v, ok := series[i].Value(metric); ok {
				sum += v
				count++
			}
		}
		if count > 0 {
			vec[mi] = sum / float64(count)
		}
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm) + normEpsilon
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// FederatedTrust compares a user's aggregate signal embedding to a cohort
// embedding via cosine similarity, mapped linearly from [-1,1] to [0,1].
// Identical non-zero embeddings yield 1.0, exactly opposite ones 0.0.
func FederatedTrust(userSeries, cohortSeries []models.Record) float64 {
	u := embedding(userSeries)
	g := embedding(cohortSeries)
	var dot, nu, ng float64
	for i := range u {
		dot += u[i] * g[i]
		nu += u[i] * u[i]
		ng += g[i] * g[i]
	}
	similarity := dot / (math.Sqrt(nu)*math.Sqrt(ng) + normEpsilon)
	return clamp01((similarity + 1) / 2)
}
