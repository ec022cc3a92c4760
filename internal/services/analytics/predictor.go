package analytics

import (
	"VitalPull/internal/domain/models"
)

// PredictorWeights maps each metric to the linear coefficients over the other
// metrics that best predict it in correlation space. Fit once per series and
// stable for the life of one scoring call.
type PredictorWeights map[string]map[string]float64

// correlationMatrix computes the pairwise-complete Pearson correlation matrix
// over the metric set. Pairs without a defined correlation (fewer than two
// complete rows, or zero variance) are recorded as 0 with ok=false.
func correlationMatrix(series []models.Record) (corr [][]float64, defined [][]bool) {
	k := len(models.Metrics)
	corr = make([][]float64, k)
	defined = make([][]bool, k)
	for i := range corr {
		corr[i] = make([]float64, k)
		defined[i] = make([]bool, k)
		corr[i][i] = 1
		defined[i][i] = true
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			xs := make([]float64, 0, len(series))
			ys := make([]float64, 0, len(series))
			for r := range series {
				vx, okx := series[r].Value(models.Metrics[i])
				vy, oky := series[r].Value(models.Metrics[j])
				if okx && oky {
					xs = append(xs, vx)
					ys = append(ys, vy)
				}
			}
			if r, ok := pearson(xs, ys); ok {
				corr[i][j], corr[j][i] = r, r
				defined[i][j], defined[j][i] = true, true
			}
		}
	}
	return corr, defined
}

// FitPredictor derives, for each metric m, the weights w solving
// C_oo * w = C_om, where C_oo is the correlation submatrix among the other
// metrics and C_om their correlations with m. A singular submatrix (checked
// explicitly by the solver, not caught as a failure) falls back to all-zero
// weights for that metric, degrading the cross-signal factor to a magnitude
// check that the trust scorer tolerates.
func FitPredictor(series []models.Record) PredictorWeights {
	corr, _ := correlationMatrix(series)
	k := len(models.Metrics)
	weights := make(PredictorWeights, k)
	for mi, metric := range models.Metrics {
		others := make([]int, 0, k-1)
		for oi := 0; oi < k; oi++ {
			if oi != mi {
				others = append(others, oi)
			}
		}
		sub := make([][]float64, len(others))
		target := make([]float64, len(others))
		for a, oa := range others {
			sub[a] = make([]float64, len(others))
			for b, ob := range others {
				sub[a][b] = corr[oa][ob]
			}
			target[a] = corr[oa][mi]
		}
		w := make(map[string]float64, len(others))
		solved, ok := solveLinear(sub, target)
		for a, oa := range others {
			if ok {
				w[models.Metrics[oa]] = solved[a]
			} else {
				w[models.Metrics[oa]] = 0
			}
		}
		weights[metric] = w
	}
	return weights
}

// predict computes the weighted sum of the other metrics' same-day values.
// Missing inputs contribute 0 — the one place where missing deliberately
// defaults to zero.
func (pw PredictorWeights) predict(metric string, rec *models.Record) float64 {
	var sum float64
	for other, w := range pw[metric] {
		if v, ok := rec.Value(other); ok {
			sum += w * v
		}
	}
	return sum
}

// Correlations flattens the defined entries of the correlation matrix, one
// per unordered metric pair.
func Correlations(series []models.Record) []models.CorrelationEntry {
	corr, defined := correlationMatrix(series)
	out := make([]models.CorrelationEntry, 0, len(models.Metrics)*(len(models.Metrics)-1)/2)
	for i := 0; i < len(models.Metrics); i++ {
		for j := i + 1; j < len(models.Metrics); j++ {
			if !defined[i][j] {
				continue
			}
			out = append(out, models.CorrelationEntry{
				MetricX:     models.Metrics[i],
				MetricY:     models.Metrics[j],
				Correlation: corr[i][j],
			})
		}
	}
	return out
}
