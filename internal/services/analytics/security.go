package analytics

import (
	"VitalPull/internal/domain/models"
)

// EvaluateSecurity derives cohort-level detection posture for one series.
// Days with at least one missing metric are treated as ground-truth
// anomalies; detections are the aggregator's is_anomaly days. Signal
// integrity is the mean trust score over all metric/day pairs, attack
// surface its complement. With no ground truth at all, precision and recall
// default to 1.0 and MTTD to 0.0.
func EvaluateSecurity(series []models.Record, window int) models.SecurityMetrics {
	baseline := EstimateBaseline(series, window)
	weights := FitPredictor(series)

	trust := ScoreTrust(series, baseline, weights)
	var meanTrust float64
	if len(trust) > 0 {
		var sum float64
		for _, t := range trust {
			sum += t.Score
		}
		meanTrust = sum / float64(len(trust))
	} else {
		meanTrust = 1.0
	}

	truth := make(map[string]bool)
	dateIndex := make(map[string]int, len(series))
	for i := range series {
		dateIndex[series[i].Date] = i
		for _, metric := range models.Metrics {
			if _, ok := series[i].Value(metric); !ok {
				truth[series[i].Date] = true
				break
			}
		}
	}

	detected := make(map[string]bool)
	for _, r := range DetectAnomalies(series, baseline) {
		if r.IsAnomaly {
			detected[r.Date] = true
		}
	}

	out := models.SecurityMetrics{
		SignalIntegrity:    meanTrust,
		AttackSurfaceScore: 1 - meanTrust,
		AnomalyPrecision:   1.0,
		AnomalyRecall:      1.0,
		MeanTimeToDetect:   0.0,
	}
	if len(truth) == 0 {
		return out
	}

	var tp int
	for d := range detected {
		if truth[d] {
			tp++
		}
	}
	fp := len(detected) - tp
	fn := len(truth) - tp
	if tp+fp > 0 {
		out.AnomalyPrecision = float64(tp) / float64(tp+fp)
	} else {
		out.AnomalyPrecision = 0
	}
	if tp+fn > 0 {
		out.AnomalyRecall = float64(tp) / float64(tp+fn)
	} else {
		out.AnomalyRecall = 0
	}

	// MTTD: same-day detections contribute 0; otherwise the index distance
	// to the nearest later detected day. True anomalies never detected at
	// all contribute nothing.
	var mttdSum float64
	var mttdCount int
	for d := range truth {
		if detected[d] {
			mttdSum += 0
			mttdCount++
			continue
		}
		aIdx := dateIndex[d]
		best := -1
		for dd := range detected {
			if di := dateIndex[dd]; di > aIdx && (best == -1 || di < best) {
				best = di
			}
		}
		if best >= 0 {
			mttdSum += float64(best - aIdx)
			mttdCount++
		}
	}
	if mttdCount > 0 {
		out.MeanTimeToDetect = mttdSum / float64(mttdCount)
	}
	return out
}
