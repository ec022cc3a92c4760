package analytics

import (
	"VitalPull/internal/domain/models"
)

// DefaultWindow is the trailing day-count for the rolling baseline.
const DefaultWindow = 14

// BaselineEntry is the rolling robust location/scale for one metric on one
// day. Valid is false when fewer than minPeriods prior observations exist.
type BaselineEntry struct {
	Median float64
	MAD    float64
	Valid  bool
}

// Baseline holds one entry per series row for each metric, aligned one-to-one
// with the input series.
type Baseline map[string][]BaselineEntry

// minPeriods is the minimum number of non-missing observations a window must
// contain before a baseline is emitted.
func minPeriods(window int) int {
	half := window / 2
	if half < 5 {
		return 5
	}
	return half
}

// EstimateBaseline computes the rolling median and MAD per metric over a
// trailing window of prior days. The entry for day d is derived only from
// days strictly before d, so a tampered value can never corrupt its own
// comparison baseline. Days with insufficient history yield an invalid entry,
// not a zero one.
func EstimateBaseline(series []models.Record, window int) Baseline {
	if window <= 0 {
		window = DefaultWindow
	}
	minObs := minPeriods(window)
	out := make(Baseline, len(models.Metrics))
	for _, metric := range models.Metrics {
		entries := make([]BaselineEntry, len(series))
		for i := range series {
			lo := i - window
			if lo < 0 {
				lo = 0
			}
			vals := make([]float64, 0, window)
			for j := lo; j < i; j++ {
				if v, ok := series[j].Value(metric); ok {
					vals = append(vals, v)
				}
			}
			if len(vals) < minObs {
				continue
			}
			entries[i] = BaselineEntry{
				Median: median(vals),
				MAD:    mad(vals),
				Valid:  true,
			}
		}
		out[metric] = entries
	}
	return out
}

// robustZ converts a value into a robust z-score against a baseline entry.
func robustZ(value float64, b BaselineEntry) float64 {
	return (value - b.Median) / (madToSigma * b.MAD)
}

// overallMAD computes each metric's whole-series MAD over non-missing values.
// Used to normalise cross-signal residuals; always at least madEpsilon.
func overallMAD(series []models.Record) map[string]float64 {
	out := make(map[string]float64, len(models.Metrics))
	for _, metric := range models.Metrics {
		vals := make([]float64, 0, len(series))
		for i := range series {
			if v, ok := series[i].Value(metric); ok {
				vals = append(vals, v)
			}
		}
		out[metric] = mad(vals)
	}
	return out
}
