package analytics

import (
	"math"

	"VitalPull/internal/domain/models"
)

const (
	// driverThreshold is the factor score below which a driver label is
	// attached to a trust entry.
	driverThreshold = 0.6
	// zSaturation is the |z| at which the distribution-shift factor
	// bottoms out.
	zSaturation = 3.0
)

// Trust factor driver labels.
const (
	DriverMissing     = "missing"
	DriverDistShift   = "distribution shift"
	DriverCrossSignal = "cross-signal deviation"
)

// ScoreTrust computes one TrustEntry per metric per day. The score composes
// three factors:
//
//   - missingness: an absent value scores 0 outright;
//   - distribution shift: robust z against the rolling baseline, saturating
//     at |z| = 3. A day without baseline history is scored as z = 0, i.e.
//     "no evidence of deviation" rather than "deviation equals zero";
//   - cross-signal deviation: residual between the value and its prediction
//     from the other same-day metrics, normalised by the metric's
//     whole-series MAD.
//
// The last two multiply, so either factor near zero drives trust toward
// zero. Every score is in [0,1] by construction.
func ScoreTrust(series []models.Record, baseline Baseline, weights PredictorWeights) []models.TrustEntry {
	seriesMAD := overallMAD(series)
	entries := make([]models.TrustEntry, 0, len(series)*len(models.Metrics))
	for i := range series {
		rec := &series[i]
		for _, metric := range models.Metrics {
			val, present := rec.Value(metric)
			if !present {
				entries = append(entries, models.TrustEntry{
					Metric:  metric,
					Date:    rec.Date,
					Score:   0,
					Drivers: []string{DriverMissing},
				})
				continue
			}

			drivers := []string{}
			var z float64
			if b := baseline[metric][i]; b.Valid {
				z = robustZ(val, b)
			}
			distScore := clamp01(1 - math.Abs(z)/zSaturation)
			if distScore < driverThreshold {
				drivers = append(drivers, DriverDistShift)
			}

			predicted := weights.predict(metric, rec)
			residual := math.Abs(val - predicted)
			resScore := clamp01(1 - residual/(zSaturation*seriesMAD[metric]))
			if resScore < driverThreshold {
				drivers = append(drivers, DriverCrossSignal)
			}

			entries = append(entries, models.TrustEntry{
				Metric:  metric,
				Date:    rec.Date,
				Score:   distScore * resScore,
				Drivers: drivers,
			})
		}
	}
	return entries
}
