package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"VitalPull/internal/domain/models"
)

const (
	// driverZ is the |z| above which a metric is named as an anomaly driver.
	driverZ = 2.0
	// anomalyThreshold is the daily score at or above which a day is
	// flagged anomalous.
	anomalyThreshold = 1.5
	// maxTailWeight scales the contribution of the day's largest |z|.
	maxTailWeight = 0.25
	// narrativeFloor is the score below which the day reads as normal.
	narrativeFloor = 1.0
)

// DetectAnomalies scores each day's aggregate deviation from the rolling
// baseline. A metric enters the day's computation only when both its value
// and its baseline are present; unlike trust scoring, a metric without
// history is excluded entirely rather than assumed normal. The daily score
// is mean(|z|) + 0.25*max(|z|) over included metrics, emphasising extreme
// single-metric deviations.
func DetectAnomalies(series []models.Record, baseline Baseline) []models.AnomalyResult {
	results := make([]models.AnomalyResult, 0, len(series))
	for i := range series {
		rec := &series[i]
		drivers := []models.AnomalyDriver{}
		var sumZ, maxZ float64
		var included int
		for _, metric := range models.Metrics {
			val, present := rec.Value(metric)
			b := baseline[metric][i]
			if !present || !b.Valid {
				continue
			}
			z := robustZ(val, b)
			absZ := math.Abs(z)
			sumZ += absZ
			if absZ > maxZ {
				maxZ = absZ
			}
			included++
			if absZ > driverZ {
				direction := "high"
				if z < 0 {
					direction = "low"
				}
				drivers = append(drivers, models.AnomalyDriver{
					Metric:    metric,
					Value:     val,
					ZScore:    z,
					Direction: direction,
				})
			}
		}
		var score float64
		if included > 0 {
			score = sumZ/float64(included) + maxTailWeight*maxZ
		}
		results = append(results, models.AnomalyResult{
			UserID:       rec.UserID,
			Date:         rec.Date,
			AnomalyScore: score,
			IsAnomaly:    score >= anomalyThreshold,
			Drivers:      drivers,
			Narrative:    renderNarrative(rec.Date, score, drivers),
		})
	}
	return results
}

// renderNarrative produces the deterministic one-line summary for a day.
func renderNarrative(date string, score float64, drivers []models.AnomalyDriver) string {
	if score < narrativeFloor {
		return fmt.Sprintf("%s: Within normal variation.", date)
	}
	if len(drivers) == 0 {
		return fmt.Sprintf("%s: Elevated deviation detected but no specific metric stands out.", date)
	}
	top := make([]models.AnomalyDriver, len(drivers))
	copy(top, drivers)
	sort.SliceStable(top, func(a, b int) bool {
		return math.Abs(top[a].ZScore) > math.Abs(top[b].ZScore)
	})
	if len(top) > 2 {
		top = top[:2]
	}
	parts := make([]string, 0, len(top))
	for _, d := range top {
		direction := "above"
		if d.Direction == "low" {
			direction = "below"
		}
		parts = append(parts, fmt.Sprintf("%s is %s baseline (z=%.1f)",
			strings.ReplaceAll(d.Metric, "_", " "), direction, d.ZScore))
	}
	return fmt.Sprintf("%s: Anomaly (score=%.2f). %s.", date, score, strings.Join(parts, "; "))
}
