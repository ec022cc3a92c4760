package analytics

import (
	"time"

	"VitalPull/internal/domain/models"
)

func day(i int) string {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format("2006-01-02")
}

// constantSeries builds n fully-populated days with identical values, the
// simplest series whose robust z-scores are exactly zero.
func constantSeries(n int) []models.Record {
	out := make([]models.Record, n)
	for i := range out {
		out[i] = models.Record{UserID: "u1", Date: day(i)}
		out[i].Set(models.MetricSleepHours, 7)
		out[i].Set(models.MetricRestingHR, 60)
		out[i].Set(models.MetricHRV, 45)
		out[i].Set(models.MetricSteps, 8000)
		out[i].Set(models.MetricCalories, 2100)
		out[i].Set(models.MetricWeight, 70)
	}
	return out
}
