package models

// MetricSleepHours and friends name the fixed metric set scored by the engine.
const (
	MetricSleepHours = "sleep_hours"
	MetricRestingHR  = "resting_hr"
	MetricHRV        = "hrv"
	MetricSteps      = "steps"
	MetricCalories   = "calories"
	MetricWeight     = "weight"
)

// Metrics lists the scored metrics in canonical order.
var Metrics = []string{
	MetricSleepHours,
	MetricRestingHR,
	MetricHRV,
	MetricSteps,
	MetricCalories,
	MetricWeight,
}

// Record is one day of telemetry for one user. A metric absent from Values is
// a missing signal; missing and zero are never the same thing.
type Record struct {
	UserID string
	Date   string // YYYY-MM-DD
	Values map[string]float64
}

// Value returns the metric value and whether it is present.
func (r *Record) Value(metric string) (float64, bool) {
	v, ok := r.Values[metric]
	return v, ok
}

// Set stores a metric value, allocating the map on first use.
func (r *Record) Set(metric string, v float64) {
	if r.Values == nil {
		r.Values = make(map[string]float64, len(Metrics))
	}
	r.Values[metric] = v
}

// Unset removes a metric value, turning it into a missing signal.
func (r *Record) Unset(metric string) {
	delete(r.Values, metric)
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	out := Record{UserID: r.UserID, Date: r.Date}
	if r.Values != nil {
		out.Values = make(map[string]float64, len(r.Values))
		for k, v := range r.Values {
			out.Values[k] = v
		}
	}
	return out
}

// CloneSeries deep-copies an ordered record sequence.
func CloneSeries(series []Record) []Record {
	out := make([]Record, len(series))
	for i := range series {
		out[i] = series[i].Clone()
	}
	return out
}
