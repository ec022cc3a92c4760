package models

// TrustEntry is the per-metric, per-day confidence that a value is genuine.
// Score is bounded to [0,1]; Drivers name the factors that depressed it.
type TrustEntry struct {
	Metric  string   `json:"metric"`
	Date    string   `json:"date"`
	Score   float64  `json:"score"`
	Drivers []string `json:"drivers"`
}

// AnomalyDriver names a metric that pushed a day's anomaly score up.
type AnomalyDriver struct {
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
	ZScore    float64 `json:"z_score"`
	Direction string  `json:"direction"` // "high" or "low"
}

// AnomalyResult is one day's aggregate deviation from the user's own history.
type AnomalyResult struct {
	UserID       string          `json:"user_id"`
	Date         string          `json:"date"`
	AnomalyScore float64         `json:"anomaly_score"`
	IsAnomaly    bool            `json:"is_anomaly"`
	Drivers      []AnomalyDriver `json:"drivers"`
	Narrative    string          `json:"narrative"`
}

// CorrelationEntry is the Pearson correlation for one unordered metric pair.
type CorrelationEntry struct {
	MetricX     string  `json:"metric_x"`
	MetricY     string  `json:"metric_y"`
	Correlation float64 `json:"correlation"`
}

// SecurityMetrics summarises detection posture over one user's series.
type SecurityMetrics struct {
	AttackSurfaceScore float64 `json:"attack_surface_score"`
	SignalIntegrity    float64 `json:"signal_integrity"`
	AnomalyPrecision   float64 `json:"anomaly_precision"`
	AnomalyRecall      float64 `json:"anomaly_recall"`
	MeanTimeToDetect   float64 `json:"mean_time_to_detect"`
}
