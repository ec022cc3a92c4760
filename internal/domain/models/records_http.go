package models

// Requests and wire representations for the records API. Defined in domain for
// consistency and reuse.

// HealthRecordAPI is the wire form of a Record: nil pointer means missing.
type HealthRecordAPI struct {
	UserID     string   `json:"user_id"`
	Date       string   `json:"date"`
	SleepHours *float64 `json:"sleep_hours"`
	RestingHR  *float64 `json:"resting_hr"`
	HRV        *float64 `json:"hrv"`
	Steps      *float64 `json:"steps"`
	Calories   *float64 `json:"calories"`
	Weight     *float64 `json:"weight"`
}

// RecordUpsertRequest is the POST /records body.
type RecordUpsertRequest struct {
	UserID     string   `json:"user_id" validate:"required"`
	Date       string   `json:"date" validate:"required,datetime=2006-01-02"`
	SleepHours *float64 `json:"sleep_hours" validate:"omitempty,gte=0,lte=24"`
	RestingHR  *float64 `json:"resting_hr" validate:"omitempty,gt=0,lt=300"`
	HRV        *float64 `json:"hrv" validate:"omitempty,gte=0"`
	Steps      *float64 `json:"steps" validate:"omitempty,gte=0"`
	Calories   *float64 `json:"calories" validate:"omitempty,gte=0"`
	Weight     *float64 `json:"weight" validate:"omitempty,gt=0"`
}

// SimulationRequest is the POST /simulate body. Seed, when present, makes the
// perturbation reproducible.
type SimulationRequest struct {
	UserID   string  `json:"user_id" validate:"required"`
	Mode     string  `json:"mode" validate:"required,oneof=missing delay spoof noise"`
	Fraction float64 `json:"fraction" default:"0.1" validate:"gte=0,lte=1"`
	Seed     *int64  `json:"seed"`
}

// Record converts the upsert request into the domain record.
func (r *RecordUpsertRequest) Record() Record {
	rec := Record{UserID: r.UserID, Date: r.Date}
	set := func(metric string, v *float64) {
		if v != nil {
			rec.Set(metric, *v)
		}
	}
	set(MetricSleepHours, r.SleepHours)
	set(MetricRestingHR, r.RestingHR)
	set(MetricHRV, r.HRV)
	set(MetricSteps, r.Steps)
	set(MetricCalories, r.Calories)
	set(MetricWeight, r.Weight)
	return rec
}

// ToAPI converts a domain record into its wire form.
func ToAPI(rec Record) HealthRecordAPI {
	get := func(metric string) *float64 {
		if v, ok := rec.Value(metric); ok {
			out := v
			return &out
		}
		return nil
	}
	return HealthRecordAPI{
		UserID:     rec.UserID,
		Date:       rec.Date,
		SleepHours: get(MetricSleepHours),
		RestingHR:  get(MetricRestingHR),
		HRV:        get(MetricHRV),
		Steps:      get(MetricSteps),
		Calories:   get(MetricCalories),
		Weight:     get(MetricWeight),
	}
}

// ToAPISeries converts an ordered series into wire form.
func ToAPISeries(series []Record) []HealthRecordAPI {
	out := make([]HealthRecordAPI, 0, len(series))
	for _, rec := range series {
		out = append(out, ToAPI(rec))
	}
	return out
}

// FromAPI converts a wire record into the domain record, dropping nil fields.
func FromAPI(in HealthRecordAPI) Record {
	rec := Record{UserID: in.UserID, Date: in.Date}
	set := func(metric string, v *float64) {
		if v != nil {
			rec.Set(metric, *v)
		}
	}
	set(MetricSleepHours, in.SleepHours)
	set(MetricRestingHR, in.RestingHR)
	set(MetricHRV, in.HRV)
	set(MetricSteps, in.Steps)
	set(MetricCalories, in.Calories)
	set(MetricWeight, in.Weight)
	return rec
}
