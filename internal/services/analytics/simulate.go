package analytics

import (
	"fmt"
	"math"
	"math/rand"

	"VitalPull/internal/domain/models"
)

// AttackMode selects the adversarial perturbation applied by SimulateAttack.
type AttackMode string

const (
	ModeMissing AttackMode = "missing" // drop values entirely
	ModeDelay   AttackMode = "delay"   // replay the value from three days earlier
	ModeSpoof   AttackMode = "spoof"   // inflate values by a 1.5x-2.5x factor
	ModeNoise   AttackMode = "noise"   // add Gaussian noise proportional to the value
)

// ParseMode validates a raw mode string. Unknown modes are a caller error,
// never a silent no-op.
func ParseMode(s string) (AttackMode, error) {
	switch m := AttackMode(s); m {
	case ModeMissing, ModeDelay, ModeSpoof, ModeNoise:
		return m, nil
	default:
		return "", fmt.Errorf("invalid simulation mode %q", s)
	}
}

// SimulateAttack returns a perturbed deep copy of the series; the input is
// never modified. For each metric independently, floor(n*fraction) distinct
// day-indices are drawn without replacement from rng and perturbed according
// to mode. Delay reads from the unperturbed input, clamped at the series
// start, so near-start days may come back unchanged. The random source is
// caller-supplied to keep simulation runs reproducible.
func SimulateAttack(series []models.Record, mode AttackMode, fraction float64, rng *rand.Rand) ([]models.Record, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("fraction %v out of range [0,1]", fraction)
	}

	perturbed := models.CloneSeries(series)
	n := len(series)
	count := int(float64(n) * fraction)
	if count == 0 {
		return perturbed, nil
	}

	for _, metric := range models.Metrics {
		for _, idx := range rng.Perm(n)[:count] {
			switch mode {
			case ModeMissing:
				perturbed[idx].Unset(metric)
			case ModeDelay:
				src := idx - 3
				if src < 0 {
					src = 0
				}
				if v, ok := series[src].Value(metric); ok {
					perturbed[idx].Set(metric, v)
				} else {
					perturbed[idx].Unset(metric)
				}
			case ModeSpoof:
				if v, ok := series[idx].Value(metric); ok {
					perturbed[idx].Set(metric, v*(1.5+rng.Float64()))
				}
			case ModeNoise:
				if v, ok := series[idx].Value(metric); ok {
					sd := 0.1 * math.Abs(v)
					if v == 0 {
						sd = 0.1
					}
					perturbed[idx].Set(metric, v+rng.NormFloat64()*sd)
				}
			}
		}
	}
	return perturbed, nil
}
