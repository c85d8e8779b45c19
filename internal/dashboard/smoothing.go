package dashboard

import (
	"github.com/cinar/indicator"

	"github.com/apetrov/econ-tracker/pkg/models"
)

// smoothObservations computes SMA and EMA overlays over the observation
// values. Returns nil slices when the window has fewer points than the
// period, so short windows render without overlays.
func smoothObservations(observations []models.Observation, period int) (sma, ema []float64) {
	if len(observations) < period {
		return nil, nil
	}

	values := make([]float64, len(observations))
	for i, obs := range observations {
		values[i], _ = obs.Value.Float64()
	}

	return indicator.Sma(period, values), indicator.Ema(period, values)
}
