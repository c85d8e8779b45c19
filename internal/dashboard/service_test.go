package dashboard

import (
	"math"
	"testing"
	"time"

	"github.com/apetrov/econ-tracker/pkg/models"
)

func TestParsePeriod(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period   string
		expected time.Time
	}{
		{"1month", now.AddDate(0, -1, 0)},
		{"3months", now.AddDate(0, -3, 0)},
		{"6months", now.AddDate(0, -6, 0)},
		{"1year", now.AddDate(-1, 0, 0)},
		{"2years", now.AddDate(-2, 0, 0)},
		{"5years", now.AddDate(-5, 0, 0)},
		{"10years", now.AddDate(-10, 0, 0)},
		{"1YEAR", now.AddDate(-1, 0, 0)},
		{"", now.AddDate(-1, 0, 0)},
		{"fortnight", now.AddDate(-1, 0, 0)},
	}

	for _, tt := range tests {
		got := ParsePeriod(tt.period, now)
		if !got.Equal(tt.expected) {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tt.period, got, tt.expected)
		}
	}
}

func makeObservations(values []float64) []models.Observation {
	observations := make([]models.Observation, len(values))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		observations[i] = models.Observation{
			Date:  start.AddDate(0, i, 0),
			Value: models.NewDecimal(v),
		}
	}
	return observations
}

func TestSmoothObservationsShortWindow(t *testing.T) {
	observations := makeObservations([]float64{1, 2, 3, 4, 5})

	sma, ema := smoothObservations(observations, smoothingPeriod)
	if sma != nil || ema != nil {
		t.Error("windows shorter than the period should produce no overlays")
	}
}

func TestSmoothObservationsConstantSeries(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = 10
	}
	observations := makeObservations(values)

	sma, ema := smoothObservations(observations, smoothingPeriod)
	if len(sma) != len(observations) {
		t.Fatalf("sma length = %d, want %d", len(sma), len(observations))
	}
	if len(ema) != len(observations) {
		t.Fatalf("ema length = %d, want %d", len(ema), len(observations))
	}

	// A constant series smooths to itself
	last := len(observations) - 1
	if math.Abs(sma[last]-10) > 1e-9 {
		t.Errorf("sma[last] = %f, want 10", sma[last])
	}
	if math.Abs(ema[last]-10) > 1e-9 {
		t.Errorf("ema[last] = %f, want 10", ema[last])
	}
}
