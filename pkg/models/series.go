package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NewDecimal creates decimal from float64
func NewDecimal(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

// DecimalPtr returns a pointer to a decimal built from float64
func DecimalPtr(value float64) *decimal.Decimal {
	d := decimal.NewFromFloat(value)
	return &d
}

// Series represents one tracked economic indicator (FRED series)
type Series struct {
	ID               int        `db:"id" json:"id"`
	Name             string     `db:"name" json:"name"`
	Description      string     `db:"description" json:"description"`
	Enabled          bool       `db:"enabled" json:"enabled"`
	ObservationCount int        `db:"observation_count" json:"observationCount"`
	LastUpdated      *time.Time `db:"last_updated" json:"lastUpdated,omitempty"`
}

// Observation is one dated sample of a series
type Observation struct {
	ID                int             `db:"id" json:"id"`
	SeriesID          int             `db:"series_id" json:"seriesId"`
	Date              time.Time       `db:"date" json:"date"`
	Value             decimal.Decimal `db:"value" json:"value"`
	SeriesName        string          `db:"series_name" json:"seriesName,omitempty"`
	SeriesDescription string          `db:"series_description" json:"seriesDescription,omitempty"`
}

// DashboardSummary holds the latest and previous observation for a series.
// Change fields stay nil when fewer than two observations exist or the
// previous value is exactly zero.
type DashboardSummary struct {
	SeriesID      int              `json:"seriesId"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	LatestValue   *decimal.Decimal `json:"latestValue"`
	LatestDate    *time.Time       `json:"latestDate"`
	PreviousValue *decimal.Decimal `json:"previousValue"`
	PreviousDate  *time.Time       `json:"previousDate"`
	ChangeValue   *decimal.Decimal `json:"changeValue"`
	ChangePercent *decimal.Decimal `json:"changePercent"`
}

// ChangePercentOrZero treats a missing change as no movement
func (s DashboardSummary) ChangePercentOrZero() float64 {
	if s.ChangePercent == nil {
		return 0
	}
	return s.ChangePercent.InexactFloat64()
}

// LatestValueOr returns the latest value, or def when none exists
func (s DashboardSummary) LatestValueOr(def float64) float64 {
	if s.LatestValue == nil {
		return def
	}
	return s.LatestValue.InexactFloat64()
}

// SeriesWithObservations bundles a series with a window of its history
type SeriesWithObservations struct {
	Series       Series        `json:"series"`
	Observations []Observation `json:"observations"`
	SMA          []float64     `json:"sma,omitempty"`
	EMA          []float64     `json:"ema,omitempty"`
}
