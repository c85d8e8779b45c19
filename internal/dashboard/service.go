// Package dashboard builds the snapshot and trend views served by the API:
// latest/previous observation pairs per series and windowed observation
// history with moving average overlays.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apetrov/econ-tracker/internal/series"
	"github.com/apetrov/econ-tracker/pkg/models"
)

// smoothingPeriod is the window for the SMA/EMA overlays on trend charts
const smoothingPeriod = 12

// Service assembles dashboard views from stored observations
type Service struct {
	repo *series.Repository
}

// NewService creates new dashboard service
func NewService(repo *series.Repository) *Service {
	return &Service{repo: repo}
}

// Summaries returns one summary per series, ordered by series name. Change
// fields stay nil when a series has fewer than two observations or the
// previous value is zero.
func (s *Service) Summaries(ctx context.Context, enabledOnly bool) ([]models.DashboardSummary, error) {
	list, err := s.repo.ListSeries(ctx, enabledOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}

	summaries := make([]models.DashboardSummary, 0, len(list))
	for _, sr := range list {
		latest, err := s.repo.LatestObservations(ctx, sr.ID, 2)
		if err != nil {
			return nil, fmt.Errorf("failed to load observations for %s: %w", sr.Name, err)
		}

		summary := models.DashboardSummary{
			SeriesID:    sr.ID,
			Name:        sr.Name,
			Description: sr.Description,
		}

		if len(latest) > 0 {
			summary.LatestValue = &latest[0].Value
			latestDate := latest[0].Date
			summary.LatestDate = &latestDate
		}
		if len(latest) > 1 {
			summary.PreviousValue = &latest[1].Value
			previousDate := latest[1].Date
			summary.PreviousDate = &previousDate

			if !latest[1].Value.IsZero() {
				change := latest[0].Value.Sub(latest[1].Value)
				percent := change.Div(latest[1].Value).Mul(models.NewDecimal(100))
				summary.ChangeValue = &change
				summary.ChangePercent = &percent
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// ParsePeriod maps a period token to its window start. Unknown tokens fall
// back to one year, matching the default.
func ParsePeriod(period string, now time.Time) time.Time {
	switch strings.ToLower(period) {
	case "1month":
		return now.AddDate(0, -1, 0)
	case "3months":
		return now.AddDate(0, -3, 0)
	case "6months":
		return now.AddDate(0, -6, 0)
	case "1year":
		return now.AddDate(-1, 0, 0)
	case "2years":
		return now.AddDate(-2, 0, 0)
	case "5years":
		return now.AddDate(-5, 0, 0)
	case "10years":
		return now.AddDate(-10, 0, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}

// Trends returns windowed observation history for the requested series, with
// SMA/EMA overlays when enough observations exist. An empty seriesIDs selects
// every enabled series.
func (s *Service) Trends(ctx context.Context, seriesIDs []int, period string) ([]models.SeriesWithObservations, error) {
	enabledOnly := len(seriesIDs) == 0
	list, err := s.repo.ListSeries(ctx, enabledOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to load series: %w", err)
	}

	if len(seriesIDs) > 0 {
		wanted := make(map[int]bool, len(seriesIDs))
		for _, id := range seriesIDs {
			wanted[id] = true
		}

		filtered := list[:0]
		for _, sr := range list {
			if wanted[sr.ID] {
				filtered = append(filtered, sr)
			}
		}
		list = filtered
	}

	since := ParsePeriod(period, time.Now())

	trends := make([]models.SeriesWithObservations, 0, len(list))
	for _, sr := range list {
		observations, err := s.repo.ObservationsSince(ctx, sr.ID, since)
		if err != nil {
			return nil, fmt.Errorf("failed to load observations for %s: %w", sr.Name, err)
		}

		trend := models.SeriesWithObservations{
			Series:       sr,
			Observations: observations,
		}
		trend.SMA, trend.EMA = smoothObservations(observations, smoothingPeriod)

		trends = append(trends, trend)
	}

	return trends, nil
}
