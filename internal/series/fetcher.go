package series

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/internal/adapters/fred"
	"github.com/apetrov/econ-tracker/pkg/logger"
	"github.com/apetrov/econ-tracker/pkg/models"
)

// Archive receives fetched observations for analytical storage. Implemented
// by the ClickHouse batch writer; nil when the archive is disabled.
type Archive interface {
	AddBatch(observations []models.Observation)
}

// FetchFailure records one series that failed during a cycle
type FetchFailure struct {
	SeriesName string
	Err        error
}

// FetchResult summarizes one fetch cycle
type FetchResult struct {
	SeriesFetched int
	Upserted      int
	Failed        []FetchFailure
	Elapsed       time.Duration
}

// Fetcher pulls observations from FRED into storage, incrementally per
// series based on the fetch tracker.
type Fetcher struct {
	client           *fred.Client
	repo             *Repository
	tracker          *TrackerRepository
	archive          Archive
	observationStart string
}

// NewFetcher creates new fetcher. archive may be nil.
func NewFetcher(client *fred.Client, repo *Repository, tracker *TrackerRepository, archive Archive, observationStart string) *Fetcher {
	return &Fetcher{
		client:           client,
		repo:             repo,
		tracker:          tracker,
		archive:          archive,
		observationStart: observationStart,
	}
}

// FetchAll fetches every enabled series. A failing series is logged and
// skipped; the cycle continues with the rest.
func (f *Fetcher) FetchAll(ctx context.Context) (FetchResult, error) {
	start := time.Now()

	list, err := f.repo.ListSeries(ctx, true)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to list series: %w", err)
	}

	result := FetchResult{}
	for _, sr := range list {
		upserted, err := f.FetchSeries(ctx, sr)
		if err != nil {
			logger.Warn("failed to fetch series",
				zap.String("series", sr.Name),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, FetchFailure{SeriesName: sr.Name, Err: err})
			continue
		}

		result.SeriesFetched++
		result.Upserted += upserted
	}

	result.Elapsed = time.Since(start)

	logger.Info("fetch cycle finished",
		zap.Int("series", result.SeriesFetched),
		zap.Int("upserted", result.Upserted),
		zap.Int("failed", len(result.Failed)),
		zap.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

// FetchSeries fetches one series starting from its last observed date, or
// the configured observation start on first fetch. Returns rows upserted.
func (f *Fetcher) FetchSeries(ctx context.Context, sr models.Series) (int, error) {
	observationStart := f.observationStart

	state, err := f.tracker.GetState(ctx, sr.ID)
	if err != nil {
		return 0, err
	}
	if state != nil && state.LastObserved != nil {
		// Re-request the last observed date: FRED revises recent values
		observationStart = state.LastObserved.Format("2006-01-02")
	}

	fetched, err := f.client.FetchObservations(ctx, sr.Name, observationStart)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", sr.Name, err)
	}

	observations := make([]models.Observation, len(fetched))
	for i, obs := range fetched {
		observations[i] = models.Observation{
			SeriesID:   sr.ID,
			SeriesName: sr.Name,
			Date:       obs.Date,
			Value:      obs.Value,
		}
	}

	upserted, err := f.repo.UpsertObservations(ctx, sr.ID, observations)
	if err != nil {
		return 0, err
	}

	var lastObserved *time.Time
	if len(observations) > 0 {
		last := observations[len(observations)-1].Date
		lastObserved = &last
	}
	if err := f.tracker.RecordFetch(ctx, sr.ID, lastObserved); err != nil {
		return upserted, err
	}

	if f.archive != nil && len(observations) > 0 {
		f.archive.AddBatch(observations)
	}

	logger.Debug("series fetched",
		zap.String("series", sr.Name),
		zap.String("observation_start", observationStart),
		zap.Int("upserted", upserted),
	)

	return upserted, nil
}
