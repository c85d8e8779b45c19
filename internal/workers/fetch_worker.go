// Package workers contains the background jobs run by pkg/worker: the FRED
// fetch cycle and the risk monitor.
package workers

import (
	"context"

	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/internal/adapters/redis"
	"github.com/apetrov/econ-tracker/internal/adapters/telegram"
	"github.com/apetrov/econ-tracker/internal/series"
	"github.com/apetrov/econ-tracker/pkg/logger"
)

// FetchWorker runs the periodic FRED fetch cycle. With a lock factory set,
// only one instance across replicas runs a given cycle.
type FetchWorker struct {
	fetcher     *series.Fetcher
	lockFactory redis.LockFactory
	notifier    *telegram.Notifier
}

// NewFetchWorker creates new fetch worker. lockFactory and notifier may be nil.
func NewFetchWorker(fetcher *series.Fetcher, lockFactory redis.LockFactory, notifier *telegram.Notifier) *FetchWorker {
	return &FetchWorker{
		fetcher:     fetcher,
		lockFactory: lockFactory,
		notifier:    notifier,
	}
}

// Name returns worker name
func (fw *FetchWorker) Name() string {
	return "fred_fetcher"
}

// Run executes one fetch cycle
// Called periodically by pkg/worker.PeriodicWorker
func (fw *FetchWorker) Run(ctx context.Context) error {
	if fw.lockFactory != nil {
		lock := fw.lockFactory.CreateJobLock("fred_fetcher")

		acquired, err := lock.TryAcquire(ctx)
		if err != nil {
			return err
		}
		if !acquired {
			logger.Debug("fetch cycle skipped, another instance holds the lock")
			return nil
		}
		defer lock.Release(ctx)
	}

	result, err := fw.fetcher.FetchAll(ctx)
	if err != nil {
		return err
	}

	if fw.notifier != nil {
		for _, failure := range result.Failed {
			if err := fw.notifier.SendFetchError(failure.SeriesName, failure.Err); err != nil {
				logger.Warn("failed to send fetch error alert", zap.Error(err))
			}
		}
		if err := fw.notifier.SendFetchSummary(result.SeriesFetched, result.Upserted, len(result.Failed), result.Elapsed); err != nil {
			logger.Warn("failed to send fetch summary", zap.Error(err))
		}
	}

	return nil
}
