package clickhouse

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/pkg/logger"
	"github.com/apetrov/econ-tracker/pkg/models"
)

// ObservationBatchWriter buffers observations and writes them to the archive
// in batches, by size or on a timer, whichever fires first.
type ObservationBatchWriter struct {
	repo        *Repository
	buffer      []models.Observation
	bufferMu    sync.Mutex
	maxBatch    int
	flushTicker *time.Ticker
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewObservationBatchWriter creates batch writer for the observation archive
func NewObservationBatchWriter(repo *Repository, maxBatch int, maxWait time.Duration) *ObservationBatchWriter {
	ctx, cancel := context.WithCancel(context.Background())

	bw := &ObservationBatchWriter{
		repo:     repo,
		buffer:   make([]models.Observation, 0, maxBatch),
		maxBatch: maxBatch,
		ctx:      ctx,
		cancel:   cancel,
	}

	bw.flushTicker = time.NewTicker(maxWait)

	bw.wg.Add(1)
	go bw.autoFlush()

	return bw
}

// Add adds one observation to the buffer
func (bw *ObservationBatchWriter) Add(obs models.Observation) {
	bw.bufferMu.Lock()
	bw.buffer = append(bw.buffer, obs)
	shouldFlush := len(bw.buffer) >= bw.maxBatch
	bw.bufferMu.Unlock()

	if shouldFlush {
		bw.flush()
	}
}

// AddBatch adds a slice of observations to the buffer
func (bw *ObservationBatchWriter) AddBatch(observations []models.Observation) {
	bw.bufferMu.Lock()
	bw.buffer = append(bw.buffer, observations...)
	shouldFlush := len(bw.buffer) >= bw.maxBatch
	bw.bufferMu.Unlock()

	if shouldFlush {
		bw.flush()
	}
}

func (bw *ObservationBatchWriter) autoFlush() {
	defer bw.wg.Done()

	for {
		select {
		case <-bw.flushTicker.C:
			bw.flush()
		case <-bw.ctx.Done():
			// Final flush before exit
			bw.flush()
			return
		}
	}
}

func (bw *ObservationBatchWriter) flush() {
	bw.bufferMu.Lock()
	if len(bw.buffer) == 0 {
		bw.bufferMu.Unlock()
		return
	}

	toWrite := make([]models.Observation, len(bw.buffer))
	copy(toWrite, bw.buffer)
	bw.buffer = bw.buffer[:0]
	bw.bufferMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := bw.repo.SaveObservations(ctx, toWrite); err != nil {
		logger.Error("failed to flush batch to ClickHouse",
			zap.Int("records", len(toWrite)),
			zap.Error(err),
		)
		return
	}

	logger.Debug("flushed batch to ClickHouse",
		zap.Int("records", len(toWrite)),
	)
}

// Close stops the writer and flushes remaining data
func (bw *ObservationBatchWriter) Close() error {
	bw.flushTicker.Stop()
	bw.cancel()
	bw.wg.Wait()
	return nil
}
