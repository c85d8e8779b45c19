// Package clickhouse archives the full observation history for analytical
// queries. The archive is optional: when ClickHouse is disabled the service
// runs on PostgreSQL alone.
package clickhouse

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/pkg/logger"
	"github.com/apetrov/econ-tracker/pkg/models"
)

// Repository handles ClickHouse archive operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new ClickHouse repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// SaveObservations writes observations to the archive. The table uses a
// ReplacingMergeTree keyed on (series_name, date), so re-fetched values
// dedupe on merge.
func (r *Repository) SaveObservations(ctx context.Context, observations []models.Observation) error {
	if len(observations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	stmt, err := tx.Preparex(`
		INSERT INTO observations_archive
		(series_id, series_name, date, value, fetched_at)
		VALUES (?, ?, ?, ?, now())
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, obs := range observations {
		_, err = stmt.ExecContext(ctx,
			obs.SeriesID,
			obs.SeriesName,
			obs.Date,
			obs.Value.InexactFloat64(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert observation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Debug("saved observations to ClickHouse",
		zap.Int("count", len(observations)),
	)

	return nil
}
