package series

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/apetrov/econ-tracker/internal/adapters/database"
)

// FetchState records the last successful fetch for a series
type FetchState struct {
	SeriesID      int        `db:"series_id"`
	LastFetchedAt time.Time  `db:"last_fetched_at"`
	LastObserved  *time.Time `db:"last_observed"`
}

// TrackerRepository persists per-series fetch progress so each run only
// requests observations newer than what is already stored
type TrackerRepository struct {
	db *database.DB
}

// NewTrackerRepository creates new fetch tracker repository
func NewTrackerRepository(db *database.DB) *TrackerRepository {
	return &TrackerRepository{db: db}
}

// GetState returns the fetch state for a series, nil when never fetched
func (r *TrackerRepository) GetState(ctx context.Context, seriesID int) (*FetchState, error) {
	var state FetchState

	err := r.db.DB().GetContext(ctx, &state, `
		SELECT series_id, last_fetched_at, last_observed
		FROM fetch_tracker
		WHERE series_id = $1
	`, seriesID)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch state: %w", err)
	}

	return &state, nil
}

// RecordFetch upserts the fetch state after a successful run
func (r *TrackerRepository) RecordFetch(ctx context.Context, seriesID int, lastObserved *time.Time) error {
	_, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO fetch_tracker (series_id, last_fetched_at, last_observed)
		VALUES ($1, $2, $3)
		ON CONFLICT (series_id) DO UPDATE
		SET last_fetched_at = EXCLUDED.last_fetched_at,
		    last_observed   = COALESCE(EXCLUDED.last_observed, fetch_tracker.last_observed)
	`, seriesID, time.Now(), lastObserved)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}

	return nil
}
