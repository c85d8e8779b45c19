package series

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/apetrov/econ-tracker/internal/adapters/database"
	"github.com/apetrov/econ-tracker/pkg/models"
)

// Repository handles series and observation persistence
type Repository struct {
	db *database.DB
}

// NewRepository creates new series repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// ListSeries returns all series with observation counts and last dates
func (r *Repository) ListSeries(ctx context.Context, enabledOnly bool) ([]models.Series, error) {
	query := `
		SELECT s.id, s.name, s.description, s.enabled,
		       COUNT(o.id) AS observation_count,
		       MAX(o.date) AS last_updated
		FROM series s
		LEFT JOIN observations o ON o.series_id = s.id
	`
	if enabledOnly {
		query += " WHERE s.enabled"
	}
	query += `
		GROUP BY s.id, s.name, s.description, s.enabled
		ORDER BY s.name
	`

	var list []models.Series
	if err := r.db.DB().SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}

	return list, nil
}

// GetSeriesByName finds a series by its FRED code, nil when unknown
func (r *Repository) GetSeriesByName(ctx context.Context, name string) (*models.Series, error) {
	var s models.Series

	err := r.db.DB().GetContext(ctx, &s, `
		SELECT id, name, description, enabled,
		       0 AS observation_count, NULL::date AS last_updated
		FROM series
		WHERE name = $1
	`, name)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get series %s: %w", name, err)
	}

	return &s, nil
}

// SetEnabled toggles ingestion for a series
func (r *Repository) SetEnabled(ctx context.Context, id int, enabled bool) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE series SET enabled = $2 WHERE id = $1
	`, id, enabled)
	if err != nil {
		return fmt.Errorf("failed to update series %d: %w", id, err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("series %d not found", id)
	}

	return nil
}

// UpsertObservations inserts observations, updating the value when the
// (series_id, date) pair already exists. Returns the number of rows written.
func (r *Repository) UpsertObservations(ctx context.Context, seriesID int, observations []models.Observation) (int, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	tx, err := r.db.DB().BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO observations (series_id, date, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (series_id, date) DO UPDATE SET value = EXCLUDED.value
	`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, obs := range observations {
		if _, err := stmt.ExecContext(ctx, seriesID, obs.Date, obs.Value); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to upsert observation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(observations), nil
}

// LatestObservations returns the newest n observations for a series, date descending
func (r *Repository) LatestObservations(ctx context.Context, seriesID, n int) ([]models.Observation, error) {
	var list []models.Observation

	err := r.db.DB().SelectContext(ctx, &list, `
		SELECT o.id, o.series_id, o.date, o.value,
		       s.name AS series_name, s.description AS series_description
		FROM observations o
		JOIN series s ON s.id = o.series_id
		WHERE o.series_id = $1
		ORDER BY o.date DESC
		LIMIT $2
	`, seriesID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest observations: %w", err)
	}

	return list, nil
}

// ObservationsSince returns observations on or after the given date, date ascending
func (r *Repository) ObservationsSince(ctx context.Context, seriesID int, since time.Time) ([]models.Observation, error) {
	var list []models.Observation

	err := r.db.DB().SelectContext(ctx, &list, `
		SELECT o.id, o.series_id, o.date, o.value,
		       s.name AS series_name, s.description AS series_description
		FROM observations o
		JOIN series s ON s.id = o.series_id
		WHERE o.series_id = $1 AND o.date >= $2
		ORDER BY o.date ASC
	`, seriesID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get observations: %w", err)
	}

	return list, nil
}
