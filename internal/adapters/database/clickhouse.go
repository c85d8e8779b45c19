package database

import (
	"fmt"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jmoiron/sqlx"

	"github.com/apetrov/econ-tracker/pkg/logger"
)

// NewClickHouse opens a ClickHouse connection wrapped in the same DB type as
// PostgreSQL, so repositories can work against either backend.
func NewClickHouse(dsn string) (*DB, error) {
	conn, err := sqlx.Connect("clickhouse", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(10 * time.Minute)

	logger.Info("clickhouse connection established")

	return &DB{conn: conn}, nil
}
