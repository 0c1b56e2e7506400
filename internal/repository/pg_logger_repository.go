package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Lutefd/itinerary-sorter/internal/model"
	_ "github.com/lib/pq"
)

const createLogsTable = `
	CREATE TABLE IF NOT EXISTS logs (
		id        UUID        NOT NULL,
		level     VARCHAR(10) NOT NULL,
		message   TEXT        NOT NULL,
		timestamp TIMESTAMPTZ NOT NULL,
		source    VARCHAR(64) NOT NULL,
		PRIMARY KEY (id, timestamp)
	) PARTITION BY RANGE (timestamp)
`

type PostgresLogRepository struct {
	db *sql.DB
}

func NewPostgresLogRepository(connURL string, db *sql.DB) (*PostgresLogRepository, error) {
	if db == nil {
		var err error
		db, err = sql.Open("postgres", connURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		err = db.Ping()
		if err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	return &PostgresLogRepository{db: db}, nil
}

// EnsureSchema creates the partitioned parent table. Partitions are added by
// CreatePartition.
func (r *PostgresLogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createLogsTable); err != nil {
		return fmt.Errorf("failed to create logs table: %w", err)
	}
	return nil
}

func (r *PostgresLogRepository) SaveLog(ctx context.Context, log model.Log) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO logs (id, level, message, timestamp, source)
		VALUES ($1, $2, $3, $4, $5)
	`, log.ID, log.Level, log.Message, log.Timestamp, log.Source)
	if err != nil {
		return fmt.Errorf("failed to save log: %w", err)
	}
	return nil
}

func (r *PostgresLogRepository) CreatePartition(ctx context.Context, month time.Time) error {
	month = month.UTC()
	partitionName := "logs_" + model.LogPartition(month)
	startDate := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, 0)

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s PARTITION OF logs
		FOR VALUES FROM ('%s') TO ('%s')
	`, partitionName, startDate.Format(time.DateOnly), endDate.Format(time.DateOnly))

	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create partition %s: %w", partitionName, err)
	}

	return nil
}

func (r *PostgresLogRepository) Close() error {
	return r.db.Close()
}
