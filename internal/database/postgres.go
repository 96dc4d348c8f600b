// Package database provides PostgreSQL storage for resolved service quotes.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

const schema = `
	CREATE TABLE IF NOT EXISTS service_quotes (
		id              BIGSERIAL PRIMARY KEY,
		service         TEXT        NOT NULL,
		zip_code        TEXT        NOT NULL,
		vehicle_year    TEXT        NOT NULL,
		vehicle_make    TEXT        NOT NULL,
		vehicle_model   TEXT        NOT NULL,
		location        TEXT        NOT NULL,
		min_price       INTEGER     NOT NULL,
		max_price       INTEGER     NOT NULL,
		avg_price       INTEGER     NOT NULL,
		labor_time      TEXT        NOT NULL,
		parts_included  TEXT        NOT NULL,
		source          TEXT        NOT NULL,
		payload         JSONB,
		resolved_at     TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS service_quotes_lookup_idx
		ON service_quotes (service, zip_code, vehicle_make, vehicle_model);
`

// OperationRecorder receives the outcome of database operations.
type OperationRecorder interface {
	RecordDBOperation(operation, status string)
}

// DB wraps the PostgreSQL connection and stores quote history.
type DB struct {
	db           *sql.DB
	storePayload bool
	metrics      OperationRecorder
	logger       zerolog.Logger
}

// New creates a new database connection. When storePayload is set, the full
// quote is stored as JSON alongside the normalized columns.
func New(dsn string, storePayload bool, logger zerolog.Logger) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{
		db:           db,
		storePayload: storePayload,
		logger:       logger.With().Str("component", "database").Logger(),
	}, nil
}

// SetMetrics wires an operation recorder into the database.
func (d *DB) SetMetrics(m OperationRecorder) {
	d.metrics = m
}

func (d *DB) record(operation string, err error) {
	if d.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	d.metrics.RecordDBOperation(operation, status)
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks if the database connection is alive.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// Migrate creates the quote history table if it does not exist.
func (d *DB) Migrate(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// InsertQuote stores a resolved quote for the request it answered.
func (d *DB) InsertQuote(ctx context.Context, req models.QuoteRequest, quote models.ServiceQuote) error {
	query := `
		INSERT INTO service_quotes (service, zip_code, vehicle_year, vehicle_make, vehicle_model,
			location, min_price, max_price, avg_price, labor_time, parts_included, source, payload, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	args, err := insertArgs(req, quote, d.storePayload, time.Now().UTC())
	if err != nil {
		return err
	}

	_, err = d.db.ExecContext(ctx, query, args...)
	d.record("insert", err)
	if err != nil {
		return fmt.Errorf("inserting quote: %w", err)
	}

	d.logger.Debug().
		Str("service", quote.Service).
		Str("source", string(quote.Source)).
		Int("avg_price", quote.AvgPrice).
		Msg("inserted quote record")

	return nil
}

// insertArgs builds the positional arguments of the insert statement.
func insertArgs(req models.QuoteRequest, quote models.ServiceQuote, storePayload bool, resolvedAt time.Time) ([]any, error) {
	var payload []byte
	if storePayload {
		var err error
		payload, err = json.Marshal(quote)
		if err != nil {
			return nil, fmt.Errorf("encoding quote payload: %w", err)
		}
	}

	return []any{
		req.Service,
		req.ZipCode,
		req.Vehicle.Year,
		req.Vehicle.Make,
		req.Vehicle.Model,
		quote.Location,
		quote.MinPrice,
		quote.MaxPrice,
		quote.AvgPrice,
		quote.LaborTime,
		quote.PartsIncluded,
		string(quote.Source),
		payload,
		resolvedAt,
	}, nil
}

// GetTotalQuotesCount returns the total number of stored quotes.
func (d *DB) GetTotalQuotesCount(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM service_quotes").Scan(&count)
	d.record("count", err)
	if err != nil {
		return 0, fmt.Errorf("counting quotes: %w", err)
	}
	return count, nil
}
