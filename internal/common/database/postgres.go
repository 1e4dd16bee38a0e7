// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"career-workers/internal/common/config"
)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Schema creates the catalog and result tables. Profile columns are nullable
// JSONB so partially authored careers can be stored.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS careers (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		category         TEXT NOT NULL DEFAULT '',
		salary_min       INTEGER NOT NULL DEFAULT 0,
		salary_max       INTEGER NOT NULL DEFAULT 0,
		interest_profile JSONB,
		value_profile    JSONB,
		work_environment JSONB,
		active           BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_results (
		id                   UUID PRIMARY KEY,
		student_id           TEXT NOT NULL,
		career_id            TEXT NOT NULL,
		quiz_version         INTEGER NOT NULL DEFAULT 0,
		scores               JSONB NOT NULL,
		readiness_percentage INTEGER NOT NULL,
		result_tier          TEXT NOT NULL,
		answers              JSONB NOT NULL,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_results_student ON quiz_results (student_id, career_id)`,
	`CREATE TABLE IF NOT EXISTS assessments (
		id         UUID PRIMARY KEY,
		student_id TEXT NOT NULL,
		profile    JSONB NOT NULL,
		matches    JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate applies Schema inside a single transaction.
func (c *PostgresClient) Migrate(ctx context.Context) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for _, stmt := range Schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return tx.Commit()
}
