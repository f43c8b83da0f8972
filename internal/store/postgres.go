// Package store provides storage backends for StabilityPipe result records.
//
// This file implements a PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "embed"

	"github.com/FluxWard/StabilityPipe/internal/models"
	_ "github.com/lib/pq"
)

// Database connection pool configuration constants
const (
	// DefaultMaxOpenConns is the default maximum number of open connections to the database
	DefaultMaxOpenConns = 25
	// DefaultMaxIdleConns is the default maximum number of idle connections in the pool
	DefaultMaxIdleConns = 25
	// DefaultConnMaxLifetime is the default maximum amount of time a connection may be reused
	DefaultConnMaxLifetime = 5 * time.Minute
)

//go:embed migrations_postgres.sql
var postgresMigrations string

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store based on provided options.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	slog.Debug("Opening Postgres database connection")
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}

	// Configure connection pool for better performance
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxIdleConns)
	db.SetConnMaxLifetime(DefaultConnMaxLifetime)

	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}
	slog.Debug("Postgres ping successful")

	slog.Debug("Running Postgres migrations")
	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// SaveResult inserts an encrypted result record.
func (s *PostgresStore) SaveResult(rec models.EncryptedResultRecord) error {
	_, err := s.db.Exec(`INSERT INTO user_results
		(id, user_id, dass_depression_encrypted, dass_anxiety_encrypted, dass_stress_encrypted,
		 hexaco_scores, teique_scores_encrypted, stability_analysis, raw_responses_encrypted,
		 completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		rec.ID, rec.UserID, rec.DassDepressionEnc, rec.DassAnxietyEnc, rec.DassStressEnc,
		nilIfEmpty(rec.HexacoScoresEnc), nilIfEmpty(rec.TeiqueScoresEnc), nilIfEmpty(rec.StabilityAnalysisEnc), nilIfEmpty(rec.RawResponsesEnc),
		rec.CompletedAt, rec.CreatedAt)
	if err != nil {
		slog.Error("PostgresStore SaveResult failed", "error", err, "result_id", rec.ID)
		return fmt.Errorf("failed to insert result %s: %w", rec.ID, err)
	}
	slog.Debug("PostgresStore SaveResult succeeded", "result_id", rec.ID, "user_id", rec.UserID)
	return nil
}

// GetResultsByUser retrieves a user's encrypted result records, most recent first.
func (s *PostgresStore) GetResultsByUser(userID string) ([]models.EncryptedResultRecord, error) {
	rows, err := s.db.Query(`SELECT id, user_id, dass_depression_encrypted, dass_anxiety_encrypted, dass_stress_encrypted,
		hexaco_scores, teique_scores_encrypted, stability_analysis, raw_responses_encrypted,
		completed_at, created_at
		FROM user_results WHERE user_id = $1 ORDER BY completed_at DESC`, userID)
	if err != nil {
		slog.Error("PostgresStore GetResultsByUser query failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.EncryptedResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			slog.Error("PostgresStore GetResultsByUser scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("PostgresStore GetResultsByUser rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate result rows: %w", err)
	}
	slog.Debug("PostgresStore GetResultsByUser succeeded", "user_id", userID, "count", len(results))
	return results, nil
}

// Close closes the Postgres database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing Postgres database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close Postgres database", "error", err)
	}
	return err
}
