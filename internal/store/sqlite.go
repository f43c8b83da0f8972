// Package store provides storage backends for StabilityPipe result records.
//
// This file implements an SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/FluxWard/StabilityPipe/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	slog.Debug("SQLite database directory verified/created", "dir", dir)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	slog.Debug("Running SQLite migrations")
	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// SaveResult inserts an encrypted result record.
func (s *SQLiteStore) SaveResult(rec models.EncryptedResultRecord) error {
	_, err := s.db.Exec(`INSERT INTO user_results
		(id, user_id, dass_depression_encrypted, dass_anxiety_encrypted, dass_stress_encrypted,
		 hexaco_scores, teique_scores_encrypted, stability_analysis, raw_responses_encrypted,
		 completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.DassDepressionEnc, rec.DassAnxietyEnc, rec.DassStressEnc,
		nilIfEmpty(rec.HexacoScoresEnc), nilIfEmpty(rec.TeiqueScoresEnc), nilIfEmpty(rec.StabilityAnalysisEnc), nilIfEmpty(rec.RawResponsesEnc),
		rec.CompletedAt, rec.CreatedAt)
	if err != nil {
		slog.Error("SQLiteStore SaveResult failed", "error", err, "result_id", rec.ID)
		return fmt.Errorf("failed to insert result %s: %w", rec.ID, err)
	}
	slog.Debug("SQLiteStore SaveResult succeeded", "result_id", rec.ID, "user_id", rec.UserID)
	return nil
}

// GetResultsByUser retrieves a user's encrypted result records, most recent first.
func (s *SQLiteStore) GetResultsByUser(userID string) ([]models.EncryptedResultRecord, error) {
	rows, err := s.db.Query(`SELECT id, user_id, dass_depression_encrypted, dass_anxiety_encrypted, dass_stress_encrypted,
		hexaco_scores, teique_scores_encrypted, stability_analysis, raw_responses_encrypted,
		completed_at, created_at
		FROM user_results WHERE user_id = ? ORDER BY completed_at DESC`, userID)
	if err != nil {
		slog.Error("SQLiteStore GetResultsByUser query failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.EncryptedResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			slog.Error("SQLiteStore GetResultsByUser scan failed", "error", err)
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("SQLiteStore GetResultsByUser rows iteration failed", "error", err)
		return nil, fmt.Errorf("failed to iterate result rows: %w", err)
	}
	slog.Debug("SQLiteStore GetResultsByUser succeeded", "user_id", userID, "count", len(results))
	return results, nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close SQLite database", "error", err)
	}
	return err
}
