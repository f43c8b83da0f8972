// Package store provides storage backends for StabilityPipe result records.
//
// It includes an in-memory store for tests and development, plus SQLite and
// PostgreSQL backed stores for persistent deployments.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/FluxWard/StabilityPipe/internal/models"
)

// Store persists encrypted result records, one row per submission.
type Store interface {
	SaveResult(rec models.EncryptedResultRecord) error
	GetResultsByUser(userID string) ([]models.EncryptedResultRecord, error)
	Close() error
}

// Opts holds store configuration.
type Opts struct {
	DSN string
}

// Option configures a store backend.
type Option func(*Opts)

// WithPostgresDSN sets a PostgreSQL connection string.
func WithPostgresDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithSQLiteDSN sets a SQLite database file path.
func WithSQLiteDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// DetectDSNType classifies a DSN as "postgres" or "sqlite".
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}

// InMemoryStore is a simple mutex-guarded store for tests and development.
type InMemoryStore struct {
	mu      sync.RWMutex
	results []models.EncryptedResultRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// SaveResult appends a record.
func (s *InMemoryStore) SaveResult(rec models.EncryptedResultRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, rec)
	return nil
}

// GetResultsByUser returns the user's records, most recent first.
func (s *InMemoryStore) GetResultsByUser(userID string) ([]models.EncryptedResultRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.EncryptedResultRecord
	for _, rec := range s.results {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
