// Package catalog holds the static item definitions for the three instruments.
//
// This file assembles the question bank served to clients and caches the
// assembled snapshot. The catalog content is immutable and keyed by Version,
// so concurrent refreshes are tolerated as last-write-wins.
package catalog

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/FluxWard/StabilityPipe/internal/models"
)

// DefaultBankTTL is how long an assembled question bank snapshot is served
// before being rebuilt.
const DefaultBankTTL = time.Hour

// QuestionBank is the read-only payload of the item-catalog delivery endpoint.
type QuestionBank struct {
	Hexaco   []models.HexacoItem `json:"hexaco"`
	Dass     []models.DassItem   `json:"dass"`
	Teique   []models.TeiqueItem `json:"teique"`
	Metadata BankMetadata        `json:"metadata"`
}

// BankMetadata summarizes the bank contents for clients.
type BankMetadata struct {
	Version     string `json:"version"`
	HexacoCount int    `json:"hexacoCount"`
	DassCount   int    `json:"dassCount"`
	TeiqueCount int    `json:"teiqueCount"`
	TotalCount  int    `json:"totalCount"`
}

// BuildBank assembles a fresh question bank from the static item tables.
func BuildBank() QuestionBank {
	return QuestionBank{
		Hexaco: HexacoItems(),
		Dass:   DassItems(),
		Teique: TeiqueItems(),
		Metadata: BankMetadata{
			Version:     Version,
			HexacoCount: len(hexacoItems),
			DassCount:   len(dassItems),
			TeiqueCount: len(teiqueItems),
			TotalCount:  len(hexacoItems) + len(dassItems) + len(teiqueItems),
		},
	}
}

type cachedBank struct {
	bank    QuestionBank
	builtAt time.Time
}

// BankCache serves time-boxed question bank snapshots. It is safe for
// unlimited concurrent use; overlapping refreshes are last-write-wins.
type BankCache struct {
	ttl     time.Duration
	current atomic.Pointer[cachedBank]
}

// NewBankCache creates a bank cache with the given TTL. A non-positive TTL
// falls back to DefaultBankTTL.
func NewBankCache(ttl time.Duration) *BankCache {
	if ttl <= 0 {
		ttl = DefaultBankTTL
	}
	return &BankCache{ttl: ttl}
}

// Snapshot returns the current question bank and whether it was served from
// cache. Expired or absent snapshots are rebuilt in place.
func (c *BankCache) Snapshot() (QuestionBank, bool) {
	if cached := c.current.Load(); cached != nil && time.Since(cached.builtAt) < c.ttl {
		slog.Debug("BankCache.Snapshot: serving cached question bank", "built_at", cached.builtAt)
		return cached.bank, true
	}
	fresh := &cachedBank{bank: BuildBank(), builtAt: time.Now()}
	c.current.Store(fresh)
	slog.Debug("BankCache.Snapshot: rebuilt question bank", "version", Version, "total", fresh.bank.Metadata.TotalCount)
	return fresh.bank, false
}
