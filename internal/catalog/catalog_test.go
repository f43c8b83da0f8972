package catalog

import (
	"testing"
	"time"

	"github.com/FluxWard/StabilityPipe/internal/models"
)

func TestItemCounts(t *testing.T) {
	if got := len(HexacoItems()); got != models.HexacoItemCount {
		t.Errorf("HEXACO item count = %d, want %d", got, models.HexacoItemCount)
	}
	if got := len(DassItems()); got != models.DassItemCount {
		t.Errorf("DASS item count = %d, want %d", got, models.DassItemCount)
	}
	if got := len(TeiqueItems()); got != models.TeiqueItemCount {
		t.Errorf("TEIQue item count = %d, want %d", got, models.TeiqueItemCount)
	}
}

func TestHexacoFacetDistribution(t *testing.T) {
	counts := make(map[models.HexacoFacet]int)
	for i, item := range HexacoItems() {
		if item.ID != i+1 {
			t.Errorf("HEXACO item %d has id %d", i+1, item.ID)
		}
		if item.Text == "" {
			t.Errorf("HEXACO item %d has empty text", item.ID)
		}
		counts[item.Facet]++
	}
	if len(counts) != 6 {
		t.Fatalf("found %d facets, want 6", len(counts))
	}
	for facet, n := range counts {
		if n != 10 {
			t.Errorf("facet %s has %d items, want 10", facet, n)
		}
	}
}

func TestDassScaleAssignment(t *testing.T) {
	wantScales := map[models.DassScale][]int{
		models.ScaleDepression: {3, 5, 10, 13, 16, 17, 21},
		models.ScaleAnxiety:    {2, 4, 7, 9, 15, 19, 20},
		models.ScaleStress:     {1, 6, 8, 11, 12, 14, 18},
	}
	for scale, ids := range wantScales {
		for _, id := range ids {
			item, ok := DassItemByID(id)
			if !ok {
				t.Fatalf("DASS item %d not found", id)
			}
			if item.Scale != scale {
				t.Errorf("DASS item %d assigned to %s, want %s", id, item.Scale, scale)
			}
		}
	}
}

func TestTeiqueFactorCoverage(t *testing.T) {
	counts := make(map[models.TeiqueFactor]int)
	for _, item := range TeiqueItems() {
		counts[item.Factor]++
	}
	if len(counts) != 4 {
		t.Fatalf("found %d factors, want 4", len(counts))
	}
	for factor, n := range counts {
		if n == 0 {
			t.Errorf("factor %s has no items", factor)
		}
	}
}

func TestItemLookupBounds(t *testing.T) {
	if _, ok := HexacoItemByID(0); ok {
		t.Error("HexacoItemByID(0) should not resolve")
	}
	if _, ok := HexacoItemByID(61); ok {
		t.Error("HexacoItemByID(61) should not resolve")
	}
	item, ok := HexacoItemByID(60)
	if !ok || item.ID != 60 {
		t.Errorf("HexacoItemByID(60) = %+v, %v", item, ok)
	}
	if _, ok := DassItemByID(22); ok {
		t.Error("DassItemByID(22) should not resolve")
	}
	if _, ok := TeiqueItemByID(31); ok {
		t.Error("TeiqueItemByID(31) should not resolve")
	}
}

func TestBuildBankMetadata(t *testing.T) {
	bank := BuildBank()
	if bank.Metadata.Version != Version {
		t.Errorf("version = %q, want %q", bank.Metadata.Version, Version)
	}
	if bank.Metadata.TotalCount != 111 {
		t.Errorf("total count = %d, want 111", bank.Metadata.TotalCount)
	}
	if len(bank.Hexaco) != 60 || len(bank.Dass) != 21 || len(bank.Teique) != 30 {
		t.Errorf("bank sizes = %d/%d/%d", len(bank.Hexaco), len(bank.Dass), len(bank.Teique))
	}
}

func TestBankCacheHitAndExpiry(t *testing.T) {
	cache := NewBankCache(50 * time.Millisecond)

	_, hit := cache.Snapshot()
	if hit {
		t.Error("first snapshot should be a miss")
	}
	_, hit = cache.Snapshot()
	if !hit {
		t.Error("second snapshot should be a hit")
	}

	time.Sleep(60 * time.Millisecond)
	_, hit = cache.Snapshot()
	if hit {
		t.Error("snapshot after TTL expiry should be a miss")
	}
}
