package logview

import (
	"reflect"
	"testing"

	"github.com/hande-app/logwatch/internal/models"
)

func sampleEntries() []models.LogEntry {
	return []models.LogEntry{
		{ID: "1", Level: models.LevelInfo, Message: "Admin login from 10.0.0.1"},
		{ID: "2", Level: models.LevelError, Message: "Payment capture failed"},
		{ID: "3", Level: models.LevelInfo, Message: "Driver LOGIN approved"},
		{ID: "4", Level: models.LevelWarn, Message: "Slow upstream response"},
		{ID: "5", Level: models.LevelDebug, Message: "cache miss"},
	}
}

func TestApplyFiltersIdentity(t *testing.T) {
	t.Parallel()

	entries := sampleEntries()
	got := ApplyFilters(entries, LevelAll, "")
	if !reflect.DeepEqual(got, entries) {
		t.Fatalf("all+empty must be identity, got %+v", got)
	}
	if got := ApplyFilters(nil, LevelAll, ""); len(got) != 0 {
		t.Fatalf("empty input must stay empty, got %+v", got)
	}
	if got := ApplyFilters(nil, "error", "login"); len(got) != 0 {
		t.Fatalf("empty input with filters must stay empty, got %+v", got)
	}
}

func TestApplyFiltersLevel(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(sampleEntries(), "info", "")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected level filter result: %+v", got)
	}
}

func TestApplyFiltersSearchCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(sampleEntries(), LevelAll, "login")
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("case-insensitive search failed: %+v", got)
	}
}

func TestApplyFiltersConjunctionAndOrder(t *testing.T) {
	t.Parallel()

	entries := sampleEntries()
	got := ApplyFilters(entries, "info", "login")
	if len(got) != 2 {
		t.Fatalf("conjunction result wrong: %+v", got)
	}

	// Result must be a subsequence of the input order.
	idx := 0
	for _, entry := range entries {
		if idx < len(got) && got[idx].ID == entry.ID {
			idx++
		}
	}
	if idx != len(got) {
		t.Fatalf("result is not an order-preserving subsequence: %+v", got)
	}

	// Narrower filters can only shrink the result.
	all := ApplyFilters(entries, LevelAll, "")
	if len(got) > len(all) {
		t.Fatalf("filtered result larger than unfiltered: %d > %d", len(got), len(all))
	}
}

func TestApplyFiltersNoMatches(t *testing.T) {
	t.Parallel()

	if got := ApplyFilters(sampleEntries(), "error", "no such message"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}
