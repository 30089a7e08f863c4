package logview

import (
	"context"
	"errors"
	"testing"

	"github.com/hande-app/logwatch/internal/models"
)

type fakeStats struct {
	stats    models.ActivityStats
	err      error
	gotHours int
}

func (f *fakeStats) ActivityStats(_ context.Context, hours int) (models.ActivityStats, error) {
	f.gotHours = hours
	return f.stats, f.err
}

func TestStatsReaderResortsActions(t *testing.T) {
	t.Parallel()

	// The backend claims descending order; here it lies.
	source := &fakeStats{stats: models.ActivityStats{
		TotalActions: 10,
		ActionsByType: []models.ActionCount{
			{Action: "driver.approve", Count: 2},
			{Action: "admin.login", Count: 6},
			{Action: "zone.update", Count: 2},
		},
	}}

	reader := NewStatsReader(source)
	stats, err := reader.Fetch(context.Background(), 24)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if source.gotHours != 24 {
		t.Fatalf("hours not forwarded, got %d", source.gotHours)
	}

	if stats.ActionsByType[0].Action != "admin.login" {
		t.Fatalf("not re-sorted descending: %+v", stats.ActionsByType)
	}
	// Stable: equal counts keep their backend order.
	if stats.ActionsByType[1].Action != "driver.approve" || stats.ActionsByType[2].Action != "zone.update" {
		t.Fatalf("tie order not stable: %+v", stats.ActionsByType)
	}

	top, ok := TopAction(stats)
	if !ok || top.Action != "admin.login" || top.Count != 6 {
		t.Fatalf("unexpected top action: %+v", top)
	}
}

func TestStatsReaderErrorsAndEmpty(t *testing.T) {
	t.Parallel()

	reader := NewStatsReader(&fakeStats{err: errors.New("upstream down")})
	if _, err := reader.Fetch(context.Background(), 24); err == nil {
		t.Fatal("expected error from failing source")
	}

	if _, ok := TopAction(models.ActivityStats{}); ok {
		t.Fatal("empty stats must have no top action")
	}
}
