package logview

import (
	"context"
	"sort"

	"github.com/hande-app/logwatch/internal/models"
)

// StatsSource is the slice of the admin API the stats reader consumes.
type StatsSource interface {
	ActivityStats(ctx context.Context, hours int) (models.ActivityStats, error)
}

// StatsReader is a read-through over the precomputed activity statistics.
type StatsReader struct {
	source StatsSource
}

// NewStatsReader creates a StatsReader over source.
func NewStatsReader(source StatsSource) *StatsReader {
	return &StatsReader{source: source}
}

// Fetch returns the stats for the trailing time range. The backend claims
// ActionsByType arrives sorted by count descending; that is not trusted, so
// it is re-sorted (stable, to keep ties in backend order) before use.
func (r *StatsReader) Fetch(ctx context.Context, hours int) (models.ActivityStats, error) {
	stats, err := r.source.ActivityStats(ctx, hours)
	if err != nil {
		return models.ActivityStats{}, err
	}
	sort.SliceStable(stats.ActionsByType, func(i, j int) bool {
		return stats.ActionsByType[i].Count > stats.ActionsByType[j].Count
	})
	return stats, nil
}

// TopAction returns the most frequent action of a stats payload, if any.
func TopAction(stats models.ActivityStats) (models.ActionCount, bool) {
	if len(stats.ActionsByType) == 0 {
		return models.ActionCount{}, false
	}
	return stats.ActionsByType[0], true
}
