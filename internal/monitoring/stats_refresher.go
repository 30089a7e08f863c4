package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hande-app/logwatch/internal/logview"
	"github.com/hande-app/logwatch/internal/models"
)

// StatsRefresher periodically refreshes the cached activity statistics so
// dashboard reloads are served from memory instead of hammering the
// upstream on every request.
type StatsRefresher struct {
	reader   *logview.StatsReader
	hours    int
	interval time.Duration
	ticker   *time.Ticker
	done     chan bool

	mu        sync.RWMutex
	cached    models.ActivityStats
	fetchedAt time.Time
	ok        bool
}

// NewStatsRefresher creates a refresher for the given trailing time range.
func NewStatsRefresher(reader *logview.StatsReader, hours int, interval time.Duration) *StatsRefresher {
	return &StatsRefresher{
		reader:   reader,
		hours:    hours,
		interval: interval,
		done:     make(chan bool),
	}
}

// Run starts the periodic refresh. It blocks until Stop is called.
func (sr *StatsRefresher) Run() {
	log.Info().Int("hours", sr.hours).Dur("interval", sr.interval).Msg("Starting background stats refresher...")
	sr.ticker = time.NewTicker(sr.interval)
	defer sr.ticker.Stop()

	// Run once immediately on start
	sr.refresh()

	for {
		select {
		case <-sr.done:
			log.Info().Msg("Stopping background stats refresher.")
			return
		case <-sr.ticker.C:
			sr.refresh()
		}
	}
}

// Stop halts the periodic refresh.
func (sr *StatsRefresher) Stop() {
	sr.done <- true
}

// Get returns the cached stats, when they were fetched and whether a fetch
// has ever succeeded.
func (sr *StatsRefresher) Get() (models.ActivityStats, time.Time, bool) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()
	return sr.cached, sr.fetchedAt, sr.ok
}

// Hours returns the trailing range the cache covers.
func (sr *StatsRefresher) Hours() int { return sr.hours }

func (sr *StatsRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), sr.interval)
	defer cancel()

	stats, err := sr.reader.Fetch(ctx, sr.hours)
	if err != nil {
		// Keep serving the previous snapshot until the next tick.
		log.Warn().Err(err).Msg("StatsRefresher: failed to fetch activity stats")
		return
	}

	sr.mu.Lock()
	sr.cached = stats
	sr.fetchedAt = time.Now()
	sr.ok = true
	sr.mu.Unlock()
}
