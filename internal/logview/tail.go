package logview

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hande-app/logwatch/internal/models"
)

// FeedSource is the slice of the admin API the live tail polls.
type FeedSource interface {
	ActivityFeed(ctx context.Context, minutes int) ([]models.ActivityFeedItem, error)
}

// EventRecorder receives operational events from the tail (poll failures).
type EventRecorder interface {
	CreateEvent(eventType, level, message string) error
}

// Snapshot is one consistent view of the live buffer.
type Snapshot struct {
	Entries []models.LogEntry `json:"entries"`
	Paused  bool              `json:"paused"`
}

// LiveTail polls the activity feed on a fixed interval and maintains the
// recent-entries buffer.
//
// While LIVE, each poll response replaces the buffer: the backend window is
// the authoritative view of the last N minutes, so entries that age out of
// it silently disappear. While PAUSED, polling continues but responses are
// merged into the buffer by id instead, so nothing seen during the pause is
// lost; the merged buffer becomes the view again on resume.
//
// Polling runs inline in the tick loop, so at most one poll is ever in
// flight and a slow poll simply skips ticks. After Stop returns, no further
// poll runs and no notification fires.
type LiveTail struct {
	source     FeedSource
	eventSvc   EventRecorder
	interval   time.Duration
	windowMins int
	onUpdate   func(Snapshot)

	ticker *time.Ticker
	done   chan bool

	mu         sync.Mutex
	buf        []models.LogEntry
	paused     bool
	lastSeenID string
}

// NewLiveTail creates a live tail over source. onUpdate, if non-nil, is
// called with a fresh snapshot after every buffer change made while live
// and once on resume; it is never called while paused or after Stop.
func NewLiveTail(source FeedSource, eventSvc EventRecorder, interval time.Duration, windowMins int, onUpdate func(Snapshot)) *LiveTail {
	return &LiveTail{
		source:     source,
		eventSvc:   eventSvc,
		interval:   interval,
		windowMins: windowMins,
		onUpdate:   onUpdate,
		done:       make(chan bool),
	}
}

// Run starts the polling loop. It blocks until Stop is called.
func (t *LiveTail) Run() {
	log.Info().Dur("interval", t.interval).Int("window_mins", t.windowMins).Msg("Starting activity feed tail...")
	t.ticker = time.NewTicker(t.interval)
	defer t.ticker.Stop()

	// Poll once immediately on start
	t.poll()

	for {
		select {
		case <-t.done:
			log.Info().Msg("Stopping activity feed tail.")
			return
		case <-t.ticker.C:
			t.poll()
		}
	}
}

// Stop halts the polling loop. It does not return until the loop has
// exited, so no poll callback fires afterwards.
func (t *LiveTail) Stop() {
	t.done <- true
}

// Pause freezes the view: updates stop being delivered, but polling and
// buffering continue.
func (t *LiveTail) Pause() {
	t.mu.Lock()
	t.paused = true
	t.mu.Unlock()
}

// Resume unfreezes the view and delivers the caught-up buffer immediately.
func (t *LiveTail) Resume() {
	t.mu.Lock()
	if !t.paused {
		t.mu.Unlock()
		return
	}
	t.paused = false
	snap := t.snapshotLocked()
	t.mu.Unlock()

	if t.onUpdate != nil {
		t.onUpdate(snap)
	}
}

// Snapshot returns a copy of the current buffer.
func (t *LiveTail) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// LastSeenID returns the id of the newest entry delivered while live.
func (t *LiveTail) LastSeenID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSeenID
}

func (t *LiveTail) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), t.interval)
	defer cancel()

	items, err := t.source.ActivityFeed(ctx, t.windowMins)
	if err != nil {
		// Pane-local failure: keep the current buffer and wait for the
		// next tick.
		log.Warn().Err(err).Msg("Activity feed poll failed")
		if t.eventSvc != nil {
			t.eventSvc.CreateEvent("upstream.fetch.fail", "warn", "activity feed poll failed: "+err.Error())
		}
		return
	}

	window := make([]models.LogEntry, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		entry := NormalizeActivity(item)
		if seen[entry.ID] {
			continue
		}
		seen[entry.ID] = true
		window = append(window, entry)
	}

	t.mu.Lock()
	if t.paused {
		t.mergeLocked(window)
		t.mu.Unlock()
		return
	}
	t.buf = window
	if len(window) > 0 {
		t.lastSeenID = window[len(window)-1].ID
	}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	if t.onUpdate != nil {
		t.onUpdate(snap)
	}
}

// mergeLocked appends the entries of window not already buffered. Caller
// holds mu.
func (t *LiveTail) mergeLocked(window []models.LogEntry) {
	have := make(map[string]bool, len(t.buf))
	for _, entry := range t.buf {
		have[entry.ID] = true
	}
	for _, entry := range window {
		if !have[entry.ID] {
			t.buf = append(t.buf, entry)
		}
	}
}

func (t *LiveTail) snapshotLocked() Snapshot {
	entries := make([]models.LogEntry, len(t.buf))
	copy(entries, t.buf)
	return Snapshot{Entries: entries, Paused: t.paused}
}
