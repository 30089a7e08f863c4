package models

import "time"

// ActivityFeedItem is one entry of the near-real-time activity feed. The
// backend only returns a recent window (last N minutes); each poll response
// is the authoritative view of that window.
type ActivityFeedItem struct {
	ActivityType string    `json:"activity_type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Timestamp    time.Time `json:"timestamp"`
}
