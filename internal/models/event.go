package models

import "time"

// MonitorEvent records an operational action or alert of logwatch itself,
// e.g. a completed export or a failing upstream fetch.
type MonitorEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`  // e.g. "export.run", "upstream.fetch.fail"
	Level     string    `json:"level"` // "info", "warn", "error"
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
