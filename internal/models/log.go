package models

import "time"

// Level is the closed set of severities a normalized log entry can carry.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelDebug Level = "debug"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelInfo, LevelWarn, LevelError, LevelDebug:
		return true
	}
	return false
}

// LogEntry is the canonical entry every source shape is normalized into.
// ID is stable across polls of the same record and unique within a loaded
// window; it is what the live tail de-duplicates on.
type LogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source,omitempty"`
}
