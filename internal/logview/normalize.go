// Package logview implements the unified log-viewing model of the admin
// dashboard: normalization of the heterogeneous backend record shapes into
// one canonical entry, client-side filtering, server-side pagination state,
// the polling live tail, audit export and the stats read-through.
package logview

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/hande-app/logwatch/internal/models"
)

// Source identifies which backend shape a raw record came from.
type Source string

const (
	SourceAudit    Source = "audit"
	SourceSystem   Source = "system"
	SourceActivity Source = "activity"
)

// messageSep joins a synthesized title and description. Fixed so that
// normalization of identical input is byte-identical.
const messageSep = " - "

// Normalize maps a raw source record onto the canonical LogEntry. It is
// total: unknown sources and missing fields degrade to safe defaults, never
// to an error.
func Normalize(source Source, rec any) models.LogEntry {
	switch r := rec.(type) {
	case models.AuditEntry:
		return NormalizeAudit(r)
	case models.SystemEvent:
		return NormalizeSystem(r)
	case models.ActivityFeedItem:
		return NormalizeActivity(r)
	}
	return models.LogEntry{
		ID:      fmt.Sprintf("%s-%s", source, contentID(string(source), fmt.Sprint(rec))),
		Level:   models.LevelInfo,
		Message: fmt.Sprint(rec),
		Source:  string(source),
	}
}

// NormalizeAudit maps an audit entry. Audit actions are routine by
// definition, so they always carry the info level.
func NormalizeAudit(e models.AuditEntry) models.LogEntry {
	return models.LogEntry{
		ID:        fmt.Sprintf("audit-%d", e.ID),
		Timestamp: e.CreatedAt,
		Level:     models.LevelInfo,
		Message:   joinParts(e.Action, e.AdminName),
		Source:    string(SourceAudit),
	}
}

// NormalizeSystem maps a system event. The event has no backend identifier,
// so the id is a content hash, stable across fetches of the same record.
func NormalizeSystem(e models.SystemEvent) models.LogEntry {
	secondary := ""
	if e.SecondaryUser != nil {
		secondary = *e.SecondaryUser
	}
	id := contentID(
		e.Type,
		fmt.Sprint(e.EntityID),
		e.Description,
		e.PrimaryUser,
		secondary,
		e.Status,
		fmt.Sprint(e.Timestamp.UnixNano()),
	)
	return models.LogEntry{
		ID:        "system-" + id,
		Timestamp: e.Timestamp,
		Level:     levelFromStatus(e.Status),
		Message:   joinParts(e.Description, e.PrimaryUser),
		Source:    e.Type,
	}
}

// NormalizeActivity maps an activity feed item. Feed items carry no id
// either; the content hash keeps de-duplication stable across polls of
// overlapping windows.
func NormalizeActivity(e models.ActivityFeedItem) models.LogEntry {
	id := contentID(
		e.ActivityType,
		e.Title,
		e.Description,
		fmt.Sprint(e.Timestamp.UnixNano()),
	)
	return models.LogEntry{
		ID:        "activity-" + id,
		Timestamp: e.Timestamp,
		Level:     levelFromActivityType(e.ActivityType),
		Message:   joinParts(e.Title, e.Description),
		Source:    e.ActivityType,
	}
}

// levelFromActivityType maps an activity category onto a level. Emergencies
// surface as errors; everything else is informational.
func levelFromActivityType(activityType string) models.Level {
	if strings.EqualFold(activityType, "emergency") {
		return models.LevelError
	}
	return models.LevelInfo
}

// levelFromStatus maps a system event status label onto a level. Unknown or
// missing statuses default to info.
func levelFromStatus(status string) models.Level {
	switch strings.ToLower(status) {
	case "failed", "error", "critical":
		return models.LevelError
	case "warn", "warning":
		return models.LevelWarn
	case "debug":
		return models.LevelDebug
	default:
		return models.LevelInfo
	}
}

// joinParts synthesizes a message from a title and description, title first.
func joinParts(title, description string) string {
	switch {
	case title == "":
		return description
	case description == "":
		return title
	}
	return title + messageSep + description
}

// contentID hashes the identifying fields of a record into a short stable id.
func contentID(parts ...string) string {
	h := fnv.New64a()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
