package logview

import (
	"strings"

	"github.com/hande-app/logwatch/internal/models"
)

// LevelAll disables level filtering.
const LevelAll = "all"

// ApplyFilters narrows an in-memory entry window to the entries matching
// both the level filter and the free-text term. It never reorders: the
// result is a subsequence of entries. Passing LevelAll and an empty term
// returns the input unchanged.
func ApplyFilters(entries []models.LogEntry, level string, term string) []models.LogEntry {
	if (level == "" || level == LevelAll) && term == "" {
		return entries
	}

	term = strings.ToLower(term)
	var out []models.LogEntry
	for _, entry := range entries {
		if level != "" && level != LevelAll && string(entry.Level) != level {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(entry.Message), term) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
