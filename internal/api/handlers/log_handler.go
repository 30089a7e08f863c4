package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hande-app/logwatch/internal/logview"
	"github.com/hande-app/logwatch/internal/models"
	"github.com/hande-app/logwatch/internal/monitoring"
	"github.com/hande-app/logwatch/internal/services"
)

const defaultPerPage = 50

// LogHandler serves the unified log view, activity stats and exports.
type LogHandler struct {
	backend  logview.Backend
	reader   *logview.StatsReader
	exporter *logview.Exporter
	eventSvc services.EventServiceProvider
	stats    *monitoring.StatsRefresher
	feedMins int
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(backend logview.Backend, reader *logview.StatsReader, exporter *logview.Exporter, eventSvc services.EventServiceProvider, stats *monitoring.StatsRefresher, feedMins int) *LogHandler {
	return &LogHandler{
		backend:  backend,
		reader:   reader,
		exporter: exporter,
		eventSvc: eventSvc,
		stats:    stats,
		feedMins: feedMins,
	}
}

// logPageResponse is the unified-view payload for one tab.
type logPageResponse struct {
	Data       []models.LogEntry `json:"data"`
	Count      int               `json:"count"`
	Pagination models.Pagination `json:"pagination"`
	Error      string            `json:"error,omitempty"`
}

// GetLogs handles GET /logs: fetches one page of the requested tab,
// normalizes it and applies the client-side filters. A failing upstream
// yields an empty pane, not a failing request; the other tabs are
// unaffected.
func (h *LogHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	tab := logview.Tab(q.Get("tab"))
	if !tab.Valid() {
		tab = logview.TabAudit
	}

	perPage, err := strconv.Atoi(q.Get("per_page"))
	if err != nil || perPage <= 0 {
		perPage = defaultPerPage
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	state := logview.NewViewState(perPage)
	state.SwitchTab(tab)
	state.SetSearch(q.Get("search"))
	state.SetTypeFilter(q.Get("type"))
	state.SetLevelFilter(q.Get("level"))
	state.SetPage(page)

	params := state.FetchParams()
	entries, meta, err := logview.FetchPage(r.Context(), h.backend, params, h.feedMins)
	if err != nil {
		log.Warn().Err(err).Str("tab", string(tab)).Msg("Upstream fetch failed, serving empty pane")
		h.eventSvc.CreateEvent("upstream.fetch.fail", "warn", fmt.Sprintf("%s logs fetch failed: %v", tab, err))
		writeJSON(w, http.StatusOK, logPageResponse{
			Data:  []models.LogEntry{},
			Error: "upstream unavailable",
		})
		return
	}
	state.ApplyPage(params.Tab, params.Seq, meta)

	// The audit search already ran server-side; for the other tabs the term
	// filters the fetched window client-side.
	clientTerm := ""
	if tab != logview.TabAudit {
		clientTerm = q.Get("search")
	}
	filtered := logview.ApplyFilters(entries, state.LevelFilter, clientTerm)
	if filtered == nil {
		filtered = []models.LogEntry{}
	}

	writeJSON(w, http.StatusOK, logPageResponse{
		Data:       filtered,
		Count:      len(filtered),
		Pagination: meta,
	})
}

// GetStats handles GET /logs/stats. The default time range is served from
// the refresher's cache; other ranges go through to the upstream.
func (h *LogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	hours, err := strconv.Atoi(r.URL.Query().Get("hours"))
	if err != nil || hours <= 0 {
		hours = h.stats.Hours()
	}

	if hours == h.stats.Hours() {
		if cached, fetchedAt, ok := h.stats.Get(); ok {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"data":       cached,
				"fetched_at": fetchedAt,
			})
			return
		}
	}

	stats, err := h.reader.Fetch(r.Context(), hours)
	if err != nil {
		log.Error().Err(err).Int("hours", hours).Msg("Failed to fetch activity stats")
		http.Error(w, "Failed to retrieve stats", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": stats})
}

// exportPayload is the optional body of an export request.
type exportPayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Export handles POST /logs/export. Without a body it exports the trailing
// 7 days. Exports cover the raw audit range, never the filtered view.
func (h *LogHandler) Export(w http.ResponseWriter, r *http.Request) {
	end := time.Now()
	start := end.AddDate(0, 0, -7)

	var payload exportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
		if t, perr := time.Parse("2006-01-02", payload.StartDate); perr == nil {
			start = t
		}
		if t, perr := time.Parse("2006-01-02", payload.EndDate); perr == nil {
			end = t
		}
	}

	result, err := h.exporter.ExportRange(r.Context(), start, end)
	if err != nil {
		log.Error().Err(err).Msg("Audit export failed")
		h.eventSvc.CreateEvent("export.fail", "error", "Audit export failed: "+err.Error())
		status := http.StatusBadGateway
		if errors.Is(err, logview.ErrNoRows) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	h.eventSvc.CreateEvent("export.success", "info",
		fmt.Sprintf("Audit export wrote %d rows to %s", result.Rows, result.Filename))
	if err := h.eventSvc.RecordExportRun(result.Filename, result.Rows, start, end, false); err != nil {
		log.Warn().Err(err).Msg("Failed to record export run")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"filename": result.Filename,
		"rows":     result.Rows,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
