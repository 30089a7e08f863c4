package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hande-app/logwatch/internal/logview"
	"github.com/hande-app/logwatch/internal/models"
	"github.com/hande-app/logwatch/internal/monitoring"
)

// fakeBackend serves canned upstream responses.
type fakeBackend struct {
	auditPage  models.AuditLogPage
	systemPage models.SystemLogPage
	feed       []models.ActivityFeedItem
	audit      []models.AuditEntry
	stats      models.ActivityStats
	err        error
	gotSearch  string
}

func (f *fakeBackend) AuditLogs(_ context.Context, search string, page, perPage int) (models.AuditLogPage, error) {
	f.gotSearch = search
	return f.auditPage, f.err
}

func (f *fakeBackend) SystemLogs(_ context.Context, eventType string, page, perPage int) (models.SystemLogPage, error) {
	return f.systemPage, f.err
}

func (f *fakeBackend) ActivityFeed(_ context.Context, minutes int) ([]models.ActivityFeedItem, error) {
	return f.feed, f.err
}

func (f *fakeBackend) AuditRange(_ context.Context, _, _ time.Time) ([]models.AuditEntry, error) {
	return f.audit, f.err
}

func (f *fakeBackend) ActivityStats(_ context.Context, hours int) (models.ActivityStats, error) {
	return f.stats, f.err
}

// fakeEvents records operational events in memory.
type fakeEvents struct {
	created []string
	runs    int
}

func (f *fakeEvents) CreateEvent(eventType, level, message string) error {
	f.created = append(f.created, eventType)
	return nil
}

func (f *fakeEvents) GetRecentEvents(limit int) ([]models.MonitorEvent, error) {
	return nil, nil
}

func (f *fakeEvents) RecordExportRun(filename string, rows int, start, end time.Time, scheduled bool) error {
	f.runs++
	return nil
}

func newTestHandler(t *testing.T, backend *fakeBackend) (*LogHandler, *fakeEvents) {
	t.Helper()
	events := &fakeEvents{}
	reader := logview.NewStatsReader(backend)
	exporter := logview.NewExporter(backend, t.TempDir())
	refresher := monitoring.NewStatsRefresher(reader, 24, time.Minute) // not running: cache stays cold
	return NewLogHandler(backend, reader, exporter, events, refresher, 15), events
}

type logsResponse struct {
	Data       []models.LogEntry `json:"data"`
	Count      int               `json:"count"`
	Pagination models.Pagination `json:"pagination"`
	Error      string            `json:"error"`
}

func TestGetLogsEmptyActivityFeed(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t, &fakeBackend{})

	req := httptest.NewRequest("GET", "/api/v1/logs?tab=activity", nil)
	w := httptest.NewRecorder()
	handler.GetLogs(w, req)

	if w.Code != 200 {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp logsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	// An empty window renders as zero entries, not as an error.
	if resp.Count != 0 || resp.Error != "" {
		t.Fatalf("empty feed must yield count 0 without error: %+v", resp)
	}
	if resp.Data == nil {
		t.Fatal("data must encode as [] rather than null")
	}
}

func TestGetLogsAuditSearchKeepsServerTotals(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		auditPage: models.AuditLogPage{
			Data: []models.AuditEntry{
				{ID: 1, Action: "admin.login", AdminName: "Ama", CreatedAt: time.Now()},
				{ID: 2, Action: "driver.login", AdminName: "Kofi", CreatedAt: time.Now()},
				{ID: 3, Action: "rider.login", AdminName: "Esi", CreatedAt: time.Now()},
			},
			// The backend's own totals for its server-side search.
			Pagination: models.Pagination{Total: 50, PerPage: 50, CurrentPage: 1, LastPage: 1},
		},
	}
	handler, _ := newTestHandler(t, backend)

	req := httptest.NewRequest("GET", "/api/v1/logs?tab=audit&search=login", nil)
	w := httptest.NewRecorder()
	handler.GetLogs(w, req)

	var resp logsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if backend.gotSearch != "login" {
		t.Fatalf("audit search must run server-side, got %q", backend.gotSearch)
	}
	if resp.Count != 3 {
		t.Fatalf("expected the 3 matching entries, got %d", resp.Count)
	}
	// Pagination reflects the server-reported totals, not the client-side
	// filter count.
	if resp.Pagination.Total != 50 {
		t.Fatalf("pagination must keep server totals: %+v", resp.Pagination)
	}
}

func TestGetLogsClientSideFilters(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{
		feed: []models.ActivityFeedItem{
			{ActivityType: "emergency", Title: "SOS pressed", Description: "Rider 1182", Timestamp: time.Now()},
			{ActivityType: "trips", Title: "Trip completed", Description: "Osu", Timestamp: time.Now()},
			{ActivityType: "trips", Title: "Trip cancelled", Description: "Accra", Timestamp: time.Now()},
		},
	}
	handler, _ := newTestHandler(t, backend)

	req := httptest.NewRequest("GET", "/api/v1/logs?tab=activity&level=info&search=trip", nil)
	w := httptest.NewRecorder()
	handler.GetLogs(w, req)

	var resp logsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("level+search conjunction wrong, got %d entries", resp.Count)
	}
	for _, entry := range resp.Data {
		if entry.Level != models.LevelInfo || !strings.Contains(strings.ToLower(entry.Message), "trip") {
			t.Fatalf("entry escaped the filters: %+v", entry)
		}
	}
}

func TestGetLogsUpstreamFailureIsPaneLocal(t *testing.T) {
	t.Parallel()

	handler, events := newTestHandler(t, &fakeBackend{err: errors.New("upstream down")})

	req := httptest.NewRequest("GET", "/api/v1/logs?tab=system", nil)
	w := httptest.NewRecorder()
	handler.GetLogs(w, req)

	// The pane degrades to empty instead of failing the request.
	if w.Code != 200 {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp logsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 0 || resp.Error == "" {
		t.Fatalf("expected empty pane with error note: %+v", resp)
	}
	if len(events.created) != 1 || events.created[0] != "upstream.fetch.fail" {
		t.Fatalf("fetch failure not recorded: %+v", events.created)
	}
}

func TestExportSuccess(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{audit: []models.AuditEntry{
		{ID: 1, AdminName: "Ama", AdminEmail: "ama@hande.app", Action: "admin.login", IPAddress: "10.0.0.1", CreatedAt: time.Now()},
	}}
	handler, events := newTestHandler(t, backend)

	req := httptest.NewRequest("POST", "/api/v1/logs/export", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.Export(w, req)

	if w.Code != 200 {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !strings.HasPrefix(resp["filename"].(string), "audit_logs_") {
		t.Fatalf("unexpected filename: %v", resp["filename"])
	}
	if events.runs != 1 {
		t.Fatal("export run not recorded")
	}
}

func TestExportZeroRows(t *testing.T) {
	t.Parallel()

	handler, events := newTestHandler(t, &fakeBackend{})

	req := httptest.NewRequest("POST", "/api/v1/logs/export", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.Export(w, req)

	if w.Code != 422 {
		t.Fatalf("empty range must report 422, got %d", w.Code)
	}
	if events.runs != 0 {
		t.Fatal("no export run may be recorded for an empty range")
	}
	if len(events.created) != 1 || events.created[0] != "export.fail" {
		t.Fatalf("export failure not recorded: %+v", events.created)
	}
}

func TestExportUpstreamFailure(t *testing.T) {
	t.Parallel()

	handler, _ := newTestHandler(t, &fakeBackend{err: errors.New("upstream down")})

	req := httptest.NewRequest("POST", "/api/v1/logs/export", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	handler.Export(w, req)

	if w.Code != 502 {
		t.Fatalf("fetch failure must report 502, got %d", w.Code)
	}
}

func TestGetStatsResorted(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{stats: models.ActivityStats{
		TotalActions: 12,
		ActionsByType: []models.ActionCount{
			{Action: "driver.approve", Count: 2},
			{Action: "admin.login", Count: 10},
		},
		TimeRangeHours: 6,
	}}
	handler, _ := newTestHandler(t, backend)

	req := httptest.NewRequest("GET", "/api/v1/logs/stats?hours=6", nil)
	w := httptest.NewRecorder()
	handler.GetStats(w, req)

	if w.Code != 200 {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp struct {
		Data models.ActivityStats `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Data.ActionsByType[0].Action != "admin.login" {
		t.Fatalf("stats not re-sorted before serving: %+v", resp.Data.ActionsByType)
	}
}
