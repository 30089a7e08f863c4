package logview

import (
	"context"
	"fmt"

	"github.com/hande-app/logwatch/internal/models"
)

// Backend is the slice of the admin API the page fetcher needs.
type Backend interface {
	AuditLogs(ctx context.Context, search string, page, perPage int) (models.AuditLogPage, error)
	SystemLogs(ctx context.Context, eventType string, page, perPage int) (models.SystemLogPage, error)
	ActivityFeed(ctx context.Context, minutes int) ([]models.ActivityFeedItem, error)
}

// FetchPage fetches one page of the tab named by p and normalizes it. Only
// the requested tab's source is queried; inactive tabs cost nothing. The
// returned pagination metadata reflects the backend's totals for the
// server-side filters in p, independent of any client-side filtering the
// caller applies afterwards.
func FetchPage(ctx context.Context, b Backend, p FetchParams, feedWindowMins int) ([]models.LogEntry, models.Pagination, error) {
	switch p.Tab {
	case TabAudit:
		page, err := b.AuditLogs(ctx, p.Search, p.Page, p.PerPage)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		entries := make([]models.LogEntry, 0, len(page.Data))
		for _, e := range page.Data {
			entries = append(entries, NormalizeAudit(e))
		}
		return entries, page.Pagination, nil

	case TabSystem:
		page, err := b.SystemLogs(ctx, p.Type, p.Page, p.PerPage)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		entries := make([]models.LogEntry, 0, len(page.Data))
		for _, e := range page.Data {
			entries = append(entries, NormalizeSystem(e))
		}
		return entries, page.Pagination, nil

	case TabActivity:
		// The feed is a window, not a paged collection: it is always a
		// single page.
		items, err := b.ActivityFeed(ctx, feedWindowMins)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		entries := make([]models.LogEntry, 0, len(items))
		for _, item := range items {
			entries = append(entries, NormalizeActivity(item))
		}
		meta := models.Pagination{
			Total:       len(entries),
			PerPage:     len(entries),
			CurrentPage: 1,
			LastPage:    1,
		}
		return entries, meta, nil
	}

	return nil, models.Pagination{}, fmt.Errorf("unknown tab %q", p.Tab)
}
