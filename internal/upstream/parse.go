package upstream

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fastjson"

	"github.com/hande-app/logwatch/internal/models"
)

// Parsing uses fastjson so a record missing a field yields a zero value for
// that field rather than rejecting the whole response. Timestamps that are
// absent or unparsable are substituted with the receive time; an entry must
// never lose the field it is ordered by.

func (c *Client) parseAuditPage(body []byte, page, perPage int) (models.AuditLogPage, error) {
	p := c.parsers.Get()
	defer c.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return models.AuditLogPage{}, fmt.Errorf("invalid audit logs payload: %w", err)
	}

	out := models.AuditLogPage{
		Data:       parseAuditEntries(v.GetArray("data"), time.Now()),
		Pagination: parsePagination(v.Get("pagination"), page, perPage),
	}
	return out, nil
}

func (c *Client) parseAuditList(body []byte) ([]models.AuditEntry, error) {
	p := c.parsers.Get()
	defer c.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("invalid audit export payload: %w", err)
	}
	return parseAuditEntries(v.GetArray("data"), time.Now()), nil
}

func (c *Client) parseSystemPage(body []byte, page, perPage int) (models.SystemLogPage, error) {
	p := c.parsers.Get()
	defer c.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return models.SystemLogPage{}, fmt.Errorf("invalid system logs payload: %w", err)
	}

	now := time.Now()
	var events []models.SystemEvent
	for _, item := range v.GetArray("data") {
		ev := models.SystemEvent{
			Type:        str(item, "type"),
			EntityID:    item.GetInt64("entity_id"),
			Description: str(item, "description"),
			PrimaryUser: str(item, "primary_user"),
			Status:      str(item, "status"),
			Timestamp:   timestamp(item, "timestamp", now),
		}
		if s := str(item, "secondary_user"); s != "" {
			ev.SecondaryUser = &s
		}
		events = append(events, ev)
	}

	return models.SystemLogPage{
		Data:       events,
		Pagination: parsePagination(v.Get("pagination"), page, perPage),
	}, nil
}

func (c *Client) parseFeed(body []byte) ([]models.ActivityFeedItem, error) {
	p := c.parsers.Get()
	defer c.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("invalid activity feed payload: %w", err)
	}

	now := time.Now()
	var items []models.ActivityFeedItem
	for _, item := range v.GetArray("data") {
		items = append(items, models.ActivityFeedItem{
			ActivityType: str(item, "activity_type"),
			Title:        str(item, "title"),
			Description:  str(item, "description"),
			Timestamp:    timestamp(item, "timestamp", now),
		})
	}
	return items, nil
}

func (c *Client) parseStats(body []byte) (models.ActivityStats, error) {
	p := c.parsers.Get()
	defer c.parsers.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return models.ActivityStats{}, fmt.Errorf("invalid activity stats payload: %w", err)
	}

	// The stats endpoint wraps its payload in a data envelope; tolerate a
	// bare object too.
	if d := v.Get("data"); d != nil && d.Type() == fastjson.TypeObject {
		v = d
	}

	stats := models.ActivityStats{
		TotalActions:   v.GetInt("total_actions"),
		TimeRangeHours: v.GetInt("time_range_hours"),
	}
	for _, item := range v.GetArray("actions_by_type") {
		stats.ActionsByType = append(stats.ActionsByType, models.ActionCount{
			Action: str(item, "action"),
			Count:  item.GetInt("count"),
		})
	}
	for _, item := range v.GetArray("active_admins") {
		stats.ActiveAdmins = append(stats.ActiveAdmins, models.AdminActivity{
			AdminID:     item.GetInt64("admin_id"),
			AdminName:   str(item, "admin_name"),
			ActionCount: item.GetInt("action_count"),
		})
	}
	for _, item := range v.GetArray("actions_over_time") {
		stats.ActionsOverTime = append(stats.ActionsOverTime, models.TimeBucket{
			Hour:  str(item, "hour"),
			Count: item.GetInt("count"),
		})
	}
	return stats, nil
}

func parseAuditEntries(items []*fastjson.Value, now time.Time) []models.AuditEntry {
	var entries []models.AuditEntry
	for _, item := range items {
		entry := models.AuditEntry{
			ID:         item.GetInt64("id"),
			AdminID:    item.GetInt64("admin_id"),
			AdminName:  str(item, "admin_name"),
			AdminEmail: str(item, "admin_email"),
			Action:     str(item, "action"),
			IPAddress:  str(item, "ip_address"),
			CreatedAt:  timestamp(item, "created_at", now),
		}
		if meta := item.Get("metadata"); meta != nil && meta.Type() != fastjson.TypeNull {
			entry.Metadata = json.RawMessage(meta.MarshalTo(nil))
		}
		entries = append(entries, entry)
	}
	return entries
}

func parsePagination(v *fastjson.Value, page, perPage int) models.Pagination {
	if v == nil {
		// No metadata at all: treat the response as a single page.
		return models.Pagination{PerPage: perPage, CurrentPage: page, LastPage: page}
	}
	pg := models.Pagination{
		Total:       v.GetInt("total"),
		PerPage:     v.GetInt("per_page"),
		CurrentPage: v.GetInt("current_page"),
		LastPage:    v.GetInt("last_page"),
	}
	if pg.PerPage == 0 {
		pg.PerPage = perPage
	}
	if pg.CurrentPage == 0 {
		pg.CurrentPage = page
	}
	if pg.LastPage == 0 {
		pg.LastPage = pg.CurrentPage
	}
	return pg
}

func str(v *fastjson.Value, key string) string {
	return string(v.GetStringBytes(key))
}

// timestamp reads an RFC 3339 time from key, falling back to a plain
// datetime layout and finally to the receive time.
func timestamp(v *fastjson.Value, key string, now time.Time) time.Time {
	raw := str(v, key)
	if raw == "" {
		return now
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t
	}
	return now
}
