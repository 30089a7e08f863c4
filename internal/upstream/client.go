package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/valyala/fastjson"

	"github.com/hande-app/logwatch/internal/models"
)

// Client consumes the platform admin API. All endpoints are read-only from
// logwatch's perspective; responses are parsed leniently so that a missing
// or oddly typed field degrades to a zero value instead of failing the pane.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	parsers fastjson.ParserPool
}

// New creates a Client for the admin API at baseURL. token, if non-empty,
// is sent as a bearer token on every request.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// AuditLogs fetches one page of audit entries, optionally narrowed by a
// server-side search term.
func (c *Client) AuditLogs(ctx context.Context, search string, page, perPage int) (models.AuditLogPage, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	q.Set("page", fmt.Sprint(page))
	q.Set("per_page", fmt.Sprint(perPage))

	body, err := c.get(ctx, "/logs/audit", q)
	if err != nil {
		return models.AuditLogPage{}, err
	}
	return c.parseAuditPage(body, page, perPage)
}

// AuditRange fetches all audit entries between two dates (inclusive), for
// export. Dates are sent as ISO dates, matching the backend contract.
func (c *Client) AuditRange(ctx context.Context, start, end time.Time) ([]models.AuditEntry, error) {
	q := url.Values{}
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))

	body, err := c.get(ctx, "/logs/export", q)
	if err != nil {
		return nil, err
	}
	return c.parseAuditList(body)
}

// SystemLogs fetches one page of system events, optionally narrowed to a
// single event type.
func (c *Client) SystemLogs(ctx context.Context, eventType string, page, perPage int) (models.SystemLogPage, error) {
	q := url.Values{}
	if eventType != "" && eventType != "all" {
		q.Set("type", eventType)
	}
	q.Set("page", fmt.Sprint(page))
	q.Set("per_page", fmt.Sprint(perPage))

	body, err := c.get(ctx, "/logs/system", q)
	if err != nil {
		return models.SystemLogPage{}, err
	}
	return c.parseSystemPage(body, page, perPage)
}

// ActivityFeed fetches the recent activity window (last `minutes` minutes).
func (c *Client) ActivityFeed(ctx context.Context, minutes int) ([]models.ActivityFeedItem, error) {
	q := url.Values{}
	q.Set("minutes", fmt.Sprint(minutes))

	body, err := c.get(ctx, "/logs/activity-feed", q)
	if err != nil {
		return nil, err
	}
	return c.parseFeed(body)
}

// ActivityStats fetches the precomputed activity statistics for the given
// trailing time range.
func (c *Client) ActivityStats(ctx context.Context, hours int) (models.ActivityStats, error) {
	q := url.Values{}
	q.Set("hours", fmt.Sprint(hours))

	body, err := c.get(ctx, "/logs/stats", q)
	if err != nil {
		return models.ActivityStats{}, err
	}
	return c.parseStats(body)
}

// get issues a GET to baseURL+path and returns the raw body.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d for %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading upstream response: %w", err)
	}
	return body, nil
}
