// Package api provides the HTTP client for the projection backend.
// All numbers the client receives are precomputed upstream; this package
// only moves JSON and maps failures to readable errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"horaboard/internal/model"
)

const (
	basePath       = "/api"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnavailable indicates the backend could not be reached in time.
	// Callers may fall back to the local snapshot cache on this error.
	ErrUnavailable = errors.New("api: backend unavailable")
	// ErrInvalidRange indicates a listing range where start is after end.
	ErrInvalidRange = errors.New("api: start date is after end date")
)

// Client talks to one projection backend instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given server URL.
// Returns nil if the URL is empty or not http(s).
func NewClient(serverURL string) *Client {
	serverURL = strings.TrimRight(strings.TrimSpace(serverURL), "/")
	if serverURL == "" {
		return nil
	}
	u, err := url.Parse(serverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil
	}
	return &Client{
		baseURL: serverURL + basePath,
		http:    &http.Client{},
	}
}

// FetchProjection returns the period projection snapshot, optionally for
// the period containing the given ISO date. A (nil, nil) result is the
// valid "nothing configured yet" empty state, not a failure.
func (c *Client) FetchProjection(ctx context.Context, date string) (*model.Projection, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}

	body, err := c.do(ctx, http.MethodGet, "/v1/dashboard/projection", q, nil)
	if err != nil {
		return nil, err
	}

	var p *model.Projection
	if err := decode(body, &p); err != nil {
		return nil, fmt.Errorf("api: parsing projection: %w", err)
	}
	return p, nil
}

// ApplyAdjustment submits a manual hour adjustment for the current period
// and returns the recomputed projection.
func (c *Client) ApplyAdjustment(ctx context.Context, adjustedHours float64) (*model.Projection, error) {
	payload := map[string]float64{"adjustedHours": adjustedHours}

	body, err := c.do(ctx, http.MethodPut, "/v1/dashboard/period-adjustment", nil, payload)
	if err != nil {
		return nil, err
	}

	var p *model.Projection
	if err := decode(body, &p); err != nil {
		return nil, fmt.Errorf("api: parsing adjusted projection: %w", err)
	}
	return p, nil
}

// CreateEntry submits a new time entry. The entry is validated for shape
// before any request is made.
func (c *Client) CreateEntry(ctx context.Context, entry model.NewHourEntry) (*model.HourEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPost, "/v1/entries", nil, entry)
	if err != nil {
		return nil, err
	}

	var created model.HourEntry
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("api: parsing created entry: %w", err)
	}
	return &created, nil
}

// ListEntries returns the entries within the inclusive date range.
func (c *Client) ListEntries(ctx context.Context, start, end string) ([]model.HourEntry, error) {
	q, err := rangeQuery(start, end)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodGet, "/v1/entries", q, nil)
	if err != nil {
		return nil, err
	}

	var entries []model.HourEntry
	if err := decode(body, &entries); err != nil {
		return nil, fmt.Errorf("api: parsing entries: %w", err)
	}
	return entries, nil
}

// ListEntriesPaged returns one page of entries within the range.
func (c *Client) ListEntriesPaged(ctx context.Context, start, end string, page, size int) (*model.EntryPage, error) {
	q, err := rangeQuery(start, end)
	if err != nil {
		return nil, err
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))

	body, err := c.do(ctx, http.MethodGet, "/v1/entries/paged", q, nil)
	if err != nil {
		return nil, err
	}

	var pg model.EntryPage
	if err := json.Unmarshal(body, &pg); err != nil {
		return nil, fmt.Errorf("api: parsing entry page: %w", err)
	}
	return &pg, nil
}

// DeleteEntry removes an entry by id. An unknown id surfaces as the same
// generic status error as any other failure.
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/entries/%d", id), nil, nil)
	return err
}

// FetchSystemConfig reads the backend settings. (nil, nil) means no
// config has been saved yet.
func (c *Client) FetchSystemConfig(ctx context.Context) (*model.SystemConfig, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/system-config", nil, nil)
	if err != nil {
		return nil, err
	}

	var cfg *model.SystemConfig
	if err := decode(body, &cfg); err != nil {
		return nil, fmt.Errorf("api: parsing system config: %w", err)
	}
	return cfg, nil
}

// SaveSystemConfig writes the settings wholesale and returns the saved copy.
func (c *Client) SaveSystemConfig(ctx context.Context, cfg model.SystemConfig) (*model.SystemConfig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	body, err := c.do(ctx, http.MethodPut, "/v1/system-config", nil, cfg)
	if err != nil {
		return nil, err
	}

	var saved model.SystemConfig
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, fmt.Errorf("api: parsing saved config: %w", err)
	}
	return &saved, nil
}

// do performs one JSON request and returns the response body.
// A nil body with a nil error means the backend answered 204/empty.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("api: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}
	return body, nil
}

// decode unmarshals a body into target, treating empty and literal null
// bodies as the empty state (target untouched).
func decode(body []byte, target any) error {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	return json.Unmarshal(body, target)
}

func rangeQuery(start, end string) (url.Values, error) {
	if start != "" && end != "" && start > end {
		return nil, ErrInvalidRange
	}
	q := url.Values{}
	if start != "" {
		q.Set("start", start)
	}
	if end != "" {
		q.Set("end", end)
	}
	return q, nil
}
