// Package backend talks to the third-party documentation search service.
package backend

import (
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
)

// ErrNotFound indicates the backend has no document at the requested path.
var ErrNotFound = errors.New("document not found")

// SearchResult is one hit from the backend's search endpoint.
type SearchResult struct {
	Path    string  `json:"path"`
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

// Page is a raw fetched document before conversion.
type Page struct {
	Body        []byte
	ContentType string
	URL         string
}

// Client communicates with the documentation backend's HTTP API. All
// outbound requests pass through the injected throttle first, and transient
// failures are retried with backoff.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	throttle   *Throttle
	stats      *RequestStats
}

func NewClient(baseURL, apiKey string, throttle *Throttle) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		throttle: throttle,
		stats:    NewRequestStats(time.Hour),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Stats exposes the rolling latency window for the API stats endpoint.
func (c *Client) Stats() *RequestStats {
	return c.stats
}

// Search queries the backend search endpoint.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	u := c.baseURL + "/api/search?q=" + url.QueryEscape(query)
	if limit > 0 {
		u += "&limit=" + strconv.Itoa(limit)
	}

	body, _, err := c.get(ctx, OpSearch, u)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	var result struct {
		Results []SearchResult `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	return result.Results, nil
}

// FetchPage retrieves a raw document by backend path. A 404 maps to
// ErrNotFound so callers can distinguish absence from failure.
func (c *Client) FetchPage(ctx context.Context, path string) (*Page, error) {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")

	body, resp, err := c.get(ctx, OpPage, u)
	if err != nil {
		return nil, fmt.Errorf("fetch page %s: %w", path, err)
	}

	return &Page{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		URL:         resp.Request.URL.String(),
	}, nil
}

// get performs a throttled, retried GET. The response body is fully read and
// the *http.Response is returned only for header/URL inspection.
func (c *Client) get(ctx context.Context, op, u string) ([]byte, *http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, nil, ctx.Err()
			case <-time.After(Backoff(attempt - 1)):
			}
		}

		if err := c.throttle.Wait(ctx); err != nil {
			return nil, nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("create request: %w", err)
		}
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		c.stats.Record(op, time.Since(start).Milliseconds())
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, nil, ErrNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, firstBytes(body, 256))
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, nil, fmt.Errorf("status %d: %s", resp.StatusCode, firstBytes(body, 256))
		case readErr != nil:
			lastErr = fmt.Errorf("read body: %w", readErr)
			continue
		}
		return body, resp, nil
	}
	return nil, nil, fmt.Errorf("giving up after %d attempts: %w", MaxRetries+1, lastErr)
}

func firstBytes(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
