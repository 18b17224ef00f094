package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docrelay/docrelay/internal/backend"
	"github.com/docrelay/docrelay/internal/cache"
	"github.com/docrelay/docrelay/internal/config"
	"github.com/docrelay/docrelay/internal/convert"
	"github.com/docrelay/docrelay/internal/retrieve"
)

type stubBackend struct {
	pages   map[string]*backend.Page
	results []backend.SearchResult
}

func (s *stubBackend) Search(context.Context, string, int) ([]backend.SearchResult, error) {
	return s.results, nil
}

func (s *stubBackend) FetchPage(_ context.Context, path string) (*backend.Page, error) {
	page, ok := s.pages[path]
	if !ok {
		return nil, backend.ErrNotFound
	}
	return page, nil
}

func newTestServer(sb *stubBackend) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := retrieve.NewService(sb, cache.NewMemory(), convert.New(nil), log, retrieve.Options{
		DefaultMaxTokens: 1000,
		MaxTokensCeiling: 5000,
		DefaultPageSize:  10,
		MaxPageSize:      50,
		CacheTTL:         time.Minute,
	})
	return NewServer(svc, backend.NewRequestStats(time.Hour), log, config.Config{APIKey: "test-key"})
}

func doRequest(t *testing.T, srv *Server, path string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authed {
		req.Header.Set("Authorization", "Bearer test-key")
	}
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func TestHealthIsPublic(t *testing.T) {
	srv := newTestServer(&stubBackend{})
	rr := doRequest(t, srv, "/health", false)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(&stubBackend{})

	rr := doRequest(t, srv, "/api/search?q=x", false)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("missing auth: status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("missing auth: content type = %q", ct)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body.Error == "" {
		t.Errorf("missing auth: body = %q err = %v", rr.Body.String(), err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=x", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d", rec.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(&stubBackend{
		results: []backend.SearchResult{{Path: "/a", Title: "A", Snippet: "s"}},
	})

	rr := doRequest(t, srv, "/api/search?q=widgets", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Results []backend.SearchResult `json:"results"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Path != "/a" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestSearchRejectsBadParams(t *testing.T) {
	srv := newTestServer(&stubBackend{})

	for _, path := range []string{
		"/api/search",
		"/api/search?q=x&page=abc",
		"/api/search?q=x&max_tokens=-5",
	} {
		rr := doRequest(t, srv, path, true)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rr.Code)
		}
	}
}

func TestArticleEndpoint(t *testing.T) {
	srv := newTestServer(&stubBackend{
		pages: map[string]*backend.Page{
			"/docs/a": {Body: []byte("# Title\n\nbody\n"), ContentType: "text/markdown"},
		},
	})

	rr := doRequest(t, srv, "/api/article?path=/docs/a", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "Title" || resp.Content == "" {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestArticleNotFound(t *testing.T) {
	srv := newTestServer(&stubBackend{})
	rr := doRequest(t, srv, "/api/article?path=/missing", true)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rr.Code)
	}
}

func TestTOCEndpoint(t *testing.T) {
	srv := newTestServer(&stubBackend{
		pages: map[string]*backend.Page{
			"/index.md": {
				Body:        []byte("# Docs\n\n- [Install](/docs/install)\n- [CLI](/docs/cli)\n"),
				ContentType: "text/markdown",
			},
		},
	})

	rr := doRequest(t, srv, "/api/toc?path=/index.md", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Title   string `json:"title"`
		Entries []struct {
			Title string `json:"title"`
			Path  string `json:"path"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Title != "Docs" || len(resp.Entries) != 2 {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestBackendStatsEndpoint(t *testing.T) {
	stats := backend.NewRequestStats(time.Hour)
	stats.Record(backend.OpSearch, 12)
	stats.Record(backend.OpPage, 120)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := retrieve.NewService(&stubBackend{}, cache.NewMemory(), convert.New(nil), log, retrieve.Options{})
	srv := NewServer(svc, stats, log, config.Config{APIKey: "test-key"})

	rr := doRequest(t, srv, "/api/stats/backend", true)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp struct {
		Overall    backend.StatsSnapshot            `json:"overall"`
		Operations map[string]backend.StatsSnapshot `json:"operations"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Overall.Count != 2 {
		t.Errorf("overall count = %d", resp.Overall.Count)
	}
	if resp.Operations[backend.OpSearch].Count != 1 || resp.Operations[backend.OpPage].Count != 1 {
		t.Errorf("operations = %+v", resp.Operations)
	}
}
