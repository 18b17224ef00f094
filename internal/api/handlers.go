package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/docrelay/docrelay/internal/backend"
	"github.com/docrelay/docrelay/internal/retrieve"
)

// handleSearch serves one token-fitted page of backend search results.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		jsonError(w, "q query parameter is required", http.StatusBadRequest)
		return
	}

	page, err := intQuery(r, "page")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pageSize, err := intQuery(r, "page_size")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	maxTokens, err := intQuery(r, "max_tokens")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.svc.Search(r.Context(), retrieve.SearchRequest{
		Query:     query,
		Page:      page,
		PageSize:  pageSize,
		MaxTokens: maxTokens,
	})
	if err != nil {
		s.log.Error("search failed", "query", query, "error", err)
		jsonError(w, "search failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, resp)
}

// handleArticle serves an article shaped to the requested budget. The
// section and summary parameters select the narrower delivery modes.
func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		jsonError(w, "path query parameter is required", http.StatusBadRequest)
		return
	}

	maxTokens, err := intQuery(r, "max_tokens")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := boolQuery(r, "summary")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.svc.Article(r.Context(), retrieve.ArticleRequest{
		Path:      path,
		Section:   r.URL.Query().Get("section"),
		Summary:   summary,
		MaxTokens: maxTokens,
	})
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			jsonError(w, "article not found: "+path, http.StatusNotFound)
			return
		}
		s.log.Error("article fetch failed", "path", path, "error", err)
		jsonError(w, "article fetch failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, resp)
}

// handleTOC serves one page of the flattened table of contents of a
// Markdown index document.
func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		jsonError(w, "path query parameter is required", http.StatusBadRequest)
		return
	}

	page, err := intQuery(r, "page")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	pageSize, err := intQuery(r, "page_size")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	maxTokens, err := intQuery(r, "max_tokens")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := s.svc.TOC(r.Context(), retrieve.TOCRequest{
		Path:      path,
		Page:      page,
		PageSize:  pageSize,
		MaxTokens: maxTokens,
	})
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			jsonError(w, "index not found: "+path, http.StatusNotFound)
			return
		}
		s.log.Error("toc fetch failed", "path", path, "error", err)
		jsonError(w, "toc fetch failed", http.StatusBadGateway)
		return
	}

	writeJSON(w, resp)
}

func (s *Server) handleBackendStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		jsonError(w, "backend stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]any{
		"overall":    s.stats.Snapshot(),
		"operations": s.stats.ByOperation(),
	})
}

// intQuery parses an optional non-negative integer parameter. Zero means
// "not set"; the service substitutes its defaults.
func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	return v, nil
}

func boolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
