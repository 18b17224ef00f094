package retrieve

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/docrelay/docrelay/internal/backend"
	"github.com/docrelay/docrelay/internal/cache"
	"github.com/docrelay/docrelay/internal/content"
	"github.com/docrelay/docrelay/internal/paging"
	"github.com/docrelay/docrelay/internal/suggest"
)

type SearchRequest struct {
	Query     string
	Page      int
	PageSize  int
	MaxTokens int
}

type SearchResponse struct {
	Query       string                 `json:"query"`
	Results     []backend.SearchResult `json:"results"`
	Suggestions []string               `json:"suggestions,omitempty"`
	Pagination  paging.PageInfo        `json:"pagination"`
	TokenInfo   content.TokenInfo      `json:"token_info"`
}

// Search runs a backend query and returns one token-fitted page of results.
// An empty result set comes back with synonym-based suggestions instead of
// an error.
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	query := suggest.Normalize(req.Query)
	maxTokens := s.clampBudget(req.MaxTokens)
	pageSize := s.clampPageSize(req.PageSize)

	results, err := s.searchResults(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return &SearchResponse{
			Query:       query,
			Results:     []backend.SearchResult{},
			Suggestions: suggest.Expand(req.Query),
			Pagination:  paging.Calculate(0, req.Page, pageSize),
			TokenInfo:   content.TokenInfo{MaxTokens: maxTokens},
		}, nil
	}

	fit := paging.FitItems(results, maxTokens, renderSearchResult, req.Page, pageSize)
	return &SearchResponse{
		Query:      query,
		Results:    fit.Items,
		Pagination: fit.Page,
		TokenInfo:  fit.TokenInfo,
	}, nil
}

func (s *Service) searchResults(ctx context.Context, query string) ([]backend.SearchResult, error) {
	key := cache.Key("search", query)
	if raw, ok := s.store.Get(ctx, key); ok {
		var results []backend.SearchResult
		if err := json.Unmarshal([]byte(raw), &results); err == nil {
			s.log.Debug("search cache hit", "query", query)
			return results, nil
		}
		_ = s.store.Delete(ctx, key)
	}

	results, err := s.backend.Search(ctx, query, s.opts.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("backend search: %w", err)
	}

	if raw, err := json.Marshal(results); err == nil {
		if err := s.store.Set(ctx, key, string(raw), s.opts.CacheTTL); err != nil {
			s.log.Warn("search cache write failed", "query", query, "error", err)
		}
	}
	return results, nil
}

// renderSearchResult is the stringify function handed to the item fitter:
// budgets are enforced against what the assistant will actually read.
func renderSearchResult(r backend.SearchResult) string {
	return fmt.Sprintf("## %s\nPath: %s\n\n%s\n", r.Title, r.Path, r.Snippet)
}
