// Package retrieve composes the backend client, cache, converter, and the
// content pipeline into the search, article, and TOC operations the API
// serves.
package retrieve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/docrelay/docrelay/internal/backend"
	"github.com/docrelay/docrelay/internal/cache"
	"github.com/docrelay/docrelay/internal/convert"
)

// Backend is the slice of the documentation backend the service needs.
type Backend interface {
	Search(ctx context.Context, query string, limit int) ([]backend.SearchResult, error)
	FetchPage(ctx context.Context, path string) (*backend.Page, error)
}

// Options carries the budgets and limits applied to every request.
type Options struct {
	DefaultMaxTokens int
	MaxTokensCeiling int
	DefaultPageSize  int
	MaxPageSize      int
	SearchLimit      int
	CacheTTL         time.Duration
}

func (o Options) withDefaults() Options {
	if o.DefaultMaxTokens <= 0 {
		o.DefaultMaxTokens = 10000
	}
	if o.MaxTokensCeiling < o.DefaultMaxTokens {
		o.MaxTokensCeiling = o.DefaultMaxTokens
	}
	if o.DefaultPageSize <= 0 {
		o.DefaultPageSize = 10
	}
	if o.MaxPageSize < o.DefaultPageSize {
		o.MaxPageSize = o.DefaultPageSize
	}
	if o.SearchLimit <= 0 {
		o.SearchLimit = 100
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = time.Hour
	}
	return o
}

// Service answers retrieval requests. All content shaping is delegated to
// the content and paging packages; this layer only fetches, converts,
// caches, and composes.
type Service struct {
	backend Backend
	store   cache.Store
	conv    *convert.Converter
	log     *slog.Logger
	opts    Options
}

func NewService(b Backend, store cache.Store, conv *convert.Converter, log *slog.Logger, opts Options) *Service {
	return &Service{
		backend: b,
		store:   store,
		conv:    conv,
		log:     log,
		opts:    opts.withDefaults(),
	}
}

// clampBudget applies the default and ceiling to a requested token budget.
func (s *Service) clampBudget(maxTokens int) int {
	if maxTokens <= 0 {
		return s.opts.DefaultMaxTokens
	}
	if maxTokens > s.opts.MaxTokensCeiling {
		return s.opts.MaxTokensCeiling
	}
	return maxTokens
}

// clampPageSize applies the default and ceiling to a requested page size.
func (s *Service) clampPageSize(pageSize int) int {
	if pageSize <= 0 {
		return s.opts.DefaultPageSize
	}
	if pageSize > s.opts.MaxPageSize {
		return s.opts.MaxPageSize
	}
	return pageSize
}

// document fetches and converts a page, serving from cache when possible.
func (s *Service) document(ctx context.Context, path string) (*convert.Result, error) {
	key := cache.Key("page", path)
	if raw, ok := s.store.Get(ctx, key); ok {
		var doc convert.Result
		if err := json.Unmarshal([]byte(raw), &doc); err == nil {
			s.log.Debug("page cache hit", "path", path)
			return &doc, nil
		}
		// Unreadable cache entries are dropped, not fatal.
		_ = s.store.Delete(ctx, key)
	}

	page, err := s.backend.FetchPage(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := s.conv.Convert(page.Body, page.ContentType, page.URL)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	if raw, err := json.Marshal(doc); err == nil {
		if err := s.store.Set(ctx, key, string(raw), s.opts.CacheTTL); err != nil {
			s.log.Warn("page cache write failed", "path", path, "error", err)
		}
	}
	return doc, nil
}
