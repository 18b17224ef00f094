package retrieve

import (
	"context"
	"fmt"

	"github.com/docrelay/docrelay/internal/content"
	"github.com/docrelay/docrelay/internal/paging"
	"github.com/docrelay/docrelay/internal/toc"
)

type TOCRequest struct {
	Path      string // backend path of the Markdown index
	Page      int
	PageSize  int
	MaxTokens int
}

type TOCResponse struct {
	Title      string            `json:"title"`
	Entries    []toc.FlatEntry   `json:"entries"`
	Pagination paging.PageInfo   `json:"pagination"`
	TokenInfo  content.TokenInfo `json:"token_info"`
}

// TOC fetches the backend's Markdown index, flattens its entry tree, and
// returns one token-fitted page of entries.
func (s *Service) TOC(ctx context.Context, req TOCRequest) (*TOCResponse, error) {
	maxTokens := s.clampBudget(req.MaxTokens)
	pageSize := s.clampPageSize(req.PageSize)

	doc, err := s.document(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("toc %s: %w", req.Path, err)
	}

	tree := toc.Parse([]byte(doc.Markdown))
	flat := toc.Flatten(tree.Entries)

	fit := paging.FitItems(flat, maxTokens, toc.FlatEntry.String, req.Page, pageSize)

	title := tree.Title
	if title == "" {
		title = doc.Title
	}
	return &TOCResponse{
		Title:      title,
		Entries:    fit.Items,
		Pagination: fit.Page,
		TokenInfo:  fit.TokenInfo,
	}, nil
}
