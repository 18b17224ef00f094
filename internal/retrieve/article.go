package retrieve

import (
	"context"
	"fmt"
	"strings"

	"github.com/docrelay/docrelay/internal/content"
	"github.com/docrelay/docrelay/internal/convert"
)

type ArticleRequest struct {
	Path      string
	Section   string // section id or title fragment; empty for the whole article
	Summary   bool   // summary-only preview
	MaxTokens int
}

type ArticleResponse struct {
	Path              string                 `json:"path"`
	Title             string                 `json:"title"`
	Breadcrumb        []string               `json:"breadcrumb,omitempty"`
	Links             []convert.Link         `json:"links,omitempty"`
	Content           string                 `json:"content"`
	Section           *content.Section       `json:"section,omitempty"`
	Summary           *content.SummaryResult `json:"summary,omitempty"`
	RemainingSections []content.Section      `json:"remaining_sections,omitempty"`
	TokenInfo         content.TokenInfo      `json:"token_info"`
}

// Article fetches a page and shapes it to the requested budget: the default
// mode truncates the whole article, Section narrows to one section subtree,
// and Summary returns a preview instead of the body.
func (s *Service) Article(ctx context.Context, req ArticleRequest) (*ArticleResponse, error) {
	maxTokens := s.clampBudget(req.MaxTokens)

	doc, err := s.document(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("article %s: %w", req.Path, err)
	}

	resp := &ArticleResponse{
		Path:       req.Path,
		Title:      doc.Title,
		Breadcrumb: doc.Breadcrumb,
		Links:      doc.Links,
	}

	switch {
	case req.Summary:
		summary := content.Summarize(doc.Markdown, doc.Title, maxTokens)
		resp.Summary = &summary
		resp.TokenInfo = summary.TokenInfo

	case req.Section != "":
		res := content.ExtractSection(doc.Markdown, req.Section, maxTokens)
		if res.Section == nil {
			resp.Content = sectionNotFound(req.Section, doc.Markdown)
			resp.TokenInfo = content.NewTokenInfo(resp.Content, maxTokens, false)
			return resp, nil
		}
		resp.Section = res.Section
		resp.Content = res.Content
		resp.TokenInfo = res.TokenInfo

	default:
		res := content.Truncate(doc.Markdown, maxTokens)
		resp.Content = res.Content
		resp.RemainingSections = res.RemainingSections
		resp.TokenInfo = res.TokenInfo
	}

	return resp, nil
}

// sectionNotFound renders the miss message from a full extraction, so the
// assistant can retry with a valid id.
func sectionNotFound(identifier, markdown string) string {
	sections := content.ExtractSections(markdown)

	var b strings.Builder
	fmt.Fprintf(&b, "Section %q not found.", identifier)
	if len(sections) == 0 {
		b.WriteString(" The document has no sections.")
		return b.String()
	}

	b.WriteString(" Available sections:\n")
	for _, sec := range sections {
		indent := strings.Repeat("  ", sec.Level-1)
		fmt.Fprintf(&b, "%s- %s (id: %s)\n", indent, sec.Title, sec.ID)
	}
	return b.String()
}
