// Package convert turns raw fetched documents into Markdown plus metadata.
package convert

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/docrelay/docrelay/internal/config"
)

// Link is a related page discovered during conversion.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Result is a converted document ready for the content pipeline.
type Result struct {
	Markdown   string   `json:"markdown"`
	Title      string   `json:"title"`
	Breadcrumb []string `json:"breadcrumb,omitempty"`
	Links      []Link   `json:"links,omitempty"`
}

// Converter dispatches raw payloads to a format-specific conversion based on
// Content-Type, falling back to the URL path extension.
type Converter struct {
	policy *bluemonday.Policy
	sites  []config.SiteRule
}

func New(sites []config.SiteRule) *Converter {
	// UGC policy keeps document structure (headings, lists, tables, code)
	// while dropping scripts and event handlers. Element ids and classes are
	// kept so site selector rules can still find the content root.
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id", "class").Globally()

	return &Converter{policy: policy, sites: sites}
}

// Convert renders a fetched payload as Markdown. Unknown text types pass
// through as plain text; unknown binary types are an error.
func (c *Converter) Convert(data []byte, contentType, pageURL string) (*Result, error) {
	kind := detectKind(contentType, pageURL)
	switch kind {
	case "html":
		return c.convertHTML(data, pageURL)
	case "markdown":
		return convertMarkdownSource(data, pageURL), nil
	case "pdf":
		return convertPDF(data, pageURL)
	case "docx":
		return convertDOCX(data, pageURL)
	case "csv":
		return convertCSV(data, pageURL)
	case "text":
		return convertPlain(data, pageURL), nil
	default:
		return nil, fmt.Errorf("unsupported content type %q for %s", contentType, pageURL)
	}
}

func detectKind(contentType, pageURL string) string {
	mime := contentType
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.TrimSpace(strings.ToLower(mime))

	switch mime {
	case "text/html", "application/xhtml+xml":
		return "html"
	case "text/markdown":
		return "markdown"
	case "application/pdf":
		return "pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case "text/csv":
		return "csv"
	case "text/plain":
		// A markdown file served as text/plain still deserves structure.
		if hasExt(pageURL, ".md", ".markdown") {
			return "markdown"
		}
		return "text"
	}

	switch {
	case hasExt(pageURL, ".html", ".htm"):
		return "html"
	case hasExt(pageURL, ".md", ".markdown"):
		return "markdown"
	case hasExt(pageURL, ".pdf"):
		return "pdf"
	case hasExt(pageURL, ".docx"):
		return "docx"
	case hasExt(pageURL, ".csv"):
		return "csv"
	case hasExt(pageURL, ".txt"):
		return "text"
	case strings.HasPrefix(mime, "text/"):
		return "text"
	}
	return ""
}

func hasExt(pageURL string, exts ...string) bool {
	u, err := url.Parse(pageURL)
	p := pageURL
	if err == nil {
		p = u.Path
	}
	got := strings.ToLower(path.Ext(p))
	for _, ext := range exts {
		if got == ext {
			return true
		}
	}
	return false
}

// siteRule returns the extraction rule for the page's host, if configured.
func (c *Converter) siteRule(pageURL string) *config.SiteRule {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}
	for i := range c.sites {
		if strings.EqualFold(c.sites[i].Host, u.Hostname()) {
			return &c.sites[i]
		}
	}
	return nil
}

// titleFromURL is the last-resort document title.
func titleFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	p := pageURL
	if err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "/" || base == "." {
		return "Untitled"
	}
	return base
}
