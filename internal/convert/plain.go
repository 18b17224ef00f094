package convert

import "strings"

// convertMarkdownSource passes Markdown through as-is; the title comes from
// the first heading when present.
func convertMarkdownSource(data []byte, pageURL string) *Result {
	markdown := normalizeNewlines(string(data))
	title := firstHeading(markdown)
	if title == "" {
		title = titleFromURL(pageURL)
	}
	return &Result{Markdown: markdown, Title: title}
}

// convertPlain wraps plain text under a single title heading.
func convertPlain(data []byte, pageURL string) *Result {
	title := titleFromURL(pageURL)
	body := strings.TrimSpace(normalizeNewlines(string(data)))

	markdown := "# " + title + "\n"
	if body != "" {
		markdown += "\n" + body + "\n"
	}
	return &Result{Markdown: markdown, Title: title}
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
