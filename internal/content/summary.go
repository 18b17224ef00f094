package content

import (
	"fmt"
	"math"
	"strings"
)

const fallbackSummaryChars = 200

// SummaryResult is a compact preview of a document: lead paragraph, full
// outline with per-section costs, and a reading-time estimate in minutes.
type SummaryResult struct {
	Title             string    `json:"title"`
	Summary           string    `json:"summary"`
	Outline           []Section `json:"outline"`
	TotalTokens       int       `json:"total_tokens"`
	EstimatedReadTime int       `json:"estimated_read_time"`
	TokenInfo         TokenInfo `json:"token_info"`
}

// Summarize derives a one-paragraph summary of a Markdown document along
// with its outline. The token info is computed over the rendered composite
// (title, summary, outline listing), since that is what callers return.
func Summarize(doc, title string, maxTokens int) SummaryResult {
	summary := leadParagraph(doc)
	if summary == "" {
		summary = fallbackSummary(doc)
	}
	outline := ExtractSections(doc)

	var rendered strings.Builder
	fmt.Fprintf(&rendered, "# %s\n\n%s\n", title, summary)
	if len(outline) > 0 {
		rendered.WriteString("\nSections:\n")
		for _, s := range outline {
			indent := strings.Repeat("  ", s.Level-1)
			fmt.Fprintf(&rendered, "%s- %s (~%d tokens)\n", indent, s.Title, s.TokenCount)
		}
	}

	// chars/5 approximates words, 200 words/minute approximates reading speed.
	readTime := int(math.Ceil(float64(len(doc)) / 5.0 / 200.0))
	if readTime < 1 {
		readTime = 1
	}

	return SummaryResult{
		Title:             title,
		Summary:           summary,
		Outline:           outline,
		TotalTokens:       EstimateTokens(doc),
		EstimatedReadTime: readTime,
		TokenInfo:         NewTokenInfo(rendered.String(), maxTokens, false),
	}
}

// leadParagraph returns the first prose paragraph: the first run of lines
// that are not headings, not inside a code fence, and not list or table rows.
// The run ends at the next blank line, heading, fence, or list/table line
// once paragraph content has started.
func leadParagraph(doc string) string {
	var parts []string
	inFence := false
	started := false

	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			if started {
				break
			}
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if trimmed == "" || headingRe.MatchString(line) {
			if started {
				break
			}
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "|") {
			if started {
				break
			}
			continue
		}

		parts = append(parts, trimmed)
		started = true
	}

	return strings.Join(parts, " ")
}

// fallbackSummary covers documents with no recognizable paragraph, such as
// pure reference tables: strip headings, collapse whitespace, take a prefix.
func fallbackSummary(doc string) string {
	var kept []string
	for _, line := range strings.Split(doc, "\n") {
		if headingRe.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	collapsed := strings.Join(strings.Fields(strings.Join(kept, " ")), " ")

	runes := []rune(collapsed)
	if len(runes) > fallbackSummaryChars {
		return string(runes[:fallbackSummaryChars]) + "..."
	}
	return collapsed
}
