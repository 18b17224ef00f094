package content

import (
	"fmt"
	"strings"
)

const (
	// Upper bound on tokens reserved for the truncation notice.
	noticeReserveCap = 500
	// At most this many omitted sections are listed in the notice.
	noticeSectionCap = 10
)

// TruncateResult carries budget-shaped content plus the sections the cut
// dropped. RemainingSections is populated only when truncation occurred.
type TruncateResult struct {
	Content           string
	TokenInfo         TokenInfo
	RemainingSections []Section
}

// Truncate returns a prefix of doc whose estimated cost fits maxTokens,
// reserving a slice of the budget for a trailing notice that lists omitted
// sections. The cut never leaves a fenced code block unterminated: an open
// fence at the cut point is closed immediately. The final token count covers
// the whole returned string, notice included, so it may exceed maxTokens by
// up to the reserved allowance.
func Truncate(doc string, maxTokens int) TruncateResult {
	if EstimateTokens(doc) <= maxTokens {
		return TruncateResult{Content: doc, TokenInfo: NewTokenInfo(doc, maxTokens, false)}
	}

	reserved := maxTokens / 10
	if reserved > noticeReserveCap {
		reserved = noticeReserveCap
	}
	effectiveMax := maxTokens - reserved

	var out strings.Builder
	running := 0
	inFence := false
	for _, line := range strings.Split(doc, "\n") {
		cost := EstimateTokens(line + "\n")
		if running+cost > effectiveMax {
			break
		}
		out.WriteString(line)
		out.WriteByte('\n')
		running += cost
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
		}
	}
	if inFence {
		out.WriteString("```\n")
	}
	body := out.String()

	// Sections that survive the cut are found by re-extracting over the
	// truncated text, not by index arithmetic: the cut point may land
	// mid-section.
	kept := make(map[string]bool)
	for _, s := range ExtractSections(body) {
		kept[s.ID] = true
	}
	var remaining []Section
	for _, s := range ExtractSections(doc) {
		if !kept[s.ID] {
			remaining = append(remaining, s)
		}
	}

	content := body + renderNotice(remaining)
	return TruncateResult{
		Content:           content,
		TokenInfo:         NewTokenInfo(content, maxTokens, true),
		RemainingSections: remaining,
	}
}

func renderNotice(remaining []Section) string {
	var b strings.Builder
	b.WriteString("\n---\n\n*Content truncated to fit the token budget.*\n")
	if len(remaining) == 0 {
		return b.String()
	}

	b.WriteString("\nOmitted sections:\n")
	shown := remaining
	if len(shown) > noticeSectionCap {
		shown = shown[:noticeSectionCap]
	}
	for _, s := range shown {
		indent := strings.Repeat("  ", s.Level-1)
		fmt.Fprintf(&b, "%s- %s (~%d tokens)\n", indent, s.Title, s.TokenCount)
	}
	if extra := len(remaining) - noticeSectionCap; extra > 0 {
		fmt.Fprintf(&b, "...and %d more\n", extra)
	}
	b.WriteString("\nPass a section id to read one of these in full.\n")
	return b.String()
}
