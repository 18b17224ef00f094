package content

import (
	"regexp"
	"strings"
)

// Section is a heading-delimited span of a Markdown document. Sections are
// derived on every call, never stored.
type Section struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Level      int    `json:"level"`
	TokenCount int    `json:"token_count"`
}

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	slugRunRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a section id from a heading title: lowercased, runs of
// non-alphanumeric characters collapsed to a single hyphen, edges trimmed.
// Distinct titles may slug to the same id; lookups take the first match.
func Slugify(title string) string {
	s := slugRunRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// ExtractSections scans a Markdown document and returns its sections in
// document order. A section's token cost covers the heading line and every
// line up to the next heading of any level. A document without headings
// yields an empty list. Lines like "#Title" (no space) are not headings and
// stay part of the preceding section's span.
func ExtractSections(doc string) []Section {
	var sections []Section
	var span strings.Builder

	flush := func() {
		if len(sections) > 0 {
			sections[len(sections)-1].TokenCount = EstimateTokens(span.String())
		}
		span.Reset()
	}

	for _, line := range strings.Split(doc, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			flush()
			title := strings.TrimSpace(m[2])
			sections = append(sections, Section{
				ID:    Slugify(title),
				Title: title,
				Level: len(m[1]),
			})
		}
		if len(sections) > 0 {
			span.WriteString(line)
			span.WriteByte('\n')
		}
	}
	flush()

	return sections
}

// SectionResult is the outcome of a single-section lookup. A missing section
// is not an error: Section is nil and Content empty, and the caller decides
// how to present it.
type SectionResult struct {
	Content   string
	Section   *Section
	TokenInfo TokenInfo
}

// ExtractSection pulls one section, with its nested subsections, out of a
// Markdown document. The identifier matches by generated id first; only when
// no id matches does a case-insensitive title-substring fallback apply. The
// first match in document order wins either way. Collection runs from the
// matched heading (level L) up to but excluding the next heading at level
// <= L, and the span is budget-truncated before return.
func ExtractSection(doc, identifier string, maxTokens int) SectionResult {
	lines := strings.Split(doc, "\n")

	start, level, title := findHeading(lines, identifier)
	if start < 0 {
		return SectionResult{TokenInfo: NewTokenInfo("", maxTokens, false)}
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if m := headingRe.FindStringSubmatch(lines[i]); m != nil && len(m[1]) <= level {
			end = i
			break
		}
	}

	span := strings.Join(lines[start:end], "\n")
	res := Truncate(span, maxTokens)

	return SectionResult{
		Content: res.Content,
		Section: &Section{
			ID:         Slugify(title),
			Title:      title,
			Level:      level,
			TokenCount: EstimateTokens(span),
		},
		TokenInfo: res.TokenInfo,
	}
}

// findHeading locates the target heading line. Exact slug equality is
// preferred over the substring fallback so that a loose match earlier in the
// document cannot shadow a precise one later.
func findHeading(lines []string, identifier string) (idx, level int, title string) {
	target := Slugify(identifier)
	needle := strings.ToLower(identifier)

	sub := -1
	subLevel := 0
	subTitle := ""
	for i, line := range lines {
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		t := strings.TrimSpace(m[2])
		if Slugify(t) == target {
			return i, len(m[1]), t
		}
		if sub < 0 && strings.Contains(strings.ToLower(t), needle) {
			sub, subLevel, subTitle = i, len(m[1]), t
		}
	}
	return sub, subLevel, subTitle
}
