package content

import (
	"strings"
	"testing"
)

func TestSummarize_FirstParagraph(t *testing.T) {
	doc := strings.Join([]string{
		"# Title",
		"",
		"- a list item first",
		"",
		"This is the lead paragraph",
		"split across two lines.",
		"",
		"Second paragraph is ignored.",
	}, "\n")

	res := Summarize(doc, "Title", 1000)
	want := "This is the lead paragraph split across two lines."
	if res.Summary != want {
		t.Errorf("summary = %q, want %q", res.Summary, want)
	}
}

func TestSummarize_SkipsCodeAndTables(t *testing.T) {
	doc := strings.Join([]string{
		"# Ref",
		"",
		"```",
		"code that looks like prose",
		"```",
		"",
		"| col | col |",
		"| --- | --- |",
		"",
		"Actual prose lives here.",
	}, "\n")

	res := Summarize(doc, "Ref", 1000)
	if res.Summary != "Actual prose lives here." {
		t.Errorf("summary = %q", res.Summary)
	}
}

func TestSummarize_FallbackWhenNoParagraph(t *testing.T) {
	doc := strings.Join([]string{
		"# Only Lists",
		"",
		"- " + strings.Repeat("item ", 60),
		"- another item",
	}, "\n")

	res := Summarize(doc, "Only Lists", 1000)
	if res.Summary == "" {
		t.Fatal("expected fallback summary, got empty")
	}
	if !strings.HasSuffix(res.Summary, "...") {
		t.Errorf("expected truncated fallback with ellipsis, got %q", res.Summary)
	}
	if len([]rune(strings.TrimSuffix(res.Summary, "..."))) > fallbackSummaryChars {
		t.Errorf("fallback longer than %d chars: %q", fallbackSummaryChars, res.Summary)
	}
	if strings.Contains(res.Summary, "# Only Lists") {
		t.Error("headings must be stripped from the fallback")
	}
}

func TestSummarize_OutlineAndReadTime(t *testing.T) {
	doc := "# One\n\nlead paragraph.\n\n## Two\n\nbody\n"
	res := Summarize(doc, "Doc", 1000)

	if len(res.Outline) != 2 {
		t.Fatalf("expected 2 outline entries, got %d", len(res.Outline))
	}
	if res.Outline[0].ID != "one" || res.Outline[1].ID != "two" {
		t.Errorf("unexpected outline ids: %q, %q", res.Outline[0].ID, res.Outline[1].ID)
	}
	if res.EstimatedReadTime != 1 {
		t.Errorf("expected minimum read time of 1 minute, got %d", res.EstimatedReadTime)
	}
	if res.TotalTokens != EstimateTokens(doc) {
		t.Errorf("total tokens %d != document estimate %d", res.TotalTokens, EstimateTokens(doc))
	}
}

func TestSummarize_ReadTimeScalesWithLength(t *testing.T) {
	// 1000 chars/minute at 5 chars/word and 200 words/minute.
	doc := "lead paragraph. " + strings.Repeat("w", 5000)
	res := Summarize(doc, "Long", 1000)
	if res.EstimatedReadTime < 5 {
		t.Errorf("expected several minutes of reading time, got %d", res.EstimatedReadTime)
	}
}

func TestSummarize_TokenInfoCoversComposite(t *testing.T) {
	doc := "# A\n\nlead.\n\n## B\n\nbody\n"
	res := Summarize(doc, "A", 1000)
	// The composite rendering includes the outline listing, so its cost is
	// larger than the bare summary's.
	if res.TokenInfo.TokenCount <= EstimateTokens(res.Summary) {
		t.Errorf("composite cost %d should exceed bare summary cost %d",
			res.TokenInfo.TokenCount, EstimateTokens(res.Summary))
	}
	if res.TokenInfo.Truncated {
		t.Error("summaries are not truncated content")
	}
}
