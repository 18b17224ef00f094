package paging

import (
	"strings"
	"testing"
)

func ident(s string) string { return s }

func TestFitItems_AllFit(t *testing.T) {
	items := []string{"aaaa", "bbbb", "cccc"}
	res := FitItems(items, 1000, ident, 1, 10)

	if len(res.Items) != 3 {
		t.Fatalf("expected all 3 items, got %d", len(res.Items))
	}
	if res.TokenInfo.Truncated {
		t.Error("expected no truncation")
	}
	if res.Page.HasNext {
		t.Error("expected no next page")
	}
	if res.TokenInfo.TokenCount != 3 {
		t.Errorf("expected 3 tokens used, got %d", res.TokenInfo.TokenCount)
	}
}

func TestFitItems_StopsAtBudget(t *testing.T) {
	// 40 chars each -> 10 tokens per item.
	items := []string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
	}
	res := FitItems(items, 25, ident, 1, 10)

	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items within budget, got %d", len(res.Items))
	}
	if !res.TokenInfo.Truncated {
		t.Error("expected truncation flag")
	}
	if res.TokenInfo.TokenCount != 20 {
		t.Errorf("expected 20 tokens used, got %d", res.TokenInfo.TokenCount)
	}
}

func TestFitItems_TruncationForcesHasNextOnLastPage(t *testing.T) {
	items := []string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
	}
	// Single page by count, but the budget cuts it.
	res := FitItems(items, 12, ident, 1, 10)

	if len(res.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(res.Items))
	}
	if !res.Page.HasNext {
		t.Error("token truncation within the last page must still signal more to fetch")
	}
}

func TestFitItems_SecondPageWindow(t *testing.T) {
	items := []string{"one", "two", "three", "four", "five"}
	res := FitItems(items, 1000, ident, 2, 2)

	if len(res.Items) != 2 || res.Items[0] != "three" || res.Items[1] != "four" {
		t.Fatalf("unexpected window: %v", res.Items)
	}
	if !res.Page.HasNext || !res.Page.HasPrev {
		t.Errorf("expected HasNext and HasPrev on a middle page, got %+v", res.Page)
	}
}

func TestFitItems_EmptyList(t *testing.T) {
	res := FitItems(nil, 100, ident, 1, 10)
	if len(res.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(res.Items))
	}
	if res.Page.HasNext || res.TokenInfo.Truncated {
		t.Error("empty input must not signal more content")
	}
}

func TestFitItems_StructItems(t *testing.T) {
	type result struct {
		title   string
		snippet string
	}
	items := []result{
		{title: "A", snippet: strings.Repeat("x", 100)},
		{title: "B", snippet: strings.Repeat("y", 100)},
	}
	res := FitItems(items, 30, func(r result) string { return r.title + "\n" + r.snippet }, 1, 10)

	if len(res.Items) != 1 {
		t.Fatalf("expected 1 struct item within budget, got %d", len(res.Items))
	}
	if res.Items[0].title != "A" {
		t.Errorf("expected first item kept, got %q", res.Items[0].title)
	}
}
