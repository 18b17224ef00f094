package content

import (
	"strings"
	"testing"
)

func TestEstimateTokens_Empty(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("expected 0 tokens for empty input, got %d", got)
	}
}

func TestEstimateTokens_Prose(t *testing.T) {
	// 12 chars at 4 chars/token.
	if got := EstimateTokens("hello world!"); got != 3 {
		t.Errorf("expected 3 tokens, got %d", got)
	}
}

func TestEstimateTokens_ProseRoundsUp(t *testing.T) {
	// 13 chars -> ceil(13/4) = 4.
	if got := EstimateTokens("hello worlds!"); got != 4 {
		t.Errorf("expected 4 tokens, got %d", got)
	}
}

func TestEstimateTokens_CodeDenserThanProse(t *testing.T) {
	code := "```\nx := compute(y)\n```"
	prose := strings.Repeat("a", len(code))

	codeTokens := EstimateTokens(code)
	proseTokens := EstimateTokens(prose)
	if codeTokens <= proseTokens {
		t.Errorf("expected code span (%d tokens) to cost more than prose of equal length (%d tokens)",
			codeTokens, proseTokens)
	}
}

func TestEstimateTokens_MixedProseAndCode(t *testing.T) {
	code := "```\ncode\n```" // 12 chars -> ceil(12/3) = 4
	prose := "abcdefgh"      // 8 chars -> ceil(8/4) = 2
	if got := EstimateTokens(prose + code); got != 6 {
		t.Errorf("expected 6 tokens, got %d", got)
	}
}

func TestEstimateTokens_UnclosedFenceCountsAsProse(t *testing.T) {
	// Without a closing fence there is no complete code span.
	text := "```\nabc"
	want := ceilDiv(len(text), ProseCharsPerToken)
	if got := EstimateTokens(text); got != want {
		t.Errorf("expected %d tokens, got %d", want, got)
	}
}

func TestEstimateTokens_MonotonicInLength(t *testing.T) {
	doc := "Some prose.\n\n```\ncode block contents\n```\n\nMore prose after the block.\n"
	prev := 0
	for i := 0; i <= len(doc); i += 7 {
		got := EstimateTokens(doc[:i])
		if got < prev {
			t.Fatalf("estimate dropped from %d to %d at prefix length %d", prev, got, i)
		}
		prev = got
	}
}

func TestNewTokenInfo(t *testing.T) {
	info := NewTokenInfo("hello world!", 100, true)
	if info.TokenCount != 3 {
		t.Errorf("expected token count 3, got %d", info.TokenCount)
	}
	if !info.Truncated {
		t.Error("expected truncated flag to carry through")
	}
	if info.MaxTokens != 100 {
		t.Errorf("expected max tokens 100, got %d", info.MaxTokens)
	}
}
