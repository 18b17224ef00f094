package content

import "regexp"

// Chars-per-token ratios for the estimation heuristic. Code tokenizes denser
// than prose, so it divides by a smaller ratio.
const (
	ProseCharsPerToken = 4
	CodeCharsPerToken  = 3
)

var fencedSpanRe = regexp.MustCompile("(?s)```.*?```")

// EstimateTokens gives a rough token count using chars-per-token heuristics,
// costing fenced code spans separately from prose. This is intentionally
// simple — exact tokenization is not required for budgeting, only
// monotonicity in length.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	total := 0
	proseChars := len(text)
	for _, span := range fencedSpanRe.FindAllString(text, -1) {
		total += ceilDiv(len(span), CodeCharsPerToken)
		proseChars -= len(span)
	}
	return total + ceilDiv(proseChars, ProseCharsPerToken)
}

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n + d - 1) / d
}

// TokenInfo reports the estimated cost of a returned payload. TokenCount
// always covers the content actually returned, never the pre-truncation text.
type TokenInfo struct {
	TokenCount int  `json:"token_count"`
	Truncated  bool `json:"truncated"`
	MaxTokens  int  `json:"max_tokens"`
}

// NewTokenInfo estimates content and records the budget it was shaped under.
func NewTokenInfo(content string, maxTokens int, truncated bool) TokenInfo {
	return TokenInfo{
		TokenCount: EstimateTokens(content),
		Truncated:  truncated,
		MaxTokens:  maxTokens,
	}
}
