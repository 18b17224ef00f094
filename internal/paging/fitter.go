package paging

import "github.com/docrelay/docrelay/internal/content"

// FitResult is the token-fitted subset of one page window.
type FitResult[T any] struct {
	Items     []T
	TokenInfo content.TokenInfo
	Page      PageInfo
}

// FitItems pages into items and then greedily keeps entries from the window
// while their combined stringified cost stays within maxTokens, stopping at
// the first entry that would exceed it. Hitting the budget mid-page sets
// HasNext even on the final page: a token cut means there is more to fetch,
// which is distinct from genuinely reaching the end of the list.
func FitItems[T any](items []T, maxTokens int, stringify func(T) string, page, pageSize int) FitResult[T] {
	info := Calculate(len(items), page, pageSize)
	window := items[info.StartIndex:info.EndIndex]

	kept := make([]T, 0, len(window))
	used := 0
	truncated := false
	for _, item := range window {
		cost := content.EstimateTokens(stringify(item))
		if used+cost > maxTokens {
			truncated = true
			break
		}
		kept = append(kept, item)
		used += cost
	}

	info.HasNext = info.HasNext || truncated

	return FitResult[T]{
		Items: kept,
		TokenInfo: content.TokenInfo{
			TokenCount: used,
			Truncated:  truncated,
			MaxTokens:  maxTokens,
		},
		Page: info,
	}
}
