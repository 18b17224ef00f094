// Package paging computes page windows over ordered item lists and fits
// page contents into token budgets.
package paging

// PageInfo describes one window into an ordered item list.
type PageInfo struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	TotalItems int  `json:"total_items"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	StartIndex int  `json:"start_index"`
	EndIndex   int  `json:"end_index"`
}

// Calculate clamps the requested page into range and derives slice bounds.
// Out-of-range pages never error: page 999 of a 10-page set is page 10, and
// page 1 of zero items is an empty window with TotalPages 0.
func Calculate(totalItems, page, pageSize int) PageInfo {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (totalItems + pageSize - 1) / pageSize

	maxPage := totalPages
	if maxPage < 1 {
		maxPage = 1
	}
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	start := (page - 1) * pageSize
	if start > totalItems {
		start = totalItems
	}
	end := page * pageSize
	if end > totalItems {
		end = totalItems
	}

	return PageInfo{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: totalItems,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
		StartIndex: start,
		EndIndex:   end,
	}
}
