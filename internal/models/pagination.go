package models

// PageInfo describes the pagination window of a list response.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPageInfo builds a PageInfo for the given window and total row count.
func NewPageInfo(page, limit int, total int64) *PageInfo {
	info := &PageInfo{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		info.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return info
}
