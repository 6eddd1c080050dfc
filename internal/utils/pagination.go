package utils

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (page-1)*size inside int for every allowed size.
	MaxPage = math.MaxInt / MaxPageSize
)

// PageInfo is a normalized page/size pair.
type PageInfo struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

func NewPageInfo(page, size int) PageInfo {
	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case size > MaxPageSize:
		size = MaxPageSize
	case size < 1:
		size = DefaultPageSize
	}
	return PageInfo{Page: page, Size: size}
}

// Limit and Offset follow the usual skip/limit translation:
// offset = (page-1)*size, limit = size.
func (p PageInfo) Limit() int {
	return p.Size
}

func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.Size
}

// TotalPages is ceil(total/size), never less than 1.
func (p PageInfo) TotalPages(total int64) int {
	if p.Size <= 0 || total <= 0 {
		return 1
	}
	pages := int((total + int64(p.Size) - 1) / int64(p.Size))
	if pages < 1 {
		return 1
	}
	return pages
}

// PageSlice returns items [(page-1)*size, page*size) clipped to the slice.
func PageSlice[T any](items []T, p PageInfo) []T {
	start := p.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + p.Limit()
	if end > len(items) || end < start {
		end = len(items)
	}
	return items[start:end]
}
