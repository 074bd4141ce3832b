package book

import (
	"math"
	"strconv"
)

// PageSize is the number of books shown per listing page.
const PageSize = 10

// Window describes one page of a prefix listing.
type Window struct {
	Letter     string `json:"letter"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Total      int    `json:"total"`
	PageNumber int    `json:"page_number"`
	TotalPages int    `json:"total_pages"`
	PrevOffset int    `json:"prev_offset"`
	NextOffset int    `json:"next_offset"`
	FirstPage  bool   `json:"first_page"`
	LastPage   bool   `json:"last_page"`
}

// ComputeWindow derives the page metadata for a listing. NextOffset is not
// clamped to total: stepping past the last page yields an empty listing.
func ComputeWindow(letter string, offset, limit, total int) Window {
	if limit <= 0 {
		limit = PageSize
	}
	if offset < 0 {
		offset = 0
	}
	if total < 0 {
		total = 0
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	pageNumber := int(math.Ceil(math.Max(1, float64(offset)/float64(limit)+1)))

	return Window{
		Letter:     letter,
		Limit:      limit,
		Offset:     offset,
		Total:      total,
		PageNumber: pageNumber,
		TotalPages: totalPages,
		PrevOffset: max(0, offset-limit),
		NextOffset: offset + limit,
		FirstPage:  pageNumber <= 1,
		LastPage:   pageNumber >= totalPages,
	}
}

// ParseOffset reads the offset query value. Missing, non-numeric, negative
// and out of range values fall back to 0. Capping at MaxInt32 keeps
// offset + limit from overflowing.
func ParseOffset(raw string) int {
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 || offset > math.MaxInt32 {
		return 0
	}
	return offset
}
