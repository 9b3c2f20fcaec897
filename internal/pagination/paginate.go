// Package pagination computes the visible window of a result set and the
// page count for a fixed page size. Page numbers are 1-based.
package pagination

import (
	"errors"
	"fmt"
)

// PageSize is the number of records shown per page for the whole session
const PageSize = 8

// ErrInvalidPage is returned when selecting a page number below 1
var ErrInvalidPage = errors.New("page number must be positive")

// PageCount returns ceil(totalItems / pageSize), or 0 for an empty set
func PageCount(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// Window returns items[(page-1)*pageSize : page*pageSize] clipped to the
// available length. Out-of-range pages yield an empty, non-nil slice.
func Window[T any](items []T, pageNumber, pageSize int) []T {
	// Compare page indexes before multiplying so huge pages cannot overflow
	if pageNumber < 1 || pageSize <= 0 || pageNumber-1 >= PageCount(len(items), pageSize) {
		return []T{}
	}
	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ShowControls reports whether page controls should be rendered at all
func ShowControls(totalItems, pageSize int) bool {
	return PageCount(totalItems, pageSize) >= 2
}

// Pages returns the page numbers 1..PageCount for rendering page buttons
func Pages(totalItems, pageSize int) []int {
	n := PageCount(totalItems, pageSize)
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Selection is the currently selected page
type Selection struct {
	Page int
	Size int
}

// NewSelection starts at page 1 with the session page size
func NewSelection() Selection {
	return Selection{Page: 1, Size: PageSize}
}

// Select overwrites the page number. No upper bound is enforced; a page past
// the last one simply renders an empty window.
func (s *Selection) Select(page int) error {
	if page < 1 {
		return fmt.Errorf("select page %d: %w", page, ErrInvalidPage)
	}
	s.Page = page
	return nil
}

// Reset returns the selection to the first page
func (s *Selection) Reset() {
	s.Page = 1
}
