package input

import (
	"hnsearch/internal/domain"
	"hnsearch/internal/pagination"
	"hnsearch/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
	Data  domain.ResultSet
}

// CurrentPage returns the selected page number
func (c *ModelContext) CurrentPage() int {
	return c.State.Page.Page
}

// HasNextPage reports whether a page after the selected one holds records
func (c *ModelContext) HasNextPage() bool {
	return c.State.Page.Page < pagination.PageCount(len(c.Data.Hits), c.State.Page.Size)
}

// Cursor returns the highlighted row
func (c *ModelContext) Cursor() int {
	return c.State.Cursor
}

// VisibleCount returns the number of records in the visible window
func (c *ModelContext) VisibleCount() int {
	return len(pagination.Window(c.Data.Hits, c.State.Page.Page, c.State.Page.Size))
}

// Query returns the last submitted query
func (c *ModelContext) Query() string {
	return c.State.Query
}
