package state

import (
	"hnsearch/internal/pagination"
)

// AppState contains the UI-owned application state. The fetch state lives in
// the fetch machine; everything here is mutated only from Update.
type AppState struct {
	// Search state
	Query string // last submitted query text

	// Selection state
	Page   pagination.Selection // selected page of the result list
	Cursor int                  // highlighted row within the visible window

	// UI state
	ShowHelp      bool
	InPager       bool   // ov owns the terminal
	StatusMessage string // status bar message
}

// NewAppState creates a new application state
func NewAppState(query string) *AppState {
	return &AppState{
		Query: query,
		Page:  pagination.NewSelection(),
	}
}

// SelectPage overwrites the page selection and returns the previous page.
// The cursor goes back to the top of the new window.
func (s *AppState) SelectPage(page int) (int, error) {
	from := s.Page.Page
	if err := s.Page.Select(page); err != nil {
		return from, err
	}
	s.Cursor = 0
	return from, nil
}

// ResetPage returns to the first page
func (s *AppState) ResetPage() {
	s.Page.Reset()
	s.Cursor = 0
}

// MoveCursor moves the highlight by delta, clamped to the visible rows
func (s *AppState) MoveCursor(delta, visible int) {
	if visible <= 0 {
		s.Cursor = 0
		return
	}
	s.Cursor += delta
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor > visible-1 {
		s.Cursor = visible - 1
	}
}

// ClampCursor keeps the cursor inside a window that may have shrunk
func (s *AppState) ClampCursor(visible int) {
	s.MoveCursor(0, visible)
}
