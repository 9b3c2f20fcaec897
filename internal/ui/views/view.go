package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hnsearch/internal/domain"
)

// ErrorNotice is shown whenever the last fetch failed
const ErrorNotice = "something went wrong ..."

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Query         string
	InputMode     string // empty in normal mode
	TextInput     string
	Loading       bool
	IsError       bool
	Spinner       string
	Hits          []domain.Record // visible window only
	Offset        int             // absolute index of Hits[0]
	Cursor        int
	Page          int
	PageCount     int
	Pages         []int
	ShowControls  bool
	TotalHits     int
	ShowURLs      bool
	StatusMessage string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	hitRender   *HitRenderer
	pagerRender *PaginationRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		hitRender:   NewHitRenderer(styles),
		pagerRender: NewPaginationRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	// Title with loading indicator on the right
	logo := r.styles.Title.Render("hnsearch")
	titleLine := logo
	if state.Loading {
		indicator := r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading", state.Spinner))
		termWidth := state.Width
		if termWidth <= 0 {
			termWidth = 80
		}
		padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(indicator)
		if padding < 2 {
			padding = 2
		}
		titleLine = logo + strings.Repeat(" ", padding) + indicator
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	// Query line: the live input while editing, the submitted query otherwise
	if state.InputMode != "" {
		content.WriteString(r.styles.Input.Render(state.TextInput))
	} else {
		content.WriteString(r.styles.Dim.Render(fmt.Sprintf("Query: %s", state.Query)))
	}
	content.WriteString("\n\n")

	if state.IsError {
		content.WriteString(r.styles.StatusError.Render(ErrorNotice))
		content.WriteString("\n\n")
	}

	// Main content
	switch {
	case state.Loading && len(state.Hits) == 0:
		content.WriteString(r.styles.Dim.Render("Loading ..."))
	case state.TotalHits == 0:
		content.WriteString(r.styles.Dim.Render("No results."))
	case len(state.Hits) == 0:
		content.WriteString(r.styles.Dim.Render(fmt.Sprintf("Nothing on page %d.", state.Page)))
	default:
		content.WriteString(r.renderHitList(state))
	}

	if state.ShowControls {
		content.WriteString("\n\n")
		content.WriteString(r.pagerRender.Render(state.Pages, state.Page))
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	if state.HelpView != "" {
		content.WriteString("\n\n")
		content.WriteString(state.HelpView)
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderHitList renders the visible window of records
func (r *Renderer) renderHitList(state ViewState) string {
	lines := make([]string, 0, len(state.Hits))
	for i, hit := range state.Hits {
		lines = append(lines, r.hitRender.RenderHit(hit, state.Offset+i+1, i == state.Cursor, state.ShowURLs, state.Width))
	}
	return strings.Join(lines, "\n")
}
