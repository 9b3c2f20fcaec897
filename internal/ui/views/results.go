package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hnsearch/internal/domain"
)

// HitRenderer handles rendering of a single search result
type HitRenderer struct {
	styles *Styles
}

// NewHitRenderer creates a new hit renderer
func NewHitRenderer(styles *Styles) *HitRenderer {
	return &HitRenderer{styles: styles}
}

// RenderHit renders one record as "  n. title  url"
func (r *HitRenderer) RenderHit(hit domain.Record, number int, isSelected, showURL bool, width int) string {
	indexStyle := r.styles.Index
	titleStyle := r.styles.HitTitle
	urlStyle := r.styles.HitURL
	if isSelected {
		bg := r.styles.SelectionBg.GetBackground()
		indexStyle = indexStyle.Background(bg)
		titleStyle = titleStyle.Background(bg).Bold(true)
		urlStyle = urlStyle.Background(bg)
	}

	marker := "  "
	if isSelected {
		marker = "> "
	}

	line := indexStyle.Render(fmt.Sprintf("%s%2d. ", marker, number)) + titleStyle.Render(hit.DisplayTitle())
	if showURL && hit.URL != "" {
		line += indexStyle.Render("  ") + urlStyle.Render(hit.URL)
	}

	if width > 0 {
		line = lipgloss.NewStyle().MaxWidth(width - 4).Render(line)
	}
	return line
}

// PaginationRenderer renders the numbered page buttons
type PaginationRenderer struct {
	styles *Styles
}

// NewPaginationRenderer creates a new pagination renderer
func NewPaginationRenderer(styles *Styles) *PaginationRenderer {
	return &PaginationRenderer{styles: styles}
}

// Render renders one button per page with the selected page highlighted
func (r *PaginationRenderer) Render(pages []int, current int) string {
	buttons := make([]string, 0, len(pages))
	for _, p := range pages {
		label := fmt.Sprintf("%d", p)
		if p == current {
			buttons = append(buttons, r.styles.PageCurrent.Render(label))
		} else {
			buttons = append(buttons, r.styles.PageButton.Render(label))
		}
	}
	return strings.Join(buttons, " ")
}
