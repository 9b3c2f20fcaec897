package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Input         lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Index         lipgloss.Style
	HitTitle      lipgloss.Style
	HitURL        lipgloss.Style
	SelectionBg   lipgloss.Style
	PageButton    lipgloss.Style
	PageCurrent   lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Input: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Help:  lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Index:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		HitTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		HitURL:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		PageButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		PageCurrent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("208")).
			Bold(true).
			Padding(0, 1),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
