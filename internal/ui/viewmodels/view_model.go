package viewmodels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"hnsearch/internal/config"
	"hnsearch/internal/fetch"
	"hnsearch/internal/pagination"
	"hnsearch/internal/ui/state"
	"hnsearch/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state     *state.AppState
	config    *config.Config
	fetch     fetch.State
	width     int
	height    int
	help      help.Model
	keys      help.KeyMap
	inputMode string
	inputText string
	spinner   string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, cfg *config.Config) *ViewModel {
	return &ViewModel{
		state:  appState,
		config: cfg,
		help:   help.New(),
		keys:   emptyKeyMap{},
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetKeyMap sets the bindings rendered by the help line
func (vm *ViewModel) SetKeyMap(keys help.KeyMap) {
	vm.keys = keys
}

// SetFetchState sets the latest fetch machine snapshot
func (vm *ViewModel) SetFetchState(s fetch.State) {
	vm.fetch = s
}

// SetInput sets the current input mode name and the rendered text input
func (vm *ViewModel) SetInput(mode, text string) {
	vm.inputMode = mode
	vm.inputText = text
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	hits := vm.fetch.Data.Hits
	sel := vm.state.Page
	total := len(hits)

	window := pagination.Window(hits, sel.Page, sel.Size)
	offset := 0
	if len(window) > 0 {
		offset = (sel.Page - 1) * sel.Size
	}

	vm.help.ShowAll = vm.state.ShowHelp

	// Without a pending message the status bar describes the highlighted hit
	status := vm.state.StatusMessage
	if status == "" && vm.state.Cursor < len(window) {
		hit := window[vm.state.Cursor]
		status = fmt.Sprintf("%d of %d", offset+vm.state.Cursor+1, total)
		if hit.URL != "" {
			status += "  " + hit.URL
		}
	}

	return views.ViewState{
		Width:         vm.width,
		Height:        vm.height,
		Query:         vm.state.Query,
		InputMode:     vm.inputMode,
		TextInput:     vm.inputText,
		Loading:       vm.fetch.IsLoading,
		IsError:       vm.fetch.IsError,
		Spinner:       vm.spinner,
		Hits:          window,
		Offset:        offset,
		Cursor:        vm.state.Cursor,
		Page:          sel.Page,
		PageCount:     pagination.PageCount(total, sel.Size),
		Pages:         pagination.Pages(total, sel.Size),
		ShowControls:  pagination.ShowControls(total, sel.Size),
		TotalHits:     total,
		ShowURLs:      vm.config.UISettings.ShowURLs,
		StatusMessage: status,
		HelpView:      vm.help.View(vm.keys),
	}
}

type emptyKeyMap struct{}

func (emptyKeyMap) ShortHelp() []key.Binding  { return nil }
func (emptyKeyMap) FullHelp() [][]key.Binding { return nil }
