package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"hnsearch/internal/config"
	"hnsearch/internal/eventbus"
	"hnsearch/internal/fetch"
	"hnsearch/internal/logging"
	"hnsearch/internal/pagination"
	"hnsearch/internal/search"
	"hnsearch/internal/ui/input"
	inputtypes "hnsearch/internal/ui/input/types"
	"hnsearch/internal/ui/state"
	"hnsearch/internal/ui/viewmodels"
	"hnsearch/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	state   *state.AppState
	machine *fetch.Machine

	// UI-specific state not in AppState
	width   int
	height  int
	spinner spinner.Model

	// Handlers
	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	pager        *ResultsPager

	logger zerolog.Logger
}

// NewModel creates a new UI model around a fetch machine. The machine's
// current target is fetched when the program starts.
func NewModel(cfg *config.Config, machine *fetch.Machine, bus eventbus.EventBus) *Model {
	appState := state.NewAppState(cfg.Search.DefaultQuery)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		machine:      machine,
		spinner:      sp,
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		pager:        NewResultsPager(),
		logger:       logging.NewLogger("ui"),
	}

	m.viewModel = viewmodels.NewViewModel(appState, cfg)
	m.viewModel.SetKeyMap(m.inputHandler.KeyMap())

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	if p != nil {
		m.pager.SetProgram(p)
	}
}

// State exposes the application state, for tests and the e2e driver
func (m *Model) State() *state.AppState {
	return m.state
}

// Init fires the initial fetch and starts the spinner
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.machine.Start(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.state.InPager {
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	case fetch.ResultMsg:
		m.handleResult(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		m.state.InPager = false
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Msg("Results pager failed")
			m.state.StatusMessage = fmt.Sprintf("pager: %v", msg.err)
		}
		return m, nil
	}

	// Cursor blink and other text input messages
	return m, m.inputHandler.Update(msg)
}

// View renders the model
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetFetchState(m.machine.State())
	m.viewModel.SetSpinner(m.spinner.View())

	if ti := m.inputHandler.TextInput(); ti != nil {
		m.viewModel.SetInput(m.inputHandler.ModeName(), m.inputHandler.Prompt()+ti.View())
	} else {
		m.viewModel.SetInput("", "")
	}

	return m.renderer.Render(m.viewModel.BuildViewState())
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{State: m.state, Data: m.machine.State().Data}
}

func (m *Model) visibleCount() int {
	return m.inputContext().VisibleCount()
}

// handleResult applies a fetch outcome and keeps the page selection and
// cursor consistent with the data now shown
func (m *Model) handleResult(msg fetch.ResultMsg) {
	applied, err := m.machine.Resolve(msg)
	if err != nil {
		m.logger.Error().Err(err).Uint64("generation", msg.Generation).Msg("Failed to apply fetch result")
		return
	}
	if !applied {
		return
	}

	latest := msg.Generation == m.machine.Generation()
	if msg.Err == nil && latest && m.config.UISettings.ResetPageOnSearch {
		from := m.state.Page.Page
		m.state.ResetPage()
		if from != m.state.Page.Page {
			m.publish(eventbus.PageChangedEvent{From: from, To: m.state.Page.Page})
		}
	}
	if msg.Err == nil {
		m.state.StatusMessage = ""
	}
	m.state.ClampCursor(m.visibleCount())
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	m.logger.Debug().Str("action", action.Type()).Msg("processAction")

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.state.MoveCursor(-1, m.visibleCount())
		case "down":
			m.state.MoveCursor(1, m.visibleCount())
		}

	case inputtypes.ChangePageAction:
		from, err := m.state.SelectPage(a.Page)
		if err != nil {
			m.state.StatusMessage = err.Error()
			return nil
		}
		if from != a.Page {
			m.publish(eventbus.PageChangedEvent{From: from, To: a.Page})
		}

	case inputtypes.SubmitQueryAction:
		m.state.Query = a.Query
		m.state.StatusMessage = ""
		return m.machine.SetTarget(search.BuildURL(m.config.Search.Endpoint, a.Query))

	case inputtypes.RefreshAction:
		return m.machine.SetTarget(m.machine.Target())

	case inputtypes.CancelTextAction, inputtypes.UpdateTextAction:
		// the text input owns the draft

	case inputtypes.OpenPagerAction:
		data := m.machine.State().Data
		if len(data.Hits) == 0 {
			m.state.StatusMessage = "No results to view"
			return nil
		}
		m.state.InPager = true
		return m.openPager(RenderResults(m.state.Query, data))

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.QuitAction:
		// q closes the full help first; ctrl+c always quits
		if !a.Force && m.state.ShowHelp {
			m.state.ShowHelp = false
			return nil
		}
		return tea.Quit
	}

	return nil
}

// openPager returns a command that shows content in the ov pager
func (m *Model) openPager(content string) tea.Cmd {
	pager := m.pager
	return func() tea.Msg {
		return pagerMsg{err: pager.Show(content)}
	}
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.bus != nil {
		m.bus.Publish(event)
	}
}

// PageCount returns the number of pages of the current data
func (m *Model) PageCount() int {
	return pagination.PageCount(len(m.machine.State().Data.Hits), m.state.Page.Size)
}
