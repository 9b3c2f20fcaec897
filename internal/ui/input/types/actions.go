package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up" or "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// ChangePageAction overwrites the selected page
type ChangePageAction struct {
	Page int
}

func (a ChangePageAction) Type() string { return "change_page" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitQueryAction struct {
	Query string
}

func (a SubmitQueryAction) Type() string { return "submit_query" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
