package modes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hnsearch/internal/ui/input/types"
)

type NormalMode struct {
	keys types.KeyMap
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Query):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeQuery, Data: ctx.Query()}}, true

	case key.Matches(msg, m.keys.GotoPage):
		page, err := strconv.Atoi(msg.String())
		if err != nil {
			return nil, false
		}
		return []types.Action{types.ChangePageAction{Page: page}}, true

	case key.Matches(msg, m.keys.PrevPage):
		// floors at the first page
		if ctx.CurrentPage() <= 1 {
			return nil, true
		}
		return []types.Action{types.ChangePageAction{Page: ctx.CurrentPage() - 1}}, true

	case key.Matches(msg, m.keys.NextPage):
		if !ctx.HasNextPage() {
			return nil, true
		}
		return []types.Action{types.ChangePageAction{Page: ctx.CurrentPage() + 1}}, true

	case key.Matches(msg, m.keys.Up):
		if ctx.Cursor() <= 0 {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		if ctx.Cursor()+1 >= ctx.VisibleCount() {
			return nil, true
		}
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.Refresh):
		return []types.Action{types.RefreshAction{}}, true

	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
