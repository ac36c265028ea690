package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pickwise/internal/ui/input/types"
)

// ggTimeout is how long the first 'g' of "gg" waits for the second
const ggTimeout = 500 * time.Millisecond

type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
	now         func() time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{now: time.Now}
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
	key := msg.String()
	if key != "g" {
		m.lastKeyWasG = false
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyShiftUp:
		return []types.Action{types.ExtendSelectionAction{Direction: "up"}}, true

	case tea.KeyShiftDown:
		return []types.Action{types.ExtendSelectionAction{Direction: "down"}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyCtrlA:
		return []types.Action{types.SelectEverythingAction{Selected: true}}, true

	case tea.KeyEnter:
		return []types.Action{types.ConfirmAction{}}, true
	}

	switch key {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "J":
		return []types.Action{types.ExtendSelectionAction{Direction: "down"}}, true

	case "K":
		return []types.Action{types.ExtendSelectionAction{Direction: "up"}}, true

	case " ":
		if ctx.TotalItems() == 0 {
			return nil, true
		}
		return []types.Action{types.SelectAction{Index: -1}}, true

	case "a":
		return []types.Action{types.SelectAllAction{}}, true

	case "A":
		return []types.Action{types.DeselectAllAction{}}, true

	case "x":
		return []types.Action{types.SelectEverythingAction{Selected: false}}, true

	case "/", "F":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeFilter, Data: ctx.FilterQuery()}}, true

	case "n":
		return []types.Action{types.PageAction{Delta: 1}}, true

	case "p":
		return []types.Action{types.PageAction{Delta: -1}}, true

	case "w":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSaveView}}, true

	case "o":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeRestoreView}}, true

	case "r":
		return []types.Action{types.ReloadAction{}}, true

	case "s":
		return []types.Action{types.CycleSortAction{}}, true

	case "L":
		return []types.Action{types.ShowReportAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "esc":
		// Clear the visible selection if any, otherwise do nothing
		if ctx.HasSelection() {
			return []types.Action{types.DeselectAllAction{}}, true
		}
		return nil, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		now := m.now()
		if m.lastKeyWasG && now.Sub(m.lastGTime) < ggTimeout {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		// First g, wait for the next key
		m.lastKeyWasG = true
		m.lastGTime = now
		return nil, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true
	}

	return nil, false
}
