package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickwise/internal/ui/input/types"
)

type fakeContext struct {
	index, total, selected int
	key, filter            string
}

func (c fakeContext) CurrentIndex() int   { return c.index }
func (c fakeContext) TotalItems() int     { return c.total }
func (c fakeContext) HasSelection() bool  { return c.selected > 0 }
func (c fakeContext) SelectedCount() int  { return c.selected }
func (c fakeContext) CurrentKey() string  { return c.key }
func (c fakeContext) FilterQuery() string { return c.filter }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHandler_NormalKeys(t *testing.T) {
	ctx := fakeContext{total: 3, selected: 1}
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want types.Action
	}{
		{"down", runes("j"), types.NavigateAction{Direction: "down"}},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, types.NavigateAction{Direction: "up"}},
		{"toggle", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, types.SelectAction{Index: -1}},
		{"extend", tea.KeyMsg{Type: tea.KeyShiftDown}, types.ExtendSelectionAction{Direction: "down"}},
		{"extend J", runes("K"), types.ExtendSelectionAction{Direction: "up"}},
		{"select all", runes("a"), types.SelectAllAction{}},
		{"clear shown", runes("A"), types.DeselectAllAction{}},
		{"select everything", tea.KeyMsg{Type: tea.KeyCtrlA}, types.SelectEverythingAction{Selected: true}},
		{"clear everything", runes("x"), types.SelectEverythingAction{Selected: false}},
		{"next page", runes("n"), types.PageAction{Delta: 1}},
		{"prev page", runes("p"), types.PageAction{Delta: -1}},
		{"reload", runes("r"), types.ReloadAction{}},
		{"sort", runes("s"), types.CycleSortAction{}},
		{"report", runes("L"), types.ShowReportAction{}},
		{"help", runes("?"), types.ToggleHelpAction{}},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, types.ConfirmAction{}},
		{"esc clears", tea.KeyMsg{Type: tea.KeyEsc}, types.DeselectAllAction{}},
		{"quit", runes("q"), types.QuitAction{}},
		{"force quit", tea.KeyMsg{Type: tea.KeyCtrlC}, types.QuitAction{Force: true}},
		{"bottom", runes("G"), types.NavigateAction{Direction: "end"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			actions, _ := h.HandleKey(tt.msg, ctx)
			require.Len(t, actions, 1)
			assert.Equal(t, tt.want, actions[0])
			assert.Equal(t, types.ModeNormal, h.CurrentMode())
		})
	}
}

func TestHandler_UnknownKeyIgnored(t *testing.T) {
	h := New()
	actions, cmd := h.HandleKey(runes("z"), fakeContext{})
	assert.Empty(t, actions)
	assert.Nil(t, cmd)
}

func TestHandler_SpaceOnEmptyList(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, fakeContext{})
	assert.Empty(t, actions)
}

func TestHandler_GG(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(runes("g"), fakeContext{})
	assert.Empty(t, actions)
	actions, _ = h.HandleKey(runes("g"), fakeContext{})
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)

	// Another key in between breaks the sequence
	h.HandleKey(runes("g"), fakeContext{})
	h.HandleKey(runes("j"), fakeContext{})
	actions, _ = h.HandleKey(runes("g"), fakeContext{})
	assert.Empty(t, actions)
}

func TestHandler_FilterMode(t *testing.T) {
	h := New()
	ctx := fakeContext{filter: "web"}

	_, cmd := h.HandleKey(runes("/"), ctx)
	assert.NotNil(t, cmd, "cursor blink")
	require.Equal(t, types.ModeFilter, h.CurrentMode())
	assert.Equal(t, "filter", h.ModeName())
	assert.Equal(t, "Filter: ", h.Prompt())
	require.NotNil(t, h.TextInput())
	assert.Equal(t, "web", h.TextInput().Value(), "prefilled with the active filter")

	actions, _ := h.HandleKey(runes("-1"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "web-1", Mode: types.ModeFilter}}, actions)

	// Normal-mode keys are text here
	actions, _ = h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "web-1q", Mode: types.ModeFilter}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "web-1q", Mode: types.ModeFilter}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
	assert.Empty(t, h.Prompt())
}

func TestHandler_CancelViewMode(t *testing.T) {
	h := New()
	h.HandleKey(runes("w"), fakeContext{})
	require.Equal(t, types.ModeSaveView, h.CurrentMode())
	h.HandleKey(runes("ops"), fakeContext{})

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, fakeContext{})
	assert.Equal(t, []types.Action{types.CancelTextAction{Mode: types.ModeSaveView}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	h.HandleKey(runes("o"), fakeContext{})
	assert.Equal(t, types.ModeRestoreView, h.CurrentMode())
	assert.Empty(t, h.TextInput().Value(), "view modes start empty")

	h.Reset()
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}
