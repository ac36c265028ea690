package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"pickwise/internal/ui/input/types"
)

// FilterMode edits the filter query; the model re-filters on every keystroke
type FilterMode struct {
	TextInputMode
}

func NewFilterMode(ti *textinput.Model) *FilterMode {
	return &FilterMode{
		TextInputMode: NewTextInputMode(types.ModeFilter, "filter", "Filter: ", ti),
	}
}
