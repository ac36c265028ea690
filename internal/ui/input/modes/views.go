package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"pickwise/internal/ui/input/types"
)

// SaveViewMode asks for the name to store the current selection under
type SaveViewMode struct {
	TextInputMode
}

func NewSaveViewMode(ti *textinput.Model) *SaveViewMode {
	return &SaveViewMode{
		TextInputMode: NewTextInputMode(types.ModeSaveView, "save-view", "Save view as: ", ti),
	}
}

// RestoreViewMode asks for the name of a saved view to restore
type RestoreViewMode struct {
	TextInputMode
}

func NewRestoreViewMode(ti *textinput.Model) *RestoreViewMode {
	return &RestoreViewMode{
		TextInputMode: NewTextInputMode(types.ModeRestoreView, "restore-view", "Restore view: ", ti),
	}
}
