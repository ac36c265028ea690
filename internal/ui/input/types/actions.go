package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// PageAction moves between pages of the visible set
type PageAction struct {
	Delta int
}

func (a PageAction) Type() string { return "page" }

// Selection actions
type SelectAction struct {
	Index int // -1 for current
}

func (a SelectAction) Type() string { return "select" }

// ExtendSelectionAction moves the cursor and selects from the anchor to it
type ExtendSelectionAction struct {
	Direction string // "up" or "down"
}

func (a ExtendSelectionAction) Type() string { return "extend_selection" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// SelectEverythingAction selects or clears the whole catalog, hidden items included
type SelectEverythingAction struct {
	Selected bool
}

func (a SelectEverythingAction) Type() string { return "select_everything" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // Optional initial text for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
	Mode Mode
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct {
	Mode Mode
}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Command actions
type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

type ShowReportAction struct{}

func (a ShowReportAction) Type() string { return "show_report" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// ConfirmAction ends the session and hands the selection to the caller
type ConfirmAction struct{}

func (a ConfirmAction) Type() string { return "confirm" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
