package selection

import "go.uber.org/zap"

// Mode controls how many items a Selection may hold at once
type Mode int

const (
	ModeMultiple Mode = iota
	ModeSingle
	ModeNone
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeMultiple:
		return "multiple"
	case ModeSingle:
		return "single"
	case ModeNone:
		return "none"
	default:
		return "unknown"
	}
}

// Options configures a Selection or an Engine. The zero value is a
// multi-select with every item selectable and no logging.
type Options[T any] struct {
	Mode Mode

	// CanSelect reports whether the visible item at index may be selected.
	// Deselection is always allowed.
	CanSelect func(item T, index int) bool

	// Logger receives developer diagnostics at debug level.
	Logger *zap.Logger
}

func (o Options[T]) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options[T]) canSelect(item T, index int) bool {
	if o.CanSelect == nil {
		return true
	}
	return o.CanSelect(item, index)
}
