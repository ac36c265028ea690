package selection

// exitPolicy decides what happens to change notifications when a suppressed
// section ends
type exitPolicy int

const (
	// flushPending fires one notification if the Selection changed
	flushPending exitPolicy = iota
	// dropPending discards any pending notification
	dropPending
	// forceNotify discards the Selection's pending notification and fires
	// exactly one engine notification instead
	forceNotify
)

// withChangesSuppressed runs fn with the Selection's change events disabled.
// Events are restored even if fn panics.
func (e *Engine[K, T]) withChangesSuppressed(exit exitPolicy, fn func()) {
	e.selection.SetChangeEvents(false, false)
	defer func() {
		e.selection.SetChangeEvents(true, exit != flushPending)
		if exit == forceNotify {
			e.handleSelectionChanged()
		}
	}()
	fn()
}
