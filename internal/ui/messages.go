package ui

import (
	"pickwise/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pagerMsg contains the result of a pager session
type pagerMsg struct {
	err error
}

// clearStatusMsg clears the status line if it still shows the message it was
// scheduled for
type clearStatusMsg struct {
	seq int
}
