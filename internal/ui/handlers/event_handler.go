package handlers

import (
	"fmt"

	"go.uber.org/zap"

	"pickwise/internal/domain"
	"pickwise/internal/eventbus"
	"pickwise/internal/ui/services/selection"
)

// Outcome describes what an event did to the UI
type Outcome struct {
	Handled bool
	Loaded  bool // the universe was replaced
	Status  string
	IsError bool
}

// EventHandler applies domain events to the selection engine
type EventHandler struct {
	engine         *selection.Engine[string, domain.Item]
	refreshVisible func()
	logger         *zap.Logger
}

// NewEventHandler creates a new event handler. refreshVisible is called after
// the universe changes so the host can recompute its visible set.
func NewEventHandler(engine *selection.Engine[string, domain.Item], refreshVisible func(), logger *zap.Logger) *EventHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{
		engine:         engine,
		refreshVisible: refreshVisible,
		logger:         logger,
	}
}

// HandleEvent processes one domain event
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) Outcome {
	switch e := event.(type) {
	case eventbus.CatalogLoadedEvent:
		before := h.engine.AllSelectedCount()
		h.engine.SetAllItems(e.Items)
		h.refreshVisible()

		total := len(h.engine.AllItems())
		h.logger.Debug("universe replaced",
			zap.String("source", e.Source),
			zap.Int("items", total),
			zap.Int("selectedBefore", before),
			zap.Int("selectedAfter", h.engine.AllSelectedCount()))

		return Outcome{Handled: true, Loaded: true, Status: fmt.Sprintf("Loaded %d items", total)}

	case eventbus.ErrorEvent:
		if e.Err != nil {
			h.logger.Warn(e.Message, zap.Error(e.Err))
		}
		return Outcome{Handled: true, Status: e.Message, IsError: true}
	}

	return Outcome{}
}
