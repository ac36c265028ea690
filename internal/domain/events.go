package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogLoadRequested EventType = "CatalogLoadRequested"
	EventCatalogLoaded        EventType = "CatalogLoaded"
	EventSelectionChanged     EventType = "SelectionChanged"
	EventViewSaved            EventType = "ViewSaved"
	EventViewRestored         EventType = "ViewRestored"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
	EventError                EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogLoadRequestedEvent asks for the catalog at Source to be (re)loaded
type CatalogLoadRequestedEvent struct {
	Source string
}

func (e CatalogLoadRequestedEvent) Type() EventType { return EventCatalogLoadRequested }

// CatalogLoadedEvent carries a freshly loaded universe
type CatalogLoadedEvent struct {
	Items  []Item
	Source string
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// SelectionChangedEvent is emitted when the universe-wide selection changes
type SelectionChangedEvent struct {
	Count int // selected items across the universe
	Total int // items in the universe
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ViewSavedEvent is emitted after a selection is stored as a named view
type ViewSavedEvent struct {
	Name string
}

func (e ViewSavedEvent) Type() EventType { return EventViewSaved }

// ViewRestoredEvent is emitted after a named view is applied
type ViewRestoredEvent struct {
	Name string
	Keys []string
}

func (e ViewRestoredEvent) Type() EventType { return EventViewRestored }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	ItemsFile string
	Views     int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
