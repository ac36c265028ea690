package input

import (
	"pickwise/internal/domain"
	"pickwise/internal/ui/logic"
	"pickwise/internal/ui/services/selection"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Engine    *selection.Engine[string, domain.Item]
	Navigator *logic.Navigator
	Filter    string
}

// CurrentIndex returns the cursor row within the visible set
func (c *ModelContext) CurrentIndex() int {
	return c.Navigator.GetSelectedIndex()
}

// TotalItems returns the number of visible items
func (c *ModelContext) TotalItems() int {
	return len(c.Engine.Items())
}

// HasSelection returns true if any visible items are selected
func (c *ModelContext) HasSelection() bool {
	return c.Engine.SelectedCount() > 0
}

// SelectedCount returns the number of selected visible items
func (c *ModelContext) SelectedCount() int {
	return c.Engine.SelectedCount()
}

// CurrentKey returns the key under the cursor, or "" when the list is empty
func (c *ModelContext) CurrentKey() string {
	items := c.Engine.Items()
	idx := c.CurrentIndex()
	if idx < 0 || idx >= len(items) {
		return ""
	}
	return items[idx].Key
}

// FilterQuery returns the active filter
func (c *ModelContext) FilterQuery() string {
	return c.Filter
}
