package domain

// Item is one selectable entry in a catalog
type Item struct {
	Key         string   `yaml:"key" json:"key"`
	Label       string   `yaml:"label" json:"label,omitempty"`
	Group       string   `yaml:"group" json:"group,omitempty"`
	Tags        []string `yaml:"tags" json:"tags,omitempty"`
	Description string   `yaml:"description" json:"description,omitempty"`
}

// DisplayName returns the label, falling back to the key
func (i Item) DisplayName() string {
	if i.Label != "" {
		return i.Label
	}
	return i.Key
}

// ItemKey returns the identity of an item
func ItemKey(i Item) string {
	return i.Key
}

// Keys returns the keys of items in order
func Keys(items []Item) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}
	return keys
}

// View is a named, saved selection
type View struct {
	Name   string
	Keys   []string
	Filter string
}
