package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pickwise/internal/domain"
)

// ErrEmptyKey is returned when a catalog entry has no key
var ErrEmptyKey = errors.New("catalog item has empty key")

// document is the mapping form of a catalog file
type document struct {
	Items []domain.Item `yaml:"items"`
}

// Parse decodes a catalog. Both YAML and JSON are accepted, either as a
// top-level list of items or as a mapping with an "items" list.
func Parse(data []byte) ([]domain.Item, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return []domain.Item{}, nil
	}

	var items []domain.Item
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to decode catalog items: %w", err)
		}
	case yaml.MappingNode:
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode catalog items: %w", err)
		}
		items = doc.Items
	default:
		return nil, fmt.Errorf("failed to parse catalog: expected a list or an items mapping at line %d", node.Line)
	}

	for i := range items {
		items[i].Key = strings.TrimSpace(items[i].Key)
		if items[i].Key == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrEmptyKey, i)
		}
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

// LoadFile reads and parses a catalog file
func LoadFile(path string) ([]domain.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}
