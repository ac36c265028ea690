//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default catalog used by most tests
var defaultItems = []fixtureItem{
	{Key: "web-1", Label: "Web One", Group: "prod"},
	{Key: "db-1", Label: "Primary DB", Group: "prod"},
	{Key: "web-2", Group: "staging"},
	{Key: "tools"},
}

type fixtureItem struct {
	Key   string
	Label string
	Group string
}

// CreateTestWorkspace creates a temp dir holding a catalog and a config file
func (tf *TUITestFramework) CreateTestWorkspace(items ...fixtureItem) (string, error) {
	if len(items) == 0 {
		items = defaultItems
	}

	workspace, err := os.MkdirTemp("", "pickwise-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = workspace
	tf.items = filepath.Join(workspace, "items.yaml")
	tf.config = filepath.Join(workspace, "config.toml")

	if err := tf.WriteCatalog(items...); err != nil {
		return "", err
	}

	cfg := `version = 1

[views.ops]
keys = ["db-1", "tools"]
`
	if err := os.WriteFile(tf.config, []byte(cfg), 0644); err != nil {
		return "", err
	}

	return workspace, nil
}

// WriteCatalog replaces the workspace catalog
func (tf *TUITestFramework) WriteCatalog(items ...fixtureItem) error {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "- key: %s\n", item.Key)
		if item.Label != "" {
			fmt.Fprintf(&b, "  label: %s\n", item.Label)
		}
		if item.Group != "" {
			fmt.Fprintf(&b, "  group: %s\n", item.Group)
		}
	}
	return os.WriteFile(tf.items, []byte(b.String()), 0644)
}
