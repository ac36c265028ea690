package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"pickwise/internal/domain"
	"pickwise/internal/eventbus"
)

// ErrViewNotFound is returned when a named view does not exist
var ErrViewNotFound = errors.New("view not found")

// Config represents the application configuration
type Config struct {
	Version    int                   `toml:"version"`
	ItemsFile  string                `toml:"items_file"`
	PageSize   int                   `toml:"page_size"` // 0 disables paging
	UISettings UISettings            `toml:"ui"`
	Views      map[string]ViewConfig `toml:"views"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowGroups      bool `toml:"show_groups"`
	ShowDescription bool `toml:"show_description"`
	ConfirmQuit     bool `toml:"confirm_quit"`
}

// ViewConfig is a saved selection
type ViewConfig struct {
	Keys   []string `toml:"keys"`
	Filter string   `toml:"filter,omitempty"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "pickwise", "config.toml")
}

// NewConfigService creates a config service for path; an empty path means DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file the service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, returning defaults if the file doesn't exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			ItemsFile: cfg.ItemsFile,
			Views:     len(cfg.Views),
		})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Views == nil {
		cfg.Views = make(map[string]ViewConfig)
	}
	if cfg.PageSize < 0 {
		cfg.PageSize = 0
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		PageSize: 0,
		UISettings: UISettings{
			ShowGroups:      true,
			ShowDescription: false,
			ConfirmQuit:     false,
		},
		Views: make(map[string]ViewConfig),
	}
}

// View returns the named view
func (c *Config) View(name string) (domain.View, error) {
	v, ok := c.Views[name]
	if !ok {
		return domain.View{}, fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}
	return domain.View{
		Name:   name,
		Keys:   append([]string(nil), v.Keys...),
		Filter: v.Filter,
	}, nil
}

// SaveView stores or replaces a named view
func (c *Config) SaveView(view domain.View) {
	if c.Views == nil {
		c.Views = make(map[string]ViewConfig)
	}
	c.Views[view.Name] = ViewConfig{
		Keys:   append([]string(nil), view.Keys...),
		Filter: view.Filter,
	}
}

// DeleteView removes a named view
func (c *Config) DeleteView(name string) error {
	if _, ok := c.Views[name]; !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, name)
	}
	delete(c.Views, name)
	return nil
}

// ViewNames returns the saved view names, sorted
func (c *Config) ViewNames() []string {
	names := make([]string, 0, len(c.Views))
	for name := range c.Views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
