package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pickwise/internal/catalog"
	"pickwise/internal/config"
	"pickwise/internal/eventbus"
	"pickwise/internal/ui"
)

// PickOptions holds the flags of the interactive picker.
type PickOptions struct {
	ItemsFile string
	View      string
	PageSize  int
	Watch     bool
}

// NewPickCommand creates the pick command.
func NewPickCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PickOptions{}

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick items interactively (default command)",
		Long: `Open the picker on a catalog. Enter confirms and prints the selected keys,
q quits without printing anything.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, rootOpts, opts)
		},
	}

	addPickFlags(cmd, opts)
	return cmd
}

func addPickFlags(cmd *cobra.Command, opts *PickOptions) {
	cmd.Flags().StringVarP(&opts.ItemsFile, "items", "i", "", "catalog file (overrides items_file in the config)")
	cmd.Flags().StringVar(&opts.View, "view", "", "restore a saved view on start")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 0, "items per page (0 shows everything)")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "reload the catalog when the file changes")
}

func runPick(cmd *cobra.Command, rootOpts *RootOptions, opts *PickOptions) error {
	logger := rootOpts.Logger()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bus := eventbus.New(logger.Named("bus"))
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(rootOpts.ConfigPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}

	itemsFile, err := resolveItemsFile(opts.ItemsFile, cfg)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("page-size") {
		if opts.PageSize < 0 {
			return fmt.Errorf("invalid page size %d", opts.PageSize)
		}
		cfg.PageSize = opts.PageSize
	}
	if opts.View != "" {
		if _, err := cfg.View(opts.View); err != nil {
			return err
		}
	}

	catalogSvc := catalog.NewCatalogService(bus, logger.Named("catalog"))
	defer catalogSvc.Stop()

	model := ui.NewModel(ui.ModelOptions{
		Bus:           bus,
		Config:        cfg,
		ConfigService: configSvc,
		Logger:        logger.Named("ui"),
		ItemsFile:     itemsFile,
		InitialView:   opts.View,
	})

	// The TUI draws on stderr so stdout stays clean for the result
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.ErrOrStderr()),
	)
	model.SetProgram(p)

	forwardEvents(ctx, bus, p, logger)

	if opts.Watch {
		if err := catalogSvc.Watch(ctx, itemsFile); err != nil {
			return err
		}
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return NewExitError(ExitCancelled, "interrupted")
		}
		return fmt.Errorf("error running program: %w", err)
	}

	keys, confirmed := model.Result()
	if !confirmed {
		return NewExitError(ExitCancelled, "selection cancelled")
	}
	logger.Info("selection confirmed", zap.Int("keys", len(keys)))

	return newFormatter(rootOpts, cmd.OutOrStdout()).Keys(keys)
}

// forwardEvents hands the events the model reacts to over to the program.
// Program.Send blocks until the event loop takes the message, so events go
// through a buffered channel instead of blocking the bus dispatcher.
func forwardEvents(ctx context.Context, bus eventbus.EventBus, p *tea.Program, logger *zap.Logger) {
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		case <-ctx.Done():
		}
	}
	bus.Subscribe(eventbus.EventCatalogLoaded, forward)
	bus.Subscribe(eventbus.EventError, forward)

	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SelectionChangedEvent); ok {
			logger.Debug("selection changed", zap.Int("selected", event.Count), zap.Int("total", event.Total))
		}
	})
	bus.Subscribe(eventbus.EventViewSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ViewSavedEvent); ok {
			logger.Info("view saved", zap.String("view", event.Name))
		}
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			}
		}
	}()
}

// resolveItemsFile picks the catalog from the flag or the config
func resolveItemsFile(flagValue string, cfg *config.Config) (string, error) {
	path := flagValue
	if path == "" {
		path = cfg.ItemsFile
	}
	if path == "" {
		return "", errors.New("no catalog: pass --items or set items_file in the config")
	}
	return absPath(path), nil
}

// absPath makes path absolute for stable watch targets and log fields
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
