package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pickwise/internal/catalog"
	"pickwise/internal/domain"
	"pickwise/internal/ui/logic"
	"pickwise/internal/ui/services/selection"
)

// ApplyOptions holds the flags of the apply command.
type ApplyOptions struct {
	ItemsFile string
	Filter    string
}

// ApplyResult is the JSON shape of apply's output.
type ApplyResult struct {
	View    string   `json:"view"`
	Keys    []string `json:"keys"`
	Missing []string `json:"missing,omitempty"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <view>",
		Short: "Print a saved view reconciled against the current catalog",
		Long: `Restore a saved view without opening the picker. Keys that are no longer
in the catalog are dropped; the rest are printed in catalog order.

--filter overrides the filter saved with the view. It only narrows what
would be visible; the printed selection still includes hidden items.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.ItemsFile, "items", "i", "", "catalog file (overrides items_file in the config)")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter query (overrides the view's filter)")

	return cmd
}

func runApply(cmd *cobra.Command, rootOpts *RootOptions, opts *ApplyOptions, name string) error {
	logger := rootOpts.Logger()

	_, cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	view, err := cfg.View(name)
	if err != nil {
		return err
	}
	itemsFile, err := resolveItemsFile(opts.ItemsFile, cfg)
	if err != nil {
		return err
	}
	items, err := catalog.LoadFile(itemsFile)
	if err != nil {
		return err
	}

	filter := view.Filter
	if cmd.Flags().Changed("filter") {
		filter = opts.Filter
	}

	engine := selection.NewEngine(domain.ItemKey, nil, selection.Options[domain.Item]{
		Logger: logger.Named("selection"),
	})
	engine.SetAllItems(items)
	engine.SetItems(logic.FilterItems(items, filter), false)
	engine.ResetAllSelection(view.Keys)

	result := ApplyResult{View: name, Keys: domain.Keys(engine.AllSelection())}
	seen := make(map[string]bool, len(view.Keys))
	for _, key := range view.Keys {
		if !seen[key] && !engine.IsKeyInAllSelection(key) {
			result.Missing = append(result.Missing, key)
		}
		seen[key] = true
	}
	logger.Info("view applied",
		zap.String("view", name),
		zap.Int("keys", len(result.Keys)),
		zap.Strings("missing", result.Missing))

	out := newFormatter(rootOpts, cmd.OutOrStdout())
	if out.Format == "json" {
		return out.JSON(result)
	}
	return out.Keys(result.Keys)
}
