package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pickwise/internal/config"
)

// ViewSummary is the JSON shape of a saved view.
type ViewSummary struct {
	Name   string   `json:"name"`
	Keys   []string `json:"keys"`
	Filter string   `json:"filter,omitempty"`
}

// NewViewsCommand creates the views command group.
func NewViewsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage saved views",
		Long: `List, show and delete the named selections saved from the picker with w.

Views live in the config file under [views.<name>].`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List saved views",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewsList(cmd, rootOpts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "show <name>",
		Short:         "Print the keys of a saved view",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewsShow(cmd, rootOpts, args[0])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a saved view",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewsDelete(cmd, rootOpts, args[0])
		},
	})

	return cmd
}

func loadConfig(rootOpts *RootOptions) (config.ConfigService, *config.Config, error) {
	svc := config.NewConfigService(rootOpts.ConfigPath)
	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func runViewsList(cmd *cobra.Command, rootOpts *RootOptions) error {
	_, cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	out := newFormatter(rootOpts, cmd.OutOrStdout())

	summaries := make([]ViewSummary, 0, len(cfg.Views))
	for _, name := range cfg.ViewNames() {
		view, _ := cfg.View(name)
		summaries = append(summaries, ViewSummary{Name: name, Keys: view.Keys, Filter: view.Filter})
	}

	if out.Format == "json" {
		return out.JSON(summaries)
	}
	if len(summaries) == 0 {
		out.Text("No saved views")
		return nil
	}
	for _, s := range summaries {
		line := fmt.Sprintf("%s\t%d keys", s.Name, len(s.Keys))
		if s.Filter != "" {
			line += "\tfilter: " + s.Filter
		}
		out.Text("%s", line)
	}
	return nil
}

func runViewsShow(cmd *cobra.Command, rootOpts *RootOptions, name string) error {
	_, cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	view, err := cfg.View(name)
	if err != nil {
		return err
	}

	out := newFormatter(rootOpts, cmd.OutOrStdout())
	if out.Format == "json" {
		return out.JSON(ViewSummary{Name: view.Name, Keys: view.Keys, Filter: view.Filter})
	}
	if view.Filter != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "filter: %s\n", view.Filter)
	}
	return out.Keys(view.Keys)
}

func runViewsDelete(cmd *cobra.Command, rootOpts *RootOptions, name string) error {
	svc, cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}
	if err := cfg.DeleteView(name); err != nil {
		return err
	}
	if err := svc.Save(cfg); err != nil {
		return err
	}

	rootOpts.Logger().Info("view deleted", zap.String("view", name))
	out := newFormatter(rootOpts, cmd.OutOrStdout())
	if out.Format == "json" {
		return out.JSON(map[string]string{"deleted": name})
	}
	out.Text("Deleted view %q", name)
	return nil
}
