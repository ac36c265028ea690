package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // empty means config.DefaultPath
	LogFile    string

	logger *zap.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Logger returns the logger built for this invocation
func (o *RootOptions) Logger() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

// NewRootCommand creates the root command. Running it without a subcommand
// behaves like pick.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	pickOpts := &PickOptions{}

	cmd := &cobra.Command{
		Use:   "pickwise",
		Short: "pickwise - pick items from a catalog",
		Long: `Interactively pick items from a YAML catalog.

The selection survives filtering, sorting, paging and catalog reloads; only
items that leave the catalog drop out of it. Confirmed keys are printed to
stdout so they can be piped into other tools.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			logger, err := NewLogger(opts.LogFile, opts.Verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.Logger().Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, opts, pickOpts)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/pickwise/config.toml)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "pickwise.log", "log file")

	addPickFlags(cmd, pickOpts)

	// Add subcommands
	cmd.AddCommand(NewPickCommand(opts))
	cmd.AddCommand(NewViewsCommand(opts))
	cmd.AddCommand(NewApplyCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
