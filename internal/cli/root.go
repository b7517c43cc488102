package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/roach88/rubico/internal/app"
	"github.com/roach88/rubico/internal/clock"
	"github.com/roach88/rubico/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DBPath  string // overrides RUBICO_DB_PATH when set
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// env is what every command needs besides its own flags.
type env struct {
	opts       *RootOptions
	loadConfig func() (*config.Config, error)
	clock      clock.Clock
	fxOptions  []fx.Option
}

// NewRootCommand creates the root command for the rubico CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&env{
		opts:       &RootOptions{},
		loadConfig: config.Load,
		clock:      clock.System{},
	})
}

func newRootCommand(e *env) *cobra.Command {
	opts := e.opts

	cmd := &cobra.Command{
		Use:   "rubico",
		Short: "rubico - local customer and invoice records",
		Long: `Keep customers and their invoices in a local database.

Every change is validated first, then written to the store, so what you see
listed is what is on disk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				msg := fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
				_ = e.formatter(cmd).Error(ErrCodeGeneric, msg, nil)
				return NewExitError(ExitCommandError, msg)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logs on stderr)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database file (default from RUBICO_DB_PATH)")

	// Add subcommands
	cmd.AddCommand(newCustomerCommand(e))
	cmd.AddCommand(newInvoiceCommand(e))
	cmd.AddCommand(newDashboardCommand(e))
	cmd.AddCommand(newSeedCommand(e))

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

func (e *env) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    e.opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   e.opts.Verbose,
	}
}

// run opens a session and calls fn with it. Errors from fn are reported
// through the formatter and mapped to exit codes.
func (e *env) run(cmd *cobra.Command, fn func(ctx context.Context, s *app.Session, f *OutputFormatter) error) error {
	f := e.formatter(cmd)

	cfg, err := e.loadConfig()
	if err != nil {
		return reportError(f, err)
	}
	if e.opts.DBPath != "" {
		cfg.DBPath = e.opts.DBPath
	}
	if e.opts.Verbose {
		cfg.LogLevel = "debug"
	}
	f.VerboseLog("Using database %s", cfg.DBPath)

	err = app.Run(cmd.Context(), cfg, func(ctx context.Context, s *app.Session) error {
		return fn(ctx, s, f)
	}, e.fxOptions...)
	if err != nil {
		return reportError(f, err)
	}
	return nil
}
