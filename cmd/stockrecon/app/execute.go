package app

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/stockrecon/internal/cmd/alerts"
	"github.com/agentstation/stockrecon/internal/cmd/constants"
	"github.com/agentstation/stockrecon/internal/cmd/output"
	"github.com/agentstation/stockrecon/pkg/errors"
	"github.com/agentstation/stockrecon/pkg/logging"
)

// Execute runs the stockrecon CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "stockrecon",
		Short:   "Warehouse document reconciliation CLI",
		Version: a.version,
		Long: `Stockrecon checks warehouse issue documents (RW) against dispatch
documents (WZ).

Issue documents reference the dispatch documents they were issued for.
Documents linked through these references form clusters, and for each
cluster the summed item quantities of both sides are compared per item
index. Scanned issue documents can be decoded from OCR text first.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	// Flag defaults come from the loaded configuration so that an unset flag
	// keeps the config file or environment value.
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.stockrecon.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", a.config.Format, "output format: text, table, json, yaml (default text)")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("stockrecon {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	// An explicit config file replaces the searched one; flags set on the
	// command line still win over its values.
	if flags.Changed("config") {
		config, err := LoadConfigFile(a.config.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}
	a.config.UpdateFromFlags(flags)

	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return errors.WrapValidation("format", err)
	}

	if !a.fixedLogger {
		logger := newLogger(a.config, a.stderr)
		a.logger = &logger
		logging.SetDefault(logger)
	}

	a.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("config_file", a.config.ConfigFile).
		Str("issue_dir", a.config.IssueDir).
		Str("dispatch_dir", a.config.DispatchDir).
		Msg("Configuration loaded")

	return nil
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return constants.ExitOK
	case errors.IsDiscrepancy(err):
		return constants.ExitDiscrepancy
	default:
		return constants.ExitError
	}
}

// ExitOnError prints an error and exits with the matching status.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		writeError(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}

func writeError(w io.Writer, err error) {
	_ = alerts.NewFormatWriter(w, output.FormatText).WriteAlert(alerts.FromError(err))
}
