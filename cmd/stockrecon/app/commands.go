package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/stockrecon/cmd/stockrecon/cmd/compare"
	"github.com/agentstation/stockrecon/cmd/stockrecon/cmd/decode"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.CreateCompareCommand())
	rootCmd.AddCommand(a.CreateDecodeCommand())
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateCompareCommand creates the compare command with app dependencies.
func (a *App) CreateCompareCommand() *cobra.Command {
	return compare.NewCommand(a)
}

// CreateDecodeCommand creates the decode command with app dependencies.
func (a *App) CreateDecodeCommand() *cobra.Command {
	return decode.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("stockrecon %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
