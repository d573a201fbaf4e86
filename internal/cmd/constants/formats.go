// Package constants provides shared constants for CLI commands.
package constants

// Output format constants used throughout the CLI.
const (
	// FormatText is the fixed-width text report, the default on a terminal.
	FormatText = "text"

	// FormatTable renders rows with borders.
	FormatTable = "table"

	// FormatJSON outputs data as JSON.
	FormatJSON = "json"

	// FormatYAML outputs data as YAML.
	FormatYAML = "yaml"
)

// Process exit codes.
const (
	// ExitOK means the command succeeded.
	ExitOK = 0

	// ExitError means the command failed.
	ExitError = 1

	// ExitDiscrepancy means a comparison found discrepancies and the caller
	// asked to fail on them.
	ExitDiscrepancy = 2
)
