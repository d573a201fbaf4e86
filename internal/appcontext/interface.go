// Package appcontext provides the shared application context interface
// used by all commands. Command packages declare the subset they need;
// the App struct from cmd/stockrecon/app implements all of it.
package appcontext

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/stockrecon"
)

// Settings are the resolved folder and run settings commands fall back to
// when their own flags are not given.
type Settings struct {
	IssueDir          string
	DispatchDir       string
	TextDir           string
	Workers           int
	FailOnDiscrepancy bool
}

// Interface defines the application context interface that commands need.
//
// Commands should accept this interface (or a subset of it) rather than the
// concrete App type, allowing for easier testing with mock implementations.
type Interface interface {
	// Checker returns the default checker, creating it lazily from Settings.
	Checker() (stockrecon.Checker, error)

	// CheckerWithOptions creates a new checker with custom options on top of
	// the default logger. Use this when command flags override Settings.
	CheckerWithOptions(...stockrecon.Option) (stockrecon.Checker, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (text, table, json, yaml).
	OutputFormat() string

	// Settings returns the resolved configuration values.
	Settings() Settings

	// Stdout is where command results are written.
	Stdout() io.Writer

	// Stderr is where status alerts are written.
	Stderr() io.Writer

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
