// Package app provides the application context and dependency management
// for the stockrecon CLI. It centralizes configuration, logging and the
// checker instance, and hands commands a narrow interface over them.
package app

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/stockrecon"
	"github.com/agentstation/stockrecon/internal/appcontext"
	"github.com/agentstation/stockrecon/pkg/errors"
)

// App represents the stockrecon application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// fixedLogger keeps a logger set with WithLogger across flag parsing
	fixedLogger bool

	stdout io.Writer
	stderr io.Writer

	// Checker instance (lazy-initialized, singleton)
	mu      sync.RWMutex
	checker stockrecon.Checker
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration, which can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config == nil {
		config, err := LoadConfig()
		if err != nil {
			return nil, errors.WrapResource("load", "config", "", err)
		}
		app.config = config
	}

	if app.logger == nil {
		logger := newLogger(app.config, app.stderr)
		app.logger = &logger
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Settings returns the configured folders and run settings.
func (a *App) Settings() appcontext.Settings {
	return a.config.Settings()
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Stdout returns the writer for command results.
func (a *App) Stdout() io.Writer {
	return a.stdout
}

// Stderr returns the writer for status alerts.
func (a *App) Stderr() io.Writer {
	return a.stderr
}

// Checker returns the checker built from the configuration, creating it
// lazily if needed. This is thread-safe and ensures only one instance is created.
func (a *App) Checker() (stockrecon.Checker, error) {
	a.mu.RLock()
	if a.checker != nil {
		c := a.checker
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.checker != nil {
		return a.checker, nil
	}

	c, err := stockrecon.New(a.checkerOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "checker", "", err)
	}
	a.checker = c
	return c, nil
}

// CheckerWithOptions returns a new checker configured from the app with
// opts applied on top. Commands use it when their flags override the
// configured folders.
func (a *App) CheckerWithOptions(opts ...stockrecon.Option) (stockrecon.Checker, error) {
	c, err := stockrecon.New(append(a.checkerOptions(), opts...)...)
	if err != nil {
		return nil, errors.WrapResource("create", "checker", "with custom options", err)
	}
	return c, nil
}

// checkerOptions constructs checker options from the app configuration.
func (a *App) checkerOptions() []stockrecon.Option {
	return []stockrecon.Option{
		stockrecon.WithIssueDir(a.config.IssueDir),
		stockrecon.WithDispatchDir(a.config.DispatchDir),
		stockrecon.WithWorkers(a.config.Workers),
		stockrecon.WithLogger(a.logger),
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if err := config.Validate(); err != nil {
			return err
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		a.fixedLogger = logger != nil
		return nil
	}
}

// WithOutput redirects command results and status alerts.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) error {
		a.stdout = stdout
		a.stderr = stderr
		return nil
	}
}

// WithChecker sets a custom checker instance (useful for testing).
func WithChecker(c stockrecon.Checker) Option {
	return func(a *App) error {
		a.checker = c
		return nil
	}
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
