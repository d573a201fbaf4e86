package appcontext

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/agentstation/stockrecon"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding field.
// If a field is nil or zero, the method returns a default value.
type Mock struct {
	CheckerFunc            func() (stockrecon.Checker, error)
	CheckerWithOptionsFunc func(...stockrecon.Option) (stockrecon.Checker, error)
	LoggerFunc             func() *zerolog.Logger
	Format                 string
	Config                 Settings
	Out                    io.Writer
	Err                    io.Writer
}

// Checker returns a checker using the mock function or a default checker.
func (m *Mock) Checker() (stockrecon.Checker, error) {
	if m.CheckerFunc != nil {
		return m.CheckerFunc()
	}
	return stockrecon.New()
}

// CheckerWithOptions returns a checker using the mock function or one built
// from opts.
func (m *Mock) CheckerWithOptions(opts ...stockrecon.Option) (stockrecon.Checker, error) {
	if m.CheckerWithOptionsFunc != nil {
		return m.CheckerWithOptionsFunc(opts...)
	}
	return stockrecon.New(append(opts, stockrecon.WithLogger(m.Logger()))...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the configured format.
func (m *Mock) OutputFormat() string {
	return m.Format
}

// Settings returns the configured settings.
func (m *Mock) Settings() Settings {
	return m.Config
}

// Stdout returns Out or io.Discard.
func (m *Mock) Stdout() io.Writer {
	if m.Out != nil {
		return m.Out
	}
	return io.Discard
}

// Stderr returns Err or io.Discard.
func (m *Mock) Stderr() io.Writer {
	if m.Err != nil {
		return m.Err
	}
	return io.Discard
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
