package stockrecon

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/stockrecon/pkg/constants"
	"github.com/agentstation/stockrecon/pkg/errors"
	"github.com/agentstation/stockrecon/pkg/store"
)

// config holds the settings applied by options
type config struct {
	issueDir    string
	dispatchDir string
	workers     int
	logger      *zerolog.Logger
	snapshot    *store.Snapshot
}

func newConfig() *config {
	return &config{
		issueDir:    constants.DefaultIssueDir,
		dispatchDir: constants.DefaultDispatchDir,
		workers:     constants.MaxConcurrentDecoders,
	}
}

// Option is a function that configures a Checker
type Option func(*config) error

// options applies the given options to the checker
func (c *checker) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return err
		}
	}
	return nil
}

// WithIssueDir sets the folder holding issue document records.
// Decode writes into the same folder.
func WithIssueDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("issue_dir", dir, "must not be empty")
		}
		c.issueDir = dir
		return nil
	}
}

// WithDispatchDir sets the folder holding dispatch document records
func WithDispatchDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("dispatch_dir", dir, "must not be empty")
		}
		c.dispatchDir = dir
		return nil
	}
}

// WithWorkers bounds the number of text files decoded concurrently
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 1 {
			return errors.NewValidationError("workers", n, "must be at least 1")
		}
		c.workers = n
		return nil
	}
}

// WithLogger sets the logger used by every operation of the checker
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithSnapshot makes the checker reconcile an in-memory snapshot
// instead of reading the record folders
func WithSnapshot(snap *store.Snapshot) Option {
	return func(c *config) error {
		if snap == nil {
			return errors.NewValidationError("snapshot", nil, "must not be nil")
		}
		c.snapshot = snap
		return nil
	}
}
