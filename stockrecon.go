// Package stockrecon reconciles warehouse issue documents (RW) against
// dispatch documents (WZ). A Checker loads both record folders, groups
// documents linked by dispatch references into clusters and compares the
// summed item quantities of every cluster.
//
//	checker, err := stockrecon.New(
//		stockrecon.WithIssueDir("RW_json"),
//		stockrecon.WithDispatchDir("WZ_json"),
//	)
//	if err != nil {
//		return err
//	}
//	report, err := checker.Reconcile(ctx)
package stockrecon

import (
	"context"
	"fmt"

	"github.com/agentstation/stockrecon/pkg/extract"
	"github.com/agentstation/stockrecon/pkg/logging"
	"github.com/agentstation/stockrecon/pkg/reconcile"
	"github.com/agentstation/stockrecon/pkg/store"
)

// Checker reconciles issue documents against dispatch documents
type Checker interface {
	// Snapshot loads the configured record folders, or returns the
	// in-memory snapshot supplied with WithSnapshot
	Snapshot(ctx context.Context) (*store.Snapshot, error)

	// Reconcile loads a snapshot and compares it
	Reconcile(ctx context.Context) (*reconcile.Report, error)

	// Decode extracts issue documents from OCR text files into the issue folder
	Decode(ctx context.Context, paths []string) ([]extract.Verification, error)

	// OnDiscrepancy registers a callback for every cluster with a discrepancy
	OnDiscrepancy(DiscrepancyHook)

	// OnUnresolved registers a callback for every dangling dispatch reference
	OnUnresolved(UnresolvedHook)
}

// checker is the internal implementation of the Checker interface.
// Its config is fixed once New returns; hooks carry their own lock.
type checker struct {
	config *config
	hooks  *hooks
}

// New creates a new Checker with the given options
func New(opts ...Option) (Checker, error) {
	c := &checker{
		config: newConfig(),
		hooks:  newHooks(),
	}

	if err := c.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	return c, nil
}

// Snapshot returns the record set the next reconciliation would run over
func (c *checker) Snapshot(ctx context.Context) (*store.Snapshot, error) {
	if c.config.snapshot != nil {
		return c.config.snapshot, nil
	}
	return store.LoadDir(c.context(ctx, "load"), c.config.issueDir, c.config.dispatchDir)
}

// Reconcile loads a snapshot, compares it and fires the registered hooks
func (c *checker) Reconcile(ctx context.Context) (*reconcile.Report, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	ctx = c.context(ctx, "reconcile")
	report := reconcile.Reconcile(ctx, snap)
	c.hooks.trigger(report)

	logging.FromContext(ctx).Debug().
		Int("issues", len(snap.Issues)).
		Int("dispatches", len(snap.Dispatches)).
		Int("skipped", len(snap.Skipped)).
		Int("clusters", report.Summary.Clusters).
		Msg("Checked snapshot")

	return report, nil
}

// Decode extracts issue documents from text files into the issue folder
func (c *checker) Decode(ctx context.Context, paths []string) ([]extract.Verification, error) {
	return extract.DecodeFiles(c.context(ctx, "decode"), paths, c.config.issueDir, c.config.workers)
}

// OnDiscrepancy registers a callback for clusters with a discrepancy
func (c *checker) OnDiscrepancy(fn DiscrepancyHook) {
	c.hooks.OnDiscrepancy(fn)
}

// OnUnresolved registers a callback for dangling dispatch references
func (c *checker) OnUnresolved(fn UnresolvedHook) {
	c.hooks.OnUnresolved(fn)
}

// context attaches the configured logger, if any, and tags the operation
func (c *checker) context(ctx context.Context, operation string) context.Context {
	if c.config.logger != nil {
		ctx = logging.WithLogger(ctx, c.config.logger)
	}
	return logging.WithOperation(ctx, operation)
}
