package stockrecon

import (
	"sync"

	"github.com/agentstation/stockrecon/pkg/reconcile"
)

// Hook function types for reconciliation events
type (
	// DiscrepancyHook is called for every cluster containing a discrepancy
	DiscrepancyHook func(cluster reconcile.ClusterReport)

	// UnresolvedHook is called for every dispatch reference without a record
	UnresolvedHook func(dispatchID string)
)

// hooks manages event callbacks for reconciliation results
type hooks struct {
	mu            sync.RWMutex
	onDiscrepancy []DiscrepancyHook
	onUnresolved  []UnresolvedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnDiscrepancy registers a callback for clusters with a discrepancy
func (h *hooks) OnDiscrepancy(fn DiscrepancyHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDiscrepancy = append(h.onDiscrepancy, fn)
}

// OnUnresolved registers a callback for dangling dispatch references
func (h *hooks) OnUnresolved(fn UnresolvedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUnresolved = append(h.onUnresolved, fn)
}

// trigger fires hooks in report order
func (h *hooks) trigger(report *reconcile.Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, cluster := range report.Clusters {
		if !cluster.HasDiscrepancy() {
			continue
		}
		for _, hook := range h.onDiscrepancy {
			hook(cluster)
		}
	}

	for _, id := range report.Summary.UnresolvedDispatchIDs {
		for _, hook := range h.onUnresolved {
			hook(id)
		}
	}
}
