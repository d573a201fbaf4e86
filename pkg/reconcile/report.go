package reconcile

import (
	"slices"
	"sort"
)

// ClusterReport is the comparison table of one cluster together with its
// sorted header lists.
type ClusterReport struct {
	DispatchIDs           []string `json:"dispatch_ids" yaml:"dispatch_ids"`
	UnresolvedDispatchIDs []string `json:"unresolved_dispatch_ids,omitempty" yaml:"unresolved_dispatch_ids,omitempty"`
	Dispositions          []string `json:"dispositions" yaml:"dispositions"`
	IssueIDs              []string `json:"issue_ids" yaml:"issue_ids"`
	Rows                  []Row    `json:"rows" yaml:"rows"`
}

// HasDiscrepancy reports whether any row of the cluster is a discrepancy.
func (c ClusterReport) HasDiscrepancy() bool {
	for _, row := range c.Rows {
		if row.Status == StatusDiscrepancy {
			return true
		}
	}
	return false
}

// IsUnresolved reports whether a dispatch identifier of this cluster has no record.
func (c ClusterReport) IsUnresolved(dispatchID string) bool {
	return slices.Contains(c.UnresolvedDispatchIDs, dispatchID)
}

// Summary counts the outcome of a reconciliation run.
type Summary struct {
	Clusters              int      `json:"clusters" yaml:"clusters"`
	DiscrepantClusters    int      `json:"discrepant_clusters" yaml:"discrepant_clusters"`
	MatchRows             int      `json:"match_rows" yaml:"match_rows"`
	DiscrepancyRows       int      `json:"discrepancy_rows" yaml:"discrepancy_rows"`
	UnresolvedDispatchIDs []string `json:"unresolved_dispatch_ids" yaml:"unresolved_dispatch_ids"`
}

// Report is the full, deterministically ordered result of a run.
type Report struct {
	Clusters []ClusterReport `json:"clusters" yaml:"clusters"`
	Summary  Summary         `json:"summary" yaml:"summary"`
}

// OnlyDiscrepancies returns a copy of the report keeping the clusters that
// contain at least one discrepancy. The summary is recomputed.
func (r *Report) OnlyDiscrepancies() *Report {
	var kept []ClusterReport
	for _, c := range r.Clusters {
		if c.HasDiscrepancy() {
			kept = append(kept, c)
		}
	}
	return newReport(kept)
}

func newReport(clusters []ClusterReport) *Report {
	if clusters == nil {
		clusters = []ClusterReport{}
	}
	sortClusters(clusters)

	summary := Summary{Clusters: len(clusters), UnresolvedDispatchIDs: []string{}}
	for _, c := range clusters {
		if c.HasDiscrepancy() {
			summary.DiscrepantClusters++
		}
		for _, row := range c.Rows {
			if row.Status == StatusMatch {
				summary.MatchRows++
			} else {
				summary.DiscrepancyRows++
			}
		}
		summary.UnresolvedDispatchIDs = append(summary.UnresolvedDispatchIDs, c.UnresolvedDispatchIDs...)
	}
	sort.Strings(summary.UnresolvedDispatchIDs)

	return &Report{Clusters: clusters, Summary: summary}
}

// sortClusters orders clusters by disposition list, then dispatch list,
// then issue list, each compared lexicographically.
func sortClusters(clusters []ClusterReport) {
	sort.SliceStable(clusters, func(i, j int) bool {
		a, b := clusters[i], clusters[j]
		if c := slices.Compare(a.Dispositions, b.Dispositions); c != 0 {
			return c < 0
		}
		if c := slices.Compare(a.DispatchIDs, b.DispatchIDs); c != 0 {
			return c < 0
		}
		return slices.Compare(a.IssueIDs, b.IssueIDs) < 0
	})
}
