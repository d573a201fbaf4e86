// Package reconcile compares item quantities between issue documents (RW)
// and dispatch documents (WZ).
//
// A run builds a reference graph from the dispatch references carried by
// issue documents, splits it into clusters of mutually linked documents,
// sums item quantities on both sides of every cluster and reports, per item
// index, whether the sums match. Runs are synchronous and own all their
// state, so independent runs may execute concurrently over the same Source.
package reconcile

import (
	"context"

	"github.com/agentstation/stockrecon/pkg/logging"
)

// Reconcile runs the full pipeline over src. It never fails: dangling
// references and quantity mismatches are part of the report, and an empty
// source yields an empty report.
func Reconcile(ctx context.Context, src Source) *Report {
	logger := logging.FromContext(ctx)

	graph := BuildGraph(src)
	clusters := graph.Partition()

	reports := make([]ClusterReport, 0, len(clusters))
	for _, c := range clusters {
		agg := AggregateCluster(c, src)
		reports = append(reports, ClusterReport{
			DispatchIDs:           c.DispatchIDs,
			UnresolvedDispatchIDs: agg.Unresolved,
			Dispositions:          agg.Dispositions,
			IssueIDs:              c.IssueIDs,
			Rows:                  Compare(agg),
		})
	}

	report := newReport(reports)
	logger.Debug().
		Int("clusters", report.Summary.Clusters).
		Int("discrepant_clusters", report.Summary.DiscrepantClusters).
		Strs("unresolved", report.Summary.UnresolvedDispatchIDs).
		Msg("Reconciliation complete")

	return report
}
