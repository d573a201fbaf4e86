package reconcile_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stockrecon/pkg/documents"
	"github.com/agentstation/stockrecon/pkg/logging"
	"github.com/agentstation/stockrecon/pkg/reconcile"
	"github.com/agentstation/stockrecon/pkg/store"
)

func issue(id string, refs []string, items ...documents.IssueItem) documents.IssueDocument {
	return documents.IssueDocument{ID: id, DispatchRefs: refs, Items: items}
}

func dispatch(id, disposition string, items ...documents.DispatchItem) documents.DispatchDocument {
	return documents.DispatchDocument{ID: id, DispositionRef: disposition, Items: items}
}

func run(t *testing.T, issues []documents.IssueDocument, dispatches []documents.DispatchDocument) *reconcile.Report {
	t.Helper()
	ctx := logging.WithLogger(context.Background(), logging.NewNopLogger())
	return reconcile.Reconcile(ctx, store.NewSnapshot(issues, dispatches))
}

func TestScenarioSingleMatch(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U00054/22", []string{"123/04/22/6"}, documents.IssueItem{Index: 2167, Quantity: 2})},
		[]documents.DispatchDocument{dispatch("123/04/22/6", "060/22", documents.DispatchItem{Index: 2167, Name: "PŁYTA PW-95", Quantity: 2})},
	)

	require.Len(t, report.Clusters, 1)
	c := report.Clusters[0]
	assert.Equal(t, []string{"123/04/22/6"}, c.DispatchIDs)
	assert.Equal(t, []string{"RW/U00054/22"}, c.IssueIDs)
	assert.Equal(t, []string{"060/22"}, c.Dispositions)
	assert.Equal(t, []reconcile.Row{{
		Status:           reconcile.StatusMatch,
		Index:            2167,
		DispatchQuantity: 2,
		IssueQuantity:    2,
		Name:             "PŁYTA PW-95",
	}}, c.Rows)
	assert.False(t, c.HasDiscrepancy())
	assert.Equal(t, 1, report.Summary.MatchRows)
	assert.Equal(t, 0, report.Summary.DiscrepancyRows)
}

func TestScenarioQuantityMismatch(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U1/22", []string{"001/04/22/6"}, documents.IssueItem{Index: 1815, Quantity: 4})},
		[]documents.DispatchDocument{dispatch("001/04/22/6", "060/22", documents.DispatchItem{Index: 1815, Name: "LATARNIA", Quantity: 3})},
	)

	require.Len(t, report.Clusters, 1)
	row := report.Clusters[0].Rows[0]
	assert.Equal(t, reconcile.StatusDiscrepancy, row.Status)
	assert.Equal(t, reconcile.ReasonQuantityMismatch, row.Reason)
	assert.Equal(t, 3, row.DispatchQuantity)
	assert.Equal(t, 4, row.IssueQuantity)
}

func TestScenarioDanglingReference(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U2/23", []string{"999/99/23/6"},
			documents.IssueItem{Index: 2160, Quantity: 4},
			documents.IssueItem{Index: 2405, Quantity: 1},
		)},
		nil,
	)

	require.Len(t, report.Clusters, 1)
	c := report.Clusters[0]
	assert.Equal(t, []string{"999/99/23/6"}, c.DispatchIDs)
	assert.Equal(t, []string{"999/99/23/6"}, c.UnresolvedDispatchIDs)
	assert.True(t, c.IsUnresolved("999/99/23/6"))
	assert.Empty(t, c.Dispositions)
	require.Len(t, c.Rows, 2)
	for _, row := range c.Rows {
		assert.Equal(t, reconcile.StatusDiscrepancy, row.Status)
		assert.Equal(t, reconcile.ReasonMissingOnDispatch, row.Reason)
		assert.Zero(t, row.DispatchQuantity)
		assert.Empty(t, row.Name)
	}
	assert.Equal(t, []string{"999/99/23/6"}, report.Summary.UnresolvedDispatchIDs)

	var buf bytes.Buffer
	require.NoError(t, reconcile.WriteText(&buf, report))
	assert.Contains(t, buf.String(), "WZ   : [999/99/23/6 (not found)]")
}

func TestScenarioSharedDispatch(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{
			issue("RW/U10/22", []string{"050/05/22/6"}, documents.IssueItem{Index: 2167, Quantity: 1}),
			issue("RW/U11/22", []string{"050/05/22/6"}, documents.IssueItem{Index: 2167, Quantity: 2}),
		},
		[]documents.DispatchDocument{dispatch("050/05/22/6", "070/22", documents.DispatchItem{Index: 2167, Name: "PŁYTA PW-95", Quantity: 3})},
	)

	require.Len(t, report.Clusters, 1)
	c := report.Clusters[0]
	assert.Equal(t, []string{"RW/U10/22", "RW/U11/22"}, c.IssueIDs)
	require.Len(t, c.Rows, 1)
	assert.Equal(t, reconcile.StatusMatch, c.Rows[0].Status)
	assert.Equal(t, 3, c.Rows[0].IssueQuantity)
}

func TestScenarioUnreferencedDispatch(t *testing.T) {
	report := run(t, nil,
		[]documents.DispatchDocument{dispatch("077/07/22/6", "080/22",
			documents.DispatchItem{Index: 1, Name: "A", Quantity: 5},
			documents.DispatchItem{Index: 2, Name: "B", Quantity: 1},
		)},
	)

	require.Len(t, report.Clusters, 1)
	c := report.Clusters[0]
	assert.Equal(t, []string{"077/07/22/6"}, c.DispatchIDs)
	assert.Empty(t, c.IssueIDs)
	for _, row := range c.Rows {
		assert.Equal(t, reconcile.StatusDiscrepancy, row.Status)
		assert.Equal(t, reconcile.ReasonMissingOnIssue, row.Reason)
		assert.Zero(t, row.IssueQuantity)
	}
}

func TestIssueOnlyItemNeverMatches(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U1/22", []string{"001/01/22/6"}, documents.IssueItem{Index: 9, Quantity: 0})},
		[]documents.DispatchDocument{dispatch("001/01/22/6", "001/22")},
	)
	row := report.Clusters[0].Rows[0]
	assert.Equal(t, reconcile.StatusDiscrepancy, row.Status)
	assert.Equal(t, 0, row.DispatchQuantity)
	assert.Equal(t, 0, row.IssueQuantity)
}

func TestIssueWithoutReferencesIsSingleton(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U5/22", nil, documents.IssueItem{Index: 1, Quantity: 1})},
		[]documents.DispatchDocument{dispatch("001/01/22/6", "001/22", documents.DispatchItem{Index: 1, Name: "A", Quantity: 1})},
	)

	require.Len(t, report.Clusters, 2)
	// Empty disposition list sorts first.
	assert.Equal(t, []string{"RW/U5/22"}, report.Clusters[0].IssueIDs)
	assert.Empty(t, report.Clusters[0].DispatchIDs)
	assert.Equal(t, []string{"001/01/22/6"}, report.Clusters[1].DispatchIDs)
}

func TestDuplicateIndicesAreSummed(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U1/22", []string{"001/01/22/6", "002/01/22/6"},
			documents.IssueItem{Index: 7, Quantity: 2},
			documents.IssueItem{Index: 7, Quantity: 3},
		)},
		[]documents.DispatchDocument{
			dispatch("001/01/22/6", "001/22", documents.DispatchItem{Index: 7, Name: "old name", Quantity: 1}),
			dispatch("002/01/22/6", "002/22", documents.DispatchItem{Index: 7, Name: "new name", Quantity: 4}),
		},
	)

	require.Len(t, report.Clusters, 1)
	c := report.Clusters[0]
	assert.Equal(t, []string{"001/22", "002/22"}, c.Dispositions)
	require.Len(t, c.Rows, 1)
	assert.Equal(t, reconcile.StatusMatch, c.Rows[0].Status)
	assert.Equal(t, 5, c.Rows[0].DispatchQuantity)
	assert.Equal(t, "new name", c.Rows[0].Name)
}

func TestDuplicateDispatchLinesAreSummed(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U1/22", []string{"001/01/22/6"},
			documents.IssueItem{Index: 1815, Quantity: 4},
			documents.IssueItem{Index: 2167, Quantity: 1},
		)},
		[]documents.DispatchDocument{dispatch("001/01/22/6", "001/22",
			documents.DispatchItem{Index: 1815, Name: "LATARNIA", Quantity: 3},
			documents.DispatchItem{Index: 2167, Name: "SLUP", Quantity: 2},
			documents.DispatchItem{Index: 1815, Name: "LATARNIA LED", Quantity: 1},
		)},
	)

	require.Len(t, report.Clusters, 1)
	rows := report.Clusters[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, reconcile.StatusMatch, rows[0].Status)
	assert.Equal(t, 4, rows[0].DispatchQuantity)
	assert.Equal(t, "LATARNIA LED", rows[0].Name)
	assert.Equal(t, reconcile.StatusDiscrepancy, rows[1].Status)
	assert.Equal(t, 2, rows[1].DispatchQuantity)
	assert.Equal(t, 1, rows[1].IssueQuantity)
}

func TestRowsSortedByIndex(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U1/22", []string{"001/01/22/6"},
			documents.IssueItem{Index: 30, Quantity: 1},
			documents.IssueItem{Index: 5, Quantity: 1},
		)},
		[]documents.DispatchDocument{dispatch("001/01/22/6", "001/22",
			documents.DispatchItem{Index: 100, Name: "X", Quantity: 1},
			documents.DispatchItem{Index: 5, Name: "Y", Quantity: 1},
		)},
	)

	var indices []int
	for _, row := range report.Clusters[0].Rows {
		indices = append(indices, row.Index)
	}
	assert.Equal(t, []int{5, 30, 100}, indices)
}

func TestClusterOrdering(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{
			issue("RW/U1/22", []string{"003/01/22/6"}),
			issue("RW/U2/22", []string{"001/01/22/6"}),
			issue("RW/U3/22", []string{"002/01/22/6"}),
		},
		[]documents.DispatchDocument{
			dispatch("001/01/22/6", "090/22"),
			dispatch("002/01/22/6", "010/22"),
			dispatch("003/01/22/6", "010/22"),
		},
	)

	var order []string
	for _, c := range report.Clusters {
		order = append(order, c.DispatchIDs[0])
	}
	// 010/22 ties are broken by dispatch identifiers.
	assert.Equal(t, []string{"002/01/22/6", "003/01/22/6", "001/01/22/6"}, order)
}

func TestPartitionInvariants(t *testing.T) {
	var issues []documents.IssueDocument
	var dispatches []documents.DispatchDocument
	for i := 0; i < 40; i++ {
		dispatches = append(dispatches, dispatch(fmt.Sprintf("%03d/01/22/6", i), fmt.Sprintf("%03d/22", i%7)))
	}
	for i := 0; i < 60; i++ {
		refs := []string{fmt.Sprintf("%03d/01/22/6", (i*7)%45)}
		if i%3 == 0 {
			refs = append(refs, fmt.Sprintf("%03d/01/22/6", (i*11)%40))
		}
		if i%10 == 0 {
			refs = nil
		}
		issues = append(issues, issue(fmt.Sprintf("RW/U%d/22", i), refs))
	}
	snap := store.NewSnapshot(issues, dispatches)

	graph := reconcile.BuildGraph(snap)
	clusters := graph.Partition()

	seenDispatch := map[string]int{}
	seenIssue := map[string]int{}
	for _, c := range clusters {
		for _, id := range c.DispatchIDs {
			seenDispatch[id]++
		}
		for _, id := range c.IssueIDs {
			seenIssue[id]++
		}
	}

	expectedDispatch := map[string]int{}
	for _, id := range snap.DispatchIDs() {
		expectedDispatch[id] = 1
	}
	for _, id := range graph.UnresolvedDispatchIDs() {
		expectedDispatch[id] = 1
	}
	expectedIssue := map[string]int{}
	for _, id := range snap.IssueIDs() {
		expectedIssue[id] = 1
	}

	assert.Equal(t, expectedDispatch, seenDispatch)
	assert.Equal(t, expectedIssue, seenIssue)

	// Every edge stays inside one cluster.
	clusterOf := map[string]int{}
	for i, c := range clusters {
		for _, id := range c.IssueIDs {
			clusterOf["rw:"+id] = i
		}
		for _, id := range c.DispatchIDs {
			clusterOf["wz:"+id] = i
		}
	}
	for _, id := range snap.IssueIDs() {
		for _, ref := range graph.IssueNeighbors(id) {
			assert.Equal(t, clusterOf["rw:"+id], clusterOf["wz:"+ref])
			assert.Contains(t, graph.DispatchNeighbors(ref), id)
		}
	}

	// Partition can be repeated on the same graph.
	assert.Equal(t, clusters, graph.Partition())
}

func TestLongReferenceChain(t *testing.T) {
	const n = 20000
	issues := make([]documents.IssueDocument, 0, n)
	dispatches := make([]documents.DispatchDocument, 0, n+1)
	for i := 0; i <= n; i++ {
		dispatches = append(dispatches, dispatch(fmt.Sprintf("D%06d/01/22/6", i), "001/22"))
	}
	for i := 0; i < n; i++ {
		issues = append(issues, issue(fmt.Sprintf("RW/U%06d/22", i), []string{
			fmt.Sprintf("D%06d/01/22/6", i),
			fmt.Sprintf("D%06d/01/22/6", i+1),
		}))
	}

	clusters := reconcile.BuildGraph(store.NewSnapshot(issues, dispatches)).Partition()
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0].DispatchIDs, n+1)
	assert.Len(t, clusters[0].IssueIDs, n)
}

func TestEmptySource(t *testing.T) {
	report := run(t, nil, nil)
	assert.Empty(t, report.Clusters)
	assert.NotNil(t, report.Clusters)
	assert.Equal(t, 0, report.Summary.Clusters)

	var buf bytes.Buffer
	require.NoError(t, reconcile.WriteText(&buf, report))
	assert.Empty(t, buf.String())
}

func TestReportIsIdempotent(t *testing.T) {
	issues := []documents.IssueDocument{
		issue("RW/U3/22", []string{"002/01/22/6", "001/01/22/6"}, documents.IssueItem{Index: 4, Quantity: 2}, documents.IssueItem{Index: 1, Quantity: 1}),
		issue("RW/U1/22", []string{"001/01/22/6"}, documents.IssueItem{Index: 2, Quantity: 2}),
		issue("RW/U9/22", []string{"404/04/22/6"}, documents.IssueItem{Index: 8, Quantity: 8}),
	}
	dispatches := []documents.DispatchDocument{
		dispatch("001/01/22/6", "001/22", documents.DispatchItem{Index: 2, Name: "B", Quantity: 2}, documents.DispatchItem{Index: 1, Name: "A", Quantity: 1}),
		dispatch("002/01/22/6", "002/22", documents.DispatchItem{Index: 4, Name: "D", Quantity: 3}),
		dispatch("005/01/22/6", "005/22", documents.DispatchItem{Index: 6, Name: "F", Quantity: 1}),
	}

	render := func() string {
		var buf bytes.Buffer
		require.NoError(t, reconcile.WriteText(&buf, run(t, issues, dispatches)))
		return buf.String()
	}

	first := render()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, render())
	}
}

func TestOnlyDiscrepancies(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{
			issue("RW/U1/22", []string{"001/01/22/6"}, documents.IssueItem{Index: 1, Quantity: 1}),
			issue("RW/U2/22", []string{"002/01/22/6"}, documents.IssueItem{Index: 1, Quantity: 5}),
		},
		[]documents.DispatchDocument{
			dispatch("001/01/22/6", "001/22", documents.DispatchItem{Index: 1, Name: "A", Quantity: 1}),
			dispatch("002/01/22/6", "002/22", documents.DispatchItem{Index: 1, Name: "A", Quantity: 4}),
		},
	)
	require.Len(t, report.Clusters, 2)
	assert.Equal(t, 1, report.Summary.DiscrepantClusters)

	filtered := report.OnlyDiscrepancies()
	require.Len(t, filtered.Clusters, 1)
	assert.Equal(t, []string{"RW/U2/22"}, filtered.Clusters[0].IssueIDs)
	assert.Equal(t, 1, filtered.Summary.Clusters)
	assert.Equal(t, 0, filtered.Summary.MatchRows)
}

func TestWriteTextLayout(t *testing.T) {
	report := run(t,
		[]documents.IssueDocument{issue("RW/U00054/22", []string{"123/04/22/6"}, documents.IssueItem{Index: 2167, Quantity: 2})},
		[]documents.DispatchDocument{dispatch("123/04/22/6", "060/22", documents.DispatchItem{Index: 2167, Name: "PŁYTA PW-95", Quantity: 2})},
	)

	var buf bytes.Buffer
	require.NoError(t, reconcile.WriteText(&buf, report))
	lines := strings.Split(buf.String(), "\n")

	pad := func(n int) string { return strings.Repeat(" ", n) }
	assert.Equal(t, strings.Repeat("*", 150), lines[0])
	assert.Equal(t, "WZ   : [123/04/22/6]", lines[1])
	assert.Equal(t, "DWS  : [060/22]", lines[2])
	assert.Equal(t, "RW   : [RW/U00054/22]", lines[3])
	assert.Equal(t, "STATUS"+pad(8)+"INDEX"+pad(4)+"QTY(WZ)"+pad(4)+"QTY(RW)"+pad(2)+"NAME", lines[5])
	assert.Equal(t, "MATCH"+pad(10)+"2167"+pad(10)+"2"+pad(10)+"2"+pad(2)+"PŁYTA PW-95", lines[7])
}
