// Package table converts reconciliation results into rows for table output.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/stockrecon/pkg/extract"
	"github.com/agentstation/stockrecon/pkg/reconcile"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ReportToTableData flattens a report into one row per compared item.
// The cluster columns repeat the cluster header so every row stands alone.
func ReportToTableData(report *reconcile.Report) Data {
	headers := []string{"Dispatch (WZ)", "Disposition (DWS)", "Issue (RW)", "Status", "Index", "Qty WZ", "Qty RW", "Name"}

	var rows [][]string
	for _, c := range report.Clusters {
		dispatches := make([]string, len(c.DispatchIDs))
		for i, id := range c.DispatchIDs {
			dispatches[i] = id
			if c.IsUnresolved(id) {
				dispatches[i] += " (not found)"
			}
		}
		wz := JoinIDs(dispatches)
		dws := JoinIDs(c.Dispositions)
		rw := JoinIDs(c.IssueIDs)

		if len(c.Rows) == 0 {
			rows = append(rows, []string{wz, dws, rw, "-", "-", "-", "-", "-"})
			continue
		}
		for _, row := range c.Rows {
			rows = append(rows, []string{
				wz, dws, rw,
				string(row.Status),
				strconv.Itoa(row.Index),
				strconv.Itoa(row.DispatchQuantity),
				strconv.Itoa(row.IssueQuantity),
				orDash(row.Name),
			})
		}
	}

	return Data{
		Headers: headers,
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignLeft, AlignLeft,
			AlignRight, AlignRight, AlignRight, AlignLeft,
		},
	}
}

// SummaryToTableData renders the run summary as a two column table.
func SummaryToTableData(s reconcile.Summary) Data {
	return Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Clusters", strconv.Itoa(s.Clusters)},
			{"Discrepant clusters", strconv.Itoa(s.DiscrepantClusters)},
			{"Matching items", strconv.Itoa(s.MatchRows)},
			{"Discrepant items", strconv.Itoa(s.DiscrepancyRows)},
			{"Unresolved dispatches", orDash(JoinIDs(s.UnresolvedDispatchIDs))},
		},
	}
}

// VerificationsToTableData renders the text decoding report.
func VerificationsToTableData(vs []extract.Verification) Data {
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, []string{v.IssueID, v.Dispositions, v.Dispatches, v.Items, v.Source})
	}
	return Data{
		Headers:         []string{"Issue (RW)", "Dispositions", "Dispatches", "Items", "Source"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignCenter, AlignCenter, AlignRight, AlignLeft},
	}
}

// JoinIDs joins identifiers for a single table cell.
func JoinIDs(ids []string) string {
	return strings.Join(ids, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
