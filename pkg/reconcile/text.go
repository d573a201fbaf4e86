package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/agentstation/stockrecon/pkg/constants"
)

const (
	rowFormat    = "%-11s  %6d  %9d  %9d  %s\n"
	headerFormat = "%-11s  %6s  %9s  %9s  %s\n"
	notFound     = " (not found)"
)

// WriteText renders the report as fixed-width text, one block per cluster.
// Unresolved dispatch identifiers are marked "(not found)". The output
// depends only on the report, so equal inputs give byte-identical text.
func WriteText(w io.Writer, r *Report) error {
	bw := bufio.NewWriter(w)
	stars := strings.Repeat("*", constants.ReportRuleWidth)
	dashes := strings.Repeat("-", constants.ReportRuleWidth)

	for _, c := range r.Clusters {
		dispatchIDs := make([]string, len(c.DispatchIDs))
		for i, id := range c.DispatchIDs {
			dispatchIDs[i] = id
			if c.IsUnresolved(id) {
				dispatchIDs[i] += notFound
			}
		}

		fmt.Fprintln(bw, stars)
		fmt.Fprintf(bw, "WZ   : %s\n", formatList(dispatchIDs))
		fmt.Fprintf(bw, "DWS  : %s\n", formatList(c.Dispositions))
		fmt.Fprintf(bw, "RW   : %s\n", formatList(c.IssueIDs))
		fmt.Fprintln(bw, dashes)
		fmt.Fprintf(bw, headerFormat, "STATUS", "INDEX", "QTY(WZ)", "QTY(RW)", "NAME")
		fmt.Fprintln(bw, dashes)
		for _, row := range c.Rows {
			fmt.Fprintf(bw, rowFormat, row.Status, row.Index, row.DispatchQuantity, row.IssueQuantity, row.Name)
		}
		fmt.Fprintln(bw, dashes)
		fmt.Fprintln(bw, stars)
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}
