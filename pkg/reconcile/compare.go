package reconcile

// Status is the outcome of comparing one item index within a cluster.
type Status string

const (
	// StatusMatch means both sides recorded the same quantity.
	StatusMatch Status = "MATCH"
	// StatusDiscrepancy means the quantities differ or the item is missing on the dispatch side.
	StatusDiscrepancy Status = "DISCREPANCY"
)

// Reason refines a DISCREPANCY without changing its status.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonQuantityMismatch  Reason = "quantity_mismatch"
	ReasonMissingOnDispatch Reason = "missing_on_dispatch"
	ReasonMissingOnIssue    Reason = "missing_on_issue"
)

// Row is one line of a cluster comparison table.
type Row struct {
	Status           Status `json:"status" yaml:"status"`
	Index            int    `json:"index" yaml:"index"`
	DispatchQuantity int    `json:"dispatch_quantity" yaml:"dispatch_quantity"`
	IssueQuantity    int    `json:"issue_quantity" yaml:"issue_quantity"`
	Name             string `json:"name" yaml:"name"`
	Reason           Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Compare produces one row per item index in ascending index order.
// Quantities are compared literally: an index found only on issue documents
// is a discrepancy even when its issued quantity is zero.
func Compare(agg Aggregate) []Row {
	indices := agg.Indices()
	rows := make([]Row, 0, len(indices))
	for _, index := range indices {
		it := agg.Items[index]
		row := Row{
			Status:           StatusMatch,
			Index:            index,
			DispatchQuantity: it.DispatchQuantity,
			IssueQuantity:    it.IssueQuantity,
			Name:             it.Name,
		}
		switch {
		case !it.onDispatch:
			row.Status = StatusDiscrepancy
			row.Reason = ReasonMissingOnDispatch
		case it.DispatchQuantity != it.IssueQuantity && !it.onIssue:
			row.Status = StatusDiscrepancy
			row.Reason = ReasonMissingOnIssue
		case it.DispatchQuantity != it.IssueQuantity:
			row.Status = StatusDiscrepancy
			row.Reason = ReasonQuantityMismatch
		}
		rows = append(rows, row)
	}
	return rows
}
