package extract

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/agentstation/stockrecon/pkg/documents"
)

// Verification labels.
const (
	LabelOK      = "OK"
	LabelNoDWS   = "NO DWS"
	LabelNoWZ    = "NO WZ"
	LabelNoItems = "NO ITEMS"
)

const reportFormat = "%-12s  %-13s  %-12s  %7s  %s\n"

// Verification summarizes what was recognized in one decoded text file.
type Verification struct {
	IssueID      string `json:"issue_id" yaml:"issue_id"`
	Dispositions string `json:"dispositions" yaml:"dispositions"`
	Dispatches   string `json:"dispatches" yaml:"dispatches"`
	Items        string `json:"items" yaml:"items"`
	ItemCount    int    `json:"item_count" yaml:"item_count"`
	Source       string `json:"source" yaml:"source"`
	Output       string `json:"output,omitempty" yaml:"output,omitempty"`
}

// Complete reports whether every section of the document was recognized.
func (v Verification) Complete() bool {
	return v.Dispositions == LabelOK && v.Dispatches == LabelOK && v.ItemCount > 0
}

// Verify checks a decoded document for missing sections.
func Verify(doc documents.IssueDocument, source string) Verification {
	v := Verification{
		IssueID:      doc.ID,
		Dispositions: LabelNoDWS,
		Dispatches:   LabelNoWZ,
		Items:        LabelNoItems,
		ItemCount:    len(doc.Items),
		Source:       source,
	}
	if len(doc.DispositionRefs) > 0 {
		v.Dispositions = LabelOK
	}
	if len(doc.DispatchRefs) > 0 {
		v.Dispatches = LabelOK
	}
	if v.ItemCount > 0 {
		v.Items = strconv.Itoa(v.ItemCount)
	}
	return v
}

// SortVerifications orders verifications by issue identifier, then source.
func SortVerifications(vs []Verification) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].IssueID != vs[j].IssueID {
			return vs[i].IssueID < vs[j].IssueID
		}
		return vs[i].Source < vs[j].Source
	})
}

// WriteReport renders verifications as a fixed-width processing report
// followed by a total line.
func WriteReport(w io.Writer, vs []Verification) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, reportFormat, "ISSUE (RW)", "DISPOSITIONS", "DISPATCHES", "ITEMS", "SOURCE")
	for _, v := range vs {
		fmt.Fprintf(bw, reportFormat, v.IssueID, v.Dispositions, v.Dispatches, v.Items, v.Source)
	}
	fmt.Fprintf(bw, "Issue documents processed: %d\n", len(vs))
	return bw.Flush()
}
