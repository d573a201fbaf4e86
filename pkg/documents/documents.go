// Package documents defines the warehouse records reconciled by stockrecon:
// issue documents (RW, stock withdrawn) and dispatch documents (WZ, stock
// shipped against a disposition). Records are plain values; they are
// normalized and validated once at the store boundary and never mutated
// afterwards.
package documents

import (
	"strings"

	"github.com/agentstation/stockrecon/pkg/constants"
)

// IssueItem is one line of an issue document.
type IssueItem struct {
	Index    int `json:"index" yaml:"index"`
	Quantity int `json:"quantity" yaml:"quantity"`
}

// DispatchItem is one line of a dispatch document.
type DispatchItem struct {
	Index    int    `json:"index" yaml:"index"`
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
}

// IssueDocument records stock withdrawn from the warehouse.
// DispatchRefs are the only references used to link documents;
// DispositionRefs are informational.
type IssueDocument struct {
	ID              string      `json:"RW_document" yaml:"RW_document"`
	DispositionRefs []string    `json:"DWS_documents" yaml:"DWS_documents"`
	DispatchRefs    []string    `json:"WZ_documents" yaml:"WZ_documents"`
	Items           []IssueItem `json:"items" yaml:"items"`
}

// DispatchDocument records stock shipped out against one disposition.
type DispatchDocument struct {
	ID             string         `json:"WZ_number" yaml:"WZ_number"`
	DispositionRef string         `json:"DWS_number" yaml:"DWS_number"`
	Items          []DispatchItem `json:"items" yaml:"items"`
}

// Normalize returns a copy of the document with a canonical identifier,
// trimmed references and non-nil collections. A missing identifier becomes
// constants.UnknownID.
func (d IssueDocument) Normalize() IssueDocument {
	out := IssueDocument{
		ID:              CanonicalIssueID(d.ID),
		DispositionRefs: trimAll(d.DispositionRefs),
		DispatchRefs:    trimAll(d.DispatchRefs),
		Items:           append([]IssueItem{}, d.Items...),
	}
	if out.ID == "" {
		out.ID = constants.UnknownID
	}
	return out
}

// Normalize returns a copy of the document with a trimmed identifier and
// non-nil items. A missing identifier becomes constants.UnknownID.
func (d DispatchDocument) Normalize() DispatchDocument {
	out := DispatchDocument{
		ID:             strings.TrimSpace(d.ID),
		DispositionRef: strings.TrimSpace(d.DispositionRef),
		Items:          append([]DispatchItem{}, d.Items...),
	}
	if out.ID == "" {
		out.ID = constants.UnknownID
	}
	return out
}

// ItemQuantities sums the quantity per item index. Repeated indices are
// separate lines and are added together.
func (d IssueDocument) ItemQuantities() map[int]int {
	sums := make(map[int]int, len(d.Items))
	for _, item := range d.Items {
		sums[item.Index] += item.Quantity
	}
	return sums
}

// ItemQuantities sums the quantity per item index.
func (d DispatchDocument) ItemQuantities() map[int]int {
	sums := make(map[int]int, len(d.Items))
	for _, item := range d.Items {
		sums[item.Index] += item.Quantity
	}
	return sums
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
