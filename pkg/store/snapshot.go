package store

import (
	"sort"

	"github.com/agentstation/utc"

	"github.com/agentstation/stockrecon/pkg/documents"
)

// Kind identifies the document family a record file belongs to.
type Kind string

const (
	// KindIssue marks issue document (RW) records.
	KindIssue Kind = "issue"
	// KindDispatch marks dispatch document (WZ) records.
	KindDispatch Kind = "dispatch"
)

// SkippedRecord describes a record file that did not make it into a snapshot.
type SkippedRecord struct {
	Path   string `json:"path" yaml:"path"`
	Kind   Kind   `json:"kind" yaml:"kind"`
	Reason string `json:"reason" yaml:"reason"`
}

// Snapshot is an immutable, fully materialized set of records keyed by
// document identifier. Reconciliation runs read from it and never write back.
type Snapshot struct {
	Issues     map[string]documents.IssueDocument
	Dispatches map[string]documents.DispatchDocument
	Skipped    []SkippedRecord
	LoadedAt   utc.Time
}

// NewSnapshot builds a snapshot from in-memory records. Records are
// normalized; for duplicate identifiers the last record wins.
func NewSnapshot(issues []documents.IssueDocument, dispatches []documents.DispatchDocument) *Snapshot {
	s := newSnapshot()
	for _, doc := range issues {
		doc = doc.Normalize()
		s.Issues[doc.ID] = doc
	}
	for _, doc := range dispatches {
		doc = doc.Normalize()
		s.Dispatches[doc.ID] = doc
	}
	return s
}

func newSnapshot() *Snapshot {
	return &Snapshot{
		Issues:     make(map[string]documents.IssueDocument),
		Dispatches: make(map[string]documents.DispatchDocument),
		LoadedAt:   utc.Now(),
	}
}

// Issue returns the issue document with the given identifier.
func (s *Snapshot) Issue(id string) (documents.IssueDocument, bool) {
	doc, ok := s.Issues[id]
	return doc, ok
}

// Dispatch returns the dispatch document with the given identifier.
func (s *Snapshot) Dispatch(id string) (documents.DispatchDocument, bool) {
	doc, ok := s.Dispatches[id]
	return doc, ok
}

// IssueIDs returns all issue identifiers in ascending order.
func (s *Snapshot) IssueIDs() []string {
	return sortedKeys(s.Issues)
}

// DispatchIDs returns all dispatch identifiers in ascending order.
func (s *Snapshot) DispatchIDs() []string {
	return sortedKeys(s.Dispatches)
}

// Len returns the number of loaded records of both kinds.
func (s *Snapshot) Len() int {
	return len(s.Issues) + len(s.Dispatches)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
