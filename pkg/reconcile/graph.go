package reconcile

import (
	"sort"

	"github.com/agentstation/stockrecon/pkg/documents"
)

// Source is the read-only record set a reconciliation runs over.
// *store.Snapshot implements it.
type Source interface {
	IssueIDs() []string
	DispatchIDs() []string
	Issue(id string) (documents.IssueDocument, bool)
	Dispatch(id string) (documents.DispatchDocument, bool)
}

// namespace separates issue identifiers from dispatch identifiers, which are
// allowed to collide as strings.
type namespace int

const (
	issueSpace namespace = iota
	dispatchSpace
)

// node is one document identifier in the reference graph.
type node struct {
	id         string
	space      namespace
	visited    bool
	unresolved bool
	neighbors  map[string]struct{}
}

func newNode(id string, space namespace) *node {
	return &node{id: id, space: space, neighbors: make(map[string]struct{})}
}

// Graph links issue documents and dispatch documents through the dispatch
// references stored on issue documents. Links are traversable both ways.
type Graph struct {
	issues     map[string]*node
	dispatches map[string]*node
}

// BuildGraph creates one node per loaded document and one edge per dispatch
// reference. A reference to a dispatch document that was never loaded gets a
// placeholder node flagged unresolved; it is data, not an error.
func BuildGraph(src Source) *Graph {
	g := &Graph{
		issues:     make(map[string]*node),
		dispatches: make(map[string]*node),
	}

	for _, id := range src.DispatchIDs() {
		g.dispatches[id] = newNode(id, dispatchSpace)
	}

	for _, issueID := range src.IssueIDs() {
		issueNode := newNode(issueID, issueSpace)
		g.issues[issueID] = issueNode

		doc, _ := src.Issue(issueID)
		for _, dispatchID := range doc.DispatchRefs {
			dispatchNode, ok := g.dispatches[dispatchID]
			if !ok {
				dispatchNode = newNode(dispatchID, dispatchSpace)
				dispatchNode.unresolved = true
				g.dispatches[dispatchID] = dispatchNode
			}
			dispatchNode.neighbors[issueID] = struct{}{}
			issueNode.neighbors[dispatchID] = struct{}{}
		}
	}

	return g
}

// IssueNeighbors returns the dispatch identifiers referenced by an issue document.
func (g *Graph) IssueNeighbors(issueID string) []string {
	if n, ok := g.issues[issueID]; ok {
		return sortedSet(n.neighbors)
	}
	return nil
}

// DispatchNeighbors returns the issue identifiers referencing a dispatch document.
func (g *Graph) DispatchNeighbors(dispatchID string) []string {
	if n, ok := g.dispatches[dispatchID]; ok {
		return sortedSet(n.neighbors)
	}
	return nil
}

// Unresolved reports whether a dispatch identifier is only known from a reference.
func (g *Graph) Unresolved(dispatchID string) bool {
	n, ok := g.dispatches[dispatchID]
	return ok && n.unresolved
}

// UnresolvedDispatchIDs returns every dangling dispatch reference in ascending order.
func (g *Graph) UnresolvedDispatchIDs() []string {
	var ids []string
	for id, n := range g.dispatches {
		if n.unresolved {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// lookup returns the node for id in the given namespace.
func (g *Graph) lookup(space namespace, id string) *node {
	if space == issueSpace {
		return g.issues[id]
	}
	return g.dispatches[id]
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
