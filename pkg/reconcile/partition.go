package reconcile

import "sort"

// Cluster is one connected component of the reference graph: every issue
// and dispatch document linked to each other through dispatch references.
// Both identifier lists are sorted.
type Cluster struct {
	DispatchIDs []string `json:"dispatch_ids" yaml:"dispatch_ids"`
	IssueIDs    []string `json:"issue_ids" yaml:"issue_ids"`
}

// Partition splits the graph into clusters. Every identifier lands in exactly
// one cluster; dispatch documents referenced by nothing and issue documents
// referencing nothing become singletons.
//
// Traversal uses an explicit stack, so arbitrarily long reference chains do
// not grow the call stack. Visited flags are reset on entry and belong to
// this call only.
func (g *Graph) Partition() []Cluster {
	for _, n := range g.issues {
		n.visited = false
	}
	for _, n := range g.dispatches {
		n.visited = false
	}

	var clusters []Cluster
	for _, id := range sortedNodeIDs(g.dispatches) {
		if n := g.dispatches[id]; !n.visited {
			clusters = append(clusters, g.collect(n))
		}
	}
	// Only issue documents without any dispatch reference are left.
	for _, id := range sortedNodeIDs(g.issues) {
		if n := g.issues[id]; !n.visited {
			clusters = append(clusters, g.collect(n))
		}
	}
	return clusters
}

// collect walks the component containing start, alternating between the
// dispatch and issue namespaces.
func (g *Graph) collect(start *node) Cluster {
	cluster := Cluster{DispatchIDs: []string{}, IssueIDs: []string{}}

	start.visited = true
	stack := []*node{start}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		other := dispatchSpace
		if current.space == dispatchSpace {
			cluster.DispatchIDs = append(cluster.DispatchIDs, current.id)
			other = issueSpace
		} else {
			cluster.IssueIDs = append(cluster.IssueIDs, current.id)
		}

		for id := range current.neighbors {
			next := g.lookup(other, id)
			if next == nil || next.visited {
				continue
			}
			next.visited = true
			stack = append(stack, next)
		}
	}

	sort.Strings(cluster.DispatchIDs)
	sort.Strings(cluster.IssueIDs)
	return cluster
}

func sortedNodeIDs(nodes map[string]*node) []string {
	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
