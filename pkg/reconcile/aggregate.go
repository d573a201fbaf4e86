package reconcile

import "sort"

// AggregatedItem holds the summed quantities of one item index within a cluster.
// Name comes from the dispatch side and is empty when the index never appears
// on a dispatch document.
type AggregatedItem struct {
	Index            int
	Name             string
	DispatchQuantity int
	IssueQuantity    int
	onDispatch       bool
	onIssue          bool
}

// Aggregate is the per-item view of one cluster.
type Aggregate struct {
	Items        map[int]*AggregatedItem
	Dispositions []string
	Unresolved   []string
}

// Indices returns the item indices seen on either side in ascending order.
func (a Aggregate) Indices() []int {
	indices := make([]int, 0, len(a.Items))
	for index := range a.Items {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}

// AggregateCluster sums item quantities separately over the cluster's
// dispatch and issue documents. Dispatch identifiers that do not resolve to a
// loaded record contribute nothing and are listed in Unresolved. For an index
// named differently on several dispatch lines the last line read wins;
// dispatch documents are read in identifier order.
func AggregateCluster(c Cluster, src Source) Aggregate {
	agg := Aggregate{Items: make(map[int]*AggregatedItem)}
	item := func(index int) *AggregatedItem {
		it, ok := agg.Items[index]
		if !ok {
			it = &AggregatedItem{Index: index}
			agg.Items[index] = it
		}
		return it
	}

	dispositions := make(map[string]struct{})
	for _, id := range c.DispatchIDs {
		doc, ok := src.Dispatch(id)
		if !ok {
			agg.Unresolved = append(agg.Unresolved, id)
			continue
		}
		if doc.DispositionRef != "" {
			dispositions[doc.DispositionRef] = struct{}{}
		}
		for index, quantity := range doc.ItemQuantities() {
			it := item(index)
			it.DispatchQuantity += quantity
			it.onDispatch = true
		}
		for _, line := range doc.Items {
			agg.Items[line.Index].Name = line.Name
		}
	}

	for _, id := range c.IssueIDs {
		doc, ok := src.Issue(id)
		if !ok {
			continue
		}
		for index, quantity := range doc.ItemQuantities() {
			it := item(index)
			it.IssueQuantity += quantity
			it.onIssue = true
		}
	}

	agg.Dispositions = sortedSet(dispositions)
	sort.Strings(agg.Unresolved)
	return agg
}
