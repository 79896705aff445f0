// Package router implements the earliest-arrival time-dependent Dijkstra
// variant of spec.md §4.5: same relaxation shape as classical Dijkstra, with
// the edge relaxation function replaced by the time-varying graph's
// waiting-time query. The indexed priority queue here continues the
// teacher's container/heap-based priorityQueue pattern from
// routing/pathfinding.go (DESIGN NOTES explicitly endorses stdlib heap over
// a linear unvisited-set scan), re-keyed on the tentative arrival-time label
// instead of a static edge weight.
package router

import (
	"container/heap"
	"context"
	"time"

	"github.com/relaylink/skyplan/contactgraph"
	"github.com/relaylink/skyplan/timevarying"
)

// Result holds the tentative labels and predecessor map produced by one
// router run. It is scoped to a single sensing event and discarded after
// the caller extracts what it needs (spec.md §5: "router owns its label and
// predecessor maps exclusively; they are scoped to one sensing event").
type Result struct {
	// Labels holds the earliest arrival time at every node.
	Labels map[contactgraph.Node]time.Time
	// Predecessors maps a node to the node it was relaxed from. A node with
	// no entry was never relaxed (it is the source, or it is unreachable).
	Predecessors map[contactgraph.Node]contactgraph.Node
}

// Route runs the earliest-arrival Dijkstra variant from spec.md §4.5 over
// graph, starting at node start with label startTime, using sentinel as the
// "unreached" horizon bound for every other node. It returns the best
// labels/predecessors found before ctx is cancelled or the algorithm
// terminates normally; cancellation is checked once per main-loop iteration
// (coarse-grained, per spec.md §5), and partial results remain valid.
func Route(ctx context.Context, graph *timevarying.Graph, start contactgraph.Node, startTime, sentinel time.Time) Result {
	nodes := graph.Nodes()

	labels := make(map[contactgraph.Node]time.Time, len(nodes))
	predecessors := make(map[contactgraph.Node]contactgraph.Node, len(nodes))
	index := make(map[contactgraph.Node]*item, len(nodes))

	pq := make(priorityQueue, 0, len(nodes))
	for _, n := range nodes {
		label := sentinel
		if n == start {
			label = startTime
		}
		labels[n] = label
		it := &item{node: n, label: label}
		index[n] = it
		pq = append(pq, it)
	}
	heap.Init(&pq)

	settled := make(map[contactgraph.Node]bool, len(nodes))

	for pq.Len() > 0 {
		if ctx.Err() != nil {
			break
		}

		u := heap.Pop(&pq).(*item)
		if settled[u.node] {
			continue
		}
		settled[u.node] = true

		uLabel := labels[u.node]
		for _, v := range graph.OutgoingEdges(u.node, uLabel) {
			if settled[v] {
				continue
			}

			delta, err := graph.EdgeValue(u.node, v, uLabel)
			if err != nil {
				continue
			}

			candidate := uLabel.Add(delta)
			if candidate.Before(labels[v]) {
				labels[v] = candidate
				predecessors[v] = u.node
				updateLabel(&pq, index[v], candidate)
			}
		}
	}

	return Result{Labels: labels, Predecessors: predecessors}
}

// item is one node's entry in the priority queue, tracked by label.
type item struct {
	node  contactgraph.Node
	label time.Time
	index int
}

// priorityQueue orders items by label ascending; ties are broken by node
// name so that min-label selection is deterministic across runs (spec.md
// §5's determinism requirement, property P9).
type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].label.Equal(pq[j].label) {
		return pq[i].node < pq[j].node
	}
	return pq[i].label.Before(pq[j].label)
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	n := len(*pq)
	it := x.(*item)
	it.index = n
	*pq = append(*pq, it)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	it.index = -1
	*pq = old[:n-1]
	return it
}

func updateLabel(pq *priorityQueue, it *item, label time.Time) {
	it.label = label
	heap.Fix(pq, it.index)
}
