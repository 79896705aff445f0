// Package timevarying exposes a ContactGraph as the query interface the
// router needs: given a node and a current time, enumerate outgoing edges
// with a contact still ahead; given an edge and a current time, return the
// waiting time until that edge's next contact. This is spec.md §4.4's
// TimeVaryingGraph contract.
package timevarying

import (
	"fmt"
	"sort"
	"time"

	"github.com/relaylink/skyplan/access"
	"github.com/relaylink/skyplan/contactgraph"
	"github.com/relaylink/skyplan/sampledstate"
)

// Graph wraps a contactgraph.ContactGraph behind the time-parameterized edge
// relation the router consumes.
type Graph struct {
	contacts *contactgraph.ContactGraph
}

// New wraps a contact graph for time-varying queries.
func New(contacts *contactgraph.ContactGraph) *Graph {
	return &Graph{contacts: contacts}
}

// Nodes returns the node set.
func (g *Graph) Nodes() []contactgraph.Node {
	return g.contacts.Nodes()
}

// OutgoingEdges returns the destination nodes d such that an edge
// "node-d" exists and its mask has at least one true entry at a grid time
// strictly greater than currentTime.
func (g *Graph) OutgoingEdges(node contactgraph.Node, currentTime time.Time) []contactgraph.Node {
	grid := g.contacts.Grid()
	startTick, ok := grid.TickAfter(currentTime)
	if !ok {
		// currentTime is at or past the last grid tick: no future contact is
		// representable, per spec.md §4.4's edge case.
		return nil
	}

	var out []contactgraph.Node
	for _, key := range g.contacts.OutgoingOf(node) {
		mask, _ := g.contacts.Mask(key)
		if nextTrueTick(mask, startTick) >= 0 {
			out = append(out, key.Dst)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EdgeValue returns the waiting time until the edge's next contact after
// currentTime: the earliest grid time t[i] > currentTime with mask[i] true,
// minus currentTime. The caller must not invoke this for a (src, dst) pair
// OutgoingEdges did not return for the same currentTime; behavior is
// undefined otherwise, per spec.md §4.4.
func (g *Graph) EdgeValue(src, dst contactgraph.Node, currentTime time.Time) (time.Duration, error) {
	grid := g.contacts.Grid()
	mask, ok := g.contacts.Mask(contactgraph.EdgeKey{Src: src, Dst: dst})
	if !ok {
		return 0, fmt.Errorf("timevarying: no edge %s-%s", src, dst)
	}

	startTick, ok := grid.TickAfter(currentTime)
	if !ok {
		return 0, fmt.Errorf("timevarying: currentTime %v is at or past the grid horizon", currentTime)
	}

	i := nextTrueTick(mask, startTick)
	if i < 0 {
		return 0, fmt.Errorf("timevarying: edge %s-%s has no contact after %v", src, dst, currentTime)
	}
	return grid.Time(sampledstate.Tick(i)).Sub(currentTime), nil
}

// nextTrueTick returns the smallest tick index >= from with mask[i] true, or
// -1 if none exists.
func nextTrueTick(mask access.Mask, from sampledstate.Tick) int {
	for i := int(from); i < len(mask); i++ {
		if mask[i] {
			return i
		}
	}
	return -1
}
