// Package contactgraph assembles the surviving per-edge contact masks into a
// directed edge set keyed by (source, destination) node pairs, adapted from
// the teacher's routing.BuildGraph (which built a single-instant visibility
// graph) into a mask-over-time graph per spec.md §4.3.
package contactgraph

import (
	"fmt"

	"github.com/relaylink/skyplan/access"
	"github.com/relaylink/skyplan/sampledstate"
)

// ContactGraph is the assembled edge set of spec.md §3: a node set, a
// contact mask per directed edge, and the shared time grid those masks are
// aligned to.
type ContactGraph struct {
	grid     sampledstate.Grid
	nodeSet  map[Node]struct{}
	contacts map[EdgeKey]access.Mask
}

// Grid returns the shared time grid every mask in the graph is aligned to.
func (g *ContactGraph) Grid() sampledstate.Grid {
	return g.grid
}

// Nodes returns the node set, derived as the union of nodes that appear in
// any surviving edge key (spec invariant I5).
func (g *ContactGraph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodeSet))
	for n := range g.nodeSet {
		out = append(out, n)
	}
	return out
}

// Mask returns the contact mask for a directed edge and whether it exists.
func (g *ContactGraph) Mask(key EdgeKey) (access.Mask, bool) {
	m, ok := g.contacts[key]
	return m, ok
}

// Edges returns all directed edge keys currently in the graph.
func (g *ContactGraph) Edges() []EdgeKey {
	out := make([]EdgeKey, 0, len(g.contacts))
	for k := range g.contacts {
		out = append(out, k)
	}
	return out
}

// OutgoingOf returns the directed edge keys whose source is n.
func (g *ContactGraph) OutgoingOf(n Node) []EdgeKey {
	var out []EdgeKey
	for k := range g.contacts {
		if k.Src == n {
			out = append(out, k)
		}
	}
	return out
}

// Builder accumulates edges before producing an immutable ContactGraph.
// Once built, a ContactGraph is never mutated (spec.md §5's "state arrays
// are read-only after construction").
type Builder struct {
	grid     sampledstate.Grid
	contacts map[EdgeKey]access.Mask
}

// NewBuilder starts a builder over the shared time grid every inserted mask
// must be aligned to (spec invariant I1).
func NewBuilder(grid sampledstate.Grid) *Builder {
	return &Builder{grid: grid, contacts: make(map[EdgeKey]access.Mask)}
}

// AddISLEdge inserts a symmetric inter-satellite link mask under both
// directions, per spec.md §4.3 ("same data, both directions"). a and b must
// both be satellite nodes.
func (b *Builder) AddISLEdge(a, b2 Node, mask access.Mask) error {
	if !a.IsSatellite() || !b2.IsSatellite() {
		return fmt.Errorf("contactgraph: AddISLEdge requires two satellite nodes, got %s and %s", a, b2)
	}
	if a == b2 {
		return fmt.Errorf("contactgraph: refusing self-loop on %s", a)
	}
	if err := b.checkGridLength(mask); err != nil {
		return err
	}

	b.contacts[EdgeKey{Src: a, Dst: b2}] = mask
	b.contacts[EdgeKey{Src: b2, Dst: a}] = mask
	return nil
}

// AddDownlinkEdge inserts a symmetric satellite<->ground-station mask under
// both directions, per spec.md §4.3.
func (b *Builder) AddDownlinkEdge(sat, ground Node, mask access.Mask) error {
	if !sat.IsSatellite() || !ground.IsGround() {
		return fmt.Errorf("contactgraph: AddDownlinkEdge requires a satellite and a ground node, got %s and %s", sat, ground)
	}
	if err := b.checkGridLength(mask); err != nil {
		return err
	}

	b.contacts[EdgeKey{Src: sat, Dst: ground}] = mask
	b.contacts[EdgeKey{Src: ground, Dst: sat}] = mask
	return nil
}

func (b *Builder) checkGridLength(mask access.Mask) error {
	if len(mask) != b.grid.N {
		return fmt.Errorf("contactgraph: mask length %d does not match grid length %d", len(mask), b.grid.N)
	}
	return nil
}

// Build produces the immutable ContactGraph. Ground-to-ground edges are
// never inserted by this builder (invariant I4) and the node set is derived
// from the surviving edges (invariant I5).
func (b *Builder) Build() *ContactGraph {
	nodeSet := make(map[Node]struct{})
	for k := range b.contacts {
		nodeSet[k.Src] = struct{}{}
		nodeSet[k.Dst] = struct{}{}
	}

	contacts := make(map[EdgeKey]access.Mask, len(b.contacts))
	for k, v := range b.contacts {
		contacts[k] = v
	}

	return &ContactGraph{grid: b.grid, nodeSet: nodeSet, contacts: contacts}
}
