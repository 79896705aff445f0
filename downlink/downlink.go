// Package downlink picks, for one sensing event, which ground station
// delivers the imagery earliest and reconstructs the relay path that got it
// there.
package downlink

import (
	"time"

	"github.com/relaylink/skyplan/contactgraph"
	"github.com/relaylink/skyplan/router"
)

// Selection is the outcome of choosing a ground station for one sensing
// event.
type Selection struct {
	// Station is the chosen ground node. Zero value when Reached is false.
	Station contactgraph.Node
	// ArrivalTime is Station's earliest-arrival label. Equal to the
	// horizon sentinel when Reached is false.
	ArrivalTime time.Time
	// Reached reports whether any ground station was reachable within the
	// router's horizon.
	Reached bool
	// Path is the ordered node sequence from the sensing satellite to
	// Station, inclusive of both endpoints. Nil when Reached is false.
	Path []contactgraph.Node
}

// Select runs over a completed router.Result and picks the ground node with
// the smallest arrival label among groundStations. sentinel is the horizon
// value the router used for unreached nodes; a selection whose best label
// equals sentinel is reported as unreached, matching the router's "no
// feasible path" encoding.
//
// Ties in the arrival label are broken by node string order, independent of
// groundStations' input order (which callers may build by ranging over a
// map), so the selection is deterministic across runs per spec.md §5 and
// property P9.
func Select(result router.Result, source contactgraph.Node, groundStations []contactgraph.Node, sentinel time.Time) Selection {
	var best contactgraph.Node
	bestLabel := sentinel
	found := false

	for _, g := range groundStations {
		label, ok := result.Labels[g]
		if !ok {
			continue
		}
		if !found || label.Before(bestLabel) || (label.Equal(bestLabel) && g < best) {
			best = g
			bestLabel = label
			found = true
		}
	}

	if !found || !bestLabel.Before(sentinel) {
		return Selection{ArrivalTime: sentinel, Reached: false}
	}

	path := reconstructPath(result, source, best)
	return Selection{Station: best, ArrivalTime: bestLabel, Reached: true, Path: path}
}

// reconstructPath walks the predecessor chain from dst back to src and
// reverses it into a source-to-destination path. It returns nil if dst is
// not reachable from src through the recorded predecessors (a defensive
// case; Select only calls this once a finite label has confirmed
// reachability).
func reconstructPath(result router.Result, src, dst contactgraph.Node) []contactgraph.Node {
	var reversed []contactgraph.Node
	cur := dst
	reversed = append(reversed, cur)

	for cur != src {
		prev, ok := result.Predecessors[cur]
		if !ok {
			return nil
		}
		cur = prev
		reversed = append(reversed, cur)
	}

	path := make([]contactgraph.Node, len(reversed))
	for i, n := range reversed {
		path[len(reversed)-1-i] = n
	}
	return path
}
