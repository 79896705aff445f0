package orchestrator

import (
	"context"
	"sort"
	"time"

	"github.com/relaylink/skyplan/contactgraph"
	"github.com/relaylink/skyplan/downlink"
	"github.com/relaylink/skyplan/freshness"
	"github.com/relaylink/skyplan/internal/config"
	"github.com/relaylink/skyplan/router"
	"github.com/relaylink/skyplan/timevarying"
)

// routeAllEvents runs the router once per sensing event (one per sensing
// satellite's pass interval), restricting the graph view per event when
// cfg.ISL is false, and returns the Downlinks/Paths bundle plus the
// downlink events freshness.Metrics needs.
func (p *Planner) routeAllEvents(ctx context.Context, cfg config.Config, prep prepared, runID string) (map[string]map[int]map[string]time.Time, map[string]map[int][]contactgraph.Node, []freshness.Event) {
	downlinks := make(map[string]map[int]map[string]time.Time)
	paths := make(map[string]map[int][]contactgraph.Node)
	var events []freshness.Event

	// Built once, in deterministic (sorted) node order, rather than ranged
	// from prep.groundNode per event: a map-iteration order would make the
	// ground station downlink.Select sees vary run-to-run, which — combined
	// with Select's tie-break — could pick a different station whenever two
	// stations share an arrival label (spec.md §5 / property P9, scenario
	// S4).
	groundNodes := make([]contactgraph.Node, 0, len(prep.groundIDs))
	for _, id := range prep.groundIDs {
		groundNodes = append(groundNodes, prep.groundNode[id])
	}
	sort.Slice(groundNodes, func(i, j int) bool { return groundNodes[i] < groundNodes[j] })

	for satID, pt := range prep.passTimes {
		if ctx.Err() != nil {
			break
		}

		source := contactgraph.SatelliteNode(satID)
		downlinks[satID] = make(map[int]map[string]time.Time, len(pt.Intervals))
		paths[satID] = make(map[int][]contactgraph.Node, len(pt.Intervals))

		for i, iv := range pt.Intervals {
			if ctx.Err() != nil {
				break
			}

			view := prep.contacts
			if !cfg.ISL {
				view = restrictGraph(prep.contacts, source)
			}
			tv := timevarying.New(view)

			result := router.Route(ctx, tv, source, iv.End, prep.sentinel)

			sel := downlink.Select(result, source, groundNodes, prep.sentinel)

			if sel.Reached {
				downlinks[satID][i] = map[string]time.Time{sel.Station.ID(): sel.ArrivalTime}
				paths[satID][i] = sel.Path
				events = append(events, freshness.Event{PassEnd: iv.End, DownlinkTime: sel.ArrivalTime})
			} else {
				downlinks[satID][i] = map[string]time.Time{}
				paths[satID][i] = nil
				p.log().WithFields(map[string]interface{}{
					"runID":     runID,
					"satellite": satID,
					"passIndex": i,
					"passEnd":   iv.End,
				}).Debug("no feasible route to any ground station within horizon")
			}
		}
	}

	return downlinks, paths, events
}

// restrictGraph narrows a full contact graph to the per-event view used
// when inter-satellite relay is disabled: every surviving edge's
// endpoints must each be either the sensing satellite or a ground
// station, which keeps direct sensing-satellite-to-ground-station edges
// and drops every inter-satellite relay hop.
func restrictGraph(full *contactgraph.ContactGraph, sensingSat contactgraph.Node) *contactgraph.ContactGraph {
	builder := contactgraph.NewBuilder(full.Grid())

	for _, key := range full.Edges() {
		if !edgeAllowed(key, sensingSat) {
			continue
		}
		// Only the satellite-to-ground direction needs inserting;
		// AddDownlinkEdge inserts the reverse direction itself, and the
		// ground-to-satellite key for the same pair is visited separately
		// by this loop and would otherwise be a harmless duplicate insert.
		if key.Src.IsSatellite() && key.Dst.IsGround() {
			mask, _ := full.Mask(key)
			_ = builder.AddDownlinkEdge(key.Src, key.Dst, mask)
		}
	}

	return builder.Build()
}

// edgeAllowed reports whether key survives the ISL-disabled restriction:
// both endpoints must individually be the sensing satellite or a ground
// node.
func edgeAllowed(key contactgraph.EdgeKey, sensingSat contactgraph.Node) bool {
	endpointOK := func(n contactgraph.Node) bool { return n == sensingSat || n.IsGround() }
	return endpointOK(key.Src) && endpointOK(key.Dst)
}
