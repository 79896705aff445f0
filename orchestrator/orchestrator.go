// Package orchestrator wires the pipeline end-to-end: it propagates a
// constellation, evaluates access and inter-satellite link feasibility,
// builds the contact graph, routes every sensing event to a ground
// station, and reports the resulting freshness metrics. It generalizes
// the teacher's simulation.Simulator (a single eagerly recomputed graph)
// into a two-phase Planner whose Prepare step runs once per run and whose
// Route step runs once per sensing event, narrowing the graph view when
// inter-satellite relay is disabled.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/relaylink/skyplan/access"
	"github.com/relaylink/skyplan/contactgraph"
	"github.com/relaylink/skyplan/downlink"
	"github.com/relaylink/skyplan/external"
	"github.com/relaylink/skyplan/freshness"
	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/internal/config"
	"github.com/relaylink/skyplan/internal/obs"
	"github.com/relaylink/skyplan/intervals"
	"github.com/relaylink/skyplan/orbits"
	"github.com/relaylink/skyplan/planerrors"
	"github.com/relaylink/skyplan/router"
	"github.com/relaylink/skyplan/sampledstate"
	"github.com/relaylink/skyplan/timevarying"
)

// SatelliteSpec names one constellation member by the orbital elements it
// starts the run at.
type SatelliteSpec struct {
	ID       string
	Elements orbits.KeplerianElements
}

// GroundStationSpec names one ground station by its fixed inertial-frame
// position. Positions are treated as static over the run, matching the
// non-rotating-Earth simplification the access package's GroundAccessMask
// already commits to.
type GroundStationSpec struct {
	ID       string
	Position geometry.Vector3
}

// TargetSpec is the ground location sensing satellites image.
type TargetSpec struct {
	Position geometry.Vector3
}

// PassTimes is one satellite's sensing-access record over the target.
type PassTimes struct {
	Intervals []intervals.Interval
	Lengths   []time.Duration
}

// Timings records the wall-clock cost of each Plan phase.
type Timings struct {
	Scheduling time.Duration
	Routing    time.Duration
	Total      time.Duration
}

// PlanResult bundles everything one Plan call produces.
type PlanResult struct {
	// RunID correlates this result's log lines and websocket broadcast
	// envelope with the Plan call that produced it.
	RunID string
	// Downlinks maps satellite ID -> pass index -> the chosen ground
	// station ID -> arrival time. A pass with no feasible route has an
	// empty inner map.
	Downlinks map[string]map[int]map[string]time.Time
	// Paths maps satellite ID -> pass index -> the reconstructed node
	// path from sensing satellite to chosen ground station. Nil for a
	// pass with no feasible route.
	Paths map[string]map[int][]contactgraph.Node
	// PassTimes maps satellite ID -> its sensing-access record.
	PassTimes map[string]PassTimes
	// Contacts is the full contact graph built during Prepare, exposed
	// for diagnostics and plotting.
	Contacts *contactgraph.ContactGraph
	Metrics  freshness.Result
	Timings  Timings
}

// Planner holds the collaborators a Plan run needs: an orbit propagator,
// a maneuverer scheduler, and optional observability hooks.
type Planner struct {
	Propagator external.Propagator
	Scheduler  external.Scheduler
	Logger     *logrus.Logger
	Timings    *obs.PhaseTimings
}

// New constructs a Planner from its required collaborators. Logger and
// Timings may be left nil; Plan degrades to silent/unmetered operation.
func New(propagator external.Propagator, scheduler external.Scheduler) *Planner {
	return &Planner{Propagator: propagator, Scheduler: scheduler}
}

// prepared holds everything computed once per run, shared across every
// sensing event's Route call.
type prepared struct {
	grid       sampledstate.Grid
	sentinel   time.Time
	contacts   *contactgraph.ContactGraph
	passTimes  map[string]PassTimes
	groundIDs  []string
	groundNode map[string]contactgraph.Node
}

// Plan runs the full prepare/route pipeline.
func (p *Planner) Plan(ctx context.Context, cfg config.Config, constellation []SatelliteSpec, groundStations []GroundStationSpec, target TargetSpec) (PlanResult, error) {
	totalStart := time.Now()
	runID := uuid.New().String()

	if err := cfg.Validate(); err != nil {
		return PlanResult{}, err
	}
	if len(constellation) == 0 {
		return PlanResult{}, fmt.Errorf("%w: constellation must not be empty", planerrors.ErrConfiguration)
	}
	if len(groundStations) == 0 {
		return PlanResult{}, fmt.Errorf("%w: ground station list must not be empty", planerrors.ErrConfiguration)
	}

	p.log().WithField("runID", runID).Info("plan run started")

	schedulingStart := time.Now()
	if cfg.Recon {
		if err := p.applyManeuvers(ctx, cfg, constellation, target); err != nil {
			return PlanResult{}, fmt.Errorf("%w: %v", planerrors.ErrPropagation, err)
		}
	}
	schedulingElapsed := time.Since(schedulingStart)

	prep, err := p.prepare(ctx, cfg, constellation, groundStations, target)
	if err != nil {
		return PlanResult{}, err
	}

	routingStart := time.Now()
	downlinks, paths, events := p.routeAllEvents(ctx, cfg, prep, runID)
	routingElapsed := time.Since(routingStart)

	var allPassIntervals []intervals.Interval
	for _, pt := range prep.passTimes {
		allPassIntervals = append(allPassIntervals, pt.Intervals...)
	}

	metrics := freshness.Metrics(events, allPassIntervals, freshness.Window{Start: prep.grid.Epoch, End: prep.sentinel})

	timings := Timings{
		Scheduling: schedulingElapsed,
		Routing:    routingElapsed,
		Total:      time.Since(totalStart),
	}
	p.recordTimings(timings)

	return PlanResult{
		RunID:     runID,
		Downlinks: downlinks,
		Paths:     paths,
		PassTimes: prep.passTimes,
		Contacts:  prep.contacts,
		Metrics:   metrics,
		Timings:   timings,
	}, nil
}

// applyManeuvers asks the scheduler which satellite in each plane
// maneuvers toward target, then shifts that satellite's semi-major axis
// by cfg.AltChange. Satellites not selected stay at their nominal orbit.
func (p *Planner) applyManeuvers(ctx context.Context, cfg config.Config, constellation []SatelliteSpec, target TargetSpec) error {
	elements := make([]orbits.KeplerianElements, len(constellation))
	for i, sat := range constellation {
		elements[i] = sat.Elements
	}

	selection, err := p.Scheduler.SelectManeuverers(ctx, elements, target.Position, cfg.AltChange)
	if err != nil {
		return err
	}

	maneuvering := make(map[int]bool)
	for _, indices := range selection {
		for _, idStr := range indices {
			for i, sat := range constellation {
				if sat.ID == idStr {
					maneuvering[i] = true
				}
			}
		}
	}

	for i := range constellation {
		if maneuvering[i] {
			constellation[i].Elements.SemiMajorAxis += cfg.AltChange
		}
	}
	return nil
}

func (p *Planner) recordTimings(t Timings) {
	if p.Timings == nil {
		return
	}
	p.Timings.Observe("scheduling", t.Scheduling.Seconds())
	p.Timings.Observe("routing", t.Routing.Seconds())
	p.Timings.Observe("total", t.Total.Seconds())
}

func (p *Planner) log() *logrus.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return logrus.StandardLogger()
}

// constraintType maps the configuration string onto the access package's
// constraint type enum, defaulting to elevation for an unrecognized value
// (Validate already rejects anything but "elevation"/"nadir" upstream).
func constraintType(s string) access.GroundConstraintType {
	if s == "nadir" {
		return access.Nadir
	}
	return access.Elevation
}

