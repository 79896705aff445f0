package orchestrator

import (
	"context"
	"fmt"
	"math"

	"github.com/relaylink/skyplan/access"
	"github.com/relaylink/skyplan/contactgraph"
	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/internal/config"
	"github.com/relaylink/skyplan/intervals"
	"github.com/relaylink/skyplan/planerrors"
	"github.com/relaylink/skyplan/sampledstate"
)

// prepare runs propagation, relative-geometry evaluation, access
// evaluation, and graph construction: everything a Plan call computes
// exactly once, shared across every sensing event's Route call.
func (p *Planner) prepare(ctx context.Context, cfg config.Config, constellation []SatelliteSpec, groundStations []GroundStationSpec, target TargetSpec) (prepared, error) {
	epoch := constellation[0].Elements.Epoch
	step := cfg.TimeGridStep()
	n := int(cfg.PropagationHorizon()/step) + 1

	grid, err := sampledstate.NewGrid(epoch, step, n)
	if err != nil {
		return prepared{}, fmt.Errorf("%w: %v", planerrors.ErrConfiguration, err)
	}
	sentinel := grid.Epoch.Add(cfg.SimTime())

	trajectories := make(map[string]sampledstate.Trajectory, len(constellation))
	for _, sat := range constellation {
		states, err := p.Propagator.Sample(ctx, sat.Elements, grid)
		if err != nil {
			return prepared{}, fmt.Errorf("%w: propagating %s: %v", planerrors.ErrPropagation, sat.ID, err)
		}
		trajectories[sat.ID] = states
		if err := ctx.Err(); err != nil {
			return prepared{}, err
		}
	}

	builder := contactgraph.NewBuilder(grid)

	if cfg.ISL {
		islConstraints := access.ISLConstraints{
			MaxDistanceKm:   cfg.DistanceThresholdKm,
			MaxSlewRadPerS:  cfg.SlewThresholdRadPerSec,
			HasDopplerBound: cfg.HasDopplerBound,
			DopplerMin:      cfg.DopplerMin,
			DopplerMax:      cfg.DopplerMax,
		}
		for i := 0; i < len(constellation); i++ {
			for j := i + 1; j < len(constellation); j++ {
				a, b := constellation[i], constellation[j]
				mask := access.ISLMask(trajectories[a.ID], trajectories[b.ID], islConstraints)
				filtered, _ := intervals.MinDurationFilter(mask, grid, cfg.ISLTimeThreshold())
				if err := builder.AddISLEdge(contactgraph.SatelliteNode(a.ID), contactgraph.SatelliteNode(b.ID), filtered); err != nil {
					return prepared{}, err
				}
			}
		}
	}

	groundConstraints := access.GroundConstraints{
		Type:             constraintType(cfg.ConstraintTypeGS),
		ThresholdRadians: cfg.ConstraintAngleGS,
	}
	groundNode := make(map[string]contactgraph.Node, len(groundStations))
	groundIDs := make([]string, 0, len(groundStations))
	for _, gs := range groundStations {
		groundNode[gs.ID] = contactgraph.GroundNode(gs.ID)
		groundIDs = append(groundIDs, gs.ID)

		for _, sat := range constellation {
			mask := access.GroundAccessMask(gs.Position, trajectories[sat.ID], groundConstraints, nil)
			filtered, _ := intervals.MinDurationFilter(mask, grid, cfg.DownlinkTimeThreshold())
			if err := builder.AddDownlinkEdge(contactgraph.SatelliteNode(sat.ID), contactgraph.GroundNode(gs.ID), filtered); err != nil {
				return prepared{}, err
			}
		}
	}

	contacts := builder.Build()

	sensingConstraints := access.GroundConstraints{
		Type:             constraintType(cfg.ConstraintTypeSense),
		ThresholdRadians: cfg.ConstraintAngleSense,
		RequireLighting:  cfg.LightingRestraint,
	}

	passTimes := make(map[string]PassTimes, len(constellation))
	for _, sat := range constellation {
		var lighting access.LightingFunc
		if cfg.LightingRestraint {
			lighting = sunlitFunc(target.Position, grid)
		}
		mask := access.GroundAccessMask(target.Position, trajectories[sat.ID], sensingConstraints, lighting)
		ivs := intervals.ExtractTrue(mask, grid)

		pt := PassTimes{Intervals: ivs}
		for _, iv := range ivs {
			pt.Lengths = append(pt.Lengths, iv.Duration())
		}
		passTimes[sat.ID] = pt
	}

	return prepared{
		grid:       grid,
		sentinel:   sentinel,
		contacts:   contacts,
		passTimes:  passTimes,
		groundIDs:  groundIDs,
		groundNode: groundNode,
	}, nil
}

// earthRotationRadPerSec is Earth's mean sidereal rotation rate, used only
// to drive sunlitFunc's coarse diurnal cycle; it is not the swappable
// GeoFrame collaborator (see internal/refimpl/geoframe for that).
const earthRotationRadPerSec = 7.2921150e-5

// sunlitFunc is a coarse reference lighting model: the target is treated
// as static in this module's inertial frame (§1 non-goals: no solar
// ephemeris of its own), so day/night is modeled by sweeping a reference
// sun direction around Earth's spin axis at Earth's sidereal rate instead
// of holding it fixed. This varies per grid tick rather than per run,
// so a pass whose access interval straddles the terminator has only its
// sunlit ticks survive the lighting mask (spec.md §4.1, scenario S6);
// callers with a real solar-ephemeris source supply their own
// access.LightingFunc and skip this one entirely.
func sunlitFunc(target geometry.Vector3, grid sampledstate.Grid) access.LightingFunc {
	targetNorm := geometry.SlantRange(geometry.Vector3{}, target)
	return func(tick sampledstate.Tick) bool {
		if targetNorm == 0 {
			return false
		}
		elapsed := grid.Time(tick).Sub(grid.Epoch).Seconds()
		theta := earthRotationRadPerSec * elapsed
		sunDirection := geometry.Vector3{X: math.Cos(theta), Y: math.Sin(theta), Z: 0}
		dot := target.X*sunDirection.X + target.Y*sunDirection.Y + target.Z*sunDirection.Z
		return dot > 0
	}
}
