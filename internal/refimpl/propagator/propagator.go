// Package propagator is the default Propagator: a two-body model advanced
// by first-order J2 secular drift, sampled uniformly across a time grid.
// It exists so the core is runnable standalone; a caller with a
// higher-fidelity ephemeris source swaps in their own external.Propagator
// without touching anything under sampledstate, access, or router.
package propagator

import (
	"context"

	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/orbits"
	"github.com/relaylink/skyplan/sampledstate"
)

// TwoBodyJ2 samples KeplerianElements by repeated PropagateJ2 calls, one
// per grid tick.
type TwoBodyJ2 struct{}

// New constructs the reference two-body+J2 propagator.
func New() TwoBodyJ2 {
	return TwoBodyJ2{}
}

// Sample implements external.Propagator.
func (TwoBodyJ2) Sample(ctx context.Context, sat orbits.KeplerianElements, grid sampledstate.Grid) ([]sampledstate.State, error) {
	states := make([]sampledstate.State, grid.N)
	for i := 0; i < grid.N; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := grid.Time(sampledstate.Tick(i))
		advanced := sat.PropagateJ2(t.Sub(sat.Epoch))
		pos, vel := advanced.PositionVelocity()

		states[i] = sampledstate.State{
			Position: geometry.Vector3{X: pos[0], Y: pos[1], Z: pos[2]},
			Velocity: geometry.Vector3{X: vel[0], Y: vel[1], Z: vel[2]},
		}
	}
	return states, nil
}
