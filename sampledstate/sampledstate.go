// Package sampledstate holds the immutable, per-step snapshots produced by
// the external propagator: satellite position/velocity and the relative
// geometry between satellite pairs, indexed by a uniform time grid. Nothing
// in this package mutates after construction; it is the read-only substrate
// every later pipeline stage samples from.
package sampledstate

import (
	"fmt"
	"time"

	"github.com/relaylink/skyplan/geometry"
)

// Tick is an index into a Grid's uniform time steps.
type Tick int

// Grid is a strictly increasing, uniformly-stepped sequence of absolute
// instants shared by every mask and sample array in one planning run.
type Grid struct {
	Epoch time.Time
	Step  time.Duration
	N     int
}

// NewGrid builds a grid of n ticks starting at epoch, stepped by step.
func NewGrid(epoch time.Time, step time.Duration, n int) (Grid, error) {
	if step <= 0 {
		return Grid{}, fmt.Errorf("sampledstate: non-positive tStep %v", step)
	}
	if n <= 0 {
		return Grid{}, fmt.Errorf("sampledstate: grid must have at least one tick, got %d", n)
	}
	return Grid{Epoch: epoch, Step: step, N: n}, nil
}

// Time returns the absolute instant at tick i.
func (g Grid) Time(i Tick) time.Time {
	return g.Epoch.Add(time.Duration(i) * g.Step)
}

// TickAfter returns the smallest tick whose time is strictly after t, and
// whether any such tick exists within the grid. The grid's uniform step
// makes this a direct arithmetic lookup rather than a scan.
func (g Grid) TickAfter(t time.Time) (Tick, bool) {
	if !t.Before(g.Time(g.Last())) {
		return 0, false
	}
	if t.Before(g.Epoch) {
		return 0, true
	}

	elapsed := t.Sub(g.Epoch)
	i := int(elapsed / g.Step)
	for i < g.N && !g.Time(Tick(i)).After(t) {
		i++
	}
	return Tick(i), true
}

// Last returns the final tick index.
func (g Grid) Last() Tick {
	return Tick(g.N - 1)
}

// State is a satellite's sampled position and velocity at one grid tick.
type State struct {
	Position geometry.Vector3
	Velocity geometry.Vector3
}

// Trajectory is the full sampled state of one satellite over the grid.
type Trajectory []State

// RelativePairSample captures the relative geometry of an ordered satellite
// pair (A, B) at one grid tick, as spec.md §3 defines it.
type RelativePairSample struct {
	RelativePosition    geometry.Vector3
	RelativePositionNorm float64
	RelativeVelocity    geometry.Vector3
	RelativeVelocityNorm float64
	SlewRate            float64 // rad/s, as seen from A
	DopplerFactor        float64
	LineOfSight          bool
}

// AccessSample captures the geometry of a (satellite, ground-location) pair
// at one grid tick.
type AccessSample struct {
	ElevationRad float64
	NadirRad     float64
	Sunlit       bool
}
