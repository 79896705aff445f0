package access

import (
	"testing"

	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/sampledstate"
	"github.com/stretchr/testify/require"
)

func TestISLMaskRejectsBeyondMaxDistance(t *testing.T) {
	trajA := sampledstate.Trajectory{
		{Position: geometry.Vector3{X: geometry.EarthRadius + 1000, Y: 0, Z: 0}, Velocity: geometry.Vector3{X: 0, Y: 7, Z: 0}},
	}
	trajB := sampledstate.Trajectory{
		{Position: geometry.Vector3{X: geometry.EarthRadius + 1000, Y: 50000, Z: 0}, Velocity: geometry.Vector3{X: 0, Y: -7, Z: 0}},
	}

	mask := ISLMask(trajA, trajB, ISLConstraints{MaxDistanceKm: 500, MaxSlewRadPerS: 1})
	require.Len(t, mask, 1)
	require.False(t, mask[0], "link far beyond max distance must be infeasible")
}

func TestISLMaskAcceptsWithinBounds(t *testing.T) {
	trajA := sampledstate.Trajectory{
		{Position: geometry.Vector3{X: geometry.EarthRadius + 1000, Y: 0, Z: 0}, Velocity: geometry.Vector3{X: 0, Y: 0, Z: 0}},
	}
	trajB := sampledstate.Trajectory{
		{Position: geometry.Vector3{X: geometry.EarthRadius + 1000, Y: 100, Z: 0}, Velocity: geometry.Vector3{X: 0, Y: 0, Z: 0}},
	}

	mask := ISLMask(trajA, trajB, ISLConstraints{MaxDistanceKm: 500, MaxSlewRadPerS: 1})
	require.Len(t, mask, 1)
	require.True(t, mask[0])
}

func TestISLMaskRejectsEarthOccludedLink(t *testing.T) {
	trajA := sampledstate.Trajectory{
		{Position: geometry.Vector3{X: geometry.EarthRadius + 500, Y: 0, Z: 0}},
	}
	trajB := sampledstate.Trajectory{
		{Position: geometry.Vector3{X: -(geometry.EarthRadius + 500), Y: 0, Z: 0}},
	}

	mask := ISLMask(trajA, trajB, ISLConstraints{MaxDistanceKm: 1e9, MaxSlewRadPerS: 1e9})
	require.False(t, mask[0], "link through Earth must be infeasible regardless of distance/slew bounds")
}

func TestGroundAccessMaskElevation(t *testing.T) {
	ground := geometry.Vector3{X: geometry.EarthRadius, Y: 0, Z: 0}
	traj := sampledstate.Trajectory{
		{Position: geometry.Vector3{X: geometry.EarthRadius + 500, Y: 0, Z: 0}},     // overhead
		{Position: geometry.Vector3{X: -(geometry.EarthRadius + 500), Y: 0, Z: 0}}, // opposite side
	}

	mask := GroundAccessMask(ground, traj, GroundConstraints{Type: Elevation, ThresholdRadians: 0}, nil)
	require.Equal(t, Mask{true, false}, mask)
}

func TestGroundAccessMaskRequiresLightingWhenConfigured(t *testing.T) {
	ground := geometry.Vector3{X: geometry.EarthRadius, Y: 0, Z: 0}
	traj := sampledstate.Trajectory{
		{Position: geometry.Vector3{X: geometry.EarthRadius + 500, Y: 0, Z: 0}},
		{Position: geometry.Vector3{X: geometry.EarthRadius + 500, Y: 0, Z: 0}},
	}

	lighting := func(tick sampledstate.Tick) bool { return tick == 1 }

	mask := GroundAccessMask(ground, traj, GroundConstraints{Type: Elevation, ThresholdRadians: 0, RequireLighting: true}, lighting)
	require.Equal(t, Mask{false, true}, mask)
}

func TestAndElementwise(t *testing.T) {
	a := Mask{true, true, false}
	b := Mask{true, false, false}
	require.Equal(t, Mask{true, false, false}, And(a, b))
}
