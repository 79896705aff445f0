package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/internal/config"
	"github.com/relaylink/skyplan/internal/refimpl/propagator"
	"github.com/relaylink/skyplan/orbits"
	"github.com/relaylink/skyplan/planerrors"
	"github.com/stretchr/testify/require"
)

func baseConfig() config.Config {
	return config.Config{
		ConstraintTypeGS:       "elevation",
		ConstraintAngleGS:      0.2,
		ConstraintTypeSense:    "elevation",
		ConstraintAngleSense:   0.2,
		T2PropagateSeconds:     200,
		TStepSeconds:           10,
		DistanceThresholdKm:    2000,
		SlewThresholdRadPerSec: 0.05,
		SimTimeSeconds:         200,
		ISL:                    true,
	}
}

func TestPlanRejectsEmptyConstellation(t *testing.T) {
	p := New(propagator.New(), nil)
	_, err := p.Plan(context.Background(), baseConfig(), nil, []GroundStationSpec{{ID: "gs-0"}}, TargetSpec{})
	require.Error(t, err)
	require.True(t, errors.Is(err, planerrors.ErrConfiguration))
}

func TestPlanRejectsEmptyGroundStations(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := New(propagator.New(), nil)
	constellation := []SatelliteSpec{{ID: "sat-0", Elements: orbits.KeplerianElements{SemiMajorAxis: 7378.137, Epoch: epoch}}}

	_, err := p.Plan(context.Background(), baseConfig(), constellation, nil, TargetSpec{})
	require.Error(t, err)
	require.True(t, errors.Is(err, planerrors.ErrConfiguration))
}

func TestPlanRejectsInvalidConfig(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := New(propagator.New(), nil)
	constellation := []SatelliteSpec{{ID: "sat-0", Elements: orbits.KeplerianElements{SemiMajorAxis: 7378.137, Epoch: epoch}}}
	groundStations := []GroundStationSpec{{ID: "gs-0"}}

	cfg := baseConfig()
	cfg.TStepSeconds = 0

	_, err := p.Plan(context.Background(), cfg, constellation, groundStations, TargetSpec{})
	require.Error(t, err)
	require.True(t, errors.Is(err, planerrors.ErrConfiguration))
}

// TestPlanNoAccessYieldsFullWindowMetrics places an antipodal target that a
// low equatorial orbit, starting on the opposite side of Earth and moving
// only about 13 degrees in 200 s, cannot reach within the simulation
// window, exercising the full prepare/route pipeline down to the "no
// sensing access at all" edge case.
func TestPlanNoAccessYieldsFullWindowMetrics(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	constellation := []SatelliteSpec{
		{ID: "sat-0", Elements: orbits.KeplerianElements{
			SemiMajorAxis: orbits.EarthRadiusKm + 500,
			Inclination:   0,
			Epoch:         epoch,
		}},
	}
	groundStations := []GroundStationSpec{
		{ID: "gs-0", Position: geometry.Vector3{X: orbits.EarthRadiusKm, Y: 0, Z: 0}},
	}
	target := TargetSpec{Position: geometry.Vector3{X: -orbits.EarthRadiusKm, Y: 0, Z: 0}}

	p := New(propagator.New(), nil)
	result, err := p.Plan(context.Background(), baseConfig(), constellation, groundStations, target)
	require.NoError(t, err)

	require.Empty(t, result.PassTimes["sat-0"].Intervals, "an antipodal target is unreachable within this short a window")
	require.Equal(t, 200*time.Second, result.Metrics.AgeOfInformation)
	require.Equal(t, 200*time.Second, result.Metrics.SystemResponseTime)
	require.Zero(t, result.Metrics.TotalPassTime)
	require.NotNil(t, result.Contacts)
}
