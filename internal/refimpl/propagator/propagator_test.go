package propagator

import (
	"context"
	"testing"
	"time"

	"github.com/relaylink/skyplan/orbits"
	"github.com/relaylink/skyplan/sampledstate"
	"github.com/stretchr/testify/require"
)

func TestSampleProducesOneStatePerTick(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	grid, err := sampledstate.NewGrid(epoch, 60*time.Second, 10)
	require.NoError(t, err)

	sat := orbits.KeplerianElements{
		SemiMajorAxis: 7000,
		Eccentricity:  0.001,
		Inclination:   0.9,
		Epoch:         epoch,
	}

	states, err := New().Sample(context.Background(), sat, grid)
	require.NoError(t, err)
	require.Len(t, states, 10)

	for _, s := range states {
		require.NotZero(t, s.Position.X*s.Position.X+s.Position.Y*s.Position.Y+s.Position.Z*s.Position.Z,
			"propagated position must not collapse to the origin")
	}
}

func TestSampleRespectsCancellation(t *testing.T) {
	epoch := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	grid, err := sampledstate.NewGrid(epoch, time.Second, 5)
	require.NoError(t, err)

	sat := orbits.KeplerianElements{SemiMajorAxis: 7000, Epoch: epoch}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New().Sample(ctx, sat, grid)
	require.Error(t, err)
}
