package orbits

import (
	"math"
	"testing"
	"time"
)

func TestJ2SecularRatesSunSynchronousSign(t *testing.T) {
	// A retrograde LEO orbit (inclination above 90 deg) has cos(i) < 0, so
	// the first-order J2 RAAN rate -1.5·n·J2·(R/p)²·cos(i) is positive: the
	// node drifts eastward, which is what lets a sun-synchronous orbit track
	// the Sun (about +1 deg/day at this altitude and inclination).
	elements := KeplerianElements{
		SemiMajorAxis: 7078,
		Eccentricity:  0.001,
		Inclination:   98.2 * math.Pi / 180,
		Epoch:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	raanRate, _ := elements.J2SecularRates()
	if raanRate == 0 {
		t.Fatalf("expected nonzero RAAN drift for an inclined LEO orbit")
	}
	if raanRate < 0 {
		t.Fatalf("sun-synchronous-like inclination (>90deg) should drift RAAN eastward (positive), got %v", raanRate)
	}
}

func TestPropagateJ2AdvancesRAAN(t *testing.T) {
	elements := KeplerianElements{
		SemiMajorAxis: 7078,
		Eccentricity:  0.001,
		Inclination:   98.2 * math.Pi / 180,
		RAAN:          0,
		Epoch:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	propagated := elements.PropagateJ2(24 * time.Hour)
	if propagated.RAAN == elements.RAAN {
		t.Fatalf("expected RAAN to drift over one day under J2")
	}
}

func TestPositionVelocityMagnitudeMatchesPerigeeRadius(t *testing.T) {
	elements := KeplerianElements{
		SemiMajorAxis: 7000,
		Eccentricity:  0.01,
		Inclination:   0.5,
		RAAN:          0.2,
		ArgumentOfPeriapsis: 0,
		MeanAnomaly:         0, // perigee
		Epoch:               time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	pos, _ := elements.PositionVelocity()
	r := math.Sqrt(pos[0]*pos[0] + pos[1]*pos[1] + pos[2]*pos[2])
	expectedPerigee := elements.SemiMajorAxis * (1 - elements.Eccentricity)

	if math.Abs(r-expectedPerigee) > 1e-6 {
		t.Fatalf("expected perigee radius %v, got %v", expectedPerigee, r)
	}
}
