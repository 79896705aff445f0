// Package external declares the collaborator contracts the core pipeline
// consumes but does not implement: orbit propagation, maneuverer
// scheduling, and inertial-to-geodetic conversion. Swapping a reference
// implementation in internal/refimpl for a higher-fidelity one (a full
// SGP4 propagator, a real collision-avoidance scheduler, an oblate-Earth
// geoframe) never requires touching any package that imports external.
package external

import (
	"context"
	"time"

	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/orbits"
	"github.com/relaylink/skyplan/sampledstate"
)

// Propagator samples a satellite's position/velocity across a time grid.
type Propagator interface {
	Sample(ctx context.Context, sat orbits.KeplerianElements, grid sampledstate.Grid) ([]sampledstate.State, error)
}

// Scheduler selects, for a constellation about to perform a collision
// avoidance or drift maneuver toward target, which satellite in each
// orbital plane actually maneuvers. The returned map is keyed by plane
// identifier to the list of satellite identifiers chosen in that plane.
type Scheduler interface {
	SelectManeuverers(ctx context.Context, constellation []orbits.KeplerianElements, target geometry.Vector3, altChange float64) (map[string][]string, error)
}

// GeoFrame converts an inertial position at an absolute time into
// geodetic latitude, longitude, and height.
type GeoFrame interface {
	ToLatLonH(pos geometry.Vector3, t time.Time) (lat, lon, h float64)
}
