// Package scheduler is the default Scheduler: it groups a constellation by
// orbital plane (identical RAAN and inclination, within tolerance) and
// picks the satellite whose current position is closest to target as that
// plane's maneuverer. A caller with a real collision-avoidance or
// fuel-balancing policy supplies their own external.Scheduler.
package scheduler

import (
	"context"
	"fmt"
	"math"

	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/orbits"
)

// ClosestPerPlane is the one-maneuverer-per-orbital-plane reference
// scheduler.
type ClosestPerPlane struct {
	// ToleranceRad groups satellites into the same plane when their RAAN
	// and inclination differ by no more than this amount.
	ToleranceRad float64
}

// New constructs the reference scheduler with a default plane-grouping
// tolerance of one tenth of a degree.
func New() ClosestPerPlane {
	return ClosestPerPlane{ToleranceRad: 0.1 * math.Pi / 180}
}

// SelectManeuverers implements external.Scheduler. altChange is accepted
// for interface conformance but does not affect selection in this
// reference policy; a fuel-aware scheduler would use it to discount
// candidates whose remaining delta-v cannot cover the requested drift.
func (c ClosestPerPlane) SelectManeuverers(ctx context.Context, constellation []orbits.KeplerianElements, target geometry.Vector3, altChange float64) (map[string][]string, error) {
	if len(constellation) == 0 {
		return nil, fmt.Errorf("scheduler: empty constellation")
	}

	planes := c.groupByPlane(constellation)

	out := make(map[string][]string, len(planes))
	for planeID, members := range planes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		best := members[0]
		bestDist := c.distanceToTarget(constellation[best], target)
		for _, idx := range members[1:] {
			d := c.distanceToTarget(constellation[idx], target)
			if d < bestDist {
				best, bestDist = idx, d
			}
		}
		out[planeID] = []string{satelliteID(best)}
	}
	return out, nil
}

func (c ClosestPerPlane) distanceToTarget(sat orbits.KeplerianElements, target geometry.Vector3) float64 {
	pos, _ := sat.PositionVelocity()
	return geometry.SlantRange(geometry.Vector3{X: pos[0], Y: pos[1], Z: pos[2]}, target)
}

// groupByPlane partitions constellation indices into planes keyed by a
// synthetic planeID, merging any satellite whose RAAN and inclination both
// fall within ToleranceRad of an existing plane's first member.
func (c ClosestPerPlane) groupByPlane(constellation []orbits.KeplerianElements) map[string][]int {
	type planeKey struct {
		raan, inc float64
	}
	var keys []planeKey
	planes := make(map[string][]int)

	for i, sat := range constellation {
		matched := -1
		for k, pk := range keys {
			if math.Abs(pk.raan-sat.RAAN) <= c.ToleranceRad && math.Abs(pk.inc-sat.Inclination) <= c.ToleranceRad {
				matched = k
				break
			}
		}
		if matched < 0 {
			keys = append(keys, planeKey{raan: sat.RAAN, inc: sat.Inclination})
			matched = len(keys) - 1
		}
		planeID := fmt.Sprintf("plane-%d", matched)
		planes[planeID] = append(planes[planeID], i)
	}
	return planes
}

func satelliteID(index int) string {
	return fmt.Sprintf("sat-%d", index)
}
