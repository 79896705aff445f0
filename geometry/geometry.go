// Package geometry provides the pure, instantaneous geometric predicates the
// access evaluator builds masks from: slant range, line of sight, elevation,
// nadir angle, slew rate, and Doppler factor. Every function here is a pure
// function of two position/velocity samples; none of them carry state across
// calls, so they are safe to call at every grid tick independently.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 is a position or velocity in an Earth-centered inertial frame.
// Units are kilometers for positions, kilometers/second for velocities.
type Vector3 = r3.Vec

// EarthRadius is the mean Earth radius in kilometers.
const EarthRadius = 6371.0

// SpeedOfLightKMPerS is the propagation speed used for Doppler factor.
const SpeedOfLightKMPerS = 299792.458

// SlantRange returns the straight-line distance between two positions.
func SlantRange(a, b Vector3) float64 {
	return r3.Norm(r3.Sub(b, a))
}

// Elevation computes the elevation angle (radians) of a satellite relative to
// a ground point's local horizon. A positive elevation means the satellite is
// above the horizon.
func Elevation(ground, satellite Vector3) float64 {
	toSat := r3.Sub(satellite, ground)
	groundHat := r3.Scale(1.0/r3.Norm(ground), ground)
	return math.Asin(r3.Dot(toSat, groundHat) / r3.Norm(toSat))
}

// NadirAngle computes the angle (radians) between the satellite's nadir
// direction (toward Earth's center) and the line from the satellite to the
// ground point. Zero means the ground point is directly beneath the
// satellite.
func NadirAngle(satellite, ground Vector3) float64 {
	toNadir := r3.Scale(-1, satellite)
	toGround := r3.Sub(ground, satellite)
	cos := r3.Dot(toNadir, toGround) / (r3.Norm(toNadir) * r3.Norm(toGround))
	cos = clamp(cos, -1, 1)
	return math.Acos(cos)
}

// MeetsElevationMask returns true when the satellite is above the provided
// elevation mask (radians).
func MeetsElevationMask(ground, satellite Vector3, mask float64) bool {
	return Elevation(ground, satellite) >= mask
}

// MeetsNadirMask returns true when the ground point's nadir angle as seen
// from the satellite is within the provided mask (radians).
func MeetsNadirMask(satellite, ground Vector3, mask float64) bool {
	return NadirAngle(satellite, ground) <= mask
}

// GroundToSatelliteVisible returns true when a ground point has line of sight
// to a satellite under an elevation-mask predicate.
func GroundToSatelliteVisible(ground, satellite Vector3, elevationMask float64) bool {
	if !MeetsElevationMask(ground, satellite, elevationMask) {
		return false
	}
	return !SegmentIntersectsEarth(ground, satellite, EarthRadius)
}

// SatelliteToSatelliteVisible returns true when the segment between two
// satellites does not intersect Earth.
func SatelliteToSatelliteVisible(a, b Vector3) bool {
	return !SegmentIntersectsEarth(a, b, EarthRadius)
}

// SegmentIntersectsEarth returns true when the straight segment between p0
// and p1 passes within radius of the origin, i.e. Earth occludes the link.
func SegmentIntersectsEarth(p0, p1 Vector3, radius float64) bool {
	direction := r3.Sub(p1, p0)
	a := r3.Dot(direction, direction)
	b := 2 * r3.Dot(p0, direction)
	c := r3.Dot(p0, p0) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	denom := 2 * a
	t1 := (-b - sqrtD) / denom
	t2 := (-b + sqrtD) / denom

	const epsilon = 1e-9
	return (t1 > epsilon && t1 < 1-epsilon) || (t2 > epsilon && t2 < 1-epsilon)
}

// SlewRate returns the instantaneous angular rate (rad/s) of the
// line-of-sight vector from A to B, as seen from A: ω = |r×v| / |r|^2,
// where r is the relative position of B from A and v is the relative
// velocity of B from A.
func SlewRate(posA, posB, velA, velB Vector3) float64 {
	r := r3.Sub(posB, posA)
	v := r3.Sub(velB, velA)
	cross := r3.Cross(r, v)
	rn := r3.Norm(r)
	if rn == 0 {
		return 0
	}
	return r3.Norm(cross) / (rn * rn)
}

// DopplerFactor returns the relative frequency shift (r̂·v)/c of the link
// from A to B, as seen from A.
func DopplerFactor(posA, posB, velA, velB Vector3) float64 {
	r := r3.Sub(posB, posA)
	v := r3.Sub(velB, velA)
	rn := r3.Norm(r)
	if rn == 0 {
		return 0
	}
	rHat := r3.Scale(1/rn, r)
	return r3.Dot(rHat, v) / SpeedOfLightKMPerS
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
