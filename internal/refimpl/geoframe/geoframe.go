// Package geoframe is the default GeoFrame: a spherical Earth model,
// spinning at a fixed rate, that converts an ECI position at an absolute
// time into geodetic latitude, longitude, and height by applying Earth's
// fixed rotation rate up to that time. Unlike the source this core is
// distilled from, there is no undefined-timeDeltas branch: the same
// rotation-rate path is always applied, J2 or not.
package geoframe

import (
	"math"
	"time"

	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/orbits"
)

// EarthRotationRadPerSec is Earth's mean sidereal rotation rate.
const EarthRotationRadPerSec = 7.2921150e-5

// Spherical is the reference spherical-Earth GeoFrame, referenced to a
// fixed epoch at which the Earth-fixed and inertial frames coincide.
type Spherical struct {
	Epoch time.Time
}

// New constructs a Spherical GeoFrame referenced to epoch.
func New(epoch time.Time) Spherical {
	return Spherical{Epoch: epoch}
}

// ToLatLonH implements external.GeoFrame.
func (s Spherical) ToLatLonH(pos geometry.Vector3, t time.Time) (lat, lon, h float64) {
	r := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	lat = math.Asin(pos.Z / r)

	inertialLon := math.Atan2(pos.Y, pos.X)
	elapsed := t.Sub(s.Epoch).Seconds()
	lon = normalizeLon(inertialLon - EarthRotationRadPerSec*elapsed)

	h = r - orbits.EarthRadiusKm
	return lat, lon, h
}

func normalizeLon(lon float64) float64 {
	wrapped := math.Mod(lon+math.Pi, 2*math.Pi)
	if wrapped < 0 {
		wrapped += 2 * math.Pi
	}
	return wrapped - math.Pi
}
