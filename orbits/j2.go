package orbits

import (
	"math"
	"time"
)

// J2 is Earth's second dynamic form factor (oblateness), dimensionless.
const J2 = 1.08263e-3

// EarthRadiusKm is the equatorial radius used by the J2 secular-drift terms.
const EarthRadiusKm = 6378.137

// J2SecularRates returns the secular drift rates (rad/s) of RAAN and the
// argument of periapsis induced by Earth's oblateness, for the orbit's
// current semi-major axis, eccentricity, and inclination. These are the
// standard first-order J2 perturbation rates; higher-order and short-period
// terms are out of scope for this core.
func (k KeplerianElements) J2SecularRates() (raanRate, argPeriapsisRate float64) {
	n := k.MeanMotion()
	a := k.SemiMajorAxis
	e := k.Eccentricity
	i := k.Inclination

	p := a * (1 - e*e)
	factor := -1.5 * n * J2 * (EarthRadiusKm * EarthRadiusKm) / (p * p)

	raanRate = factor * math.Cos(i)
	argPeriapsisRate = factor * (2.5*math.Sin(i)*math.Sin(i) - 2)
	return raanRate, argPeriapsisRate
}

// PropagateJ2 advances the orbit by dt using a two-body mean-anomaly update
// plus first-order J2 secular drift of RAAN and argument of periapsis. This
// is the reference propagation model spec.md §1 describes ("two-body + J2
// perturbation"); it is deliberately simplified relative to a full SGP4
// propagator since the spec treats orbit dynamics fidelity as an external,
// swappable concern.
func (k KeplerianElements) PropagateJ2(dt time.Duration) KeplerianElements {
	propagated := k.Propagate(dt)

	raanRate, argPeriapsisRate := k.J2SecularRates()
	seconds := dt.Seconds()
	propagated.RAAN = normalizeAngle(k.RAAN + raanRate*seconds)
	propagated.ArgumentOfPeriapsis = normalizeAngle(k.ArgumentOfPeriapsis + argPeriapsisRate*seconds)

	return propagated
}

// PositionVelocity converts the orbital elements to a Cartesian position
// (km) and velocity (km/s) in an Earth-centered inertial frame via the
// perifocal-to-ECI rotation.
func (k KeplerianElements) PositionVelocity() (pos, vel [3]float64) {
	mu := k.Mu
	if mu == 0 {
		mu = EarthMu
	}

	e := k.Eccentricity
	eccentric := EccentricAnomalyFromMean(k.MeanAnomaly, e)
	trueAnom := TrueAnomalyFromEccentric(eccentric, e)

	p := k.SemiMajorAxis * (1 - e*e)
	r := p / (1 + e*math.Cos(trueAnom))

	// Position and velocity in the perifocal (PQW) frame.
	xP := r * math.Cos(trueAnom)
	yP := r * math.Sin(trueAnom)

	h := math.Sqrt(mu * p)
	vxP := -(mu / h) * math.Sin(trueAnom)
	vyP := (mu / h) * (e + math.Cos(trueAnom))

	// Rotate PQW -> ECI by argument of periapsis (w), inclination (i), and RAAN (Ω).
	cosO, sinO := math.Cos(k.RAAN), math.Sin(k.RAAN)
	cosI, sinI := math.Cos(k.Inclination), math.Sin(k.Inclination)
	cosW, sinW := math.Cos(k.ArgumentOfPeriapsis), math.Sin(k.ArgumentOfPeriapsis)

	r11 := cosO*cosW - sinO*sinW*cosI
	r12 := -cosO*sinW - sinO*cosW*cosI
	r21 := sinO*cosW + cosO*sinW*cosI
	r22 := -sinO*sinW + cosO*cosW*cosI
	r31 := sinW * sinI
	r32 := cosW * sinI

	pos = [3]float64{
		r11*xP + r12*yP,
		r21*xP + r22*yP,
		r31*xP + r32*yP,
	}
	vel = [3]float64{
		r11*vxP + r12*vyP,
		r21*vxP + r22*vyP,
		r31*vxP + r32*vyP,
	}
	return pos, vel
}
