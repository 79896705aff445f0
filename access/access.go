// Package access computes the boolean feasibility masks the rest of the
// pipeline builds on: inter-satellite link feasibility (line of sight,
// distance, slew rate, Doppler) and satellite-to-ground access (elevation or
// nadir, optionally ANDed with lighting). Every mask entry is a pure
// function of the sampled state at that grid index; there is no windowing or
// smoothing across ticks (spec invariant I3).
package access

import (
	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/sampledstate"
)

// ISLConstraints bounds inter-satellite link feasibility.
type ISLConstraints struct {
	MaxDistanceKm  float64
	MaxSlewRadPerS float64
	// DopplerMin/DopplerMax gate on the Doppler factor when HasDopplerBound
	// is true; when false, the Doppler mask is not applied (spec.md §4.1
	// marks Doppler gating as optional).
	HasDopplerBound bool
	DopplerMin      float64
	DopplerMax      float64
}

// GroundConstraintType selects which geometric predicate gates satellite-to-
// ground access.
type GroundConstraintType string

const (
	// Elevation gates on elevation angle >= threshold.
	Elevation GroundConstraintType = "elevation"
	// Nadir gates on nadir angle <= threshold.
	Nadir GroundConstraintType = "nadir"
)

// GroundConstraints bounds satellite-to-ground access.
type GroundConstraints struct {
	Type             GroundConstraintType
	ThresholdRadians float64
	// RequireLighting ANDs a lighting mask onto the access predicate when true.
	RequireLighting bool
}

// Mask is a boolean feasibility value at every grid tick.
type Mask []bool

// ISLMask computes the elementwise-AND feasibility mask between satellite A
// (the pair's subject) and B over the shared trajectory samples, per spec.md
// §4.1. LOS, distance, slew, and (if bounded) Doppler are each evaluated
// per-tick and ANDed; there is no bulk array "and" — each tick is decided
// independently, closing the elementwise-AND gap spec.md §9 (Q2) flags.
func ISLMask(trajA, trajB sampledstate.Trajectory, c ISLConstraints) Mask {
	n := len(trajA)
	if len(trajB) < n {
		n = len(trajB)
	}

	mask := make(Mask, n)
	for i := 0; i < n; i++ {
		a, b := trajA[i], trajB[i]

		los := geometry.SatelliteToSatelliteVisible(a.Position, b.Position)
		if !los {
			mask[i] = false
			continue
		}

		distance := geometry.SlantRange(a.Position, b.Position)
		if distance >= c.MaxDistanceKm {
			mask[i] = false
			continue
		}

		slew := geometry.SlewRate(a.Position, b.Position, a.Velocity, b.Velocity)
		if slew >= c.MaxSlewRadPerS {
			mask[i] = false
			continue
		}

		if c.HasDopplerBound {
			doppler := geometry.DopplerFactor(a.Position, b.Position, a.Velocity, b.Velocity)
			if doppler < c.DopplerMin || doppler > c.DopplerMax {
				mask[i] = false
				continue
			}
		}

		mask[i] = true
	}
	return mask
}

// LightingFunc reports whether a ground location is sunlit at a grid tick.
// It is consumed as a function rather than a precomputed sample because the
// core has no solar-ephemeris model of its own (spec.md §1 non-goals);
// callers supply one (e.g. from an external geodetic/solar collaborator).
type LightingFunc func(tick sampledstate.Tick) bool

// GroundAccessMask computes the feasibility mask between a satellite and a
// fixed ground position over the satellite's trajectory, per spec.md §4.1.
func GroundAccessMask(groundPos geometry.Vector3, satTraj sampledstate.Trajectory, c GroundConstraints, lighting LightingFunc) Mask {
	mask := make(Mask, len(satTraj))
	for i, sample := range satTraj {
		var ok bool
		switch c.Type {
		case Nadir:
			ok = geometry.MeetsNadirMask(sample.Position, groundPos, c.ThresholdRadians)
		default: // Elevation is the default predicate per spec.md §4.1.
			ok = geometry.MeetsElevationMask(groundPos, sample.Position, c.ThresholdRadians)
		}

		if ok && c.RequireLighting && lighting != nil {
			ok = lighting(sampledstate.Tick(i))
		}

		mask[i] = ok
	}
	return mask
}

// And returns the elementwise AND of two masks of equal length.
func And(a, b Mask) Mask {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make(Mask, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] && b[i]
	}
	return out
}
