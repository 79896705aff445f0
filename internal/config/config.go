// Package config loads orchestrator configuration from TOML, mirroring
// the option set the orchestrator recognizes: propagation/access/routing
// constraints, feature toggles, and simulation bounds.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/relaylink/skyplan/planerrors"
)

// Config is the flattened set of options the orchestrator accepts.
type Config struct {
	// AltChange is the drift-altitude delta (km) handed to the external
	// scheduler when Recon is true.
	AltChange float64 `toml:"altChange"`

	// ConstraintTypeGS selects elevation or nadir gating for
	// satellite-to-ground-station access.
	ConstraintTypeGS  string  `toml:"constraintTypeGS"`
	ConstraintAngleGS float64 `toml:"constraintAngleGS"`

	// ConstraintTypeSense selects elevation or nadir gating for
	// satellite-to-target sensing access.
	ConstraintTypeSense  string  `toml:"constraintTypeSense"`
	ConstraintAngleSense float64 `toml:"constraintAngleSense"`

	// T2PropagateSeconds and TStepSeconds bound and resolve the shared
	// time grid.
	T2PropagateSeconds float64 `toml:"t2propagate"`
	TStepSeconds       float64 `toml:"tStep"`

	// DistanceThresholdKm and SlewThresholdRadPerSec bound inter-satellite
	// link feasibility.
	DistanceThresholdKm    float64 `toml:"distanceThreshold"`
	SlewThresholdRadPerSec float64 `toml:"slewThreshold"`

	// HasDopplerBound, DopplerMin, and DopplerMax optionally gate
	// inter-satellite link feasibility on the Doppler factor (spec.md
	// §4.1); when HasDopplerBound is false the Doppler mask is not
	// applied, matching access.ISLConstraints' default.
	HasDopplerBound bool    `toml:"dopplerBound"`
	DopplerMin      float64 `toml:"dopplerMin"`
	DopplerMax      float64 `toml:"dopplerMax"`

	// ISLTimeThresholdSeconds and DownlinkTimeThresholdSeconds are the
	// minimum contact durations kept after interval extraction.
	ISLTimeThresholdSeconds      float64 `toml:"islTimeThreshold"`
	DownlinkTimeThresholdSeconds float64 `toml:"downlinkTimeThreshold"`

	// LightingRestraint ANDs a lighting mask onto target access when true.
	LightingRestraint bool `toml:"lightingRestraint"`

	// SimTimeSeconds is the horizon T used by the router as its sentinel
	// bound.
	SimTimeSeconds float64 `toml:"simTime"`

	// Recon, when false, skips maneuver application: every satellite stays
	// at its nominal orbit.
	Recon bool `toml:"recon"`

	// ISL, when false, restricts the per-event graph to edges touching
	// only the sensing satellite and ground stations.
	ISL bool `toml:"isl"`
}

// Load reads and parses a TOML configuration file, then validates it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: reading %s: %v", planerrors.ErrConfiguration, path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parsing %s: %v", planerrors.ErrConfiguration, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks internal consistency, wrapping every failure in
// planerrors.ErrConfiguration.
func (c Config) Validate() error {
	if c.TStepSeconds <= 0 {
		return fmt.Errorf("%w: tStep must be positive, got %v", planerrors.ErrConfiguration, c.TStepSeconds)
	}
	if c.T2PropagateSeconds <= 0 {
		return fmt.Errorf("%w: t2propagate must be positive, got %v", planerrors.ErrConfiguration, c.T2PropagateSeconds)
	}
	if c.SimTimeSeconds <= 0 {
		return fmt.Errorf("%w: simTime must be positive, got %v", planerrors.ErrConfiguration, c.SimTimeSeconds)
	}
	if !validConstraintType(c.ConstraintTypeGS) {
		return fmt.Errorf("%w: constraintTypeGS must be elevation or nadir, got %q", planerrors.ErrConfiguration, c.ConstraintTypeGS)
	}
	if !validConstraintType(c.ConstraintTypeSense) {
		return fmt.Errorf("%w: constraintTypeSense must be elevation or nadir, got %q", planerrors.ErrConfiguration, c.ConstraintTypeSense)
	}
	if c.DistanceThresholdKm <= 0 {
		return fmt.Errorf("%w: distanceThreshold must be positive, got %v", planerrors.ErrConfiguration, c.DistanceThresholdKm)
	}
	if c.SlewThresholdRadPerSec <= 0 {
		return fmt.Errorf("%w: slewThreshold must be positive, got %v", planerrors.ErrConfiguration, c.SlewThresholdRadPerSec)
	}
	if c.HasDopplerBound && c.DopplerMax < c.DopplerMin {
		return fmt.Errorf("%w: dopplerMax %v must not be below dopplerMin %v", planerrors.ErrConfiguration, c.DopplerMax, c.DopplerMin)
	}
	return nil
}

func validConstraintType(t string) bool {
	return t == "elevation" || t == "nadir"
}

// TimeGridStep returns TStepSeconds as a time.Duration.
func (c Config) TimeGridStep() time.Duration {
	return time.Duration(c.TStepSeconds * float64(time.Second))
}

// PropagationHorizon returns T2PropagateSeconds as a time.Duration.
func (c Config) PropagationHorizon() time.Duration {
	return time.Duration(c.T2PropagateSeconds * float64(time.Second))
}

// SimTime returns SimTimeSeconds as a time.Duration.
func (c Config) SimTime() time.Duration {
	return time.Duration(c.SimTimeSeconds * float64(time.Second))
}

// ISLTimeThreshold returns ISLTimeThresholdSeconds as a time.Duration.
func (c Config) ISLTimeThreshold() time.Duration {
	return time.Duration(c.ISLTimeThresholdSeconds * float64(time.Second))
}

// DownlinkTimeThreshold returns DownlinkTimeThresholdSeconds as a
// time.Duration.
func (c Config) DownlinkTimeThreshold() time.Duration {
	return time.Duration(c.DownlinkTimeThresholdSeconds * float64(time.Second))
}
