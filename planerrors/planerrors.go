// Package planerrors defines the sentinel error kinds the orchestrator and
// its collaborators wrap their failures in, so callers can classify an
// error with errors.Is regardless of the message attached to it.
package planerrors

import "errors"

var (
	// ErrConfiguration marks an orchestrator input that is internally
	// inconsistent or incomplete: non-positive tStep, an empty
	// constellation or ground-station list, or a Doppler bound whose max is
	// below its min. Fatal for the run.
	ErrConfiguration = errors.New("planerrors: invalid configuration")

	// ErrNoAccess marks a sensing satellite with no access interval over
	// the target during the horizon. Not fatal: the orchestrator records
	// an empty pass list for that satellite and continues.
	ErrNoAccess = errors.New("planerrors: no access interval over target")

	// ErrNoRoute marks a sensing event with no path to any ground station
	// within the horizon. Not fatal: the orchestrator records an empty
	// downlink map and a nil path for that pass, storing no arrival time for
	// it, and treats it as no-downlink in the freshness metrics.
	ErrNoRoute = errors.New("planerrors: no route to any ground station")

	// ErrPropagation marks a failure bubbled up unchanged from an external
	// Propagator, Scheduler, or GeoFrame collaborator. Fatal for the run.
	ErrPropagation = errors.New("planerrors: propagation failure")
)
