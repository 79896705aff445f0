// Package obs wires the structured logging and metrics every orchestrator
// run emits: a JSON logrus logger and a prometheus histogram tracking the
// scheduling/routing/total phase timings spec.md §6's PlanResult.timings
// bundle reports.
package obs

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// NewLogger builds a JSON-formatted logrus logger at the requested level.
// An unrecognized level falls back to info, matching the teacher's
// permissive switch-with-default pattern.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})

	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}

// PhaseTimings exposes the scheduling/routing/total phase durations as a
// prometheus histogram vector, one observation per orchestrator.Plan call.
type PhaseTimings struct {
	histogram *prometheus.HistogramVec
}

// NewPhaseTimings registers (or re-uses, if already registered in
// registry) the phase-timing histogram under the name
// "skyplan_plan_phase_seconds".
func NewPhaseTimings(registry prometheus.Registerer) *PhaseTimings {
	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skyplan_plan_phase_seconds",
		Help:    "Wall-clock duration of each orchestrator.Plan phase, in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	if registry != nil {
		if err := registry.Register(histogram); err != nil {
			existing, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				panic(err)
			}
			histogram = existing.ExistingCollector.(*prometheus.HistogramVec)
		}
	}
	return &PhaseTimings{histogram: histogram}
}

// Observe records one phase's duration in seconds under its name
// ("scheduling", "routing", or "total").
func (p *PhaseTimings) Observe(phase string, seconds float64) {
	p.histogram.WithLabelValues(phase).Observe(seconds)
}
