package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerDefaultsToInfoLevel(t *testing.T) {
	logger := NewLogger("bogus")
	require.Equal(t, logrus.InfoLevel, logger.Level)
}

func TestNewLoggerHonorsDebugLevel(t *testing.T) {
	logger := NewLogger("debug")
	require.Equal(t, logrus.DebugLevel, logger.Level)
}

func TestPhaseTimingsObserveRecordsUnderLabel(t *testing.T) {
	registry := prometheus.NewRegistry()
	timings := NewPhaseTimings(registry)

	timings.Observe("routing", 0.25)

	families, err := registry.Gather()
	require.NoError(t, err)

	var found *dto.MetricFamily
	for _, f := range families {
		if f.GetName() == "skyplan_plan_phase_seconds" {
			found = f
		}
	}
	require.NotNil(t, found)
	require.Len(t, found.Metric, 1)
	require.Equal(t, "phase", found.Metric[0].Label[0].GetName())
	require.Equal(t, "routing", found.Metric[0].Label[0].GetValue())
}
