// Command skyplan runs one orchestrator.Plan pass against a TOML
// configuration and a small built-in demo scenario (a single sensing
// satellite, one relay satellite, and one ground station), printing a
// summary of the resulting routes and freshness metrics. It optionally
// serves the plan result over HTTP for the websocket stream / Prometheus
// scrape endpoint described in SPEC_FULL.md's ambient stack.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/relaylink/skyplan/geometry"
	"github.com/relaylink/skyplan/internal/api"
	"github.com/relaylink/skyplan/internal/config"
	"github.com/relaylink/skyplan/internal/obs"
	"github.com/relaylink/skyplan/internal/refimpl/propagator"
	"github.com/relaylink/skyplan/internal/refimpl/scheduler"
	"github.com/relaylink/skyplan/orbits"
	"github.com/relaylink/skyplan/orchestrator"
)

func main() {
	configPath := pflag.String("config", "", "path to the orchestrator TOML configuration (required)")
	simTime := pflag.Float64("sim-time", 0, "override simTime (seconds); 0 keeps the configured value")
	isl := pflag.String("isl", "", "override isl (\"true\"/\"false\"); empty keeps the configured value")
	serve := pflag.String("serve", "", "if set, an address (e.g. :8080) to serve the plan result on after running")
	logLevel := pflag.String("log-level", "info", "logrus level: debug, info, warn, error")
	pflag.Parse()

	logger := obs.NewLogger(*logLevel)

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "skyplan: --config is required")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.WithError(err).Fatal("loading configuration")
	}
	if *simTime > 0 {
		cfg.SimTimeSeconds = *simTime
	}
	switch *isl {
	case "true":
		cfg.ISL = true
	case "false":
		cfg.ISL = false
	}

	registry := prometheusRegistryOrNil(*serve)
	timings := obs.NewPhaseTimings(registry)

	planner := orchestrator.New(propagator.New(), scheduler.New())
	planner.Logger = logger
	planner.Timings = timings

	constellation, groundStations, target := demoScenario()

	ctx := context.Background()
	result, err := planner.Plan(ctx, cfg, constellation, groundStations, target)
	if err != nil {
		logger.WithError(err).Fatal("plan run failed")
	}

	printSummary(result)

	if *serve != "" {
		server := api.NewServer(*serve, logger, registry)
		server.Publish(result)
		logger.WithField("addr", *serve).Info("serving plan result; press Ctrl+C to exit")
		if err := server.Start(); err != nil {
			logger.WithError(err).Fatal("plan API server exited")
		}
	}
}

// demoScenario builds a small fixed constellation, ground station, and
// target so the binary is runnable standalone without a scenario file
// format (the core specifies none; see SPEC_FULL.md §6).
func demoScenario() ([]orchestrator.SatelliteSpec, []orchestrator.GroundStationSpec, orchestrator.TargetSpec) {
	epoch := time.Now().UTC()

	constellation := []orchestrator.SatelliteSpec{
		{
			ID: "sat-sensing",
			Elements: orbits.KeplerianElements{
				SemiMajorAxis: orbits.EarthRadiusKm + 550,
				Eccentricity:  0.001,
				Inclination:   0.9,
				Epoch:         epoch,
			},
		},
		{
			ID: "sat-relay",
			Elements: orbits.KeplerianElements{
				SemiMajorAxis:       orbits.EarthRadiusKm + 550,
				Eccentricity:        0.001,
				Inclination:         0.9,
				ArgumentOfPeriapsis: 0.4,
				MeanAnomaly:         0.4,
				Epoch:               epoch,
			},
		},
	}

	groundStations := []orchestrator.GroundStationSpec{
		{ID: "gs-home", Position: geometry.Vector3{X: orbits.EarthRadiusKm, Y: 0, Z: 0}},
	}

	target := orchestrator.TargetSpec{
		Position: geometry.Vector3{X: orbits.EarthRadiusKm * 0.7, Y: orbits.EarthRadiusKm * 0.7, Z: 0},
	}

	return constellation, groundStations, target
}

func printSummary(result orchestrator.PlanResult) {
	fmt.Printf("skyplan run %s\n", result.RunID)
	fmt.Printf("  AoI:  %s\n", result.Metrics.AgeOfInformation)
	fmt.Printf("  SRT:  %s\n", result.Metrics.SystemResponseTime)
	fmt.Printf("  pass time total: %s\n", result.Metrics.TotalPassTime)
	for satID, passes := range result.Paths {
		for idx, path := range passes {
			if path == nil {
				fmt.Printf("  %s pass %d: no downlink within horizon\n", satID, idx)
				continue
			}
			fmt.Printf("  %s pass %d: %v\n", satID, idx, path)
		}
	}
	fmt.Printf("  timings: scheduling=%s routing=%s total=%s\n",
		result.Timings.Scheduling, result.Timings.Routing, result.Timings.Total)
}

func prometheusRegistryOrNil(serve string) *prometheus.Registry {
	if serve == "" {
		return nil
	}
	return prometheus.NewRegistry()
}
