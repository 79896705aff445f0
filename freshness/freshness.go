// Package freshness computes how stale a target's imagery stays over a
// simulation window: the time-averaged Age of Information, the time to
// first downlink, and the total time the target was actually under sensor
// coverage.
package freshness

import (
	"sort"
	"time"

	"github.com/relaylink/skyplan/intervals"
)

// Event pairs one sensing pass's end time with the time its imagery reached
// a ground station. A pass with no downlink is simply omitted from the
// event list passed to Metrics.
type Event struct {
	PassEnd      time.Time
	DownlinkTime time.Time
}

// Window bounds the simulation over which metrics are integrated.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Result bundles the freshness metrics computed over one window.
type Result struct {
	// AgeOfInformation is the time-average staleness over the window.
	AgeOfInformation time.Duration
	// SystemResponseTime is the time from window start to the first
	// downlink, or the full window length if no downlink ever occurred.
	SystemResponseTime time.Duration
	// TotalPassTime is the sum of the lengths of every sensing access
	// interval over the target, independent of whether it was downlinked.
	TotalPassTime time.Duration
}

// Metrics computes AoI, SRT, and (from passIntervals) total target-pass
// time over window. events need not be pre-sorted; Metrics sorts a copy by
// DownlinkTime before integrating, as the area formula requires.
func Metrics(events []Event, passIntervals []intervals.Interval, window Window) Result {
	total := totalPassTime(passIntervals)

	if len(events) == 0 {
		t := window.Duration()
		return Result{AgeOfInformation: t, SystemResponseTime: t, TotalPassTime: total}
	}

	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DownlinkTime.Before(sorted[j].DownlinkTime) })

	T := window.Duration().Seconds()

	area := areaSeconds(sorted[0].DownlinkTime.Sub(window.Start).Seconds())

	for i := 1; i < len(sorted); i++ {
		prevPassEnd := sorted[i-1].PassEnd
		di := sorted[i].DownlinkTime.Sub(prevPassEnd).Seconds()
		diPrev := sorted[i-1].DownlinkTime.Sub(prevPassEnd).Seconds()
		area += areaSeconds(di) - areaSeconds(diPrev)
	}

	last := sorted[len(sorted)-1]
	tail := window.End.Sub(last.PassEnd).Seconds()
	tailPrev := last.DownlinkTime.Sub(last.PassEnd).Seconds()
	area += areaSeconds(tail) - areaSeconds(tailPrev)

	aoi := time.Duration(0)
	if T > 0 {
		aoi = time.Duration((area / T) * float64(time.Second))
	}

	srt := sorted[0].DownlinkTime.Sub(window.Start)

	return Result{AgeOfInformation: aoi, SystemResponseTime: srt, TotalPassTime: total}
}

// areaSeconds is ½·x², the triangular-area term the AoI formula builds its
// per-downlink contributions from.
func areaSeconds(x float64) float64 {
	return 0.5 * x * x
}

// totalPassTime sums the lengths of every access interval, independent of
// which (if any) were ever downlinked.
func totalPassTime(passIntervals []intervals.Interval) time.Duration {
	var total time.Duration
	for _, iv := range passIntervals {
		total += iv.Duration()
	}
	return total
}
