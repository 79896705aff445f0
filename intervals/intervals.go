// Package intervals converts boolean masks over a time grid into lists of
// maximal contact intervals, and applies minimum-duration filtering while
// keeping the mask and interval views consistent, per spec.md §4.2.
package intervals

import (
	"time"

	"github.com/relaylink/skyplan/access"
	"github.com/relaylink/skyplan/sampledstate"
)

// Interval is a maximal run of true mask values, expressed as absolute
// instants. Start is always strictly before End.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the interval's length.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// ExtractTrue returns the maximal true runs of mask over grid, per the four
// boundary cases spec.md §4.2 enumerates exactly:
//
//   - all false  -> empty
//   - all true   -> one interval spanning the whole grid
//   - starts true, ends false -> first interval starts at t[0]
//   - starts false, ends true -> last interval ends at t[N-1]
//   - general    -> zip rising edges with the following falling edges
func ExtractTrue(mask access.Mask, grid sampledstate.Grid) []Interval {
	return extractRuns(mask, grid, true)
}

// ExtractFalse is the dual of ExtractTrue, extracting maximal false runs with
// symmetric logic.
func ExtractFalse(mask access.Mask, grid sampledstate.Grid) []Interval {
	return extractRuns(mask, grid, false)
}

func extractRuns(mask access.Mask, grid sampledstate.Grid, value bool) []Interval {
	n := len(mask)
	if n < 2 {
		// A grid of fewer than two ticks has no adjacent pair to form an
		// interval from; spec.md's boundary cases presume N >= 2.
		return nil
	}

	var out []Interval
	inRun := mask[0] == value
	var runStart sampledstate.Tick

	for i := 1; i < n; i++ {
		switch {
		case !inRun && mask[i] == value:
			inRun = true
			runStart = sampledstate.Tick(i)
		case inRun && mask[i] != value:
			out = append(out, Interval{Start: grid.Time(runStart), End: grid.Time(sampledstate.Tick(i))})
			inRun = false
		}
	}

	if inRun && runStart < grid.Last() {
		// A run that only began on the final tick has no width: there is no
		// later grid point to close it against, so it cannot satisfy
		// t_start < t_end and is not a real interval.
		out = append(out, Interval{Start: grid.Time(runStart), End: grid.Time(grid.Last())})
	}

	return out
}

// MinDurationFilter drops intervals shorter than min and rewrites the mask
// so that every tick of a removed interval, from its start through its end,
// is forced false, keeping the boolean-aligned mask consistent with the
// filtered interval list (spec.md §4.2's consistency requirement, property
// P2).
func MinDurationFilter(mask access.Mask, grid sampledstate.Grid, min time.Duration) (access.Mask, []Interval) {
	all := ExtractTrue(mask, grid)

	filtered := make([]Interval, 0, len(all))
	out := make(access.Mask, len(mask))
	copy(out, mask)

	for _, iv := range all {
		if iv.Duration() < min {
			forceFalseWithin(out, grid, iv)
			continue
		}
		filtered = append(filtered, iv)
	}

	return out, filtered
}

// forceFalseWithin zeros every tick in [start, end] of iv. An interval starts
// at its first true tick and ends at the tick where the mask flips back to
// false (or at the last grid tick), so this clears the whole run.
func forceFalseWithin(mask access.Mask, grid sampledstate.Grid, iv Interval) {
	for i := 0; i < len(mask); i++ {
		tickTime := grid.Time(sampledstate.Tick(i))
		if !tickTime.Before(iv.Start) && !tickTime.After(iv.End) {
			mask[i] = false
		}
	}
}
