package main

import (
	"fmt"
	"io"

	"shaderlens/internal/driver"
	"shaderlens/internal/observ"
)

// printTimings writes the phase timings of every file merged into one
// report, followed by the slowest file.
func printTimings(out io.Writer, results []driver.FileResult) {
	if out == nil || len(results) == 0 {
		return
	}
	reports := make([]observ.Report, 0, len(results))
	slowest := results[0]
	cached := 0
	for _, r := range results {
		reports = append(reports, r.Timing)
		if r.Timing.TotalMS > slowest.Timing.TotalMS {
			slowest = r
		}
		if r.Cached {
			cached++
		}
	}
	fmt.Fprint(out, observ.Merge(reports...).Summary())
	fmt.Fprintf(out, "files: %d (%d cached), slowest %s %.2f ms\n", len(results), cached, slowest.Path, slowest.Timing.TotalMS)
}
