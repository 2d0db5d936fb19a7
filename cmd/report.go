package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dfsa-sim/dfsa-sim/sim/sweep"
)

// printSeries writes a per-tag-count table for one sweep.
func printSeries(w io.Writer, s *sweep.Series) {
	fmt.Fprintf(w, "=== %s (%s of runs, seed %d) ===\n", s.Estimator, s.Reduction, s.Seed)
	fmt.Fprintf(w, "%8s %8s %10s %10s %10s %10s %12s %12s %10s\n",
		"tags", "frames", "slots", "idle", "success", "collision", "iterations", "slots sd", "time ms")
	for _, p := range s.Points {
		r := p.Result
		fmt.Fprintf(w, "%8d %8d %10d %10d %10d %10d %12d %12.2f %10.3f\n",
			p.TagCount, r.CreatedFrames, r.CreatedSlots, r.IdleSlots, r.SuccessSlots,
			r.CollisionSlots, r.Iterations, p.SlotsStdDev, r.ExecutionTime)
	}
}

// resultsFile is the JSON document written by --results-path.
type resultsFile struct {
	Series []*sweep.Series `json:"series"`
}

// saveResults writes all series as indented JSON to path.
func saveResults(path string, series []*sweep.Series) error {
	data, err := json.MarshalIndent(resultsFile{Series: series}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	return nil
}
