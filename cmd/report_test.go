package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfsa-sim/dfsa-sim/sim"
	"github.com/dfsa-sim/dfsa-sim/sim/sweep"
)

func sampleSeries() *sweep.Series {
	return &sweep.Series{
		ID:        uuid.MustParse("6f1c2d1e-8f3a-4b4e-9c51-2f3b0a7d9e10"),
		Estimator: "Chen i=64",
		Reduction: sim.ReductionAverage,
		Seed:      42,
		Points: []sweep.Point{{
			TagCount: 100,
			Runs:     10,
			Result: &sim.Result{
				EstimatorLabel: "Chen i=64", TagCount: 100,
				CreatedFrames: 6, CreatedSlots: 275, IdleSlots: 98, SuccessSlots: 100,
				CollisionSlots: 77, Iterations: 41, ExecutionTime: 0.25,
			},
			SlotsMean:   276.4,
			SlotsStdDev: 12.5,
		}},
	}
}

func TestPrintSeries_Table(t *testing.T) {
	var buf bytes.Buffer
	printSeries(&buf, sampleSeries())
	out := buf.String()

	assert.Contains(t, out, "=== Chen i=64 (average of runs, seed 42) ===")
	assert.Contains(t, out, "collision")
	assert.Contains(t, out, "     275")
	assert.Contains(t, out, "12.50")
}

func TestSaveResults_WritesJSON(t *testing.T) {
	// GIVEN one finished series
	path := filepath.Join(t.TempDir(), "results.json")

	// WHEN it is saved
	require.NoError(t, saveResults(path, []*sweep.Series{sampleSeries()}))

	// THEN the file round-trips through the results schema
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got resultsFile
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Series, 1)
	assert.Equal(t, sampleSeries().ID, got.Series[0].ID)
	assert.Equal(t, 275, got.Series[0].Points[0].Result.CreatedSlots)

	// AND the estimator interface is not serialized
	assert.NotContains(t, string(data), `"Estimator"`)
	assert.Contains(t, string(data), `"collision_slots": 77`)
}

func TestSaveResults_BadPath(t *testing.T) {
	err := saveResults(filepath.Join(t.TempDir(), "missing", "results.json"), nil)
	assert.Error(t, err)
}
