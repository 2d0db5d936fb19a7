package estimator

import (
	"fmt"
	"testing"

	"github.com/dfsa-sim/dfsa-sim/sim"
	"github.com/dfsa-sim/dfsa-sim/sim/internal/testutil"
)

// TestGoldenDataset pins every estimator's answer and loop count for a fixed
// set of observed frames.
func TestGoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset is empty")
	}

	for _, tc := range dataset.Tests {
		name := fmt.Sprintf("%s_expanded=%v_%d_%d_%d", tc.Estimator, tc.ExpandedSum, tc.Idle, tc.Success, tc.Collision)
		t.Run(name, func(t *testing.T) {
			est, err := New(sim.EstimatorConfig{
				Name:             tc.Estimator,
				InitialFrameSize: tc.InitialFrameSize,
				Threshold:        tc.Threshold,
				ExpandedSum:      tc.ExpandedSum,
			})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			iterations := 0
			got := est.NextFrameSize(tc.Idle, tc.Success, tc.Collision, &iterations)

			if got != tc.NextFrameSize {
				t.Errorf("next frame size: got %d, want %d", got, tc.NextFrameSize)
			}
			if iterations != tc.Iterations {
				t.Errorf("iterations: got %d, want %d", iterations, tc.Iterations)
			}
		})
	}
}
