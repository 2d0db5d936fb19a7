// Package sim provides the frame-slotted ALOHA inventory engine for DFSA-SIM.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - tag.go: Tag lifecycle (silenced → responding → identified) and slot selection
//   - estimator.go: the Estimator interface and its two feedback modes
//   - simulator.go: the frame loop for simple-frame and block (per-slot) feedback
//
// # Architecture
//
// The sim package defines interfaces and bridge types; implementations live in
// sub-packages:
//   - sim/estimator/: frame-size estimators (LowerBound, Schoute, EomLee,
//     QAlgorithm, Chen, Vahedi)
//   - sim/mathutil/: float64 combinatorics and the FastPow table
//   - sim/sweep/: worker pool running repetitions over a tag-count range
//   - sim/trace/: per-frame trace recording and summaries
//
// sim/estimator registers its constructor via init(), which sets the
// package-level factory variable NewEstimatorFunc.
//
// # Determinism
//
// A run is fully determined by its SimulationKey, the estimator configuration
// and the tag count: every tag draws from its own PartitionedRNG stream.
// Result reductions (Average, Min, Max) combine repeated runs.
package sim
