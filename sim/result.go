package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyBatch is returned by Average, Min and Max when given no results.
var ErrEmptyBatch = errors.New("cannot reduce an empty batch of results")

// Result aggregates the statistics of one simulation run, or the reduction of
// a batch of runs. The Simulator fills it in place; once handed to a
// reduction it is treated as read-only.
type Result struct {
	Estimator      Estimator `json:"-"`
	EstimatorLabel string    `json:"estimator"`
	TagCount       int       `json:"tag_count"`

	CreatedFrames  int `json:"created_frames"`
	CreatedSlots   int `json:"created_slots"`
	IdleSlots      int `json:"idle_slots"`
	SuccessSlots   int `json:"success_slots"`
	CollisionSlots int `json:"collision_slots"`
	// Iterations counts estimator convergence-loop passes. Zero for
	// closed-form estimators.
	Iterations int `json:"iterations"`

	ExecutionTime float64 `json:"execution_time_ms"` // wall time in milliseconds
}

func newResult(est Estimator, tagCount int) *Result {
	r := &Result{Estimator: est, TagCount: tagCount}
	if est != nil {
		r.EstimatorLabel = est.String()
	}
	return r
}

// Average returns the pointwise mean of results. Integer counters use
// truncating division.
func Average(results []*Result) (*Result, error) {
	if len(results) == 0 {
		return nil, ErrEmptyBatch
	}
	avg := newReduction(results[0])
	for _, r := range results {
		avg.CreatedFrames += r.CreatedFrames
		avg.CreatedSlots += r.CreatedSlots
		avg.IdleSlots += r.IdleSlots
		avg.SuccessSlots += r.SuccessSlots
		avg.CollisionSlots += r.CollisionSlots
		avg.Iterations += r.Iterations
		avg.ExecutionTime += r.ExecutionTime
	}
	n := len(results)
	avg.CreatedFrames /= n
	avg.CreatedSlots /= n
	avg.IdleSlots /= n
	avg.SuccessSlots /= n
	avg.CollisionSlots /= n
	avg.Iterations /= n
	avg.ExecutionTime /= float64(n)
	return avg, nil
}

// Min returns the pointwise minimum of results.
func Min(results []*Result) (*Result, error) {
	if len(results) == 0 {
		return nil, ErrEmptyBatch
	}
	m := newReduction(results[0])
	m.CreatedFrames = math.MaxInt
	m.CreatedSlots = math.MaxInt
	m.IdleSlots = math.MaxInt
	m.SuccessSlots = math.MaxInt
	m.CollisionSlots = math.MaxInt
	m.Iterations = math.MaxInt
	m.ExecutionTime = math.Inf(1)
	for _, r := range results {
		m.CreatedFrames = min(m.CreatedFrames, r.CreatedFrames)
		m.CreatedSlots = min(m.CreatedSlots, r.CreatedSlots)
		m.IdleSlots = min(m.IdleSlots, r.IdleSlots)
		m.SuccessSlots = min(m.SuccessSlots, r.SuccessSlots)
		m.CollisionSlots = min(m.CollisionSlots, r.CollisionSlots)
		m.Iterations = min(m.Iterations, r.Iterations)
		m.ExecutionTime = min(m.ExecutionTime, r.ExecutionTime)
	}
	return m, nil
}

// Max returns the pointwise maximum of results.
func Max(results []*Result) (*Result, error) {
	if len(results) == 0 {
		return nil, ErrEmptyBatch
	}
	m := newReduction(results[0])
	m.CreatedFrames = math.MinInt
	m.CreatedSlots = math.MinInt
	m.IdleSlots = math.MinInt
	m.SuccessSlots = math.MinInt
	m.CollisionSlots = math.MinInt
	m.Iterations = math.MinInt
	m.ExecutionTime = math.Inf(-1)
	for _, r := range results {
		m.CreatedFrames = max(m.CreatedFrames, r.CreatedFrames)
		m.CreatedSlots = max(m.CreatedSlots, r.CreatedSlots)
		m.IdleSlots = max(m.IdleSlots, r.IdleSlots)
		m.SuccessSlots = max(m.SuccessSlots, r.SuccessSlots)
		m.CollisionSlots = max(m.CollisionSlots, r.CollisionSlots)
		m.Iterations = max(m.Iterations, r.Iterations)
		m.ExecutionTime = max(m.ExecutionTime, r.ExecutionTime)
	}
	return m, nil
}

// newReduction starts a reduced result carrying the identity of first.
func newReduction(first *Result) *Result {
	return &Result{
		Estimator:      first.Estimator,
		EstimatorLabel: first.EstimatorLabel,
		TagCount:       first.TagCount,
	}
}

// Reduction names a batch reduction.
type Reduction string

const (
	ReductionAverage Reduction = "average"
	ReductionMin     Reduction = "min"
	ReductionMax     Reduction = "max"
)

// ValidReductions is the set of recognized reduction names.
var ValidReductions = map[Reduction]bool{ReductionAverage: true, ReductionMin: true, ReductionMax: true}

// IsValidReduction returns true if name is a recognized reduction.
func IsValidReduction(name string) bool {
	return ValidReductions[Reduction(name)]
}

// Reduce applies the named reduction to results.
func (r Reduction) Reduce(results []*Result) (*Result, error) {
	switch r {
	case ReductionAverage:
		return Average(results)
	case ReductionMin:
		return Min(results)
	case ReductionMax:
		return Max(results)
	default:
		return nil, fmt.Errorf("unknown reduction %q", string(r))
	}
}
