package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []*Result {
	return []*Result{
		{EstimatorLabel: "X", TagCount: 10, CreatedFrames: 3, CreatedSlots: 30, IdleSlots: 12, SuccessSlots: 10, CollisionSlots: 8, Iterations: 5, ExecutionTime: 1.5},
		{EstimatorLabel: "X", TagCount: 10, CreatedFrames: 4, CreatedSlots: 41, IdleSlots: 20, SuccessSlots: 10, CollisionSlots: 11, Iterations: 0, ExecutionTime: 0.5},
	}
}

func TestAverage_TruncatesCounters(t *testing.T) {
	avg, err := Average(sampleResults())
	require.NoError(t, err)

	assert.Equal(t, "X", avg.EstimatorLabel)
	assert.Equal(t, 10, avg.TagCount)
	assert.Equal(t, 3, avg.CreatedFrames) // 7/2
	assert.Equal(t, 35, avg.CreatedSlots) // 71/2
	assert.Equal(t, 16, avg.IdleSlots)
	assert.Equal(t, 10, avg.SuccessSlots)
	assert.Equal(t, 9, avg.CollisionSlots) // 19/2
	assert.Equal(t, 2, avg.Iterations)
	assert.InDelta(t, 1.0, avg.ExecutionTime, 1e-12)
}

func TestMinMax_Pointwise(t *testing.T) {
	lo, err := Min(sampleResults())
	require.NoError(t, err)
	hi, err := Max(sampleResults())
	require.NoError(t, err)

	assert.Equal(t, 3, lo.CreatedFrames)
	assert.Equal(t, 30, lo.CreatedSlots)
	assert.Equal(t, 8, lo.CollisionSlots)
	assert.Equal(t, 0, lo.Iterations)
	assert.Equal(t, 0.5, lo.ExecutionTime)

	assert.Equal(t, 4, hi.CreatedFrames)
	assert.Equal(t, 41, hi.CreatedSlots)
	assert.Equal(t, 20, hi.IdleSlots)
	assert.Equal(t, 5, hi.Iterations)
	assert.Equal(t, 1.5, hi.ExecutionTime)
}

func TestReductions_SingletonIsIdentity(t *testing.T) {
	one := sampleResults()[:1]
	for _, red := range []Reduction{ReductionAverage, ReductionMin, ReductionMax} {
		got, err := red.Reduce(one)
		require.NoError(t, err)

		want := *one[0]
		assert.Equal(t, &want, got, string(red))
		assert.NotSame(t, one[0], got, "reduction must not alias its input")
	}
}

func TestReductions_EmptyBatch(t *testing.T) {
	for _, red := range []Reduction{ReductionAverage, ReductionMin, ReductionMax} {
		_, err := red.Reduce(nil)
		assert.True(t, errors.Is(err, ErrEmptyBatch), string(red))
	}
}

func TestReductions_DoNotMutateInput(t *testing.T) {
	results := sampleResults()
	before := *results[0]
	_, _ = Average(results)
	_, _ = Min(results)
	_, _ = Max(results)
	assert.Equal(t, before, *results[0])
}

func TestReduction_Unknown(t *testing.T) {
	_, err := Reduction("median").Reduce(sampleResults())
	assert.Error(t, err)
	assert.False(t, IsValidReduction("median"))
	assert.True(t, IsValidReduction("max"))
}
