package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    float64
		want float64
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{5, 120},
		{10, 3628800},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Factorial(tt.n), "Factorial(%v)", tt.n)
	}
}

func TestArrangement(t *testing.T) {
	tests := []struct {
		n, p float64
		want float64
	}{
		{5, 0, 1},
		{5, 1, 5},
		{5, 2, 20},
		{5, 5, 120},
		{10, 3, 720},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Arrangement(tt.n, tt.p), "Arrangement(%v, %v)", tt.n, tt.p)
	}
}

func TestFactAndDiv_MatchesExactMultinomial(t *testing.T) {
	tests := []struct {
		name     string
		dividend float64
		divisors []float64
	}{
		{"binomial", 5, []float64{2, 3}},
		{"trinomial", 10, []float64{3, 3, 4}},
		{"equal divisors", 4, []float64{2, 2}},
		{"with zero and one", 6, []float64{0, 1, 5}},
		{"single divisor", 7, []float64{7}},
		{"divisors exceed span", 3, []float64{3, 3}},
		{"falling factorial", 8, []float64{5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := Factorial(tt.dividend)
			for _, d := range tt.divisors {
				want /= Factorial(d)
			}
			assert.InEpsilon(t, want, FactAndDiv(tt.dividend, tt.divisors...), 1e-12)
		})
	}
}

func TestFactAndDiv_DoesNotMutateDivisors(t *testing.T) {
	// GIVEN a divisor slice owned by the caller
	divisors := []float64{2, 5, 3}

	// WHEN FactAndDiv is evaluated
	FactAndDiv(10, divisors...)

	// THEN the slice is unchanged
	assert.Equal(t, []float64{2, 5, 3}, divisors)
}

func TestFactAndDiv_LargeInputStaysFinite(t *testing.T) {
	// 300! overflows float64 but 300!/(100!·100!·100!) ≈ 3.8e140 does not.
	got := FactAndDiv(300, 100, 100, 100)
	assert.False(t, math.IsInf(got, 0))
	assert.False(t, math.IsNaN(got))
	assert.Greater(t, got, 1e140)
}

func TestFactAndDiv_LargeInputMatchesLgamma(t *testing.T) {
	tests := []struct {
		dividend float64
		divisors []float64
	}{
		{300, []float64{100, 100, 100}},
		{170, []float64{50, 60, 60}},
		{64, []float64{13, 21, 30}},
		{500, []float64{200, 150, 150}},
	}
	for _, tt := range tests {
		want, _ := math.Lgamma(tt.dividend + 1)
		for _, d := range tt.divisors {
			lg, _ := math.Lgamma(d + 1)
			want -= lg
		}
		got := FactAndDiv(tt.dividend, tt.divisors...)
		assert.InDelta(t, want, math.Log(got), 1e-9, "FactAndDiv(%v, %v)", tt.dividend, tt.divisors)
	}
}

func TestFactAndDiv_OverflowYieldsInf(t *testing.T) {
	// GIVEN multinomials whose true value is far beyond float64 range
	// (1000!/(368!·368!·264!) ≈ 1.4e469, 1000!/(600!·300!·100!) ≈ 1.1e387)

	// WHEN they are evaluated
	balanced := FactAndDiv(1000, 368, 368, 264)
	skewed := FactAndDiv(1000, 600, 300, 100)

	// THEN both saturate to +Inf rather than collapsing to zero
	assert.True(t, math.IsInf(balanced, 1), "got %v", balanced)
	assert.True(t, math.IsInf(skewed, 1), "got %v", skewed)
}

func TestFastPow_MatchesMathPow(t *testing.T) {
	InitPowTable()
	for _, b := range []float64{0, 1, 2, 3, 17, 64, 128} {
		for _, e := range []float64{0, 1, 2, 10, 100} {
			want := math.Pow(b, e)
			got := FastPow(b, e)
			if want == 0 || math.IsInf(want, 0) {
				assert.Equal(t, want, got, "FastPow(%v, %v)", b, e)
				continue
			}
			assert.InEpsilon(t, want, got, 1e-12, "FastPow(%v, %v)", b, e)
		}
	}
}

func TestFastPow_OutsideTableFallsBack(t *testing.T) {
	assert.Equal(t, math.Pow(2.5, 3), FastPow(2.5, 3))
	assert.Equal(t, math.Pow(200, 2), FastPow(200, 2))
	assert.Equal(t, math.Pow(2, -1), FastPow(2, -1))
	assert.Equal(t, math.Pow(-3, 2), FastPow(-3, 2))
}
