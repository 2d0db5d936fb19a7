// Package mathutil holds the floating-point combinatorics used by the
// maximum-likelihood estimators. Everything here works in float64; precision
// loss for large inputs is accepted.
package mathutil

import (
	"math"
	"sync"
)

// Factorial returns n! for integral n. Values below 2 yield 1.
func Factorial(n float64) float64 {
	f := 1.0
	for i := 2.0; i <= n; i++ {
		f *= i
	}
	return f
}

// Arrangement returns the falling factorial n·(n-1)·…·(n-p+1), the number of
// ordered selections of p items out of n. p <= 0 yields 1.
func Arrangement(n, p float64) float64 {
	a := 1.0
	for i := n - p + 1; i <= n; i++ {
		a *= i
	}
	return a
}

// FactAndDiv returns dividend! / (d1! · d2! · …) without materializing any of
// the factorials. The largest divisor cancels against the tail of dividend!,
// so only the terms dividend, dividend-1, …, max+1 are multiplied. The other
// divisors' factors are divided out only while the running value exceeds 1,
// so it cannot underflow while factors are still owed. It grows past 1 only
// once every divisor factor is spent, so +Inf means the result itself
// overflows float64.
//
// Divisors <= 1 contribute nothing. The divisors slice is not modified.
func FactAndDiv(dividend float64, divisors ...float64) float64 {
	maxIdx := -1
	maxDivisor := 1.0
	for i, d := range divisors {
		if d > maxDivisor {
			maxDivisor = d
			maxIdx = i
		}
	}

	owed := make([]float64, 0, len(divisors))
	for i, d := range divisors {
		if i != maxIdx && d > 1 {
			owed = append(owed, d)
		}
	}
	// next pops the next owed factor: d1, d1-1, …, 2, then d2, …
	next := func() float64 {
		f := owed[0]
		if f-1 > 1 {
			owed[0] = f - 1
		} else {
			owed = owed[1:]
		}
		return f
	}

	acc := 1.0
	for n := dividend; n > maxDivisor; n-- {
		acc *= n
		for acc > 1 && len(owed) > 0 {
			acc /= next()
		}
	}
	// Divisors larger than the span of the product still owe factors.
	for len(owed) > 0 {
		acc /= next()
	}
	return acc
}

// Bounds of the FastPow lookup table.
const (
	MaxPowBase     = 128
	MaxPowExponent = 1024
)

var (
	powOnce  sync.Once
	powTable [][]float64
)

func buildPowTable() {
	powTable = make([][]float64, MaxPowBase+1)
	for b := 0; b <= MaxPowBase; b++ {
		row := make([]float64, MaxPowExponent+1)
		row[0] = 1
		for e := 1; e <= MaxPowExponent; e++ {
			row[e] = row[e-1] * float64(b)
		}
		powTable[b] = row
	}
}

// InitPowTable builds the FastPow table. Calling it is optional; FastPow
// builds the table on first use. The table is read-only afterwards.
func InitPowTable() {
	powOnce.Do(buildPowTable)
}

// FastPow returns base^exponent. Integral arguments inside the table bounds
// are served from the precomputed table; anything else falls back to math.Pow.
func FastPow(base, exponent float64) float64 {
	b, e := int(base), int(exponent)
	if float64(b) != base || float64(e) != exponent ||
		b < 0 || b > MaxPowBase || e < 0 || e > MaxPowExponent {
		return math.Pow(base, exponent)
	}
	powOnce.Do(buildPowTable)
	return powTable[b][e]
}
