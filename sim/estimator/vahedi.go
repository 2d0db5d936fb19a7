package estimator

import (
	"fmt"
	"math"

	"github.com/dfsa-sim/dfsa-sim/sim"
	"github.com/dfsa-sim/dfsa-sim/sim/mathutil"
)

// Vahedi refines Chen's likelihood search by modelling the three slot kinds
// separately:
//
//	p1  probability of the idle slots being idle
//	p2  probability of s tags landing alone in the success slots
//	p3  probability of the remaining n-s tags filling every collision slot
//	    with at least two tags (inclusion-exclusion over k singly occupied
//	    and v empty collision slots)
//
// The running powers and the arrangement behind p1 and p2 are updated in
// place as n grows instead of being recomputed.
//
// By default p3 is evaluated along the v = 0 diagonal only, with k! and
// (n-s)!/(n-s-k)! held at their k = 0 value of 1, one iteration per k.
// Published result tables were produced this way.
// NewVahediExpanded evaluates the complete double sum instead.
type Vahedi struct {
	initialFrameSize int
	expandedSum      bool
}

// NewVahedi creates a Vahedi estimator using the diagonal collision term.
func NewVahedi(initialFrameSize int) *Vahedi {
	return &Vahedi{initialFrameSize: initialFrameSize}
}

// NewVahediExpanded creates a Vahedi estimator that evaluates the full
// inclusion-exclusion sum for the collision term.
func NewVahediExpanded(initialFrameSize int) *Vahedi {
	return &Vahedi{initialFrameSize: initialFrameSize, expandedSum: true}
}

func (e *Vahedi) Name() string { return NameVahedi }

func (e *Vahedi) String() string {
	if e.expandedSum {
		return fmt.Sprintf("%s i=%d expanded", NameVahedi, e.initialFrameSize)
	}
	return fmt.Sprintf("%s i=%d", NameVahedi, e.initialFrameSize)
}

func (e *Vahedi) Feedback() sim.FeedbackMode { return sim.SimpleFrameFeedback }
func (e *Vahedi) InitialFrameSize() int      { return e.initialFrameSize }

func (e *Vahedi) Copy() sim.Estimator {
	return &Vahedi{initialFrameSize: e.initialFrameSize, expandedSum: e.expandedSum}
}

func (e *Vahedi) NextFrameSize(idle, success, collision int, iterations *int) int {
	if collision == 0 {
		return 0
	}
	i := float64(idle)
	s := float64(success)
	c := float64(collision)
	l := i + s + c
	n := s + 2*c

	// p1 = (1 - i/l)^n
	notIdlePowN := math.Pow(1-i/l, n)
	// p2 = A(n, s) · (l-i-s)^(n-s) / (l-i)^n
	arrNS := mathutil.Arrangement(n, s)
	busyPowN := mathutil.FastPow(l-i, n)
	collPowNS := mathutil.FastPow(l-i-s, n-s)
	// p3 denominator c^(n-s)
	cPowNS := mathutil.FastPow(c, n-s)

	multinomial := mathutil.FactAndDiv(l, i, s, c)

	next, previous := 0.0, -1.0
	for previous < next {
		p1 := notIdlePowN
		notIdlePowN *= 1 - i/l

		p2 := arrNS * collPowNS / busyPowN
		arrNS *= (n + 1) / (n + 1 - s)
		busyPowN *= l - i
		collPowNS *= l - i - s

		var p3 float64
		if e.expandedSum {
			p3 = expandedCollisionTerm(n, s, c, cPowNS, iterations)
		} else {
			p3 = diagonalCollisionTerm(n, s, c, cPowNS, iterations)
		}
		cPowNS *= c

		previous = next
		n++
		next = multinomial * math.Pow(p1, i) * math.Pow(p2, s) * math.Pow(p3, c)
	}

	size := int(n-2) - success
	if size <= 0 {
		return 2
	}
	return size
}

// diagonalCollisionTerm is Σ_k (-1)^k · c!/(c-k)! · (c-k)^(n-s-k) / c^(n-s).
func diagonalCollisionTerm(n, s, c, cPowNS float64, iterations *int) float64 {
	p3 := 0.0
	for k := 0.0; k <= c; k++ {
		addIteration(iterations)
		p3 += alternate(k) * mathutil.FactAndDiv(c, c-k) * mathutil.FastPow(c-k, n-s-k) / cPowNS
	}
	return p3
}

// expandedCollisionTerm is
// Σ_k Σ_v (-1)^(k+v) · c!/(k!·v!·(c-k-v)!) · (n-s)!/(n-s-k)! · (c-k-v)^(n-s-k) / c^(n-s).
func expandedCollisionTerm(n, s, c, cPowNS float64, iterations *int) float64 {
	p3 := 0.0
	for k := 0.0; k <= c; k++ {
		fatK := mathutil.Factorial(k)
		fallNS := mathutil.FactAndDiv(n-s, n-s-k)
		for v := 0.0; v <= c-k; v++ {
			addIteration(iterations)
			choose := mathutil.FactAndDiv(c, c-k-v, v) / fatK
			p3 += alternate(k+v) * choose * fallNS * mathutil.FastPow(c-k-v, n-s-k) / cPowNS
		}
	}
	return p3
}

// alternate returns (-1)^k for integral k.
func alternate(k float64) float64 {
	if int(k)%2 == 1 {
		return -1
	}
	return 1
}
