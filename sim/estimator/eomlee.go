package estimator

import (
	"fmt"
	"math"

	"github.com/dfsa-sim/dfsa-sim/sim"
)

// EomLee estimates the number of tags per collision slot by iterating the
// Eom-Lee fixed point on the ratio y until successive values differ by less
// than threshold. The next frame size is ceil(y · collision).
type EomLee struct {
	initialFrameSize int
	threshold        float64
}

// NewEomLee creates an EomLee estimator.
func NewEomLee(initialFrameSize int, threshold float64) *EomLee {
	return &EomLee{initialFrameSize: initialFrameSize, threshold: threshold}
}

func (e *EomLee) Name() string { return NameEomLee }

func (e *EomLee) String() string {
	return fmt.Sprintf("%s i=%d t=%g", NameEomLee, e.initialFrameSize, e.threshold)
}

func (e *EomLee) Feedback() sim.FeedbackMode { return sim.SimpleFrameFeedback }
func (e *EomLee) InitialFrameSize() int      { return e.initialFrameSize }
func (e *EomLee) Copy() sim.Estimator        { return NewEomLee(e.initialFrameSize, e.threshold) }

// Threshold returns the convergence threshold.
func (e *EomLee) Threshold() float64 { return e.threshold }

func (e *EomLee) NextFrameSize(idle, success, collision int, iterations *int) int {
	// ceil(y · 0) is 0 for every finite y; an empty frame would otherwise
	// divide 0 by 0 and never converge.
	if collision == 0 {
		return 0
	}
	l := float64(idle + success + collision)
	c := float64(collision)
	s := float64(success)

	y := 2.0
	for {
		prev := y
		b := l / (prev*c + s)
		exp := math.Exp(-1 / b)
		y = (1 - exp) / (b * (1 - (1+1/b)*exp))
		addIteration(iterations)
		if math.Abs(prev-y) < e.threshold || math.IsNaN(y) {
			break
		}
	}
	return int(math.Ceil(y * c))
}
