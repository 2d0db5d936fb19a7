package estimator

import (
	"fmt"
	"math"

	"github.com/dfsa-sim/dfsa-sim/sim"
	"github.com/dfsa-sim/dfsa-sim/sim/mathutil"
)

// Chen searches for the tag count n that maximizes the probability of the
// observed (idle, success, collision) frame, starting from the lower bound
// s + 2c and stepping n up while the likelihood strictly increases. The next
// frame size is the estimated backlog n - s, floored at 2.
type Chen struct {
	initialFrameSize int
}

// NewChen creates a Chen estimator.
func NewChen(initialFrameSize int) *Chen {
	return &Chen{initialFrameSize: initialFrameSize}
}

func (e *Chen) Name() string { return NameChen }

func (e *Chen) String() string {
	return fmt.Sprintf("%s i=%d", NameChen, e.initialFrameSize)
}

func (e *Chen) Feedback() sim.FeedbackMode { return sim.SimpleFrameFeedback }
func (e *Chen) InitialFrameSize() int      { return e.initialFrameSize }
func (e *Chen) Copy() sim.Estimator        { return NewChen(e.initialFrameSize) }

func (e *Chen) NextFrameSize(idle, success, collision int, iterations *int) int {
	if collision == 0 {
		return 0
	}
	i := float64(idle)
	s := float64(success)
	c := float64(collision)
	l := i + s + c
	n := s + 2*c

	// l! / (i! s! c!) does not depend on n.
	multinomial := mathutil.FactAndDiv(l, i, s, c)
	miss := 1 - 1/l

	next, previous := 0.0, -1.0
	for previous < next {
		pIdle := math.Pow(miss, n)
		pSuccess := (n / l) * math.Pow(miss, n-1)
		pCollision := 1 - pIdle - pSuccess

		previous = next
		next = multinomial * math.Pow(pIdle, i) * math.Pow(pSuccess, s) * math.Pow(pCollision, c)
		n++
		addIteration(iterations)
	}

	size := int(n-2) - success
	if size <= 0 {
		return 2
	}
	return size
}
