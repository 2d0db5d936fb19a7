package estimator

import (
	"fmt"
	"math"

	"github.com/dfsa-sim/dfsa-sim/sim"
)

// QAlgorithm is the EPC Gen2 Q algorithm. It is consulted after every slot:
// an idle slot lowers Q by c, a collision raises it by c, a success leaves it
// alone. The frame size is 2^round(Q), with Q kept in [0, MaxQ].
type QAlgorithm struct {
	q        float64
	c        float64
	currentQ float64
}

// NewQAlgorithm creates a QAlgorithm starting at q with fluctuation step c.
func NewQAlgorithm(q, c float64) *QAlgorithm {
	return &QAlgorithm{q: q, c: c, currentQ: q}
}

func (e *QAlgorithm) Name() string { return NameQAlgorithm }

func (e *QAlgorithm) String() string {
	return fmt.Sprintf("%s q=%g c=%g", NameQAlgorithm, e.q, e.c)
}

func (e *QAlgorithm) Feedback() sim.FeedbackMode { return sim.BlockFeedback }

func (e *QAlgorithm) InitialFrameSize() int {
	return int(math.Pow(2, e.q))
}

// Copy returns a QAlgorithm reset to the configured q.
func (e *QAlgorithm) Copy() sim.Estimator { return NewQAlgorithm(e.q, e.c) }

// CurrentQ returns the running, unrounded Q value.
func (e *QAlgorithm) CurrentQ() float64 { return e.currentQ }

func (e *QAlgorithm) NextFrameSize(idle, _, collision int, _ *int) int {
	switch {
	case idle > 0:
		e.currentQ = max(e.currentQ-e.c, 0)
	case collision > 0:
		e.currentQ = min(e.currentQ+e.c, MaxQ)
	}
	return 1 << int(math.Round(e.currentQ))
}
