package estimator

import (
	"fmt"
	"math"

	"github.com/dfsa-sim/dfsa-sim/sim"
)

// LowerBound assumes every collision slot held exactly two tags.
type LowerBound struct {
	initialFrameSize int
}

// NewLowerBound creates a LowerBound estimator.
func NewLowerBound(initialFrameSize int) *LowerBound {
	return &LowerBound{initialFrameSize: initialFrameSize}
}

func (e *LowerBound) Name() string { return NameLowerBound }

func (e *LowerBound) String() string {
	return fmt.Sprintf("%s i=%d", NameLowerBound, e.initialFrameSize)
}

func (e *LowerBound) Feedback() sim.FeedbackMode { return sim.SimpleFrameFeedback }
func (e *LowerBound) InitialFrameSize() int      { return e.initialFrameSize }
func (e *LowerBound) Copy() sim.Estimator        { return NewLowerBound(e.initialFrameSize) }

func (e *LowerBound) NextFrameSize(_, _, collision int, _ *int) int {
	return 2 * collision
}

// schouteFactor is the expected number of tags in a collision slot when the
// frame size matches the backlog.
const schouteFactor = 2.39

// Schoute scales collision slots by the expected tags per collision.
type Schoute struct {
	initialFrameSize int
}

// NewSchoute creates a Schoute estimator.
func NewSchoute(initialFrameSize int) *Schoute {
	return &Schoute{initialFrameSize: initialFrameSize}
}

func (e *Schoute) Name() string { return NameSchoute }

func (e *Schoute) String() string {
	return fmt.Sprintf("%s i=%d", NameSchoute, e.initialFrameSize)
}

func (e *Schoute) Feedback() sim.FeedbackMode { return sim.SimpleFrameFeedback }
func (e *Schoute) InitialFrameSize() int      { return e.initialFrameSize }
func (e *Schoute) Copy() sim.Estimator        { return NewSchoute(e.initialFrameSize) }

func (e *Schoute) NextFrameSize(_, _, collision int, _ *int) int {
	return int(math.Ceil(schouteFactor * float64(collision)))
}
