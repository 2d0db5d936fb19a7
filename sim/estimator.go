package sim

import "fmt"

// FeedbackMode selects how often the Simulator consults an Estimator.
type FeedbackMode int

const (
	// SimpleFrameFeedback consults the estimator once per completed frame.
	SimpleFrameFeedback FeedbackMode = iota
	// BlockFeedback consults the estimator after every slot; a changed frame
	// size restarts the frame immediately.
	BlockFeedback
)

func (m FeedbackMode) String() string {
	switch m {
	case SimpleFrameFeedback:
		return "simple-frame"
	case BlockFeedback:
		return "block"
	default:
		return fmt.Sprintf("FeedbackMode(%d)", int(m))
	}
}

// Estimator predicts the size of the next frame from the idle, success and
// collision slot counts just observed. Implementations live in sim/estimator.
type Estimator interface {
	// Name is the stable variant identifier, e.g. "Chen".
	Name() string

	// String is a display label including the configured parameters.
	String() string

	Feedback() FeedbackMode

	InitialFrameSize() int

	// NextFrameSize returns the size of the next frame. A return of 0 ends
	// the inventory round. Estimators with an internal convergence loop add
	// one to *iterations per pass; iterations may be nil.
	NextFrameSize(idle, success, collision int, iterations *int) int

	// Copy returns an estimator with the same configuration and fresh
	// run-state. Concurrent runs must each hold their own copy.
	Copy() Estimator
}

// EstimatorConfig is the name-plus-parameters form of an estimator, as read
// from YAML or CLI flags. Fields not used by a variant are ignored.
type EstimatorConfig struct {
	Name             string  `yaml:"name"`
	InitialFrameSize int     `yaml:"initial_frame_size"`
	Threshold        float64 `yaml:"threshold"`    // EomLee convergence threshold
	Q                float64 `yaml:"q"`            // QAlgorithm initial Q
	C                float64 `yaml:"c"`            // QAlgorithm fluctuation step
	ExpandedSum      bool    `yaml:"expanded_sum"` // Vahedi: evaluate the full double sum
}

// NewEstimatorFunc builds an Estimator from its config. It is set by
// sim/estimator's init(); importing that package is required before use.
var NewEstimatorFunc func(cfg EstimatorConfig) (Estimator, error)

// NewEstimator builds an Estimator through NewEstimatorFunc.
func NewEstimator(cfg EstimatorConfig) (Estimator, error) {
	if NewEstimatorFunc == nil {
		return nil, fmt.Errorf("no estimator factory registered; import sim/estimator")
	}
	return NewEstimatorFunc(cfg)
}
