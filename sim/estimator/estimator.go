// Package estimator implements the frame-size estimators consulted by the
// DFSA simulator. Every type here satisfies sim.Estimator.
//
// Closed-form estimators (LowerBound, Schoute) are stateless. EomLee, Chen
// and Vahedi iterate towards a fixed point or a likelihood maximum and report
// each pass through the iterations counter. QAlgorithm carries its current Q
// between calls and is the only block-feedback estimator.
package estimator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dfsa-sim/dfsa-sim/sim"
)

var (
	// ErrUnknownEstimator is returned by New for an unrecognized name.
	ErrUnknownEstimator = errors.New("unknown estimator")
	// ErrInvalidParameter is returned by New when a parameter is out of range.
	ErrInvalidParameter = errors.New("invalid estimator parameter")
)

// Variant names, as returned by Name().
const (
	NameLowerBound = "LowerBound"
	NameSchoute    = "Schoute"
	NameEomLee     = "EomLee"
	NameQAlgorithm = "QAlgorithm"
	NameChen       = "Chen"
	NameVahedi     = "Vahedi"
)

// MaxQ is the upper bound of QAlgorithm's Q parameter.
const MaxQ = 15

// canonicalNames maps lower-cased names to variant names.
var canonicalNames = map[string]string{
	"lowerbound": NameLowerBound,
	"schoute":    NameSchoute,
	"eomlee":     NameEomLee,
	"qalgorithm": NameQAlgorithm,
	"chen":       NameChen,
	"vahedi":     NameVahedi,
}

// IsValidName returns true if name (case-insensitive) is a known variant.
func IsValidName(name string) bool {
	_, ok := canonicalNames[strings.ToLower(name)]
	return ok
}

// Names returns the variant names in sorted order.
func Names() []string {
	names := make([]string, 0, len(canonicalNames))
	for _, n := range canonicalNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// New builds the estimator described by cfg. Names are case-insensitive.
func New(cfg sim.EstimatorConfig) (sim.Estimator, error) {
	name, ok := canonicalNames[strings.ToLower(cfg.Name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: %s)", ErrUnknownEstimator, cfg.Name, strings.Join(Names(), ", "))
	}
	if name != NameQAlgorithm && cfg.InitialFrameSize < 0 {
		return nil, fmt.Errorf("%w: %s initial_frame_size must be non-negative, got %d",
			ErrInvalidParameter, name, cfg.InitialFrameSize)
	}

	switch name {
	case NameLowerBound:
		return NewLowerBound(cfg.InitialFrameSize), nil
	case NameSchoute:
		return NewSchoute(cfg.InitialFrameSize), nil
	case NameEomLee:
		if cfg.Threshold <= 0 {
			return nil, fmt.Errorf("%w: EomLee threshold must be positive, got %g", ErrInvalidParameter, cfg.Threshold)
		}
		return NewEomLee(cfg.InitialFrameSize, cfg.Threshold), nil
	case NameQAlgorithm:
		if cfg.Q < 0 || cfg.Q > MaxQ {
			return nil, fmt.Errorf("%w: QAlgorithm q must be in [0, %d], got %g", ErrInvalidParameter, MaxQ, cfg.Q)
		}
		if cfg.C <= 0 {
			return nil, fmt.Errorf("%w: QAlgorithm c must be positive, got %g", ErrInvalidParameter, cfg.C)
		}
		return NewQAlgorithm(cfg.Q, cfg.C), nil
	case NameChen:
		return NewChen(cfg.InitialFrameSize), nil
	case NameVahedi:
		if cfg.ExpandedSum {
			return NewVahediExpanded(cfg.InitialFrameSize), nil
		}
		return NewVahedi(cfg.InitialFrameSize), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownEstimator, cfg.Name)
	}
}

// addIteration bumps the run's iteration counter when one was supplied.
func addIteration(iterations *int) {
	if iterations != nil {
		*iterations++
	}
}
