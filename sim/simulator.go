// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dfsa-sim/dfsa-sim/sim/trace"
)

var (
	// ErrFrameLimitExceeded is returned when a run needs more frames than
	// SimulatorConfig.MaxFrames allows.
	ErrFrameLimitExceeded = errors.New("frame limit exceeded")
	// ErrInvalidFrameSize is returned when an estimator produces a negative
	// frame size.
	ErrInvalidFrameSize = errors.New("invalid frame size")
	// ErrInvalidTagCount is returned when a run is asked for a negative
	// number of tags.
	ErrInvalidTagCount = errors.New("invalid tag count")
)

// SimulatorConfig groups the parameters of a Simulator.
type SimulatorConfig struct {
	Key SimulationKey // seeds every tag's private RNG stream
	// MaxFrames bounds the frames of a single run; 0 means unbounded.
	MaxFrames int
}

// Simulator runs single inventory rounds. A Simulator holds no run-state and
// may be shared by goroutines, provided each call gets its own Estimator.
type Simulator struct {
	key       SimulationKey
	maxFrames int
}

// NewSimulator creates a Simulator from cfg.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	return &Simulator{
		key:       cfg.Key,
		maxFrames: cfg.MaxFrames,
	}
}

// Simulate identifies tagCount tags using est and returns the run statistics.
// The estimator must not be used by any other run concurrently.
func (s *Simulator) Simulate(est Estimator, tagCount int) (*Result, error) {
	return s.run(est, tagCount, nil)
}

// SimulateTraced is Simulate plus a record of every frame.
func (s *Simulator) SimulateTraced(est Estimator, tagCount int) (*Result, *trace.RunTrace, error) {
	rt := trace.NewRunTrace(est.String(), tagCount)
	res, err := s.run(est, tagCount, rt)
	return res, rt, err
}

type runState int

const (
	stateRunning runState = iota
	stateDone
)

// round is the mutable state of one run.
type round struct {
	est       Estimator
	tags      []*Tag
	result    *Result
	trace     *trace.RunTrace
	frameSize int
}

// newPopulation seeds one tag per stream and lets every tag join the round.
func (s *Simulator) newPopulation(tagCount int) []*Tag {
	rng := NewPartitionedRNG(s.key)
	tags := make([]*Tag, tagCount)
	for i := range tags {
		tags[i] = NewTag(rng.ForSubsystem(SubsystemTag(i)))
		tags[i].ReaderStarting()
	}
	return tags
}

// run executes one round. ExecutionTime covers the frame loop only; seeding
// the tag population is not timed.
func (s *Simulator) run(est Estimator, tagCount int, rt *trace.RunTrace) (*Result, error) {
	if tagCount < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTagCount, tagCount)
	}
	tags := s.newPopulation(tagCount)
	start := time.Now()

	r := &round{
		est:       est,
		tags:      tags,
		result:    newResult(est, tagCount),
		trace:     rt,
		frameSize: est.InitialFrameSize(),
	}

	for state := stateRunning; state == stateRunning; {
		if r.frameSize == 0 {
			break
		}
		if r.frameSize < 0 {
			return nil, fmt.Errorf("%w: %s returned %d after frame %d",
				ErrInvalidFrameSize, est, r.frameSize, r.result.CreatedFrames)
		}
		if s.maxFrames > 0 && r.result.CreatedFrames >= s.maxFrames {
			return nil, fmt.Errorf("%w: %s with %d tags did not finish in %d frames",
				ErrFrameLimitExceeded, est, tagCount, s.maxFrames)
		}
		r.result.CreatedFrames++

		switch est.Feedback() {
		case SimpleFrameFeedback:
			r.simpleFrame()
		case BlockFeedback:
			if r.blockFrame() {
				state = stateDone
			}
		default:
			return nil, fmt.Errorf("%s: unsupported feedback mode %v", est, est.Feedback())
		}
	}

	r.result.ExecutionTime = float64(time.Since(start).Nanoseconds()) / 1e6
	logrus.Debugf("[%s] %d tags: %d frames, %d slots (%d idle, %d success, %d collision) in %.3fms",
		est, tagCount, r.result.CreatedFrames, r.result.CreatedSlots,
		r.result.IdleSlots, r.result.SuccessSlots, r.result.CollisionSlots, r.result.ExecutionTime)
	return r.result, nil
}

// simpleFrame lets every responsive tag pick a slot, classifies the slots and
// asks the estimator for the next frame size once.
func (r *round) simpleFrame() {
	size := r.frameSize
	occupancy := make([]int, size)
	owner := make([]*Tag, size)
	for _, tag := range r.tags {
		slot := tag.CalculateAndGetSlot(size)
		if slot == -1 {
			continue
		}
		occupancy[slot]++
		owner[slot] = tag
	}

	var idle, success, collision int
	for i, n := range occupancy {
		switch n {
		case 0:
			idle++
		case 1:
			success++
			owner[i].CommunicationSuccessful()
		default:
			collision++
		}
	}

	r.result.CreatedSlots += size
	r.result.IdleSlots += idle
	r.result.SuccessSlots += success
	r.result.CollisionSlots += collision

	r.frameSize = r.est.NextFrameSize(idle, success, collision, &r.result.Iterations)
	r.record(trace.FrameRecord{
		Size: size, Slots: size,
		Idle: idle, Success: success, Collision: collision,
		NextSize: r.frameSize,
	})
}

// blockFrame walks the frame slot by slot, consulting the estimator after
// each one. It returns true when the last slot of a collision-free frame has
// been processed, which ends the round.
func (r *round) blockFrame() bool {
	size := r.frameSize
	rec := trace.FrameRecord{Size: size}
	adjust := true
	collided := false

	for i := 0; i < size; i++ {
		r.result.CreatedSlots++
		rec.Slots++

		responders := 0
		var last *Tag
		for _, tag := range r.tags {
			var transmits bool
			if adjust {
				transmits = tag.QueryAdjust(size)
			} else {
				transmits = tag.QueryRep()
			}
			if transmits {
				responders++
				last = tag
			}
		}

		var idle, success, collision int
		switch responders {
		case 0:
			idle = 1
		case 1:
			success = 1
			last.CommunicationSuccessful()
		default:
			collision = 1
			collided = true
		}
		r.result.IdleSlots += idle
		r.result.SuccessSlots += success
		r.result.CollisionSlots += collision
		rec.Idle += idle
		rec.Success += success
		rec.Collision += collision

		if i == size-1 && !collided {
			rec.NextSize = 0
			r.record(rec)
			return true
		}

		next := r.est.NextFrameSize(idle, success, collision, &r.result.Iterations)
		if next != size {
			r.frameSize = next
			rec.NextSize = next
			r.record(rec)
			return false
		}
		adjust = false
	}

	rec.NextSize = size
	r.record(rec)
	return false
}

func (r *round) record(rec trace.FrameRecord) {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Tracef("[%s] frame %d: size=%d slots=%d idle=%d success=%d collision=%d next=%d",
			r.est, r.result.CreatedFrames, rec.Size, rec.Slots, rec.Idle, rec.Success, rec.Collision, rec.NextSize)
	}
	if r.trace == nil {
		return
	}
	rec.Index = len(r.trace.Frames)
	r.trace.RecordFrame(rec)
}
