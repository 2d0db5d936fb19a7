// Package sweep runs an estimator over a range of tag counts, repeating each
// point and reducing the repetitions into a single result per tag count.
//
// Repetitions are dispatched to a fixed pool of workers. Every repetition
// owns an estimator copy and a SimulationKey derived from the sweep seed, the
// tag count and the repetition index, so a sweep produces the same
// reductions (execution time aside) for any number of workers.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/dfsa-sim/dfsa-sim/sim"
)

// ErrInvalidConfig is returned by Config.Validate and Run for unusable sweep
// parameters.
var ErrInvalidConfig = errors.New("invalid sweep config")

// Config describes a sweep.
type Config struct {
	InitialTagCount int `yaml:"initial_tag_count"`
	MaxTagCount     int `yaml:"max_tag_count"`
	TagCountStep    int `yaml:"tag_count_step"`
	Repetitions     int `yaml:"repetitions"`
	// Workers is the pool size; 0 means runtime.NumCPU().
	Workers   int           `yaml:"workers"`
	Reduction sim.Reduction `yaml:"reduction"`
	Seed      int64         `yaml:"seed"`
	// MaxFrames bounds every run; 0 means unbounded.
	MaxFrames int `yaml:"max_frames"`
}

// Validate checks the config for consistency.
func (c Config) Validate() error {
	switch {
	case c.InitialTagCount < 0:
		return fmt.Errorf("%w: initial tag count %d is negative", ErrInvalidConfig, c.InitialTagCount)
	case c.MaxTagCount < c.InitialTagCount:
		return fmt.Errorf("%w: max tag count %d is below initial tag count %d", ErrInvalidConfig, c.MaxTagCount, c.InitialTagCount)
	case c.TagCountStep <= 0:
		return fmt.Errorf("%w: tag count step must be positive, got %d", ErrInvalidConfig, c.TagCountStep)
	case c.Repetitions <= 0:
		return fmt.Errorf("%w: repetitions must be positive, got %d", ErrInvalidConfig, c.Repetitions)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	case c.MaxFrames < 0:
		return fmt.Errorf("%w: max frames must be >= 0, got %d", ErrInvalidConfig, c.MaxFrames)
	case !sim.IsValidReduction(string(c.Reduction)):
		return fmt.Errorf("%w: unknown reduction %q", ErrInvalidConfig, c.Reduction)
	}
	return nil
}

// TagCounts lists the swept tag counts in ascending order.
func (c Config) TagCounts() []int {
	var counts []int
	for n := c.InitialTagCount; n <= c.MaxTagCount; n += c.TagCountStep {
		counts = append(counts, n)
	}
	return counts
}

func (c Config) workers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Point is the reduced outcome of all repetitions at one tag count.
type Point struct {
	TagCount int         `json:"tag_count"`
	Runs     int         `json:"runs"`
	Result   *sim.Result `json:"result"`
	// Spread of CreatedSlots across the repetitions, before reduction.
	SlotsMean   float64 `json:"slots_mean"`
	SlotsStdDev float64 `json:"slots_stddev"`
}

// Series is the outcome of a sweep, ordered by tag count.
type Series struct {
	ID        uuid.UUID     `json:"id"`
	Estimator string        `json:"estimator"`
	Reduction sim.Reduction `json:"reduction"`
	Seed      int64         `json:"seed"`
	Points    []Point       `json:"points"`
}

type task struct {
	point    int
	rep      int
	tagCount int
	seed     int64
	est      sim.Estimator
}

type outcome struct {
	task
	res *sim.Result
	err error
}

// Run sweeps est over cfg. est is only used as a prototype: every repetition
// runs on its own Copy. The first failing run aborts the sweep; cancelling
// ctx stops dispatch and returns ctx.Err().
func Run(ctx context.Context, est sim.Estimator, cfg Config) (*Series, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	counts := cfg.TagCounts()
	workers := cfg.workers()
	series := &Series{
		ID:        uuid.New(),
		Estimator: est.String(),
		Reduction: cfg.Reduction,
		Seed:      cfg.Seed,
		Points:    make([]Point, len(counts)),
	}
	logrus.Infof("[sweep %s] %s: %d tag counts x %d runs on %d workers",
		series.ID, est, len(counts), cfg.Repetitions, workers)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan task)
	outcomes := make(chan outcome, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				s := sim.NewSimulator(sim.SimulatorConfig{
					Key:       sim.NewSimulationKey(t.seed),
					MaxFrames: cfg.MaxFrames,
				})
				res, err := s.Simulate(t.est, t.tagCount)
				select {
				case outcomes <- outcome{task: t, res: res, err: err}:
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		seeds := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
		for i, n := range counts {
			for rep := 0; rep < cfg.Repetitions; rep++ {
				t := task{
					point:    i,
					rep:      rep,
					tagCount: n,
					seed:     seeds.DeriveSeed(sim.SubsystemRun(n, rep)),
					est:      est.Copy(),
				}
				select {
				case tasks <- t:
				case <-runCtx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	buckets := make([][]*sim.Result, len(counts))
	remaining := make([]int, len(counts))
	for i := range buckets {
		buckets[i] = make([]*sim.Result, cfg.Repetitions)
		remaining[i] = cfg.Repetitions
	}

	var firstErr error
	done := 0
	for o := range outcomes {
		if firstErr != nil {
			continue
		}
		if o.err != nil {
			firstErr = fmt.Errorf("sweep %s: %d tags, run %d: %w", series.ID, o.tagCount, o.rep, o.err)
			cancel()
			continue
		}
		buckets[o.point][o.rep] = o.res
		remaining[o.point]--
		if remaining[o.point] > 0 {
			continue
		}

		p, err := reducePoint(cfg.Reduction, counts[o.point], buckets[o.point])
		if err != nil {
			firstErr = err
			cancel()
			continue
		}
		series.Points[o.point] = p
		buckets[o.point] = nil
		done++
		logrus.Infof("[sweep %s] %d tags done (%d/%d): %d slots, %d frames",
			series.ID, p.TagCount, done, len(counts), p.Result.CreatedSlots, p.Result.CreatedFrames)
	}

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return series, nil
}

func reducePoint(red sim.Reduction, tagCount int, results []*sim.Result) (Point, error) {
	reduced, err := red.Reduce(results)
	if err != nil {
		return Point{}, fmt.Errorf("reducing %d tags: %w", tagCount, err)
	}
	slots := make([]float64, len(results))
	for i, r := range results {
		slots[i] = float64(r.CreatedSlots)
	}
	p := Point{
		TagCount: tagCount,
		Runs:     len(results),
		Result:   reduced,
	}
	if len(slots) > 1 {
		p.SlotsMean, p.SlotsStdDev = stat.MeanStdDev(slots, nil)
	} else {
		p.SlotsMean = slots[0]
	}
	return p, nil
}
