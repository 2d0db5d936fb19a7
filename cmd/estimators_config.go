package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dfsa-sim/dfsa-sim/sim"
	"github.com/dfsa-sim/dfsa-sim/sim/sweep"
)

// Config represents the full estimators.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Estimators []sim.EstimatorConfig `yaml:"estimators"`
	// Sweep overrides the run flag defaults; flags set explicitly still win.
	Sweep *sweep.Config `yaml:"sweep"`
}

// DefaultEstimators is the built-in estimator set used when no --config is given.
func DefaultEstimators() []sim.EstimatorConfig {
	var cfgs []sim.EstimatorConfig
	for _, size := range []int{64, 128} {
		cfgs = append(cfgs,
			sim.EstimatorConfig{Name: "LowerBound", InitialFrameSize: size},
			sim.EstimatorConfig{Name: "Schoute", InitialFrameSize: size},
			sim.EstimatorConfig{Name: "EomLee", InitialFrameSize: size, Threshold: 1e-3},
		)
	}
	for _, q := range []float64{6, 7} {
		for _, c := range []float64{0.1, 0.2, 0.3, 0.4, 0.5} {
			cfgs = append(cfgs, sim.EstimatorConfig{Name: "QAlgorithm", Q: q, C: c})
		}
	}
	for _, size := range []int{64, 128} {
		cfgs = append(cfgs,
			sim.EstimatorConfig{Name: "Chen", InitialFrameSize: size},
			sim.EstimatorConfig{Name: "Vahedi", InitialFrameSize: size},
		)
	}
	return cfgs
}

// loadConfig parses an estimators.yaml file.
// Uses strict field checking: typos must cause errors.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading estimators file: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing estimators YAML: %w", err)
	}
	if len(cfg.Estimators) == 0 {
		return nil, fmt.Errorf("estimators YAML lists no estimators")
	}
	return &cfg, nil
}

// buildEstimators constructs every configured estimator, failing on the first
// invalid entry.
func buildEstimators(cfgs []sim.EstimatorConfig) ([]sim.Estimator, error) {
	ests := make([]sim.Estimator, 0, len(cfgs))
	for i, c := range cfgs {
		est, err := sim.NewEstimator(c)
		if err != nil {
			return nil, fmt.Errorf("estimator #%d: %w", i+1, err)
		}
		ests = append(ests, est)
	}
	return ests, nil
}
