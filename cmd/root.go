package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dfsa-sim/dfsa-sim/sim"
	_ "github.com/dfsa-sim/dfsa-sim/sim/estimator"
	"github.com/dfsa-sim/dfsa-sim/sim/sweep"
)

var (
	// CLI flags for the sweep
	configPath      string // Estimators YAML; empty selects the built-in set
	initialTagCount int    // First tag count of the sweep
	maxTagCount     int    // Last tag count of the sweep (inclusive)
	tagCountStep    int    // Tag count increment between points
	repetitions     int    // Runs per tag count
	workers         int    // Worker goroutines; 0 uses every CPU
	reduction       string // Reduction applied to the runs of a point
	seed            int64  // Master seed for tag RNG streams
	maxFrames       int    // Frame limit per run; 0 is unbounded
	resultsPath     string // File to write JSON results to
	logLevel        string // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dfsa-sim",
	Short: "Frame-slotted ALOHA simulator for RFID anti-collision estimators",
}

// runCmd sweeps every configured estimator over the tag-count range
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the estimator sweep",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		file := &Config{Estimators: DefaultEstimators()}
		if configPath != "" {
			loaded, err := loadConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load estimators: %v", err)
			}
			file = loaded
		}

		cfg := applySweepFile(flagSweepConfig(), file.Sweep, cmd.Flags().Changed)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid sweep: %v", err)
		}
		ests, err := buildEstimators(file.Estimators)
		if err != nil {
			logrus.Fatalf("Invalid estimator config: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		logrus.Infof("Starting sweep of %d estimators, tags %d..%d step %d, %d runs each, seed %d",
			len(ests), cfg.InitialTagCount, cfg.MaxTagCount, cfg.TagCountStep, cfg.Repetitions, cfg.Seed)
		startTime := time.Now()

		all := make([]*sweep.Series, 0, len(ests))
		for _, est := range ests {
			series, err := sweep.Run(ctx, est, cfg)
			if err != nil {
				logrus.Fatalf("Sweep of %s failed: %v", est, err)
			}
			printSeries(os.Stdout, series)
			fmt.Println()
			all = append(all, series)
		}

		if resultsPath != "" {
			if err := saveResults(resultsPath, all); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Results written to %s", resultsPath)
		}
		logrus.Infof("Sweep complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// estimatorsCmd lists the estimators a run would use
var estimatorsCmd = &cobra.Command{
	Use:   "estimators",
	Short: "List the configured estimators",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		cfgs := DefaultEstimators()
		if configPath != "" {
			loaded, err := loadConfig(configPath)
			if err != nil {
				logrus.Fatalf("Failed to load estimators: %v", err)
			}
			cfgs = loaded.Estimators
		}
		ests, err := buildEstimators(cfgs)
		if err != nil {
			logrus.Fatalf("Invalid estimator config: %v", err)
		}
		for _, est := range ests {
			fmt.Printf("%-32s feedback=%s initial=%d\n", est, est.Feedback(), est.InitialFrameSize())
		}
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// flagSweepConfig builds a sweep config from the run flags.
func flagSweepConfig() sweep.Config {
	return sweep.Config{
		InitialTagCount: initialTagCount,
		MaxTagCount:     maxTagCount,
		TagCountStep:    tagCountStep,
		Repetitions:     repetitions,
		Workers:         workers,
		Reduction:       sim.Reduction(reduction),
		Seed:            seed,
		MaxFrames:       maxFrames,
	}
}

// applySweepFile takes every field the YAML sweep section sets, unless the
// matching flag was given explicitly.
func applySweepFile(cfg sweep.Config, file *sweep.Config, changed func(name string) bool) sweep.Config {
	if file == nil {
		return cfg
	}
	if !changed("initial-tags") && file.InitialTagCount != 0 {
		cfg.InitialTagCount = file.InitialTagCount
	}
	if !changed("max-tags") && file.MaxTagCount != 0 {
		cfg.MaxTagCount = file.MaxTagCount
	}
	if !changed("tag-step") && file.TagCountStep != 0 {
		cfg.TagCountStep = file.TagCountStep
	}
	if !changed("runs") && file.Repetitions != 0 {
		cfg.Repetitions = file.Repetitions
	}
	if !changed("workers") && file.Workers != 0 {
		cfg.Workers = file.Workers
	}
	if !changed("reduction") && file.Reduction != "" {
		cfg.Reduction = file.Reduction
	}
	if !changed("seed") && file.Seed != 0 {
		cfg.Seed = file.Seed
	}
	if !changed("max-frames") && file.MaxFrames != 0 {
		cfg.MaxFrames = file.MaxFrames
	}
	return cfg
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Estimators YAML file (default: built-in set)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().IntVar(&initialTagCount, "initial-tags", 100, "First tag count of the sweep")
	runCmd.Flags().IntVar(&maxTagCount, "max-tags", 1000, "Last tag count of the sweep (inclusive)")
	runCmd.Flags().IntVar(&tagCountStep, "tag-step", 50, "Tag count increment between sweep points")
	runCmd.Flags().IntVar(&repetitions, "runs", 10, "Simulation runs per tag count")
	runCmd.Flags().IntVar(&workers, "workers", 1, "Worker goroutines (0 = number of CPUs)")
	runCmd.Flags().StringVar(&reduction, "reduction", string(sim.ReductionAverage), "Reduction over runs (average, min, max)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for tag slot selection")
	runCmd.Flags().IntVar(&maxFrames, "max-frames", 0, "Abort a run after this many frames (0 = unbounded)")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write results as JSON to this file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(estimatorsCmd)
}
