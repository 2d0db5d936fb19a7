package sim_test

// Blank import triggers sim/estimator's init(), which registers NewEstimatorFunc.
// This allows package sim's internal test files to build estimators without
// directly importing sim/estimator (which would create an import cycle).
import _ "github.com/dfsa-sim/dfsa-sim/sim/estimator"
