// register.go wires the estimator constructor into the sim package's
// registration variable (NewEstimatorFunc). This init() runs when any package
// imports sim/estimator, breaking the import cycle between sim/ (interface
// owner) and sim/estimator/ (implementation).
package estimator

import "github.com/dfsa-sim/dfsa-sim/sim"

func init() {
	sim.NewEstimatorFunc = New
}
