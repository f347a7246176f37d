// Package metrics records figures about model construction and solving.
//
// Collectors are passed to the engine with engine.WithMetrics.
// Nop discards everything; Prometheus exposes the figures to a Prometheus registry.
package metrics

import "time"

// Collector receives measurements from the model builder and the engines.
// Implementations must be safe for concurrent use, as several engines can run at the same time.
type Collector interface {
	// RecordBuild records the construction of a model.
	RecordBuild(nbVars, nbConstrs int, elapsed time.Duration)
	// RecordSolve records one call to an engine. sat is true iff a solution was found.
	RecordSolve(engine string, sat bool, elapsed time.Duration)
	// RecordSolution records a solution delivered during an enumeration.
	RecordSolution(engine string)
}
