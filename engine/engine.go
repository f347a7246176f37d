package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/crillab/rostersat/roster"
)

// ErrUnknownEngine is returned by New when no engine has the given name.
var ErrUnknownEngine = errors.New("unknown engine")

// An Engine decides whether a model is satisfiable.
type Engine interface {
	// Name returns the name of the engine, as accepted by New.
	Name() string
	// Solve looks for bindings satisfying every constraint of m and every clause in blocked.
	// If it finds some, it returns them, with bindings[v-1] the value of variable v, for v in 1..m.NbVars(),
	// and true. If there are none, it returns nil and false.
	// Implementations must not modify m or blocked, so that an engine can be used by several goroutines.
	Solve(m *roster.Model, blocked [][]int) (bindings []bool, sat bool, err error)
}

var engines = map[string]Engine{
	Gophersat{}.Name(): Gophersat{},
	Gini{}.Name():      Gini{},
}

// New returns the engine called name.
func New(name string) (Engine, error) {
	e, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, expected one of %v", ErrUnknownEngine, name, Names())
	}
	return e, nil
}

// Names returns the names of all available engines, sorted.
func Names() []string {
	res := make([]string, 0, len(engines))
	for name := range engines {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// A Verdict is the conclusion of a search.
type Verdict byte

const (
	// Unknown means the search was interrupted before any conclusion.
	Unknown = Verdict(iota)
	// Feasible means at least one roster was found.
	Feasible
	// Infeasible means there is no roster at all.
	Infeasible
)

func (v Verdict) String() string {
	switch v {
	case Unknown:
		return "UNKNOWN"
	case Feasible:
		return "SATISFIABLE"
	case Infeasible:
		return "UNSATISFIABLE"
	default:
		return fmt.Sprintf("Verdict(%d)", byte(v))
	}
}

// padded returns bindings for variables 1..nbVars, taken from model and completed with false values.
// Engines only know about the variables that appear in constraints.
func padded(model []bool, nbVars int) []bool {
	res := make([]bool, nbVars)
	copy(res, model)
	return res
}
