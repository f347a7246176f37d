package engine

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
	"github.com/crillab/rostersat/roster"
)

// Gophersat is an engine based on the gophersat CDCL solver.
// Cardinality constraints are given to the solver as they are, without any translation.
type Gophersat struct{}

// Name returns "gophersat".
func (Gophersat) Name() string {
	return "gophersat"
}

// Solve solves m and blocked with a new gophersat solver.
func (Gophersat) Solve(m *roster.Model, blocked [][]int) ([]bool, bool, error) {
	constrs := make([]solver.PBConstr, 0, len(m.Constrs())+len(blocked))
	for _, c := range m.Constrs() {
		// Constraints built by gophersat take ownership of their literals.
		lits := make([]int, len(c.Lits))
		copy(lits, c.Lits)
		constrs = append(constrs, solver.AtLeast(lits, c.AtLeast))
	}
	for _, clause := range blocked {
		lits := make([]int, len(clause))
		copy(lits, clause)
		constrs = append(constrs, solver.PropClause(lits...))
	}
	if len(constrs) == 0 {
		return make([]bool, m.NbVars()), true, nil
	}
	s := solver.New(solver.ParsePBConstrs(constrs))
	switch status := s.Solve(); status {
	case solver.Sat:
		return padded(s.Model(), m.NbVars()), true, nil
	case solver.Unsat:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("gophersat: unexpected status %v", status)
	}
}
