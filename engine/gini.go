package engine

import (
	"fmt"

	"github.com/crillab/rostersat/roster"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Gini is an engine based on the gini solver.
// It works on the CNF translation of the model, see roster.CNF.
type Gini struct{}

// Name returns "gini".
func (Gini) Name() string {
	return "gini"
}

// Solve solves the CNF translation of m and blocked with a new gini solver.
func (Gini) Solve(m *roster.Model, blocked [][]int) ([]bool, bool, error) {
	cnf := m.CNF()
	g := gini.NewV(cnf.NbVars)
	for _, clauses := range [][][]int{cnf.Clauses, blocked} {
		for _, clause := range clauses {
			if len(clause) == 0 {
				return nil, false, nil
			}
			for _, lit := range clause {
				g.Add(z.Dimacs2Lit(lit))
			}
			g.Add(z.LitNull)
		}
	}
	switch res := g.Solve(); res {
	case 1:
		bindings := make([]bool, m.NbVars())
		maxVar := int(g.MaxVar())
		for v := 1; v <= m.NbVars() && v <= maxVar; v++ {
			bindings[v-1] = g.Value(z.Var(v).Pos())
		}
		return bindings, true, nil
	case -1:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("gini: unexpected result %d", res)
	}
}
