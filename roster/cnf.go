package roster

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// A CNF is a propositional translation of a model, suitable for clause-based SAT solvers.
// Variables 1 to Model.NbVars() are the decision variables of the model;
// variables above are auxiliary variables introduced by cardinality encodings.
type CNF struct {
	NbVars  int
	Clauses [][]int
}

// CNF returns the propositional translation of m.
// Clauses are kept as they are; other cardinality constraints are translated
// with the sorting networks of gini's logic package.
// The translation is computed once; the returned value must not be modified.
func (m *Model) CNF() *CNF {
	m.cnfOnce.Do(func() {
		m.cnf = translate(m.NbVars(), m.constrs)
	})
	return m.cnf
}

// translate returns the CNF of constrs, whose literals range over variables 1 to nbVars.
func translate(nbVars int, constrs []Constr) *CNF {
	cnf := &CNF{NbVars: nbVars}
	c := logic.NewC()
	inputs := make([]z.Lit, nbVars+1)
	for v := 1; v <= nbVars; v++ {
		inputs[v] = c.Lit()
	}
	var roots []z.Lit
	for _, con := range constrs {
		n := len(con.Lits)
		switch {
		case con.AtLeast <= 0: // Trivially satisfied
		case con.AtLeast > n: // Cannot be satisfied
			cnf.Clauses = append(cnf.Clauses, []int{})
		case con.AtLeast == 1:
			clause := make([]int, n)
			copy(clause, con.Lits)
			cnf.Clauses = append(cnf.Clauses, clause)
		case con.AtLeast == n: // All lits must be true
			for _, lit := range con.Lits {
				cnf.Clauses = append(cnf.Clauses, []int{lit})
			}
		default:
			ms := make([]z.Lit, n)
			for i, lit := range con.Lits {
				if lit > 0 {
					ms[i] = inputs[lit]
				} else {
					ms[i] = inputs[-lit].Not()
				}
			}
			roots = append(roots, c.CardSort(ms).Geq(con.AtLeast))
		}
	}
	if len(roots) == 0 {
		return cnf
	}
	a := &clauseAdder{cnf: cnf, vars: make(map[z.Var]int, nbVars)}
	for v := 1; v <= nbVars; v++ {
		a.vars[inputs[v].Var()] = v
	}
	c.ToCnf(a)
	cnf.Clauses = append(cnf.Clauses, []int{a.dimacs(c.T)})
	for _, r := range roots {
		cnf.Clauses = append(cnf.Clauses, []int{a.dimacs(r)})
	}
	return cnf
}

// clauseAdder collects the clauses of a circuit.
// Circuit variables that are not model variables are numbered after them, in order of appearance.
type clauseAdder struct {
	cnf    *CNF
	vars   map[z.Var]int
	clause []int
}

// Add adds m to the current clause, or ends it if m is z.LitNull.
func (a *clauseAdder) Add(m z.Lit) {
	if m == z.LitNull {
		a.cnf.Clauses = append(a.cnf.Clauses, a.clause)
		a.clause = nil
		return
	}
	a.clause = append(a.clause, a.dimacs(m))
}

func (a *clauseAdder) dimacs(m z.Lit) int {
	v, ok := a.vars[m.Var()]
	if !ok {
		a.cnf.NbVars++
		v = a.cnf.NbVars
		a.vars[m.Var()] = v
	}
	if m.IsPos() {
		return v
	}
	return -v
}
