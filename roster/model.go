package roster

import (
	"fmt"
	"sync"

	"github.com/crillab/rostersat/timeline"
)

// A Constr is a cardinality constraint: at least AtLeast literals among Lits must be true.
// Literals follow the DIMACS convention: v means variable v is true, -v means it is false.
// A propositional clause is a Constr whose AtLeast is 1.
type Constr struct {
	Lits    []int
	AtLeast int
	Rule    Rule // Business rule the constraint was generated for
}

// Satisfied is true iff c is satisfied by bindings, where bindings[v-1] is the value of variable v.
func (c Constr) Satisfied(bindings []bool) bool {
	nb := 0
	for _, lit := range c.Lits {
		if lit > 0 && bindings[lit-1] || lit < 0 && !bindings[-lit-1] {
			nb++
			if nb >= c.AtLeast {
				return true
			}
		}
	}
	return nb >= c.AtLeast
}

func (c Constr) String() string {
	return fmt.Sprintf("%s: %v >= %d", c.Rule, c.Lits, c.AtLeast)
}

// A Model is the set of variables and constraints describing a rostering problem.
// Once built, a Model is never modified: it can be shared between goroutines and solved several times.
type Model struct {
	params  Params
	states  int
	constrs []Constr
	cnfOnce sync.Once
	cnf     *CNF
}

func newModel(p Params) *Model {
	return &Model{params: p, states: p.States()}
}

// Params returns the parameters the model was built from.
func (m *Model) Params() Params {
	return m.params
}

// NbVars returns the number of decision variables. Variables are numbered from 1 to NbVars.
func (m *Model) NbVars() int {
	return m.params.NbVars()
}

// Var returns the variable associated with operator o being in state s on day d.
// It panics if the triple is out of range.
func (m *Model) Var(o Operator, d Day, s State) int {
	p := m.params
	if o < 1 || int(o) > p.Operators || d < 1 || int(d) > p.Days || !p.ValidState(s) {
		panic(fmt.Sprintf("invalid variable (operator %d, day %d, state %d)", o, d, s))
	}
	return ((int(o)-1)*p.Days+int(d)-1)*m.states + int(s) + 1
}

// Triple returns the operator, day and state associated with variable v.
func (m *Model) Triple(v int) (Operator, Day, State) {
	if v < 1 || v > m.NbVars() {
		panic(fmt.Sprintf("invalid variable %d", v))
	}
	v--
	s := v % m.states
	v /= m.states
	d := v % m.params.Days
	o := v / m.params.Days
	return Operator(o + 1), Day(d + 1), State(s)
}

// Name returns the name of variable v, e.g "state_o3d12s10".
func (m *Model) Name(v int) string {
	o, d, s := m.Triple(v)
	return fmt.Sprintf("state_o%dd%ds%d", o, d, s)
}

// Lit returns the timeline of operator o in state s, as a function of the day.
func (m *Model) Lit(o Operator, s State) timeline.Lit {
	return func(day int) int {
		return m.Var(o, Day(day), s)
	}
}

// Constrs returns the constraints of the model. The returned slice must not be modified.
func (m *Model) Constrs() []Constr {
	return m.constrs
}

// Rules returns the rules that generated at least one constraint of the model, in encoding order.
func (m *Model) Rules() []Rule {
	present := make(map[Rule]bool)
	for _, c := range m.constrs {
		present[c.Rule] = true
	}
	var res []Rule
	for _, r := range Rules {
		if present[r] {
			res = append(res, r)
		}
	}
	return res
}

// Restrict returns a model with the same variables as m but only the constraints generated by the given rules.
func (m *Model) Restrict(rules ...Rule) *Model {
	keep := make(map[Rule]bool, len(rules))
	for _, r := range rules {
		keep[r] = true
	}
	m2 := newModel(m.params)
	for _, c := range m.constrs {
		if keep[c.Rule] {
			m2.constrs = append(m2.constrs, c)
		}
	}
	return m2
}

// Violated returns the constraints of m that are not satisfied by bindings,
// where bindings[v-1] is the value of variable v.
func (m *Model) Violated(bindings []bool) []Constr {
	if len(bindings) < m.NbVars() {
		panic(fmt.Sprintf("%d bindings for %d variables", len(bindings), m.NbVars()))
	}
	var res []Constr
	for _, c := range m.constrs {
		if !c.Satisfied(bindings) {
			res = append(res, c)
		}
	}
	return res
}

// Stats are figures about the size of a model.
type Stats struct {
	NbVars    int
	NbConstrs int
	NbLits    int
	ByRule    map[Rule]int // Number of constraints per rule
}

// Stats returns figures about the size of m.
func (m *Model) Stats() Stats {
	st := Stats{NbVars: m.NbVars(), NbConstrs: len(m.constrs), ByRule: make(map[Rule]int)}
	for _, c := range m.constrs {
		st.NbLits += len(c.Lits)
		st.ByRule[c.Rule]++
	}
	return st
}

// add appends a constraint to the model. It takes ownership of lits.
func (m *Model) add(rule Rule, atLeast int, lits []int) {
	m.constrs = append(m.constrs, Constr{Lits: lits, AtLeast: atLeast, Rule: rule})
}

// clause appends a propositional clause to the model. It takes ownership of lits.
func (m *Model) clause(rule Rule, lits ...int) {
	m.add(rule, 1, lits)
}

// atMost states at most n literals among lits can be true.
func (m *Model) atMost(rule Rule, n int, lits []int) {
	neg := make([]int, len(lits))
	for i, lit := range lits {
		neg[i] = -lit
	}
	m.add(rule, len(lits)-n, neg)
}

// atLeast states at least n literals among lits must be true.
func (m *Model) atLeast(rule Rule, n int, lits []int) {
	cpy := make([]int, len(lits))
	copy(cpy, lits)
	m.add(rule, n, cpy)
}

// exactly states exactly n literals among lits must be true.
func (m *Model) exactly(rule Rule, n int, lits []int) {
	m.atLeast(rule, n, lits)
	m.atMost(rule, n, lits)
}
