package roster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBindings is returned when bindings cannot be decoded into a schedule.
var ErrInvalidBindings = errors.New("invalid bindings")

// A Schedule is a concrete roster: the state of every operator on every day.
type Schedule struct {
	params Params
	states []State // states[(o-1)*Days+d-1] is the state of operator o on day d
}

// NewSchedule returns a schedule where every operator is idle every day.
func NewSchedule(p Params) *Schedule {
	return &Schedule{params: p, states: make([]State, p.Operators*p.Days)}
}

// ParseSchedule returns the schedule described by rows, one row per operator and one symbol per day.
// Symbols are the ones returned by Params.Symbol.
//
//	s, err := ParseSchedule(p, "111RRVV...")
func ParseSchedule(p Params, rows ...string) (*Schedule, error) {
	if len(rows) != p.Operators {
		return nil, fmt.Errorf("got %d rows for %d operators", len(rows), p.Operators)
	}
	s := NewSchedule(p)
	for i, row := range rows {
		if len(row) != p.Days {
			return nil, fmt.Errorf("row %d has %d days, expected %d", i+1, len(row), p.Days)
		}
		for j := 0; j < len(row); j++ {
			st, err := p.ParseSymbol(row[j])
			if err != nil {
				return nil, fmt.Errorf("row %d, day %d: %w", i+1, j+1, err)
			}
			s.Set(Operator(i+1), Day(j+1), st)
		}
	}
	return s, nil
}

// Params returns the parameters of the problem s is a roster for.
func (s *Schedule) Params() Params {
	return s.params
}

func (s *Schedule) idx(o Operator, d Day) int {
	if o < 1 || int(o) > s.params.Operators || d < 1 || int(d) > s.params.Days {
		panic(fmt.Sprintf("invalid cell (operator %d, day %d)", o, d))
	}
	return (int(o)-1)*s.params.Days + int(d) - 1
}

// State returns the state of operator o on day d.
func (s *Schedule) State(o Operator, d Day) State {
	return s.states[s.idx(o, d)]
}

// Set sets the state of operator o on day d.
func (s *Schedule) Set(o Operator, d Day, st State) {
	s.states[s.idx(o, d)] = st
}

// Holds returns the timeline of operator o in state st, suitable for package timeline.
func (s *Schedule) Holds(o Operator, st State) func(day int) bool {
	return func(day int) bool {
		return s.State(o, Day(day)) == st
	}
}

// Operators returns the operators in state st on day d.
func (s *Schedule) Operators(d Day, st State) []Operator {
	var res []Operator
	for o := Operator(1); int(o) <= s.params.Operators; o++ {
		if s.State(o, d) == st {
			res = append(res, o)
		}
	}
	return res
}

// Row returns the symbols of operator o's states, day after day.
func (s *Schedule) Row(o Operator) string {
	var sb strings.Builder
	for d := Day(1); int(d) <= s.params.Days; d++ {
		sb.WriteByte(s.params.Symbol(s.State(o, d)))
	}
	return sb.String()
}

// Equal is true iff s and s2 describe the same roster.
func (s *Schedule) Equal(s2 *Schedule) bool {
	if s.params != s2.params {
		return false
	}
	for i := range s.states {
		if s.states[i] != s2.states[i] {
			return false
		}
	}
	return true
}

func (s *Schedule) String() string {
	rows := make([]string, s.params.Operators)
	for o := range rows {
		rows[o] = s.Row(Operator(o + 1))
	}
	return strings.Join(rows, "\n")
}

// Decode returns the schedule described by bindings, where bindings[v-1] is the value of variable v.
// Bindings may hold more values than the model has variables (e.g auxiliary variables); they are ignored.
// The returned error wraps ErrInvalidBindings if an operator is not in exactly one state on some day.
func (m *Model) Decode(bindings []bool) (*Schedule, error) {
	p := m.params
	if len(bindings) < m.NbVars() {
		return nil, fmt.Errorf("%w: got %d values for %d variables", ErrInvalidBindings, len(bindings), m.NbVars())
	}
	s := NewSchedule(p)
	for o := Operator(1); int(o) <= p.Operators; o++ {
		for d := Day(1); int(d) <= p.Days; d++ {
			nb := 0
			for st := State(0); int(st) < p.States(); st++ {
				if bindings[m.Var(o, d, st)-1] {
					s.Set(o, d, st)
					nb++
				}
			}
			if nb != 1 {
				return nil, fmt.Errorf("%w: operator %d is in %d states on day %d", ErrInvalidBindings, o, nb, d)
			}
		}
	}
	return s, nil
}

// Literals returns the positive literals of the variables that are true in s, one per operator and day.
func (m *Model) Literals(s *Schedule) []int {
	p := m.params
	res := make([]int, 0, p.Operators*p.Days)
	for o := Operator(1); int(o) <= p.Operators; o++ {
		for d := Day(1); int(d) <= p.Days; d++ {
			res = append(res, m.Var(o, d, s.State(o, d)))
		}
	}
	return res
}

// Bindings returns the value of every variable of m in s.
func (m *Model) Bindings(s *Schedule) []bool {
	res := make([]bool, m.NbVars())
	for _, v := range m.Literals(s) {
		res[v-1] = true
	}
	return res
}
