package roster

import "github.com/crillab/rostersat/timeline"

// An encoder appends to m the constraints of one business rule.
type encoder func(m *Model)

var encoders = []encoder{
	encodeCoverage,
	encodeSingleState,
	encodeShiftLength,
	encodeRest,
	encodeVacationLength,
	encodeVacationCount,
}

// Build validates p, declares the variables of the problem and generates all its constraints.
// If p is not valid, the returned error wraps ErrInvalidParams or ErrInconsistentParams
// and no model is built.
func Build(p Params) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m := newModel(p)
	for _, enc := range encoders {
		enc(m)
	}
	return m, nil
}

// Every machine is staffed by one operator every day.
func encodeCoverage(m *Model) {
	p := m.params
	lits := make([]int, p.Operators)
	for d := Day(1); int(d) <= p.Days; d++ {
		for i := 1; i <= p.Machines; i++ {
			for o := range lits {
				lits[o] = m.Var(Operator(o+1), d, Machine(i))
			}
			if p.CoveragePolicy() == CoverageExact {
				m.exactly(RuleCoverage, 1, lits)
			} else {
				m.atMost(RuleCoverage, 1, lits)
			}
		}
	}
}

// Every operator is in exactly one state every day.
func encodeSingleState(m *Model) {
	p := m.params
	lits := make([]int, p.States())
	for o := Operator(1); int(o) <= p.Operators; o++ {
		for d := Day(1); int(d) <= p.Days; d++ {
			for s := range lits {
				lits[s] = m.Var(o, d, State(s))
			}
			m.exactly(RuleSingleState, 1, lits)
		}
	}
}

// A run of shifts on a machine lasts at most JobDuration days:
// if a run starts on day d, one of the days d+1 .. d+JobDuration is not on that machine.
// Runs starting later than Days-JobDuration cannot be too long.
func encodeShiftLength(m *Model) {
	p := m.params
	for o := Operator(1); int(o) <= p.Operators; o++ {
		for i := 1; i <= p.Machines; i++ {
			lit := m.Lit(o, Machine(i))
			for d := 1; d+p.JobDuration <= p.Days; d++ {
				clause := timeline.NotStart(lit, d)
				for k := 1; k <= p.JobDuration; k++ {
					clause = append(clause, -lit(d+k))
				}
				m.clause(RuleShiftLength, clause...)
			}
		}
	}
}

// If a run of shifts on a machine ends on day d, the operator rests on days d+1 .. d+RelaxDuration
// and does not rest on day d+RelaxDuration+1.
// Days past the horizon are not constrained.
// Each day is a separate clause, so that every part of the rule is enforced on its own.
func encodeRest(m *Model) {
	p := m.params
	for o := Operator(1); int(o) <= p.Operators; o++ {
		rest := m.Lit(o, p.Rest())
		for i := 1; i <= p.Machines; i++ {
			lit := m.Lit(o, Machine(i))
			for d := 1; d < p.Days; d++ { // A run ending on the last day has no rest within the horizon
				for k := 1; k <= p.RelaxDuration && d+k <= p.Days; k++ {
					m.clause(RuleRest, append(timeline.NotEnd(lit, d, p.Days), rest(d+k))...)
				}
				if after := d + p.RelaxDuration + 1; after <= p.Days {
					m.clause(RuleRest, append(timeline.NotEnd(lit, d, p.Days), -rest(after))...)
				}
			}
		}
	}
}

// If a vacation block starts on day d, the operator is on vacation on days d .. d+VacancyDuration-1
// and not on day d+VacancyDuration. A block cannot start if it would be cut by the end of the horizon.
func encodeVacationLength(m *Model) {
	p := m.params
	for o := Operator(1); int(o) <= p.Operators; o++ {
		vac := m.Lit(o, p.Vacation())
		for d := 1; d <= p.Days; d++ {
			if d+p.VacancyDuration-1 > p.Days {
				m.clause(RuleVacationLength, timeline.NotStart(vac, d)...)
				continue
			}
			for k := 1; k < p.VacancyDuration; k++ {
				m.clause(RuleVacationLength, append(timeline.NotStart(vac, d), vac(d+k))...)
			}
			if after := d + p.VacancyDuration; after <= p.Days {
				m.clause(RuleVacationLength, append(timeline.NotStart(vac, d), -vac(after))...)
			}
		}
	}
}

// Every operator spends exactly VacancyDuration*VacancyCount days on vacation.
func encodeVacationCount(m *Model) {
	p := m.params
	lits := make([]int, p.Days)
	for o := Operator(1); int(o) <= p.Operators; o++ {
		vac := m.Lit(o, p.Vacation())
		for d := range lits {
			lits[d] = vac(d + 1)
		}
		m.exactly(RuleVacationCount, p.VacancyDuration*p.VacancyCount, lits)
	}
}
