package roster

import (
	"fmt"

	"github.com/crillab/rostersat/timeline"
)

// A Violation describes a place where a schedule breaks a business rule.
type Violation struct {
	Rule     Rule
	Operator Operator // 0 if the violation is not about a single operator
	Day      Day      // First day concerned by the violation, 0 if it concerns the whole horizon
	Msg      string
}

func (v Violation) String() string {
	switch {
	case v.Operator != 0 && v.Day != 0:
		return fmt.Sprintf("%s: operator %d, day %d: %s", v.Rule, v.Operator, v.Day, v.Msg)
	case v.Operator != 0:
		return fmt.Sprintf("%s: operator %d: %s", v.Rule, v.Operator, v.Msg)
	case v.Day != 0:
		return fmt.Sprintf("%s: day %d: %s", v.Rule, v.Day, v.Msg)
	default:
		return fmt.Sprintf("%s: %s", v.Rule, v.Msg)
	}
}

// Verify checks s against every business rule and returns the violations it found.
// Runs are detected on the concrete schedule with package timeline.
// An empty result means s is a valid roster.
func Verify(s *Schedule) []Violation {
	var res []Violation
	res = append(res, verifySingleState(s)...)
	if len(res) != 0 { // Other checks would be meaningless
		return res
	}
	res = append(res, verifyCoverage(s)...)
	res = append(res, verifyShifts(s)...)
	res = append(res, verifyVacations(s)...)
	return res
}

func verifySingleState(s *Schedule) []Violation {
	p := s.params
	var res []Violation
	for o := Operator(1); int(o) <= p.Operators; o++ {
		for d := Day(1); int(d) <= p.Days; d++ {
			if st := s.State(o, d); !p.ValidState(st) {
				res = append(res, Violation{Rule: RuleSingleState, Operator: o, Day: d, Msg: p.StateName(st)})
			}
		}
	}
	return res
}

func verifyCoverage(s *Schedule) []Violation {
	p := s.params
	var res []Violation
	for d := Day(1); int(d) <= p.Days; d++ {
		for i := 1; i <= p.Machines; i++ {
			nb := len(s.Operators(d, Machine(i)))
			if nb > 1 || nb == 0 && p.CoveragePolicy() == CoverageExact {
				res = append(res, Violation{
					Rule: RuleCoverage,
					Day:  d,
					Msg:  fmt.Sprintf("machine %d staffed by %d operators", i, nb),
				})
			}
		}
	}
	return res
}

// verifyShifts checks the length of shifts and the rest that follows them.
func verifyShifts(s *Schedule) []Violation {
	p := s.params
	var res []Violation
	for o := Operator(1); int(o) <= p.Operators; o++ {
		isRest := s.Holds(o, p.Rest())
		for i := 1; i <= p.Machines; i++ {
			for _, r := range timeline.Runs(s.Holds(o, Machine(i)), p.Days) {
				if r.Len() > p.JobDuration {
					res = append(res, Violation{
						Rule:     RuleShiftLength,
						Operator: o,
						Day:      Day(r.Start),
						Msg:      fmt.Sprintf("%d days on machine %d, at most %d allowed", r.Len(), i, p.JobDuration),
					})
				}
				if r.End == p.Days {
					continue
				}
				for k := 1; k <= p.RelaxDuration && r.End+k <= p.Days; k++ {
					if !isRest(r.End + k) {
						res = append(res, Violation{
							Rule:     RuleRest,
							Operator: o,
							Day:      Day(r.End + k),
							Msg:      fmt.Sprintf("shift on machine %d ended on day %d, rest expected", i, r.End),
						})
						break
					}
				}
				if after := r.End + p.RelaxDuration + 1; after <= p.Days && isRest(after) {
					res = append(res, Violation{
						Rule:     RuleRest,
						Operator: o,
						Day:      Day(after),
						Msg:      fmt.Sprintf("rest after shift ending on day %d lasts more than %d days", r.End, p.RelaxDuration),
					})
				}
			}
		}
	}
	return res
}

func verifyVacations(s *Schedule) []Violation {
	p := s.params
	var res []Violation
	for o := Operator(1); int(o) <= p.Operators; o++ {
		runs := timeline.Runs(s.Holds(o, p.Vacation()), p.Days)
		for _, r := range runs {
			if r.Len() != p.VacancyDuration {
				res = append(res, Violation{
					Rule:     RuleVacationLength,
					Operator: o,
					Day:      Day(r.Start),
					Msg:      fmt.Sprintf("vacation of %d days, %d expected", r.Len(), p.VacancyDuration),
				})
			}
		}
		if len(runs) != p.VacancyCount {
			res = append(res, Violation{
				Rule:     RuleVacationCount,
				Operator: o,
				Msg:      fmt.Sprintf("%d vacation blocks, %d expected", len(runs), p.VacancyCount),
			})
		}
	}
	return res
}
