package roster

import "fmt"

// A Rule identifies the business rule a constraint was generated for.
type Rule byte

const (
	// RuleCoverage means machines are staffed every day.
	RuleCoverage = Rule(iota)
	// RuleSingleState means operators are in exactly one state every day.
	RuleSingleState
	// RuleShiftLength bounds the number of consecutive days on a machine.
	RuleShiftLength
	// RuleRest imposes a fixed-length rest after every shift.
	RuleRest
	// RuleVacationLength imposes a fixed length on vacation blocks.
	RuleVacationLength
	// RuleVacationCount imposes the total number of vacation days per operator.
	RuleVacationCount
)

// Rules lists all the rules, in the order they are encoded.
var Rules = []Rule{RuleCoverage, RuleSingleState, RuleShiftLength, RuleRest, RuleVacationLength, RuleVacationCount}

func (r Rule) String() string {
	switch r {
	case RuleCoverage:
		return "coverage"
	case RuleSingleState:
		return "single-state"
	case RuleShiftLength:
		return "shift-length"
	case RuleRest:
		return "rest"
	case RuleVacationLength:
		return "vacation-length"
	case RuleVacationCount:
		return "vacation-count"
	default:
		return fmt.Sprintf("Rule(%d)", byte(r))
	}
}

// ParseRule returns the rule whose name is s.
func ParseRule(s string) (Rule, error) {
	for _, r := range Rules {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rule %q", s)
}
