package roster

import "fmt"

// An Operator is identified by a number between 1 and Params.Operators.
type Operator int

// A Day is a number between 1 and Params.Days.
type Day int

// A State is what an operator does on a given day.
// State 0 is Idle, states 1 to Params.Machines are shifts on the machine with the same number,
// then come the post-shift rest state and the vacation state.
// For 8 machines, rest is state 9 and vacation is state 10.
type State int

// Idle means the operator neither works, rests nor is on vacation.
const Idle State = 0

// Machine returns the state "on shift on machine i".
func Machine(i int) State {
	return State(i)
}

// Rest returns the post-shift rest state.
func (p Params) Rest() State {
	return State(p.Machines + 1)
}

// Vacation returns the vacation state.
func (p Params) Vacation() State {
	return State(p.Machines + 2)
}

// IsMachine is true iff s is a shift on one of the machines.
func (p Params) IsMachine(s State) bool {
	return s >= 1 && int(s) <= p.Machines
}

// ValidState is true iff s is one of the states of the problem.
func (p Params) ValidState(s State) bool {
	return s >= 0 && int(s) < p.States()
}

// StateName returns a human-readable name for s.
func (p Params) StateName(s State) string {
	switch {
	case s == Idle:
		return "idle"
	case p.IsMachine(s):
		return fmt.Sprintf("machine %d", s)
	case s == p.Rest():
		return "rest"
	case s == p.Vacation():
		return "vacation"
	default:
		return fmt.Sprintf("invalid state %d", s)
	}
}

const machineSymbols = "123456789abcdefghijklmnopqrstuvwxyz"

// Symbol returns a one-character representation of s:
// '.' for idle, 'R' for rest, 'V' for vacation, and '1'-'9' then 'a'-'z' for machines.
// Machines beyond the 35th are all represented by '*'.
func (p Params) Symbol(s State) byte {
	switch {
	case s == Idle:
		return '.'
	case p.IsMachine(s):
		if int(s) <= len(machineSymbols) {
			return machineSymbols[s-1]
		}
		return '*'
	case s == p.Rest():
		return 'R'
	case s == p.Vacation():
		return 'V'
	default:
		return '?'
	}
}

// ParseSymbol is the reverse of Symbol.
// Machines beyond the 35th share the symbol '*' and cannot be parsed.
func (p Params) ParseSymbol(b byte) (State, error) {
	switch b {
	case '.':
		return Idle, nil
	case 'R':
		return p.Rest(), nil
	case 'V':
		return p.Vacation(), nil
	case '*':
		return 0, fmt.Errorf("ambiguous state symbol %q: it stands for every machine beyond the %dth", b, len(machineSymbols))
	}
	for i := 0; i < len(machineSymbols) && i < p.Machines; i++ {
		if machineSymbols[i] == b {
			return Machine(i + 1), nil
		}
	}
	return 0, fmt.Errorf("invalid state symbol %q", b)
}
