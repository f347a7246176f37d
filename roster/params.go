package roster

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParams is returned when a parameter is out of its domain.
	ErrInvalidParams = errors.New("invalid roster parameters")
	// ErrInconsistentParams is returned when parameters are valid on their own
	// but obviously contradict each other, so that no roster can exist.
	ErrInconsistentParams = errors.New("inconsistent roster parameters")
)

// Coverage indicates how machines must be staffed.
type Coverage string

const (
	// CoverageExact means every machine is staffed by exactly one operator every day.
	CoverageExact Coverage = "exact"
	// CoverageAtMostOne means every machine is staffed by at most one operator every day.
	// Machines can then stay unstaffed on some days.
	CoverageAtMostOne Coverage = "at-most-one"
)

// maxVars is the maximum number of variables a model can hold.
// Engines work on 32-bit literals.
const maxVars = math.MaxInt32 / 2

// Params describe the horizon and the workforce of a rostering problem.
type Params struct {
	Operators       int      `yaml:"operators" json:"operators"`               // Number of operators
	Days            int      `yaml:"days" json:"days"`                         // Number of days in the horizon
	Machines        int      `yaml:"machines" json:"machines"`                 // Number of machines
	JobDuration     int      `yaml:"job_duration" json:"job_duration"`         // Maximal number of consecutive days on a machine
	RelaxDuration   int      `yaml:"relax_duration" json:"relax_duration"`     // Number of rest days after a shift
	VacancyDuration int      `yaml:"vacancy_duration" json:"vacancy_duration"` // Length of a vacation block
	VacancyCount    int      `yaml:"vacancy_count" json:"vacancy_count"`       // Number of vacation blocks per operator
	Coverage        Coverage `yaml:"coverage" json:"coverage"`                 // Staffing policy. Empty means CoverageExact.
}

// States returns the number of states an operator can be in: idle, one per machine, rest and vacation.
func (p Params) States() int {
	return p.Machines + 3
}

// NbVars returns the number of decision variables of the problem.
func (p Params) NbVars() int {
	return p.Operators * p.Days * p.States()
}

// CoveragePolicy returns the staffing policy, CoverageExact if none was given.
func (p Params) CoveragePolicy() Coverage {
	if p.Coverage == "" {
		return CoverageExact
	}
	return p.Coverage
}

// Validate checks p and returns an error wrapping ErrInvalidParams if a parameter is not valid,
// or ErrInconsistentParams if parameters make the problem infeasible by simple arithmetic.
// All detected problems are reported.
func (p Params) Validate() error {
	var errs []error
	positive := []struct {
		name string
		val  int
	}{
		{"operators", p.Operators},
		{"days", p.Days},
		{"machines", p.Machines},
		{"job_duration", p.JobDuration},
		{"relax_duration", p.RelaxDuration},
		{"vacancy_duration", p.VacancyDuration},
		{"vacancy_count", p.VacancyCount},
	}
	for _, f := range positive {
		if f.val <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidParams, f.name, f.val))
		}
	}
	switch p.CoveragePolicy() {
	case CoverageExact, CoverageAtMostOne:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown coverage %q", ErrInvalidParams, p.Coverage))
	}
	if len(errs) != 0 {
		return errors.Join(errs...)
	}
	if nb := float64(p.Operators) * float64(p.Days) * (float64(p.Machines) + 3); nb > maxVars {
		return fmt.Errorf("%w: %.0f variables needed, at most %d supported", ErrInvalidParams, nb, maxVars)
	}
	durations := []struct {
		name string
		val  int
	}{
		{"job_duration", p.JobDuration},
		{"relax_duration", p.RelaxDuration},
		{"vacancy_duration", p.VacancyDuration},
	}
	for _, f := range durations {
		if f.val > p.Days {
			errs = append(errs, fmt.Errorf("%w: %s must not exceed the %d days of the horizon, got %d",
				ErrInvalidParams, f.name, p.Days, f.val))
		}
	}
	if len(errs) != 0 {
		return errors.Join(errs...)
	}
	// Vacation blocks are maximal runs, so two blocks are separated by at least one day:
	// C blocks of V days need C*(V+1)-1 days. Dividing avoids overflowing on large counts.
	if p.VacancyCount > (p.Days+1)/(p.VacancyDuration+1) {
		errs = append(errs, fmt.Errorf("%w: %d vacation blocks of %d days do not fit in %d days",
			ErrInconsistentParams, p.VacancyCount, p.VacancyDuration, p.Days))
	}
	if p.CoveragePolicy() == CoverageExact && p.Machines > p.Operators {
		errs = append(errs, fmt.Errorf("%w: %d machines cannot be staffed every day by %d operators",
			ErrInconsistentParams, p.Machines, p.Operators))
	}
	return errors.Join(errs...)
}
