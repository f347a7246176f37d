/*
Package roster encodes a workforce rostering problem as a set of boolean cardinality constraints.

Over a planning horizon of Days days, each of Operators operators is, every day, in exactly one state:
idle, on shift on one of Machines machines, resting after a shift, or on vacation.
The decision variables are all the (operator, day, state) triples;
variable x(o, d, s) is true iff operator o is in state s on day d.

The business rules are:

 1. every machine is staffed by exactly one operator every day (RuleCoverage),
 2. every operator is in exactly one state every day (RuleSingleState),
 3. no operator stays more than JobDuration consecutive days on the same machine (RuleShiftLength),
 4. after a shift, an operator rests for exactly RelaxDuration days (RuleRest),
 5. vacations are taken by blocks of exactly VacancyDuration days (RuleVacationLength),
 6. every operator takes exactly VacancyCount such blocks over the horizon (RuleVacationCount).

Describing a problem

Parameters are described with a Params value, which can be checked on its own:

    p := roster.Params{
        Operators:       15,
        Days:            360,
        Machines:        8,
        JobDuration:     33,
        RelaxDuration:   23,
        VacancyDuration: 7,
        VacancyCount:    4,
    }
    if err := p.Validate(); err != nil {
        // err wraps ErrInvalidParams or ErrInconsistentParams
    }

Build then declares the variables and generates the constraints:

    m, err := roster.Build(p)

Rules about runs of days (rules 3 to 5) are not written by looking at the value of variables,
since no variable has a value while the model is built. They are written as clauses guarded
by the start or the end of a run (see package timeline): "if a run of machine 2 ends on day d,
then operator o rests on day d+1".

Solving a problem

A Model is solver-agnostic: each constraint states that at least AtLeast of its DIMACS literals must be true.
It can be written in the OPB format (WriteOPB), translated to CNF (CNF, WriteDIMACS),
or given to one of the engines of package engine.
Bindings returned by a solver are turned back into a Schedule with Decode,
and any Schedule can be checked against the business rules with Verify.
*/
package roster
