// Package timeline detects runs of consecutive days in a boolean timeline.
//
// A timeline is the sequence of truth values taken, day after day, by one
// (operator, state) pair of a roster. A run is a maximal span of consecutive
// days during which the timeline holds.
//
// The package works on two levels.
//
// On concrete timelines, i.e once a solver has bound every variable,
// Enclosing scans outward from an anchor day to find the run that contains it,
// and Runs lists every run of the timeline:
//
//	holds := func(day int) bool { return sched.State(op, roster.Day(day)) == vacation }
//	r := timeline.Enclosing(holds, days, 12) // e.g {Start: 10, End: 16}
//
// On symbolic timelines, i.e while a model is being built and no variable has
// a value yet, runs cannot be scanned. Instead, NotStart and NotEnd return the
// literals of a clause prefix that is falsified exactly when a run starts (or
// ends) at a given day. Appending the literals of a property P to that prefix
// yields the clause "if a run starts here, then P":
//
//	clause := append(timeline.NotStart(lit, d), lit(d+1)) // a run starting at d lasts at least 2 days
//
// In both cases, the first and last days of the horizon are handled by an
// explicit branch: no day outside [1, days] is ever read or referenced.
package timeline
