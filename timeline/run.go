package timeline

import "fmt"

// A Run is a span of consecutive days, both bounds included.
type Run struct {
	Start int
	End   int
}

// Len returns the number of days in r.
func (r Run) Len() int {
	return r.End - r.Start + 1
}

// Contains is true iff day belongs to r.
func (r Run) Contains(day int) bool {
	return day >= r.Start && day <= r.End
}

func (r Run) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// Enclosing returns the maximal run of days around anchor during which holds is true.
// Days are numbered from 1 to days. holds is never called outside that range:
// the predecessor of day 1 and the successor of the last day are considered false.
// holds(anchor) is expected to be true; if it is not, the result is the single-day run {anchor, anchor}.
// Enclosing panics if anchor is not a valid day, since this is a programming error.
func Enclosing(holds func(day int) bool, days, anchor int) Run {
	if anchor < 1 || anchor > days {
		panic(fmt.Sprintf("anchor day %d out of horizon [1, %d]", anchor, days))
	}
	start := anchor
	for start > 1 && holds(start-1) {
		start--
	}
	end := anchor
	for end < days && holds(end+1) {
		end++
	}
	return Run{Start: start, End: end}
}

// Runs returns all the maximal runs of the timeline, ordered by starting day.
func Runs(holds func(day int) bool, days int) []Run {
	var res []Run
	for d := 1; d <= days; d++ {
		if !holds(d) {
			continue
		}
		r := Enclosing(holds, days, d)
		res = append(res, r)
		d = r.End
	}
	return res
}

// Count returns the number of days the timeline holds.
func Count(holds func(day int) bool, days int) int {
	nb := 0
	for d := 1; d <= days; d++ {
		if holds(d) {
			nb++
		}
	}
	return nb
}
