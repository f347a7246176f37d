package timeline

import "fmt"

// A Lit associates a day with the DIMACS literal meaning "the timeline holds on that day".
// It must return a non-zero value for every day in [1, days].
type Lit func(day int) int

// NotStart returns the literals of a clause that is false exactly when a run starts at day,
// i.e when the timeline holds on day but not on the day before.
// On the first day of the horizon, a run starts as soon as the timeline holds.
//
// The returned slice is freshly allocated; callers can append to it.
func NotStart(lit Lit, day int) []int {
	if day < 1 {
		panic(fmt.Sprintf("invalid day %d", day))
	}
	if day == 1 {
		return []int{-lit(day)}
	}
	return []int{-lit(day), lit(day - 1)}
}

// NotEnd returns the literals of a clause that is false exactly when a run ends at day,
// i.e when the timeline holds on day but not on the day after.
// On the last day of the horizon, a run ends as soon as the timeline holds.
//
// The returned slice is freshly allocated; callers can append to it.
func NotEnd(lit Lit, day, days int) []int {
	if day < 1 || day > days {
		panic(fmt.Sprintf("day %d out of horizon [1, %d]", day, days))
	}
	if day == days {
		return []int{-lit(day)}
	}
	return []int{-lit(day), lit(day + 1)}
}
