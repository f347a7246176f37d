package timeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fromString builds a timeline from a string where '#' means the timeline holds.
// Day 1 is the first character. Reading outside the string fails the test.
func fromString(t *testing.T, s string) func(int) bool {
	t.Helper()
	return func(day int) bool {
		if day < 1 || day > len(s) {
			t.Fatalf("timeline read out of horizon: day %d, horizon %d", day, len(s))
		}
		return s[day-1] == '#'
	}
}

func TestEnclosing(t *testing.T) {
	tests := []struct {
		timeline string
		anchor   int
		want     Run
	}{
		{"###.......", 1, Run{1, 3}},
		{"###.......", 2, Run{1, 3}},
		{"###.......", 3, Run{1, 3}},
		{".....#####", 10, Run{6, 10}},
		{".....#####", 6, Run{6, 10}},
		{"##########", 5, Run{1, 10}},
		{"....#.....", 5, Run{5, 5}},
		{"#", 1, Run{1, 1}},
		{"##.##", 4, Run{4, 5}},
	}
	for _, test := range tests {
		got := Enclosing(fromString(t, test.timeline), len(test.timeline), test.anchor)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Enclosing(%q, %d): unexpected run (-want +got):\n%s", test.timeline, test.anchor, diff)
		}
		if !got.Contains(test.anchor) {
			t.Errorf("Enclosing(%q, %d) = %v does not contain its anchor", test.timeline, test.anchor, got)
		}
	}
}

func TestEnclosingPanicsOutsideHorizon(t *testing.T) {
	for _, anchor := range []int{0, 11, -3} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for anchor %d", anchor)
				}
			}()
			Enclosing(func(int) bool { return true }, 10, anchor)
		}()
	}
}

func TestRuns(t *testing.T) {
	tests := []struct {
		timeline string
		want     []Run
	}{
		{"..........", nil},
		{"###..##..#", []Run{{1, 3}, {6, 7}, {10, 10}}},
		{"##########", []Run{{1, 10}}},
		{".#.#.#", []Run{{2, 2}, {4, 4}, {6, 6}}},
	}
	for _, test := range tests {
		got := Runs(fromString(t, test.timeline), len(test.timeline))
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Runs(%q): unexpected runs (-want +got):\n%s", test.timeline, diff)
		}
	}
}

func TestRunLen(t *testing.T) {
	if l := (Run{Start: 4, End: 10}).Len(); l != 7 {
		t.Errorf("expected length 7, got %d", l)
	}
	if l := (Run{Start: 3, End: 3}).Len(); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}
}

func TestCount(t *testing.T) {
	if nb := Count(fromString(t, "#.##...###"), 10); nb != 6 {
		t.Errorf("expected 6 days, got %d", nb)
	}
}
