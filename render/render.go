// Package render displays rosters and search results for humans.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/crillab/rostersat/engine"
	"github.com/crillab/rostersat/roster"
)

// Text writes the n-th roster s day after day, with one line per operator.
func Text(w io.Writer, n int, s *roster.Schedule) error {
	p := s.Params()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Solution %d\n", n)
	for d := roster.Day(1); int(d) <= p.Days; d++ {
		fmt.Fprintf(bw, "Day %d\n", d)
		for o := roster.Operator(1); int(o) <= p.Operators; o++ {
			switch st := s.State(o, d); {
			case p.IsMachine(st):
				fmt.Fprintf(bw, "  Operator %d works machine %d\n", o, st)
			case st == p.Rest():
				fmt.Fprintf(bw, "  Operator %d rests\n", o)
			case st == p.Vacation():
				fmt.Fprintf(bw, "  Operator %d is on vacation\n", o)
			default:
				fmt.Fprintf(bw, "  Operator %d does not work\n", o)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not write roster: %w", err)
	}
	return nil
}

// Grid writes s as a grid, one row per operator and one column per day.
// See roster.Params.Symbol for the meaning of symbols.
// Machines beyond the 35th all show as '*'; use Text to tell them apart.
//
//	      1234567890
//	op 1  111RRVV...
func Grid(w io.Writer, s *roster.Schedule) error {
	if _, err := io.WriteString(w, grid(s, func(_ roster.State, sym string) string { return sym })); err != nil {
		return fmt.Errorf("could not write roster: %w", err)
	}
	return nil
}

var (
	machineStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	restStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5DADE2"))
	vacationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5B041"))
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
	headerStyle   = lipgloss.NewStyle().Faint(true)
)

// Styled returns the same grid as Grid, colored according to the kind of state.
func Styled(s *roster.Schedule) string {
	p := s.Params()
	return grid(s, func(st roster.State, sym string) string {
		switch {
		case st < 0:
			return headerStyle.Render(sym)
		case p.IsMachine(st):
			return machineStyle.Render(sym)
		case st == p.Rest():
			return restStyle.Render(sym)
		case st == p.Vacation():
			return vacationStyle.Render(sym)
		default:
			return idleStyle.Render(sym)
		}
	})
}

// grid lays out s. Consecutive days in the same state are given to style at once.
// The header line is given to style with a negative state.
func grid(s *roster.Schedule, style func(st roster.State, sym string) string) string {
	p := s.Params()
	width := len(strconv.Itoa(p.Operators))
	margin := len("op ") + width + 2
	var sb strings.Builder
	var header strings.Builder
	for d := 1; d <= p.Days; d++ {
		header.WriteByte(byte('0' + d%10))
	}
	sb.WriteString(strings.Repeat(" ", margin))
	sb.WriteString(style(-1, header.String()))
	sb.WriteByte('\n')
	for o := roster.Operator(1); int(o) <= p.Operators; o++ {
		fmt.Fprintf(&sb, "op %-*d  ", width, o)
		row := s.Row(o)
		start := 0
		for d := 1; d <= len(row); d++ {
			if d == len(row) || s.State(o, roster.Day(d+1)) != s.State(o, roster.Day(start+1)) {
				sb.WriteString(style(s.State(o, roster.Day(start+1)), row[start:d]))
				start = d
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Stats writes statistics about an enumeration.
func Stats(w io.Writer, res engine.Result) error {
	_, err := fmt.Fprintf(w, "\nStatistics\n  - engine         : %s\n  - verdict        : %s\n  - wall time      : %f s\n  - solutions found: %d\n",
		res.Engine, res.Verdict, res.Elapsed.Seconds(), res.Solutions)
	if err != nil {
		return fmt.Errorf("could not write statistics: %w", err)
	}
	return nil
}
