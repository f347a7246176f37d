package engine

import (
	"testing"

	"github.com/crillab/rostersat/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// small is a one-operator, one-machine, ten-day problem with at least one roster:
// "111RRVV...".
var small = roster.Params{
	Operators:       1,
	Days:            10,
	Machines:        1,
	JobDuration:     3,
	RelaxDuration:   2,
	VacancyDuration: 2,
	VacancyCount:    1,
	Coverage:        roster.CoverageAtMostOne,
}

// tiny is a problem small enough for its rosters to be enumerated by brute force.
var tiny = roster.Params{
	Operators:       1,
	Days:            5,
	Machines:        1,
	JobDuration:     2,
	RelaxDuration:   1,
	VacancyDuration: 1,
	VacancyCount:    1,
	Coverage:        roster.CoverageAtMostOne,
}

func build(t *testing.T, p roster.Params) *roster.Model {
	t.Helper()
	m, err := roster.Build(p)
	require.NoError(t, err)
	return m
}

// infeasible returns a model with no roster: the only operator must be on the machine every day.
func infeasible(t *testing.T) *roster.Model {
	p := small
	p.Coverage = roster.CoverageExact
	return build(t, p)
}

func allEngines() []Engine {
	return []Engine{Gophersat{}, Gini{}}
}

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"gini", "gophersat"}, Names())
	for _, name := range Names() {
		e, err := New(name)
		require.NoError(t, err)
		assert.Equal(t, name, e.Name())
	}
	_, err := New("minisat")
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "SATISFIABLE", Feasible.String())
	assert.Equal(t, "UNSATISFIABLE", Infeasible.String())
	assert.Equal(t, "UNKNOWN", Unknown.String())
	assert.Equal(t, "Verdict(7)", Verdict(7).String())
}

func TestSolve(t *testing.T) {
	for _, e := range allEngines() {
		t.Run(e.Name(), func(t *testing.T) {
			m := build(t, small)
			bindings, sat, err := e.Solve(m, nil)
			require.NoError(t, err)
			require.True(t, sat)
			require.Len(t, bindings, m.NbVars())
			assert.Empty(t, m.Violated(bindings))

			bindings, sat, err = e.Solve(infeasible(t), nil)
			require.NoError(t, err)
			assert.False(t, sat)
			assert.Nil(t, bindings)
		})
	}
}

func TestSolveScenario(t *testing.T) {
	m := build(t, small)
	s, err := roster.ParseSchedule(small, "111RRVV...")
	require.NoError(t, err)
	var units [][]int
	for _, lit := range m.Literals(s) {
		units = append(units, []int{lit})
	}
	for _, e := range allEngines() {
		t.Run(e.Name(), func(t *testing.T) {
			bindings, sat, err := e.Solve(m, units)
			require.NoError(t, err)
			require.True(t, sat)
			got, err := m.Decode(bindings)
			require.NoError(t, err)
			assert.True(t, s.Equal(got), "got\n%s", got)
		})
	}
}

func TestSolveDoesNotModifyInputs(t *testing.T) {
	m := build(t, small)
	before := make([][]int, len(m.Constrs()))
	for i, c := range m.Constrs() {
		before[i] = append([]int(nil), c.Lits...)
	}
	blocked := [][]int{{-1, -2}, {3}}
	for _, e := range allEngines() {
		_, _, err := e.Solve(m, blocked)
		require.NoError(t, err)
	}
	for i, c := range m.Constrs() {
		require.Equal(t, before[i], c.Lits, "constraint %d was modified", i)
	}
	assert.Equal(t, [][]int{{-1, -2}, {3}}, blocked)
}

func TestSolveEmptyBlockingClause(t *testing.T) {
	m := build(t, small)
	for _, e := range allEngines() {
		_, sat, err := e.Solve(m, [][]int{{}})
		require.NoError(t, err)
		assert.False(t, sat, e.Name())
	}
}

func TestSolveRestrictedModel(t *testing.T) {
	m := build(t, small).Restrict(roster.RuleVacationCount)
	for _, e := range allEngines() {
		bindings, sat, err := e.Solve(m, nil)
		require.NoError(t, err)
		require.True(t, sat)
		assert.Len(t, bindings, m.NbVars(), e.Name())
	}
}
