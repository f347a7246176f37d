package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/crillab/rostersat/engine"
	"github.com/crillab/rostersat/roster"
	"github.com/crillab/rostersat/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallArgs describe a single operator working on a single machine for 10 days.
var smallArgs = []string{
	"--operators", "1", "--days", "10", "--machines", "1",
	"--job", "3", "--relax", "2", "--vacancy", "2", "--vacancies", "1",
	"--coverage", "at-most-one",
}

// run runs the command line made of smallArgs and args, and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ROSTERSAT_ENGINE", "")
	t.Setenv("ROSTERSAT_DB", "")
	a := &app{}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	all := []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}
	all = append(all, smallArgs...)
	cmd.SetArgs(append(all, args...))
	err := a.execute(context.Background(), cmd)
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func TestSolve(t *testing.T) {
	for _, format := range []string{"text", "grid", "styled"} {
		t.Run(format, func(t *testing.T) {
			out, err := run(t, "solve", "--format", format)
			require.NoError(t, err)
			assert.Contains(t, out, "Solution 1\n")
			assert.Contains(t, lines(out), "SATISFIABLE")
			assert.Contains(t, out, "  - solutions found: 1\n")
		})
	}
}

func TestSolveAll(t *testing.T) {
	out, err := run(t, "--engine", "gini", "solve", "--all", "--limit", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Solution 3\n")
	assert.NotContains(t, out, "Solution 4\n")
	assert.Contains(t, out, "  - engine         : gini\n")
}

func TestSolveInfeasible(t *testing.T) {
	out, err := run(t, "--coverage", "exact", "solve")
	require.NoError(t, err)
	assert.NotContains(t, out, "Solution")
	assert.Contains(t, lines(out), "UNSATISFIABLE")
}

func TestSolveUnknownFormat(t *testing.T) {
	_, err := run(t, "solve", "--format", "html")
	assert.Error(t, err)
}

func TestInvalidParams(t *testing.T) {
	_, err := run(t, "--operators", "0", "solve")
	assert.ErrorIs(t, err, roster.ErrInvalidParams)
	_, err = run(t, "--engine", "minisat", "solve")
	assert.ErrorIs(t, err, engine.ErrUnknownEngine)
}

func TestTeardownAfterFailure(t *testing.T) {
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--metrics-addr", "127.0.0.1:0"}, smallArgs...), "solve", "--format", "html"))
	err := a.execute(context.Background(), cmd)
	require.Error(t, err)
	require.NotNil(t, a.logger, "setup did not run")
	assert.Nil(t, a.server, "metrics server still running")
}

func TestCount(t *testing.T) {
	m, err := roster.Build(roster.Params{
		Operators: 1, Days: 5, Machines: 1, JobDuration: 2, RelaxDuration: 1,
		VacancyDuration: 1, VacancyCount: 1, Coverage: roster.CoverageAtMostOne,
	})
	require.NoError(t, err)
	want, err := engine.Count(context.Background(), engine.Gophersat{}, m)
	require.NoError(t, err)
	out, err := run(t, "--days", "5", "--job", "2", "--relax", "1", "--vacancy", "1", "count")
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(want), strings.TrimSpace(out))
}

func TestExport(t *testing.T) {
	tests := []struct {
		format string
		parse  func(string) (*solver.Problem, error)
	}{
		{"opb", func(s string) (*solver.Problem, error) { return solver.ParseOPB(strings.NewReader(s)) }},
		{"cnf", func(s string) (*solver.Problem, error) { return solver.ParseCNF(strings.NewReader(s)) }},
	}
	for _, test := range tests {
		t.Run(test.format, func(t *testing.T) {
			out, err := run(t, "export", "--format", test.format)
			require.NoError(t, err)
			pb, err := test.parse(out)
			require.NoError(t, err)
			assert.Equal(t, solver.Sat, solver.New(pb).Solve())
		})
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.opb")
	out, err := run(t, "export", "--output", path, "--names=false")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.FileExists(t, path)
}

func TestExplain(t *testing.T) {
	for _, method := range []string{"deletion", "insertion"} {
		t.Run(method, func(t *testing.T) {
			out, err := run(t, "--coverage", "exact", "explain", "--method", method)
			require.NoError(t, err)
			assert.Equal(t, []string{"UNSATISFIABLE", "conflicting rules: coverage, shift-length"}, lines(out))
		})
	}
	out, err := run(t, "explain")
	require.NoError(t, err)
	assert.Equal(t, "SATISFIABLE", strings.TrimSpace(out))
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, len(engine.Names()))
	for i, name := range engine.Names() {
		assert.True(t, strings.HasPrefix(got[i], name+": SATISFIABLE in "), got[i])
	}
}

func TestRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	_, err := run(t, "solve", "--db", db)
	require.NoError(t, err)
	_, err = run(t, "--coverage", "exact", "solve", "--db", db)
	require.NoError(t, err)

	out, err := run(t, "runs", "--db", db)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "ID"))
	assert.Contains(t, got[1], " SATISFIABLE ")
	assert.Contains(t, got[2], " UNSATISFIABLE ")

	_, err = run(t, "runs")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	solved, err := run(t, "solve", "--db", db, "--all", "--limit", "2")
	require.NoError(t, err)
	out, err := run(t, "runs", "--db", db)
	require.NoError(t, err)
	id := strings.Fields(lines(out)[1])[0]

	out, err = run(t, "show", id, "2", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, solved, "Solution 2\n"+out)

	_, err = run(t, "show", id, "3", "--db", db)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = run(t, "show", "not-a-uuid", "--db", db)
	assert.Error(t, err)
}
