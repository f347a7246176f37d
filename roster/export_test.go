package roster

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/crillab/gophersat/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOPB(t *testing.T) {
	exact := small
	exact.Coverage = CoverageExact
	tests := []struct {
		params Params
		want   solver.Status
	}{
		{small, solver.Sat},
		{exact, solver.Unsat}, // The only operator would work every day
	}
	for _, test := range tests {
		t.Run(string(test.params.CoveragePolicy()), func(t *testing.T) {
			m, err := Build(test.params)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, m.WriteOPB(&buf, true))
			nb := len(m.Constrs())
			if test.params.CoveragePolicy() == CoverageAtMostOne {
				nb -= m.Stats().ByRule[RuleCoverage] // At most one operator among one is always true
			}
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			assert.Equal(t, "* #variable= 40 #constraint= "+strconv.Itoa(nb), lines[0])
			assert.Equal(t, "* state_o1d1s0 = x1", lines[1])
			assert.Len(t, lines, 1+m.NbVars()+nb)
			pb, err := solver.ParseOPB(&buf)
			require.NoError(t, err)
			assert.Equal(t, test.want, solver.New(pb).Solve())
		})
	}
}

func TestWriteDIMACS(t *testing.T) {
	exact := small
	exact.Coverage = CoverageExact
	tests := []struct {
		params Params
		want   solver.Status
	}{
		{small, solver.Sat},
		{exact, solver.Unsat},
	}
	for _, test := range tests {
		t.Run(string(test.params.CoveragePolicy()), func(t *testing.T) {
			m, err := Build(test.params)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, m.WriteDIMACS(&buf, true))
			out := buf.String()
			assert.True(t, strings.HasPrefix(out, "p cnf "+strconv.Itoa(m.CNF().NbVars)+" "+strconv.Itoa(len(m.CNF().Clauses))+"\n"))
			assert.Contains(t, out, "c state_o1d10s3=40\n")
			pb, err := solver.ParseCNF(&buf)
			require.NoError(t, err)
			assert.Equal(t, test.want, solver.New(pb).Solve())
		})
	}
}

func TestWriteOPBWithoutNames(t *testing.T) {
	m, err := Build(small)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, m.WriteOPB(&buf, false))
	assert.NotContains(t, buf.String(), "state_")
	assert.Equal(t, 1+len(m.Constrs())-m.Stats().ByRule[RuleCoverage], strings.Count(buf.String(), "\n"))
}
