package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	p := small
	p.Operators = 2
	s, err := ParseSchedule(p, "111RRVV...", "VV.....11R")
	require.NoError(t, err)
	assert.Equal(t, Machine(1), s.State(1, 1))
	assert.Equal(t, p.Rest(), s.State(1, 4))
	assert.Equal(t, p.Vacation(), s.State(2, 2))
	assert.Equal(t, Idle, s.State(2, 3))
	assert.Equal(t, "111RRVV...\nVV.....11R", s.String())
	assert.Equal(t, []Operator{1}, s.Operators(1, Machine(1)))
	assert.Equal(t, []Operator{2}, s.Operators(10, p.Rest()))
	assert.Empty(t, s.Operators(3, p.Rest()))
}

func TestParseScheduleErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"missing row", nil},
		{"too many rows", []string{"..........", ".........."}},
		{"short row", []string{"........."}},
		{"unknown machine", []string{"2........."}},
		{"unknown symbol", []string{"x........."}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseSchedule(small, test.rows...)
			assert.Error(t, err)
		})
	}
}

func TestDecode(t *testing.T) {
	m, err := Build(small)
	require.NoError(t, err)
	s, err := ParseSchedule(small, "111RRVV...")
	require.NoError(t, err)
	bindings := m.Bindings(s)
	require.Len(t, bindings, m.NbVars())
	s2, err := m.Decode(bindings)
	require.NoError(t, err)
	assert.True(t, s.Equal(s2), "got\n%s\nexpected\n%s", s2, s)

	// Auxiliary variables are ignored.
	s3, err := m.Decode(append(bindings, true, false, true))
	require.NoError(t, err)
	assert.True(t, s.Equal(s3))
}

func TestDecodeErrors(t *testing.T) {
	m, err := Build(small)
	require.NoError(t, err)
	s, err := ParseSchedule(small, "111RRVV...")
	require.NoError(t, err)

	_, err = m.Decode(m.Bindings(s)[:10])
	assert.ErrorIs(t, err, ErrInvalidBindings)

	twice := m.Bindings(s)
	twice[m.Var(1, 8, Machine(1))-1] = true
	_, err = m.Decode(twice)
	assert.ErrorIs(t, err, ErrInvalidBindings)

	none := m.Bindings(s)
	none[m.Var(1, 1, Machine(1))-1] = false
	_, err = m.Decode(none)
	assert.ErrorIs(t, err, ErrInvalidBindings)
}

func TestLiterals(t *testing.T) {
	m, err := Build(small)
	require.NoError(t, err)
	s, err := ParseSchedule(small, "1R........")
	require.NoError(t, err)
	lits := m.Literals(s)
	require.Len(t, lits, small.Days)
	assert.Equal(t, m.Var(1, 1, Machine(1)), lits[0])
	assert.Equal(t, m.Var(1, 2, small.Rest()), lits[1])
	assert.Equal(t, m.Var(1, 10, Idle), lits[9])
}

func TestScheduleEqual(t *testing.T) {
	s1, err := ParseSchedule(small, "111RRVV...")
	require.NoError(t, err)
	s2, err := ParseSchedule(small, "111RRVV...")
	require.NoError(t, err)
	assert.True(t, s1.Equal(s2))
	s2.Set(1, 10, small.Rest())
	assert.False(t, s1.Equal(s2))
	p := small
	p.Coverage = CoverageExact
	s3, err := ParseSchedule(p, "111RRVV...")
	require.NoError(t, err)
	assert.False(t, s1.Equal(s3))
}
