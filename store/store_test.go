package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/crillab/rostersat/roster"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var small = roster.Params{
	Operators:       2,
	Days:            10,
	Machines:        1,
	JobDuration:     3,
	RelaxDuration:   2,
	VacancyDuration: 2,
	VacancyCount:    1,
	Coverage:        roster.CoverageAtMostOne,
}

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "rosters.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRuns(t *testing.T) {
	ctx := context.Background()
	s := open(t)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Empty(t, runs)

	r1 := NewRun("gophersat", small)
	r1.StartedAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r2 := NewRun("gini", small)
	r2.StartedAt = r1.StartedAt.Add(time.Hour)
	require.NoError(t, s.SaveRun(ctx, r2))
	require.NoError(t, s.SaveRun(ctx, r1))

	// Runs are saved again once done.
	r1.Verdict = "SATISFIABLE"
	r1.Solutions = 3
	r1.Elapsed = 1500 * time.Millisecond
	require.NoError(t, s.SaveRun(ctx, r1))

	runs, err = s.Runs(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff([]Run{r1, r2}, runs); diff != "" {
		t.Errorf("unexpected runs (-want +got):\n%s", diff)
	}

	got, err := s.Run(ctx, r2.ID)
	require.NoError(t, err)
	assert.Equal(t, r2, got)

	_, err = s.Run(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSchedules(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	r := NewRun("gophersat", small)
	require.NoError(t, s.SaveRun(ctx, r))

	first, err := roster.ParseSchedule(small, "111RRVV...", "...111RRVV")
	require.NoError(t, err)
	second, err := roster.ParseSchedule(small, "VV111RR...", "111RR..VV.")
	require.NoError(t, err)
	require.NoError(t, s.SaveSchedule(ctx, r.ID, 1, first))
	require.NoError(t, s.SaveSchedule(ctx, r.ID, 2, second))

	got, err := s.LoadSchedule(ctx, r.ID, 1, small)
	require.NoError(t, err)
	assert.True(t, first.Equal(got), "got\n%s", got)
	got, err = s.LoadSchedule(ctx, r.ID, 2, small)
	require.NoError(t, err)
	assert.True(t, second.Equal(got), "got\n%s", got)

	_, err = s.LoadSchedule(ctx, r.ID, 3, small)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.LoadSchedule(ctx, uuid.New(), 1, small)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadScheduleWrongParams(t *testing.T) {
	ctx := context.Background()
	s := open(t)
	r := NewRun("gini", small)
	sched, err := roster.ParseSchedule(small, "111RRVV...", "...111RRVV")
	require.NoError(t, err)
	require.NoError(t, s.SaveSchedule(ctx, r.ID, 1, sched))

	p := small
	p.Days = 5
	_, err = s.LoadSchedule(ctx, r.ID, 1, p)
	assert.Error(t, err)

	p = small
	p.Operators = 3
	_, err = s.LoadSchedule(ctx, r.ID, 1, p)
	assert.Error(t, err)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rosters.db")
	s, err := Open(path)
	require.NoError(t, err)
	r := NewRun("gophersat", small)
	require.NoError(t, s.SaveRun(ctx, r))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, r.ID, runs[0].ID)
}
