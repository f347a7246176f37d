// Package store saves rostering runs and the rosters they found in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crillab/rostersat/roster"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout is a fixed-width RFC 3339 layout, so that start times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a run or a roster is not in the store.
var ErrNotFound = errors.New("not found")

// A Run is one execution of an engine on a rostering problem.
type Run struct {
	ID        uuid.UUID
	Engine    string
	Params    roster.Params
	Verdict   string
	Solutions int
	StartedAt time.Time
	Elapsed   time.Duration
}

// NewRun returns a run with a fresh identifier, started now.
func NewRun(engine string, p roster.Params) Run {
	return Run{ID: uuid.New(), Engine: engine, Params: p, StartedAt: time.Now().UTC()}
}

// Store is a SQLite-backed result store.
// It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	engine      TEXT NOT NULL,
	params_json TEXT NOT NULL,
	verdict     TEXT NOT NULL,
	solutions   INTEGER NOT NULL,
	started_at  TEXT NOT NULL,
	elapsed_ms  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS assignments (
	run_id   TEXT NOT NULL,
	solution INTEGER NOT NULL,
	operator INTEGER NOT NULL,
	day      INTEGER NOT NULL,
	state    INTEGER NOT NULL,
	PRIMARY KEY (run_id, solution, operator, day)
);
`

// Open opens the database at path, creating it and its schema if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun saves r, replacing any previous version of the same run.
func (s *Store) SaveRun(ctx context.Context, r Run) error {
	params, err := json.Marshal(r.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, engine, params_json, verdict, solutions, started_at, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			engine = excluded.engine,
			params_json = excluded.params_json,
			verdict = excluded.verdict,
			solutions = excluded.solutions,
			started_at = excluded.started_at,
			elapsed_ms = excluded.elapsed_ms`,
		r.ID.String(), r.Engine, string(params), r.Verdict, r.Solutions,
		r.StartedAt.UTC().Format(timeLayout), r.Elapsed.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", r.ID, err)
	}
	return nil
}

// Run returns the run whose identifier is id.
func (s *Store) Run(ctx context.Context, id uuid.UUID) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, engine, params_json, verdict, solutions, started_at, elapsed_ms
		FROM runs WHERE id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return r, err
}

// Runs returns all saved runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, engine, params_json, verdict, solutions, started_at, elapsed_ms
		FROM runs ORDER BY started_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()
	var res []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return res, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r         Run
		id        string
		params    string
		startedAt string
		elapsedMs int64
	)
	if err := sc.Scan(&id, &r.Engine, &params, &r.Verdict, &r.Solutions, &startedAt, &elapsedMs); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("failed to read run: %w", err)
	}
	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("invalid run id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(params), &r.Params); err != nil {
		return Run{}, fmt.Errorf("invalid params for run %s: %w", id, err)
	}
	if r.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return Run{}, fmt.Errorf("invalid start time for run %s: %w", id, err)
	}
	r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	return r, nil
}

// SaveSchedule saves s as the n-th roster found by the run runID.
func (s *Store) SaveSchedule(ctx context.Context, runID uuid.UUID, n int, sched *roster.Schedule) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO assignments (run_id, solution, operator, day, state)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()
	p := sched.Params()
	for o := roster.Operator(1); int(o) <= p.Operators; o++ {
		for d := roster.Day(1); int(d) <= p.Days; d++ {
			if _, err := stmt.ExecContext(ctx, runID.String(), n, int(o), int(d), int(sched.State(o, d))); err != nil {
				return fmt.Errorf("failed to save roster %d of run %s: %w", n, runID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit roster %d of run %s: %w", n, runID, err)
	}
	return nil
}

// LoadSchedule returns the n-th roster found by the run runID, for a problem with parameters p.
func (s *Store) LoadSchedule(ctx context.Context, runID uuid.UUID, n int, p roster.Params) (*roster.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT operator, day, state FROM assignments
		WHERE run_id = ? AND solution = ?`, runID.String(), n)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster %d of run %s: %w", n, runID, err)
	}
	defer rows.Close()
	sched := roster.NewSchedule(p)
	nb := 0
	for rows.Next() {
		var o, d, st int
		if err := rows.Scan(&o, &d, &st); err != nil {
			return nil, fmt.Errorf("failed to read assignment: %w", err)
		}
		if o < 1 || o > p.Operators || d < 1 || d > p.Days || !p.ValidState(roster.State(st)) {
			return nil, fmt.Errorf("assignment (operator %d, day %d, state %d) does not fit the problem", o, d, st)
		}
		sched.Set(roster.Operator(o), roster.Day(d), roster.State(st))
		nb++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load roster %d of run %s: %w", n, runID, err)
	}
	if nb == 0 {
		return nil, fmt.Errorf("roster %d of run %s: %w", n, runID, ErrNotFound)
	}
	if nb != p.Operators*p.Days {
		return nil, fmt.Errorf("roster %d of run %s has %d assignments, expected %d", n, runID, nb, p.Operators*p.Days)
	}
	return sched, nil
}
