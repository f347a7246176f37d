package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crillab/rostersat/roster"
	"go.uber.org/zap"
)

// ErrStop can be returned by a Handler to stop an enumeration without failing it.
var ErrStop = errors.New("stop enumeration")

// A Handler is called for every roster found during an enumeration, n being its rank, from 1.
// If it returns ErrStop, the enumeration stops; any other error aborts it.
type Handler func(ctx context.Context, n int, s *roster.Schedule) error

// A Result sums up an enumeration.
type Result struct {
	Engine    string
	Verdict   Verdict
	Solutions int           // Number of rosters found
	Elapsed   time.Duration // Wall time spent enumerating
	Stopped   bool          // Whether the enumeration stopped before all rosters were found
}

// Enumerate finds rosters for m with e and delivers them to h, which can be nil.
// By default, only the first roster is looked for; use WithAll to get more of them.
// Every found roster is forbidden by a new clause, so all delivered rosters are distinct.
// ctx is checked between two calls to the engine.
//
// The returned result is meaningful even when an error is returned:
// it describes what was done before the failure.
func Enumerate(ctx context.Context, e Engine, m *roster.Model, h Handler, opts ...Option) (Result, error) {
	o := newOptions(opts)
	log := o.logger.With(zap.String("engine", e.Name()))
	start := time.Now()
	res := Result{Engine: e.Name()}
	var blocked [][]int
	for {
		if err := ctx.Err(); err != nil {
			res.Stopped = true
			res.Elapsed = time.Since(start)
			return res, err
		}
		t := time.Now()
		bindings, sat, err := e.Solve(m, blocked)
		o.metrics.RecordSolve(e.Name(), sat, time.Since(t))
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("%s: %w", e.Name(), err)
		}
		if !sat {
			if res.Solutions == 0 {
				res.Verdict = Infeasible
			}
			log.Debug("no more rosters", zap.Int("solutions", res.Solutions), zap.Duration("elapsed", time.Since(start)))
			break
		}
		res.Verdict = Feasible
		s, err := m.Decode(bindings)
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("%s returned an invalid roster: %w", e.Name(), err)
		}
		res.Solutions++
		o.metrics.RecordSolution(e.Name())
		log.Debug("roster found", zap.Int("n", res.Solutions), zap.Duration("solve", time.Since(t)))
		if h != nil {
			if err := h(ctx, res.Solutions, s); errors.Is(err, ErrStop) {
				res.Stopped = true
				break
			} else if err != nil {
				res.Elapsed = time.Since(start)
				return res, fmt.Errorf("could not handle roster %d: %w", res.Solutions, err)
			}
		}
		if !o.all || o.limit > 0 && res.Solutions >= o.limit {
			res.Stopped = true
			break
		}
		blocked = append(blocked, block(m, bindings))
	}
	res.Elapsed = time.Since(start)
	log.Info("enumeration done",
		zap.Stringer("verdict", res.Verdict),
		zap.Int("solutions", res.Solutions),
		zap.Bool("stopped", res.Stopped),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// block returns a clause forbidding the roster described by bindings:
// at least one of its true decision variables must become false.
func block(m *roster.Model, bindings []bool) []int {
	clause := make([]int, 0, m.Params().Operators*m.Params().Days)
	for v := 1; v <= m.NbVars(); v++ {
		if bindings[v-1] {
			clause = append(clause, -v)
		}
	}
	return clause
}

// Count returns the number of distinct rosters for m.
func Count(ctx context.Context, e Engine, m *roster.Model, opts ...Option) (int, error) {
	opts = append(opts[:len(opts):len(opts)], WithAll(true), WithLimit(0))
	res, err := Enumerate(ctx, e, m, nil, opts...)
	return res.Solutions, err
}

// Decide returns Feasible if m has at least one solution, Infeasible otherwise.
// Unlike Enumerate, it does not decode the solution, so it can be used on any model,
// including restrictions of a model that miss some rules.
func Decide(ctx context.Context, e Engine, m *roster.Model) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Unknown, err
	}
	_, sat, err := e.Solve(m, nil)
	if err != nil {
		return Unknown, fmt.Errorf("%s: %w", e.Name(), err)
	}
	if sat {
		return Feasible, nil
	}
	return Infeasible, nil
}
