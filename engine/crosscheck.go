package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crillab/rostersat/roster"
	"golang.org/x/sync/errgroup"
)

// ErrDisagreement is returned by CrossCheck when engines reach different verdicts,
// or when an engine returns bindings that violate the model.
var ErrDisagreement = errors.New("engines disagree")

// A Check is the verdict of one engine during a cross-check.
type Check struct {
	Engine  string
	Verdict Verdict
	Elapsed time.Duration
}

func (c Check) String() string {
	return fmt.Sprintf("%s: %s in %v", c.Engine, c.Verdict, c.Elapsed)
}

// CrossCheck solves m with every engine concurrently and makes sure they all agree.
// Solutions are checked against the constraints of m.
// Checks are returned in the order of engines. If an engine fails, engines that have not started yet
// are skipped and keep an Unknown verdict; running engines cannot be interrupted and are waited for.
func CrossCheck(ctx context.Context, m *roster.Model, engines ...Engine) ([]Check, error) {
	if len(engines) == 0 {
		return nil, nil
	}
	checks := make([]Check, len(engines))
	g, ctx := errgroup.WithContext(ctx)
	for i, e := range engines {
		checks[i].Engine = e.Name()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			bindings, sat, err := e.Solve(m, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", e.Name(), err)
			}
			checks[i].Elapsed = time.Since(start)
			if !sat {
				checks[i].Verdict = Infeasible
				return nil
			}
			if violated := m.Violated(bindings); len(violated) != 0 {
				return fmt.Errorf("%w: %s returned a solution violating %v", ErrDisagreement, e.Name(), violated[0])
			}
			checks[i].Verdict = Feasible
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return checks, err
	}
	for _, c := range checks[1:] {
		if c.Verdict != checks[0].Verdict {
			return checks, fmt.Errorf("%w: %s says %s, %s says %s",
				ErrDisagreement, checks[0].Engine, checks[0].Verdict, c.Engine, c.Verdict)
		}
	}
	return checks, nil
}
