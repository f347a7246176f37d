// Package explain tells why a roster model has no solution.
//
// When a model is infeasible, knowing it is not enough to fix the parameters:
// one wants to know which business rules conflict.
// Explain computes a minimal set of rules whose constraints, on their own, are already infeasible:
// if any of these rules is removed, the remaining ones can be satisfied.
// Such a set is a Minimal Unsatisfiable Subset (MUS) of the model, at the granularity of rules.
package explain

import (
	"context"
	"errors"
	"fmt"

	"github.com/crillab/rostersat/engine"
	"github.com/crillab/rostersat/roster"
	"go.uber.org/zap"
)

// ErrSatisfiable is returned when asking to explain a model that has a solution.
var ErrSatisfiable = errors.New("model is satisfiable")

// Method is the algorithm used to compute the minimal set of rules.
type Method string

const (
	// Deletion removes rules one after the other, and puts them back if the model becomes satisfiable.
	// It is guaranteed to call the engine exactly once per rule, plus once on the whole model.
	Deletion Method = "deletion"
	// Insertion adds rules one after the other until the model becomes unsatisfiable;
	// the last added rule is part of the result.
	// It is efficient when the result is small, but needs up to n*(n-1) calls to the engine
	// when all rules are needed.
	Insertion Method = "insertion"
)

// Options tune the computation of an explanation.
type Options struct {
	Method Method      // Deletion if empty
	Logger *zap.Logger // Nothing is logged if nil
}

// Explain returns a minimal set of rules of m that cannot be satisfied together, in encoding order.
// e is used for all satisfiability checks.
// If m is satisfiable, the returned error wraps ErrSatisfiable.
func Explain(ctx context.Context, e engine.Engine, m *roster.Model, opts Options) ([]roster.Rule, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("engine", e.Name()), zap.String("method", string(opts.Method)))
	x := &explainer{ctx: ctx, e: e, m: m, log: log}
	v, err := x.decide(m.Rules())
	if err != nil {
		return nil, err
	}
	if v == engine.Feasible {
		return nil, ErrSatisfiable
	}
	var rules []roster.Rule
	switch opts.Method {
	case Deletion, "":
		rules, err = x.deletion()
	case Insertion:
		rules, err = x.insertion()
	default:
		return nil, fmt.Errorf("unknown explanation method %q", opts.Method)
	}
	if err != nil {
		return nil, fmt.Errorf("could not explain infeasibility: %w", err)
	}
	log.Info("conflicting rules found", zap.Stringers("rules", rules), zap.Int("solves", x.nbSolves))
	return rules, nil
}

type explainer struct {
	ctx      context.Context
	e        engine.Engine
	m        *roster.Model
	log      *zap.Logger
	nbSolves int
}

// decide says whether the constraints of the given rules can be satisfied together.
func (x *explainer) decide(rules []roster.Rule) (engine.Verdict, error) {
	x.nbSolves++
	v, err := engine.Decide(x.ctx, x.e, x.m.Restrict(rules...))
	if err != nil {
		return engine.Unknown, err
	}
	x.log.Debug("rules checked", zap.Stringers("rules", rules), zap.Stringer("verdict", v))
	return v, nil
}

func (x *explainer) deletion() ([]roster.Rule, error) {
	kept := make(map[roster.Rule]bool)
	all := x.m.Rules()
	for _, r := range all {
		kept[r] = true
	}
	for _, r := range all {
		kept[r] = false
		v, err := x.decide(selected(all, kept))
		if err != nil {
			return nil, err
		}
		if v == engine.Feasible { // r is needed
			kept[r] = true
		}
	}
	return selected(all, kept), nil
}

func (x *explainer) insertion() ([]roster.Rule, error) {
	all := x.m.Rules()
	mus := make(map[roster.Rule]bool)
	candidates := all
	for {
		v, err := x.decide(selected(all, mus))
		if err != nil {
			return nil, err
		}
		if v == engine.Infeasible {
			return selected(all, mus), nil
		}
		// Add candidates until the rules become infeasible.
		in := make(map[roster.Rule]bool, len(mus)+len(candidates))
		for r := range mus {
			in[r] = true
		}
		idx := -1
		for i, r := range candidates {
			in[r] = true
			v, err := x.decide(selected(all, in))
			if err != nil {
				return nil, err
			}
			if v == engine.Infeasible {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, errors.New("rules became satisfiable during explanation")
		}
		mus[candidates[idx]] = true // Last added rule is needed
		candidates = candidates[:idx]
	}
}

// selected returns the rules r of all such that in[r] is true, in the order of all.
func selected(all []roster.Rule, in map[roster.Rule]bool) []roster.Rule {
	var res []roster.Rule
	for _, r := range all {
		if in[r] {
			res = append(res, r)
		}
	}
	return res
}
