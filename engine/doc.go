/*
Package engine solves roster models.

An Engine is a satisfiability procedure: given a model and a set of extra clauses, it finds bindings
satisfying all of them, or proves there are none. Two engines are provided:
Gophersat, a CDCL solver working directly on cardinality constraints,
and Gini, a clause-based solver working on the CNF translation of the model.

Enumerate drives an engine to find one or several distinct rosters:
every time a roster is found, it is delivered to a Handler, then a clause forbidding it is added
and the engine is called again.

	m, err := roster.Build(params)
	if err != nil {
		return err
	}
	res, err := engine.Enumerate(ctx, engine.Gophersat{}, m, func(ctx context.Context, n int, s *roster.Schedule) error {
		fmt.Println(s)
		return nil
	}, engine.WithAll(true), engine.WithLimit(10))

Count and Decide are shortcuts for common uses of Enumerate,
and CrossCheck runs several engines on the same model to make sure they agree.
*/
package engine
