package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/crillab/rostersat/engine"
	"github.com/crillab/rostersat/explain"
	"github.com/crillab/rostersat/render"
	"github.com/crillab/rostersat/roster"
	"github.com/crillab/rostersat/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		limit  int
		all    bool
		dbPath string
		format string
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find rosters",
		Long: `Find one roster, or several of them with --all, and print them.
Prints SATISFIABLE or UNSATISFIABLE once the search is over, followed by statistics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("limit") {
				a.cfg.Engine.Limit = limit
			}
			if cmd.Flags().Changed("all") {
				a.cfg.Engine.All = all
			}
			if cmd.Flags().Changed("db") {
				a.cfg.Store.Path = dbPath
			}
			return a.solve(cmd.Context(), cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 1, "Maximum number of rosters with --all, 0 for no limit")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Enumerate rosters instead of stopping at the first one")
	cmd.Flags().StringVar(&dbPath, "db", "", "Save the run and its rosters in this SQLite database")
	cmd.Flags().StringVarP(&format, "format", "f", "grid", "Output format: text, grid or styled")
	return cmd
}

func (a *app) solve(ctx context.Context, out io.Writer, format string) error {
	var show func(n int, s *roster.Schedule) error
	switch format {
	case "text":
		show = func(n int, s *roster.Schedule) error { return render.Text(out, n, s) }
	case "grid":
		show = func(n int, s *roster.Schedule) error {
			if _, err := fmt.Fprintf(out, "Solution %d\n", n); err != nil {
				return err
			}
			return render.Grid(out, s)
		}
	case "styled":
		show = func(n int, s *roster.Schedule) error {
			_, err := fmt.Fprintf(out, "Solution %d\n%s", n, render.Styled(s))
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	e, err := a.engine()
	if err != nil {
		return err
	}
	m, err := a.build()
	if err != nil {
		return err
	}

	var (
		st  *store.Store
		run store.Run
	)
	if a.cfg.Store.Path != "" {
		if st, err = store.Open(a.cfg.Store.Path); err != nil {
			return err
		}
		defer st.Close()
		run = store.NewRun(e.Name(), m.Params())
		run.Verdict = engine.Unknown.String()
		if err := st.SaveRun(ctx, run); err != nil {
			return err
		}
		a.logger.Info("saving run", zap.Stringer("run", run.ID), zap.String("db", a.cfg.Store.Path))
	}

	h := func(ctx context.Context, n int, s *roster.Schedule) error {
		if st != nil {
			if err := st.SaveSchedule(ctx, run.ID, n, s); err != nil {
				return err
			}
		}
		return show(n, s)
	}
	res, err := engine.Enumerate(ctx, e, m, h,
		engine.WithAll(a.cfg.Engine.All),
		engine.WithLimit(a.cfg.Engine.Limit),
		engine.WithLogger(a.logger),
		engine.WithMetrics(a.metrics),
	)
	if st != nil {
		run.Verdict = res.Verdict.String()
		run.Solutions = res.Solutions
		run.Elapsed = res.Elapsed
		// The run is saved even when the search failed, with what was found.
		if serr := st.SaveRun(context.WithoutCancel(ctx), run); serr != nil {
			err = errors.Join(err, serr)
		}
	}
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, res.Verdict); err != nil {
		return err
	}
	return render.Stats(out, res)
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count rosters",
		Long:  "Enumerate all rosters and print how many there are. Only use this on small problems.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			m, err := a.build()
			if err != nil {
				return err
			}
			nb, err := engine.Count(cmd.Context(), e, m, engine.WithLogger(a.logger), engine.WithMetrics(a.metrics))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), nb)
			return err
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
		names  bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the model in a standard format",
		Long: `Write the model as a pseudo-boolean problem (opb) or as a CNF formula (cnf),
so that it can be given to other solvers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			m, err := a.build()
			if err != nil {
				return err
			}
			var write func(w io.Writer, names bool) error
			switch format {
			case "opb":
				write = m.WriteOPB
			case "cnf":
				write = m.WriteDIMACS
			default:
				return fmt.Errorf("unknown format %q", format)
			}
			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, ferr := os.Create(output)
				if ferr != nil {
					return fmt.Errorf("could not create output file: %w", ferr)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}
			return write(w, names)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "opb", "Output format: opb or cnf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, standard output if empty")
	cmd.Flags().BoolVar(&names, "names", true, "Write comments naming variables")
	return cmd
}

func newExplainCmd(a *app) *cobra.Command {
	var method string
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Tell which rules conflict",
		Long: `When no roster exists, find a minimal set of rules that cannot be satisfied together:
removing any of them makes the remaining ones satisfiable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			m, err := a.build()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rules, err := explain.Explain(cmd.Context(), e, m, explain.Options{Method: explain.Method(method), Logger: a.logger})
			if errors.Is(err, explain.ErrSatisfiable) {
				_, err = fmt.Fprintln(out, engine.Feasible)
				return err
			}
			if err != nil {
				return err
			}
			names := make([]string, len(rules))
			for i, r := range rules {
				names[i] = r.String()
			}
			_, err = fmt.Fprintf(out, "%s\nconflicting rules: %s\n", engine.Infeasible, strings.Join(names, ", "))
			return err
		},
	}
	cmd.Flags().StringVarP(&method, "method", "m", string(explain.Deletion), "Algorithm: deletion or insertion")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Solve with every engine and compare verdicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.build()
			if err != nil {
				return err
			}
			var engines []engine.Engine
			for _, name := range engine.Names() {
				e, err := engine.New(name)
				if err != nil {
					return err
				}
				engines = append(engines, e)
			}
			checks, err := engine.CrossCheck(cmd.Context(), m, engines...)
			for _, c := range checks {
				if _, perr := fmt.Fprintln(cmd.OutOrStdout(), c); perr != nil {
					return perr
				}
			}
			return err
		},
	}
}

func newRunsCmd(a *app) *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List the runs saved in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				a.cfg.Store.Path = dbPath
			}
			if a.cfg.Store.Path == "" {
				return errors.New("no database given, use --db")
			}
			st, err := store.Open(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()
			runs, err := st.Runs(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tENGINE\tOPERATORS\tDAYS\tMACHINES\tVERDICT\tSOLUTIONS\tELAPSED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\t%d\t%v\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Engine,
					r.Params.Operators, r.Params.Days, r.Params.Machines,
					r.Verdict, r.Solutions, r.Elapsed)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var (
		dbPath string
		styled bool
	)
	cmd := &cobra.Command{
		Use:   "show RUN [N]",
		Short: "Print a roster saved in the database",
		Long:  "Print the N-th roster found by the run RUN, the first one if N is not given.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				a.cfg.Store.Path = dbPath
			}
			if a.cfg.Store.Path == "" {
				return errors.New("no database given, use --db")
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}
			n := 1
			if len(args) == 2 {
				if n, err = strconv.Atoi(args[1]); err != nil || n < 1 {
					return fmt.Errorf("invalid roster number %q", args[1])
				}
			}
			st, err := store.Open(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()
			run, err := st.Run(cmd.Context(), id)
			if err != nil {
				return err
			}
			s, err := st.LoadSchedule(cmd.Context(), id, n, run.Params)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if styled {
				_, err = io.WriteString(out, render.Styled(s))
				return err
			}
			return render.Grid(out, s)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database")
	cmd.Flags().BoolVar(&styled, "styled", false, "Color the roster")
	return cmd
}
