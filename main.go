package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/crillab/rostersat/config"
	"github.com/crillab/rostersat/engine"
	"github.com/crillab/rostersat/metrics"
	"github.com/crillab/rostersat/roster"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	a := &app{}
	if err := a.execute(ctx, newRootCmd(a)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// app holds the state shared by all commands.
type app struct {
	// Persistent flags
	verbose     bool
	configPath  string
	metricsAddr string
	engineName  string
	params      roster.Params
	coverage    string

	cfg     *config.Config
	logger  *zap.Logger
	metrics metrics.Collector
	server  *http.Server
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "rostersat",
		Short: "rostersat - operator rostering with SAT solvers",
		Long: `rostersat decides whether operators can be rostered on machines over a horizon of days,
given shift lengths, mandatory rest after shifts and vacation blocks, and finds such rosters.

Rules are encoded as cardinality constraints over one boolean variable per operator, day and state,
then solved with a SAT engine.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&a.configPath, "config", "c", "rostersat.yaml", "Configuration file")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "Expose Prometheus metrics on this address (e.g :9090)")
	flags.StringVarP(&a.engineName, "engine", "e", "", fmt.Sprintf("Engine, one of %v", engine.Names()))
	flags.IntVar(&a.params.Operators, "operators", 0, "Number of operators")
	flags.IntVar(&a.params.Days, "days", 0, "Number of days in the horizon")
	flags.IntVar(&a.params.Machines, "machines", 0, "Number of machines")
	flags.IntVar(&a.params.JobDuration, "job", 0, "Maximal number of consecutive days on a machine")
	flags.IntVar(&a.params.RelaxDuration, "relax", 0, "Number of rest days after a shift")
	flags.IntVar(&a.params.VacancyDuration, "vacancy", 0, "Length of a vacation block in days")
	flags.IntVar(&a.params.VacancyCount, "vacancies", 0, "Number of vacation blocks per operator")
	flags.StringVar(&a.coverage, "coverage", "", "Staffing policy: exact or at-most-one")

	root.AddCommand(newSolveCmd(a))
	root.AddCommand(newCountCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newExplainCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newRunsCmd(a))
	root.AddCommand(newShowCmd(a))
	return root
}

// setup loads the configuration, applies flags on top of it, and initializes logging and metrics.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	zcfg := zap.NewProductionConfig()
	level, _ := cfg.Level() // Already validated
	if a.verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if a.logger, err = zcfg.Build(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	a.metrics = metrics.NewNop()
	if a.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		a.metrics = metrics.NewPrometheus(reg, "")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		a.server = &http.Server{Addr: a.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		a.logger.Info("serving metrics", zap.String("addr", a.metricsAddr))
	}
	return nil
}

// applyFlags overrides the settings of cfg with the flags that were given on the command line.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	ints := []struct {
		flag string
		src  int
		dst  *int
	}{
		{"operators", a.params.Operators, &cfg.Roster.Operators},
		{"days", a.params.Days, &cfg.Roster.Days},
		{"machines", a.params.Machines, &cfg.Roster.Machines},
		{"job", a.params.JobDuration, &cfg.Roster.JobDuration},
		{"relax", a.params.RelaxDuration, &cfg.Roster.RelaxDuration},
		{"vacancy", a.params.VacancyDuration, &cfg.Roster.VacancyDuration},
		{"vacancies", a.params.VacancyCount, &cfg.Roster.VacancyCount},
	}
	for _, f := range ints {
		if changed(f.flag) {
			*f.dst = f.src
		}
	}
	if changed("coverage") {
		cfg.Roster.Coverage = roster.Coverage(a.coverage)
	}
	if changed("engine") {
		cfg.Engine.Name = a.engineName
	}
}

// execute runs root, then stops what setup started, whether the command failed or not.
func (a *app) execute(ctx context.Context, root *cobra.Command) error {
	defer a.teardown()
	return root.ExecuteContext(ctx)
}

func (a *app) teardown() {
	if a.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.Warn("could not stop metrics server", zap.Error(err))
		}
		a.server = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// build builds the model described by the configuration.
func (a *app) build() (*roster.Model, error) {
	start := time.Now()
	m, err := roster.Build(a.cfg.Roster)
	if err != nil {
		return nil, err
	}
	st := m.Stats()
	a.metrics.RecordBuild(st.NbVars, st.NbConstrs, time.Since(start))
	fields := []zap.Field{
		zap.Int("variables", st.NbVars),
		zap.Int("constraints", st.NbConstrs),
		zap.Int("literals", st.NbLits),
		zap.Duration("elapsed", time.Since(start)),
	}
	for _, r := range roster.Rules {
		fields = append(fields, zap.Int(r.String(), st.ByRule[r]))
	}
	a.logger.Info("model built", fields...)
	return m, nil
}

// engine returns the configured engine.
func (a *app) engine() (engine.Engine, error) {
	return engine.New(a.cfg.Engine.Name)
}
