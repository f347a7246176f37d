package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus is a collector backed by Prometheus.
// Metrics are registered on first use.
type Prometheus struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	modelVars     prometheus.Gauge
	modelConstrs  prometheus.Gauge
	buildDuration prometheus.Histogram
	solves        *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	solutions     *prometheus.CounterVec
}

var _ Collector = (*Prometheus)(nil)

// NewPrometheus returns a collector registering its metrics on reg
// (prometheus.DefaultRegisterer if nil), under the given namespace ("rostersat" if empty).
func NewPrometheus(reg prometheus.Registerer, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "rostersat"
	}
	return &Prometheus{reg: reg, namespace: namespace}
}

func (p *Prometheus) ensureRegistered() {
	p.once.Do(func() {
		p.modelVars = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "model",
			Name:      "variables",
			Help:      "Number of decision variables of the last built model.",
		})
		p.modelConstrs = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "model",
			Name:      "constraints",
			Help:      "Number of constraints of the last built model.",
		})
		p.buildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "model",
			Name:      "build_seconds",
			Help:      "Time needed to build a model, in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms .. ~16s
		})
		p.solves = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "solves_total",
			Help:      "Total calls to an engine by engine and outcome (sat, unsat).",
		}, []string{"engine", "outcome"})
		p.solveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "solve_seconds",
			Help:      "Duration of engine calls in seconds by engine.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4min
		}, []string{"engine"})
		p.solutions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "solutions_total",
			Help:      "Total rosters found by engine.",
		}, []string{"engine"})

		p.reg.MustRegister(p.modelVars)
		p.reg.MustRegister(p.modelConstrs)
		p.reg.MustRegister(p.buildDuration)
		p.reg.MustRegister(p.solves)
		p.reg.MustRegister(p.solveDuration)
		p.reg.MustRegister(p.solutions)
	})
}

// RecordBuild sets the model size gauges and observes the build duration.
func (p *Prometheus) RecordBuild(nbVars, nbConstrs int, elapsed time.Duration) {
	p.ensureRegistered()
	p.modelVars.Set(float64(nbVars))
	p.modelConstrs.Set(float64(nbConstrs))
	p.buildDuration.Observe(elapsed.Seconds())
}

// RecordSolve counts an engine call and observes its duration.
func (p *Prometheus) RecordSolve(engine string, sat bool, elapsed time.Duration) {
	p.ensureRegistered()
	outcome := "unsat"
	if sat {
		outcome = "sat"
	}
	p.solves.WithLabelValues(engine, outcome).Inc()
	p.solveDuration.WithLabelValues(engine).Observe(elapsed.Seconds())
}

// RecordSolution counts a solution.
func (p *Prometheus) RecordSolution(engine string) {
	p.ensureRegistered()
	p.solutions.WithLabelValues(engine).Inc()
}
