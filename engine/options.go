package engine

import (
	"github.com/crillab/rostersat/metrics"
	"go.uber.org/zap"
)

// Option configures an enumeration.
type Option func(*options)

type options struct {
	limit   int
	all     bool
	logger  *zap.Logger
	metrics metrics.Collector
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop(), metrics: metrics.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLimit sets the maximum number of rosters to enumerate when WithAll is set.
// 0, the default, means no limit.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithAll asks for all rosters instead of the first one only.
//
// Example:
//
//	res, err := engine.Enumerate(ctx, e, m, print, engine.WithAll(true), engine.WithLimit(100))
func WithAll(all bool) Option {
	return func(o *options) {
		o.all = all
	}
}

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets a metrics collector. Measurements are discarded by default.
func WithMetrics(m metrics.Collector) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}
