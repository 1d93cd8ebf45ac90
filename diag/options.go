// SPDX-License-Identifier: MIT

package diag

import (
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/tightbind/matrix"
)

const (
	// DefaultWorkers is the number of concurrent eigensolves per run.
	DefaultWorkers = 1

	// DefaultProgressStep is the minimum percentage increase between progress events.
	DefaultProgressStep = 1
)

const (
	panicWorkersInvalid = "diag: WithWorkers: n must be >= 1"
	panicTolInvalid     = "diag: WithEigenTolerance: tol must be finite and > 0"
	panicSweepsInvalid  = "diag: WithMaxSweeps: sweeps must be >= 1"
	panicStepInvalid    = "diag: WithProgressStep: step must be in [1,100]"
)

// Option configures a Run (and, through NewManager, every run of a Manager).
type Option func(*Options)

// Options is the effective run configuration.
type Options struct {
	workers   int
	eigenTol  float64
	maxSweeps int
	step      int
	logger    *zap.Logger
	metrics   *Metrics
	commit    func(*Result) error
}

// WithWorkers sets the number of k-points diagonalized concurrently.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithEigenTolerance sets the Jacobi convergence threshold (matrix.WithEpsilon).
func WithEigenTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicTolInvalid)
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithMaxSweeps sets the Jacobi sweep budget (matrix.WithMaxSweeps).
func WithMaxSweeps(sweeps int) Option {
	if sweeps < 1 {
		panic(panicSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// WithProgressStep sets the progress throttle in percentage points.
func WithProgressStep(step int) Option {
	if step < 1 || step > 100 {
		panic(panicStepInvalid)
	}

	return func(o *Options) { o.step = step }
}

// WithLogger sets the structured logger. nil restores the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithMetrics attaches prometheus collectors. nil disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithCommit sets a hook run with the finished Result before EventSuccess.
// A non-nil error turns the run into Failed.
func WithCommit(fn func(*Result) error) Option {
	return func(o *Options) { o.commit = fn }
}

func gatherOptions(user ...Option) Options {
	o := Options{
		workers:   DefaultWorkers,
		eigenTol:  matrix.DefaultEpsilon,
		maxSweeps: matrix.DefaultMaxSweeps,
		step:      DefaultProgressStep,
		logger:    zap.NewNop(),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// eventCapacity bounds the events one run can emit: one per progress step
// plus the final 100% and the terminal event.
func (o Options) eventCapacity() int {
	return 100/o.step + 3
}
