// SPDX-License-Identifier: MIT

package diag

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tightbind/hamiltonian"
	"github.com/katalvlaran/tightbind/matrix"
)

// Run is one background diagonalization. Create it with Start.
type Run struct {
	id     uuid.UUID
	events chan Event
	done   chan struct{}

	cancel  context.CancelFunc
	aborted atomic.Bool
	state   atomic.Int32

	// progress is serialized so Percent is monotone across workers.
	progMu   sync.Mutex
	solved   int
	lastSent int

	result *Result
	err    error
}

// Start launches the diagonalization of h over kpoints and returns at once.
// The run stops early when ctx is cancelled.
// Complexity: O(len(kpoints) · n³ · sweeps) spread over WithWorkers goroutines.
func Start(ctx context.Context, h hamiltonian.Func, kpoints [][]float64, opts ...Option) *Run {
	o := gatherOptions(opts...)
	runCtx, cancel := context.WithCancel(ctx)
	r := &Run{
		id:     uuid.New(),
		events: make(chan Event, o.eventCapacity()),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	r.state.Store(int32(Running))
	go r.execute(runCtx, h, kpoints, o)

	return r
}

// ID identifies the run in logs.
func (r *Run) ID() uuid.UUID { return r.id }

// Events returns the event channel; it is closed after the terminal event.
func (r *Run) Events() <-chan Event { return r.events }

// Done is closed when the run has reached a terminal state.
func (r *Run) Done() <-chan struct{} { return r.done }

// State returns the current lifecycle state.
func (r *Run) State() State { return State(r.state.Load()) }

// Cancel requests an abort. It never waits for the worker and is safe to call
// repeatedly or after completion. No progress event follows it.
func (r *Run) Cancel() {
	r.progMu.Lock()
	r.aborted.Store(true)
	r.progMu.Unlock()
	r.cancel()
}

// Wait blocks until the run ends and returns its Result, ErrAborted, a
// *NumericError or the commit error.
func (r *Run) Wait() (*Result, error) {
	<-r.done

	return r.result, r.err
}

func (r *Run) stopped(ctx context.Context) bool {
	return r.aborted.Load() || ctx.Err() != nil
}

// execute is the run goroutine.
// Stage 1: fan k-points out over an errgroup limited to o.workers.
// Stage 2: classify the outcome (aborted wins over a concurrent failure).
// Stage 3: commit, then emit the terminal event and close the channel.
func (r *Run) execute(ctx context.Context, h hamiltonian.Func, kpoints [][]float64, o Options) {
	defer close(r.done)
	defer close(r.events)
	defer r.cancel()

	log := o.logger.With(zap.Stringer("run", r.id))
	n := len(kpoints)
	start := time.Now()
	log.Debug("diagonalization started", zap.Int("kpoints", n), zap.Int("workers", o.workers))

	if n == 0 {
		r.finish(log, o, Failed, nil, fmt.Errorf("Start: %w", ErrNoKPoints))
		return
	}

	res := &Result{
		KPoints:      kpoints,
		Eigenvalues:  make([][]float64, n),
		Eigenvectors: make([]*matrix.CDense, n),
	}
	eigOpts := []matrix.Option{matrix.WithEpsilon(o.eigenTol), matrix.WithMaxSweeps(o.maxSweeps)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := range kpoints {
		if r.stopped(gctx) {
			break
		}
		g.Go(func() error {
			if r.stopped(gctx) {
				return ErrAborted
			}
			t0 := time.Now()
			m, err := h(kpoints[i])
			if err != nil {
				return &NumericError{Index: i, K: kpoints[i], Err: err}
			}
			vals, vecs, err := matrix.EigenHermitian(m, eigOpts...)
			if err != nil {
				return &NumericError{Index: i, K: kpoints[i], Err: err}
			}
			o.metrics.observeKPoint(time.Since(t0).Seconds())
			res.Eigenvalues[i], res.Eigenvectors[i] = vals, vecs
			r.advance(ctx, n, o.step)

			return nil
		})
	}
	err := g.Wait()

	switch {
	case r.stopped(ctx):
		r.finish(log, o, Aborted, nil, ErrAborted)
	case err != nil:
		r.finish(log, o, Failed, nil, err)
	default:
		if o.commit != nil {
			if cerr := o.commit(res); cerr != nil {
				r.finish(log, o, Failed, nil, fmt.Errorf("commit: %w", cerr))
				return
			}
		}
		r.finish(log, o, Completed, res, nil)
	}
	log.Debug("diagonalization finished", zap.Duration("elapsed", time.Since(start)))
}

// advance records one solved k-point and emits progress when the percentage
// has grown by at least step (or reached 100). Once the run is stopped a
// k-point that was already in flight reports nothing.
func (r *Run) advance(ctx context.Context, n, step int) {
	r.progMu.Lock()
	defer r.progMu.Unlock()

	if r.stopped(ctx) {
		return
	}
	r.solved++
	p := r.solved * 100 / n
	if p > r.lastSent && (p-r.lastSent >= step || p == 100) {
		r.lastSent = p
		r.events <- Event{Kind: EventProgress, Percent: p}
	}
}

// finish stores the outcome and emits the terminal event.
func (r *Run) finish(log *zap.Logger, o Options, s State, res *Result, err error) {
	r.result, r.err = res, err
	r.state.Store(int32(s))
	switch s {
	case Completed:
		r.progMu.Lock()
		if r.lastSent < 100 {
			r.lastSent = 100
			r.events <- Event{Kind: EventProgress, Percent: 100}
		}
		r.progMu.Unlock()
		r.events <- Event{Kind: EventSuccess, Result: res, Message: "diagonalization completed"}
		log.Info("diagonalization completed", zap.Int("kpoints", len(res.KPoints)))
	case Aborted:
		r.events <- Event{Kind: EventAborted, Message: "diagonalization aborted"}
		log.Info("diagonalization aborted")
	default:
		r.events <- Event{Kind: EventFailed, Err: err, Message: err.Error()}
		var ne *NumericError
		if errors.As(err, &ne) {
			log.Warn("diagonalization failed", zap.Int("kpoint", ne.Index), zap.Error(err))
		} else {
			log.Warn("diagonalization failed", zap.Error(err))
		}
	}
	o.metrics.observeRun(s)
}
