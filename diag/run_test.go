// SPDX-License-Identifier: MIT

package diag_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/tightbind/diag"
	"github.com/katalvlaran/tightbind/matrix"
)

func TestStart_CompletesWithMonotoneProgress(t *testing.T) {
	kpts := linearK(250)
	run := diag.Start(context.Background(), diagonalH, kpts, diag.WithLogger(zaptest.NewLogger(t)))
	events := drain(run)

	res, err := run.Wait()
	require.NoError(t, err)
	assert.Equal(t, diag.Completed, run.State())

	require.GreaterOrEqual(t, len(events), 2)
	last := events[len(events)-1]
	assert.Equal(t, diag.EventSuccess, last.Kind)
	assert.Same(t, res, last.Result)

	prev := 0
	for _, ev := range events[:len(events)-1] {
		require.Equal(t, diag.EventProgress, ev.Kind)
		assert.Greater(t, ev.Percent, prev)
		prev = ev.Percent
	}
	assert.Equal(t, 100, prev)

	require.Len(t, res.Eigenvalues, 250)
	for i, k := range kpts {
		c := math.Abs(math.Cos(k[0]))
		assert.InDeltaSlice(t, []float64{-c, c}, res.Eigenvalues[i], 1e-12)
		assert.Equal(t, 2, res.Eigenvectors[i].Cols())
	}
}

func TestStart_ProgressStep(t *testing.T) {
	run := diag.Start(context.Background(), diagonalH, linearK(1000), diag.WithProgressStep(10))
	events := drain(run)
	_, err := run.Wait()
	require.NoError(t, err)

	var percents []int
	for _, ev := range events {
		if ev.Kind == diag.EventProgress {
			percents = append(percents, ev.Percent)
		}
	}
	assert.Equal(t, []int{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}, percents)
}

func TestStart_FewKPoints(t *testing.T) {
	run := diag.Start(context.Background(), diagonalH, linearK(3))
	events := drain(run)
	require.Len(t, events, 4)
	assert.Equal(t, []int{33, 66, 100}, []int{events[0].Percent, events[1].Percent, events[2].Percent})
	assert.Equal(t, diag.EventSuccess, events[3].Kind)
}

func TestStart_WorkersAgree(t *testing.T) {
	kpts := linearK(64)
	one, err := diag.Start(context.Background(), diagonalH, kpts).Wait()
	require.NoError(t, err)
	many, err := diag.Start(context.Background(), diagonalH, kpts, diag.WithWorkers(4)).Wait()
	require.NoError(t, err)
	assert.Equal(t, one.Eigenvalues, many.Eigenvalues)
}

func TestRun_Cancel(t *testing.T) {
	gate := make(chan struct{})
	run := diag.Start(context.Background(), gatedH(gate), linearK(10))
	run.Cancel()
	close(gate)

	res, err := run.Wait()
	assert.Nil(t, res)
	assert.ErrorIs(t, err, diag.ErrAborted)
	assert.Equal(t, diag.Aborted, run.State())

	events := drain(run)
	require.NotEmpty(t, events)
	assert.Equal(t, diag.EventAborted, events[len(events)-1].Kind)
	run.Cancel() // idempotent
}

func TestRun_CancelDuringEigensolve(t *testing.T) {
	entered := make(chan struct{})
	gate := make(chan struct{})
	var once sync.Once
	h := func(k []float64) (*matrix.CDense, error) {
		once.Do(func() { close(entered) })
		<-gate
		return diagonalH(k)
	}
	run := diag.Start(context.Background(), h, linearK(4))

	<-entered // first k-point is in flight
	run.Cancel()
	close(gate)

	_, err := run.Wait()
	assert.ErrorIs(t, err, diag.ErrAborted)
	events := drain(run)
	require.Len(t, events, 1, "no progress after Cancel")
	assert.Equal(t, diag.EventAborted, events[0].Kind)
}

func TestRun_ParentContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gate := make(chan struct{})
	committed := false
	run := diag.Start(ctx, gatedH(gate), linearK(10), diag.WithCommit(func(*diag.Result) error {
		committed = true
		return nil
	}))
	cancel()
	close(gate)

	_, err := run.Wait()
	assert.ErrorIs(t, err, diag.ErrAborted)
	assert.False(t, committed)
}

func TestRun_NumericFailure(t *testing.T) {
	bad := func(k []float64) (*matrix.CDense, error) {
		if k[0] > 1 {
			return matrix.NewCDenseFrom(1, 1, []complex128{complex(math.NaN(), 0)})
		}
		return matrix.Identity(1)
	}
	run := diag.Start(context.Background(), bad, [][]float64{{0}, {0.5}, {2}, {0.1}})
	events := drain(run)

	_, err := run.Wait()
	require.Error(t, err)
	var ne *diag.NumericError
	require.True(t, errors.As(err, &ne))
	assert.Equal(t, 2, ne.Index)
	assert.Equal(t, []float64{2}, ne.K)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
	assert.Equal(t, diag.Failed, run.State())

	last := events[len(events)-1]
	assert.Equal(t, diag.EventFailed, last.Kind)
	assert.Nil(t, last.Result)
}

func TestRun_CommitErrorFails(t *testing.T) {
	boom := errors.New("boom")
	run := diag.Start(context.Background(), diagonalH, linearK(5), diag.WithCommit(func(*diag.Result) error { return boom }))
	events := drain(run)
	_, err := run.Wait()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, diag.Failed, run.State())
	assert.Equal(t, diag.EventFailed, events[len(events)-1].Kind)
}

func TestRun_NoKPoints(t *testing.T) {
	run := diag.Start(context.Background(), diagonalH, nil)
	_, err := run.Wait()
	assert.ErrorIs(t, err, diag.ErrNoKPoints)
	assert.Equal(t, diag.Failed, run.State())
}

func TestRun_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := diag.NewMetrics(reg)
	_, err := diag.Start(context.Background(), diagonalH, linearK(7), diag.WithMetrics(m)).Wait()
	require.NoError(t, err)

	assert.Equal(t, 7.0, testutil.ToFloat64(m.KPoints))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("completed")))
	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { diag.WithWorkers(0) })
	assert.Panics(t, func() { diag.WithEigenTolerance(0) })
	assert.Panics(t, func() { diag.WithEigenTolerance(math.Inf(1)) })
	assert.Panics(t, func() { diag.WithMaxSweeps(0) })
	assert.Panics(t, func() { diag.WithProgressStep(0) })
	assert.Panics(t, func() { diag.WithProgressStep(101) })
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "running", diag.Running.String())
	assert.Equal(t, "aborted", diag.Aborted.String())
	assert.Equal(t, "success", diag.EventSuccess.String())
}
