// SPDX-License-Identifier: MIT

package diag_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/diag"
	"github.com/katalvlaran/tightbind/kpath"
	"github.com/katalvlaran/tightbind/lattice"
)

// longRun is large enough that a second request always arrives first.
const longRun = 20000

func TestManager_StartBandsCommits(t *testing.T) {
	c := ladder(t)
	m := diag.NewManager(diag.WithLogger(zaptest.NewLogger(t)))
	defer m.Shutdown()

	run, err := m.StartBands(context.Background(), c, 21)
	require.NoError(t, err)
	res, err := run.Wait()
	require.NoError(t, err)

	b := c.Bands()
	require.Len(t, b.Path, 21)
	require.Len(t, b.Eigenvalues, 21)
	assert.Equal(t, res.Eigenvalues, b.Eigenvalues)
	assert.Equal(t, []float64{0}, b.Path[0])
	assert.Equal(t, []float64{math.Pi}, b.Path[20])
	for _, vals := range b.Eigenvalues {
		assert.Len(t, vals, 4)
		assert.IsNonDecreasing(t, vals)
	}
}

func TestManager_StartGridCommits(t *testing.T) {
	c := lattice.NewUnitCell("square")
	require.NoError(t, c.SetDimensionality(2))
	site, _ := c.AddSite("A", [3]float64{})
	s, _ := c.AddState(site, "s")
	require.NoError(t, c.SetHoppingPair(s, s, lattice.Displacement{1, 0, 0}, -1))
	require.NoError(t, c.SetHoppingPair(s, s, lattice.Displacement{0, 1, 0}, -1))

	m := diag.NewManager(diag.WithWorkers(2))
	defer m.Shutdown()
	run, err := m.StartGrid(context.Background(), c, [3]int{4, 4, 9}, true)
	require.NoError(t, err)
	_, err = run.Wait()
	require.NoError(t, err)

	g := c.Grid()
	assert.Equal(t, [3]int{4, 4, 9}, g.Divisions)
	require.Len(t, g.KPoints, 16)
	require.Len(t, g.Eigenvalues, 16)
	// Γ: ε = −2(cos 0 + cos 0) = −4.
	assert.InDelta(t, -4, g.Eigenvalues[0][0], 1e-12)

	gv, _ := c.ReciprocalVectors()
	want, _ := kpath.Grid(g.Divisions, true, []r3.Vec{gv[0], gv[1]})
	assert.Equal(t, want, g.KPoints)
}

func TestManager_CancelsPreviousRun(t *testing.T) {
	c := ladder(t)
	m := diag.NewManager()
	defer m.Shutdown()

	first, err := m.StartBands(context.Background(), c, longRun)
	require.NoError(t, err)
	second, err := m.StartBands(context.Background(), c, 5)
	require.NoError(t, err)

	_, err = first.Wait()
	assert.ErrorIs(t, err, diag.ErrAborted)
	_, err = second.Wait()
	require.NoError(t, err)
	assert.Len(t, c.Bands().Eigenvalues, 5)

	assert.Eventually(t, func() bool { return m.Active(c.ID()) == nil }, time.Second, time.Millisecond)
}

func TestManager_CancelLeavesCacheUntouched(t *testing.T) {
	c := ladder(t)
	m := diag.NewManager()
	defer m.Shutdown()

	run, err := m.StartBands(context.Background(), c, 7)
	require.NoError(t, err)
	_, err = run.Wait()
	require.NoError(t, err)
	before := c.Bands()

	run, err = m.StartBands(context.Background(), c, longRun)
	require.NoError(t, err)
	assert.True(t, m.Cancel(c.ID()))
	_, err = run.Wait()
	assert.ErrorIs(t, err, diag.ErrAborted)

	after := c.Bands()
	assert.Equal(t, before.Path, after.Path)
	assert.Equal(t, before.Eigenvalues, after.Eigenvalues)
	assert.Eventually(t, func() bool { return !m.Cancel(c.ID()) }, time.Second, time.Millisecond)
}

func TestManager_StaleRevisionRejected(t *testing.T) {
	c := ladder(t)
	m := diag.NewManager()
	defer m.Shutdown()

	run, err := m.StartBands(context.Background(), c, longRun)
	require.NoError(t, err)
	// A structural edit while the run is in flight bumps the revision.
	site, err := c.AddSite("C", [3]float64{})
	require.NoError(t, err)
	_, err = c.AddState(site, "s")
	require.NoError(t, err)

	_, err = run.Wait()
	require.ErrorIs(t, err, lattice.ErrStaleSnapshot)
	assert.Equal(t, diag.Failed, run.State())
	assert.Nil(t, c.Bands().Eigenvalues)
}

func TestManager_NonHermitianGate(t *testing.T) {
	c := ladder(t)
	states := c.States()
	require.NoError(t, c.SetHopping(states[0].ID, states[1].ID, lattice.Displacement{1, 0, 0}, 1))
	require.NoError(t, c.SetSpecialPoints([][]float64{{0}, {1}}))

	m := diag.NewManager(diag.WithLogger(zaptest.NewLogger(t)))
	defer m.Shutdown()
	run, err := m.StartBands(context.Background(), c, 10)
	assert.Nil(t, run)
	assert.ErrorIs(t, err, lattice.ErrNotHermitian)
	assert.Nil(t, m.Active(c.ID()))

	_, err = m.StartGrid(context.Background(), c, [3]int{2, 1, 1}, true)
	assert.ErrorIs(t, err, lattice.ErrNotHermitian)
}

func TestManager_NoPath(t *testing.T) {
	c := ladder(t)
	c.ClearBands()
	m := diag.NewManager()
	defer m.Shutdown()
	_, err := m.StartBands(context.Background(), c, 10)
	assert.ErrorIs(t, err, kpath.ErrTooFewPoints)
}

func TestManager_Shutdown(t *testing.T) {
	c := ladder(t)
	m := diag.NewManager()
	run, err := m.StartBands(context.Background(), c, longRun)
	require.NoError(t, err)
	m.Shutdown()
	assert.Equal(t, diag.Aborted, run.State())
	assert.Nil(t, m.Active(c.ID()))
}
