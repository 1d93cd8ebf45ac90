// SPDX-License-Identifier: MIT

package diag_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tightbind/diag"
	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/matrix"
)

// linearK returns n one-dimensional k-points in [0, π].
func linearK(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = []float64{math.Pi * float64(i) / float64(max(n-1, 1))}
	}

	return out
}

// diagonalH is H(k) = diag(cos k, −cos k).
func diagonalH(k []float64) (*matrix.CDense, error) {
	return matrix.NewCDenseFrom(2, 2, []complex128{complex(math.Cos(k[0]), 0), 0, 0, complex(-math.Cos(k[0]), 0)})
}

// gatedH blocks every call until gate is closed.
func gatedH(gate <-chan struct{}) func([]float64) (*matrix.CDense, error) {
	return func([]float64) (*matrix.CDense, error) {
		<-gate
		return matrix.Identity(1)
	}
}

// drain collects events until the channel closes.
func drain(run *diag.Run) []diag.Event {
	var out []diag.Event
	for ev := range run.Events() {
		out = append(out, ev)
	}

	return out
}

// ladder returns a 1D two-leg ladder (4 states) with Γ and X as special points.
func ladder(t *testing.T) *lattice.UnitCell {
	t.Helper()
	c := lattice.NewUnitCell("ladder")
	require.NoError(t, c.SetDimensionality(1))
	var states []lattice.ID
	for _, name := range []string{"A", "B"} {
		site, err := c.AddSite(name, [3]float64{})
		require.NoError(t, err)
		for _, orb := range []string{"s", "p"} {
			s, err := c.AddState(site, orb)
			require.NoError(t, err)
			states = append(states, s)
		}
	}
	for i, a := range states {
		require.NoError(t, c.SetHoppingPair(a, a, lattice.Displacement{1, 0, 0}, -1))
		require.NoError(t, c.SetHoppingPair(a, a, lattice.Displacement{}, complex(float64(i), 0)))
		if i > 0 {
			require.NoError(t, c.SetHoppingPair(states[i-1], a, lattice.Displacement{}, 0.3-0.2i))
		}
	}
	require.NoError(t, c.SetSpecialPoints([][]float64{{0}, {math.Pi}}))

	return c
}
