package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/matrix"
)

// squareCell builds a 2D square lattice with one site holding one state.
func squareCell(t *testing.T) (*lattice.UnitCell, lattice.ID) {
	t.Helper()
	c := lattice.NewUnitCell("square")
	require.NoError(t, c.SetDimensionality(2))
	site, err := c.AddSite("A", [3]float64{})
	require.NoError(t, err)
	s, err := c.AddState(site, "s")
	require.NoError(t, err)

	return c, s
}

// fillBands commits a fake one-point band structure at the current revision.
func fillBands(t *testing.T, c *lattice.UnitCell) {
	t.Helper()
	m, err := matrix.NewCDense(1, 1)
	require.NoError(t, err)
	require.NoError(t, c.CommitBands(c.Revision(), [][]float64{make([]float64, c.PeriodicCount())}, [][]float64{{0}}, []*matrix.CDense{m}))
}

var unitVecs = [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
