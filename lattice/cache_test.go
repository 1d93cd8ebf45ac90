package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/matrix"
)

func TestSpecialPoints(t *testing.T) {
	c, _ := squareCell(t)
	require.NoError(t, c.AddSpecialPoint([]float64{0, 0}))
	require.NoError(t, c.AddSpecialPoint([]float64{3.14, 0}))
	assert.ErrorIs(t, c.AddSpecialPoint([]float64{1}), lattice.ErrKDimension)
	assert.ErrorIs(t, c.AddSpecialPoint([]float64{nan(), 0}), lattice.ErrNonFinite)

	fillBands(t, c)
	require.NoError(t, c.RemoveSpecialPoint(0))
	b := c.Bands()
	assert.Equal(t, [][]float64{{3.14, 0}}, b.SpecialPoints)
	assert.Nil(t, b.Eigenvalues, "removing a point clears eigen-data")
	assert.ErrorIs(t, c.RemoveSpecialPoint(5), lattice.ErrSpecialPointIndex)

	require.NoError(t, c.SetSpecialPoints([][]float64{{0, 0}, {1, 1}, {1, 0}}))
	assert.Len(t, c.Bands().SpecialPoints, 3)
	assert.ErrorIs(t, c.SetSpecialPoints([][]float64{{0}}), lattice.ErrKDimension)

	c.ClearBands()
	assert.Empty(t, c.Bands().SpecialPoints)
}

func TestCommitBands(t *testing.T) {
	c, _ := squareCell(t)
	rev := c.Revision()
	m, _ := matrix.NewCDense(1, 1)
	path := [][]float64{{0, 0}, {1, 0}}

	assert.ErrorIs(t, c.CommitBands(rev, path, [][]float64{{0}}, []*matrix.CDense{m}), lattice.ErrResultShape)
	require.NoError(t, c.CommitBands(rev, path, [][]float64{{0}, {1}}, []*matrix.CDense{m, m}))
	assert.Equal(t, path, c.Bands().Path)

	require.NoError(t, c.AddSpecialPoint([]float64{0, 0}))
	assert.ErrorIs(t, c.CommitBands(rev, path, [][]float64{{0}, {1}}, []*matrix.CDense{m, m}), lattice.ErrStaleSnapshot)
}

func TestGridSettingsAndCommit(t *testing.T) {
	c, _ := squareCell(t)
	c.SetGridSettings([3]int{4, 0, -2}, false)
	g := c.Grid()
	assert.Equal(t, [3]int{4, 1, 1}, g.Divisions)
	assert.False(t, g.GammaCentered)

	rev := c.Revision()
	m, _ := matrix.NewCDense(1, 1)
	require.NoError(t, c.CommitGrid(rev, [][]float64{{0, 0}}, [][]float64{{1}}, []*matrix.CDense{m}))
	assert.Len(t, c.Grid().KPoints, 1)

	c.SetGridSettings([3]int{2, 2, 1}, true)
	assert.Nil(t, c.Grid().KPoints)
	assert.ErrorIs(t, c.CommitGrid(rev, [][]float64{{0, 0}}, [][]float64{{1}}, []*matrix.CDense{m}), lattice.ErrStaleSnapshot)
}
