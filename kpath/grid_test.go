package kpath_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/kpath"
	"github.com/katalvlaran/tightbind/reciprocal"
)

func TestFractions(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, kpath.Fractions(4, true))
	assert.Equal(t, []float64{-0.375, -0.125, 0.125, 0.375}, kpath.Fractions(4, false))
	assert.Equal(t, []float64{-1.0 / 3, 0, 1.0 / 3}, kpath.Fractions(3, false))
}

func TestGrid_Square(t *testing.T) {
	g := []r3.Vec{{X: 2 * math.Pi}, {Y: 2 * math.Pi}}
	pts, err := kpath.Grid([3]int{2, 3, 7}, true, g)
	require.NoError(t, err)
	require.Len(t, pts, 6, "third division ignored")
	assert.Equal(t, []float64{0, 0}, pts[0])
	assert.InDeltaSlice(t, []float64{0, 2 * math.Pi / 3}, pts[1], 1e-12)
	assert.InDeltaSlice(t, []float64{math.Pi, 0}, pts[3], 1e-12)
	for _, p := range pts {
		assert.Len(t, p, 2)
	}
}

func TestGrid_MonkhorstPackAvoidsGamma(t *testing.T) {
	g := []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	pts, err := kpath.Grid([3]int{2, 2, 2}, false, g)
	require.NoError(t, err)
	require.Len(t, pts, 8)
	for _, p := range pts {
		for _, x := range p {
			assert.InDelta(t, 0.25, math.Abs(x), 1e-12)
		}
	}
}

func TestGrid_NoPeriodic(t *testing.T) {
	pts, err := kpath.Grid([3]int{4, 4, 4}, true, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{}}, pts)
}

func TestGrid_Errors(t *testing.T) {
	_, err := kpath.Grid([3]int{0, 1, 1}, true, []r3.Vec{{X: 1}})
	assert.ErrorIs(t, err, kpath.ErrDivisions)
	_, err = kpath.Grid([3]int{1, 1, 1}, true, make([]r3.Vec, 4))
	assert.ErrorIs(t, err, kpath.ErrDimension)
}

func TestToCartesian(t *testing.T) {
	g := []r3.Vec{{X: 1, Y: 1}, {X: -1, Y: 1}}
	k, err := kpath.ToCartesian([]float64{0.5, 0.5}, g)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1}, k, 1e-12)

	_, err = kpath.ToCartesian([]float64{0.5}, g)
	assert.ErrorIs(t, err, kpath.ErrDimension)

	pts, err := kpath.PathToCartesian([][]float64{{0, 0}, {1, 0}}, g)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.InDeltaSlice(t, []float64{0, 0}, pts[0], 1e-12)
	assert.InDeltaSlice(t, []float64{1, 1}, pts[1], 1e-12)
}

func TestToCartesian_PeriodicFrame(t *testing.T) {
	cases := []struct {
		name string
		g    []r3.Vec
		frac []float64
		want []float64
	}{
		{"chain along y", []r3.Vec{{Y: 2 * math.Pi}}, []float64{0.5}, []float64{math.Pi}},
		{"chain along -z", []r3.Vec{{Z: -2 * math.Pi}}, []float64{0.5}, []float64{-math.Pi}},
		{"square in xz", []r3.Vec{{X: 2 * math.Pi}, {Z: 2 * math.Pi}}, []float64{0.5, 0.25}, []float64{math.Pi, math.Pi / 2}},
		{"square in yz", []r3.Vec{{Z: 2 * math.Pi}, {Y: 2 * math.Pi}}, []float64{0.5, 0.25}, []float64{math.Pi / 2, math.Pi}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k, err := kpath.ToCartesian(tc.frac, tc.g)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tc.want, k, 1e-12)
		})
	}
}

func TestGrid_ChainAlongY(t *testing.T) {
	pts, err := kpath.Grid([3]int{4, 1, 1}, true, []r3.Vec{{Y: 2 * math.Pi}})
	require.NoError(t, err)
	require.Len(t, pts, 4)
	assert.InDeltaSlice(t, []float64{math.Pi}, pts[2], 1e-12)
}

func TestToCartesian_Degenerate(t *testing.T) {
	_, err := kpath.ToCartesian([]float64{0, 0}, []r3.Vec{{X: 1}, {X: 2}})
	assert.ErrorIs(t, err, reciprocal.ErrDegenerate)
}
