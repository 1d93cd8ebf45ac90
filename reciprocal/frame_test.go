package reciprocal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/reciprocal"
)

func assertVec(t *testing.T, want, got r3.Vec) {
	t.Helper()
	assert.InDeltaSlice(t, []float64{want.X, want.Y, want.Z}, []float64{got.X, got.Y, got.Z}, 1e-12)
}

func TestFrame_AxisAligned(t *testing.T) {
	cases := []struct {
		name string
		v    []r3.Vec
		want []r3.Vec
	}{
		{"none", nil, []r3.Vec{}},
		{"x", []r3.Vec{{X: 3}}, []r3.Vec{{X: 1}}},
		{"y", []r3.Vec{{Y: 2}}, []r3.Vec{{Y: 1}}},
		{"-z", []r3.Vec{{Z: -1}}, []r3.Vec{{Z: 1}}},
		{"hex in xy", []r3.Vec{{X: 1}, {X: 0.5, Y: math.Sqrt(3) / 2}}, []r3.Vec{{X: 1}, {Y: 1}}},
		{"xz", []r3.Vec{{X: 1}, {Z: 1}}, []r3.Vec{{X: 1}, {Z: 1}}},
		{"zy", []r3.Vec{{Z: 1}, {Y: 1}}, []r3.Vec{{Y: 1}, {Z: 1}}},
		{"fcc", []r3.Vec{{Y: 0.5, Z: 0.5}, {X: 0.5, Z: 0.5}, {X: 0.5, Y: 0.5}}, []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := reciprocal.Frame(tc.v)
			require.NoError(t, err)
			require.Len(t, f, len(tc.want))
			for i := range f {
				assertVec(t, tc.want[i], f[i])
			}
		})
	}
}

func TestFrame_TiltedIsOrthonormalAndShared(t *testing.T) {
	a := []r3.Vec{{X: 1, Z: 1}, {Y: 2, Z: -0.5}}
	g, err := reciprocal.Vectors(a)
	require.NoError(t, err)

	fa, err := reciprocal.Frame(a)
	require.NoError(t, err)
	fg, err := reciprocal.Frame(g)
	require.NoError(t, err)
	require.Len(t, fa, 2)
	for i := range fa {
		assertVec(t, fa[i], fg[i])
		for j := range fa {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, r3.Dot(fa[i], fa[j]), 1e-12)
		}
	}
	// G·a is preserved when both are written in the frame.
	ga := reciprocal.Components(g[0], fa)
	aa := reciprocal.Components(a[0], fa)
	assert.InDelta(t, reciprocal.TwoPi, ga[0]*aa[0]+ga[1]*aa[1], 1e-12)
}

func TestFrame_Errors(t *testing.T) {
	_, err := reciprocal.Frame([]r3.Vec{{X: 1}, {X: 2}})
	assert.ErrorIs(t, err, reciprocal.ErrDegenerate)
	_, err = reciprocal.Frame([]r3.Vec{{}})
	assert.ErrorIs(t, err, reciprocal.ErrDegenerate)
	_, err = reciprocal.Frame(make([]r3.Vec, 4))
	assert.ErrorIs(t, err, reciprocal.ErrPeriodicCount)
}
