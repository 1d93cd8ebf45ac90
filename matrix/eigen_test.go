package matrix_test

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/katalvlaran/tightbind/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomHermitian builds a reproducible dense Hermitian matrix.
func randomHermitian(t testing.TB, n int, seed int64) *matrix.CDense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	h, err := matrix.NewCDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, h.Set(i, i, complex(rng.NormFloat64(), 0)))
		for j := i + 1; j < n; j++ {
			v := complex(rng.NormFloat64(), rng.NormFloat64())
			require.NoError(t, h.Set(i, j, v))
			require.NoError(t, h.Set(j, i, cmplx.Conj(v)))
		}
	}

	return h
}

// TestEigenHermitian_PauliY checks the textbook σ_y spectrum {-1, +1}.
func TestEigenHermitian_PauliY(t *testing.T) {
	sy, _ := matrix.NewCDenseFrom(2, 2, []complex128{0, -1i, 1i, 0})
	vals, vecs, err := matrix.EigenHermitian(sy)
	require.NoError(t, err)
	require.Len(t, vals, 2)
	assert.InDelta(t, -1.0, vals[0], 1e-12)
	assert.InDelta(t, 1.0, vals[1], 1e-12)

	// σ_y v = λ v for each column
	for j, lambda := range vals {
		col, _ := vecs.Col(j)
		got, err := matrix.MatVec(sy, col)
		require.NoError(t, err)
		for i := range col {
			assert.InDelta(t, 0, cmplx.Abs(got[i]-complex(lambda, 0)*col[i]), 1e-12)
		}
	}
}

// TestEigenHermitian_Reconstruction verifies H·V = V·Λ, VᴴV = I and ascending order.
func TestEigenHermitian_Reconstruction(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		h := randomHermitian(t, n, int64(n))
		vals, vecs, err := matrix.EigenHermitian(h)
		require.NoError(t, err, "n=%d", n)
		require.Len(t, vals, n)

		for i := 1; i < n; i++ {
			assert.LessOrEqual(t, vals[i-1], vals[i], "eigenvalues must ascend")
		}

		hv, err := matrix.Mul(h, vecs)
		require.NoError(t, err)
		lambda, _ := matrix.NewCDense(n, n)
		for i, v := range vals {
			_ = lambda.Set(i, i, complex(v, 0))
		}
		vl, err := matrix.Mul(vecs, lambda)
		require.NoError(t, err)
		assert.True(t, matrix.EqualApprox(hv, vl, 1e-9), "H V != V Λ for n=%d", n)

		vH, _ := matrix.ConjTranspose(vecs)
		vhv, _ := matrix.Mul(vH, vecs)
		id, _ := matrix.Identity(n)
		assert.True(t, matrix.EqualApprox(vhv, id, 1e-9), "V must be unitary for n=%d", n)
	}
}

// TestEigenHermitian_TraceIsPreserved compares Σλ with the trace.
func TestEigenHermitian_TraceIsPreserved(t *testing.T) {
	h := randomHermitian(t, 8, 42)
	vals, _, err := matrix.EigenHermitian(h)
	require.NoError(t, err)
	var trace, sum float64
	for i := 0; i < 8; i++ {
		v, _ := h.At(i, i)
		trace += real(v)
		sum += vals[i]
	}
	assert.InDelta(t, trace, sum, 1e-10)
}

// TestEigenHermitian_Errors covers the validation and convergence sentinels.
func TestEigenHermitian_Errors(t *testing.T) {
	bad, _ := matrix.NewCDenseFrom(2, 2, []complex128{0, 1, 2, 0})
	_, _, err := matrix.EigenHermitian(bad)
	assert.ErrorIs(t, err, matrix.ErrNotHermitian)

	nan, _ := matrix.NewCDenseFrom(1, 1, []complex128{complex(math.NaN(), 0)})
	_, _, err = matrix.EigenHermitian(nan)
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	rect, _ := matrix.NewCDense(2, 3)
	_, _, err = matrix.EigenHermitian(rect)
	assert.ErrorIs(t, err, matrix.ErrNonSquare)

	_, _, err = matrix.EigenHermitian(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	h := randomHermitian(t, 10, 7)
	_, _, err = matrix.EigenHermitian(h, matrix.WithMaxSweeps(1), matrix.WithEpsilon(1e-15))
	assert.ErrorIs(t, err, matrix.ErrEigenFailed, "one sweep cannot reach 1e-15")
}

// TestEigenHermitian_ZeroMatrix returns zero eigenvalues and the identity basis.
func TestEigenHermitian_ZeroMatrix(t *testing.T) {
	z, _ := matrix.NewCDense(3, 3)
	vals, vecs, err := matrix.EigenHermitian(z)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, vals)
	id, _ := matrix.Identity(3)
	assert.True(t, matrix.EqualApprox(vecs, id, 0))
}

// TestOptions_PanicOnNonsense verifies option constructors guard their inputs.
func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { matrix.WithEpsilon(0) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { matrix.WithMaxSweeps(0) })
	assert.Panics(t, func() { matrix.WithHermitianTolerance(-1) })
	assert.NotPanics(t, func() { matrix.WithHermitianTolerance(0) })
}
