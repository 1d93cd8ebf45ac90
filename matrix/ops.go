// SPDX-License-Identifier: MIT
// Package matrix: small complex kernels used by callers and tests
// (products, adjoint, approximate equality).

package matrix

import (
	"fmt"
	"math/cmplx"
)

// Mul performs C = A × B into a fresh matrix. Operands are not mutated.
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: O(r·k·c).
func Mul(a, b *CDense) (*CDense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, matrixErrorf(opMul, fmt.Errorf("%dx%d · %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch))
	}
	out := &CDense{r: a.r, c: b.c, data: make([]complex128, a.r*b.c)}
	var (
		i, j, k int
		aik     complex128
	)
	for i = 0; i < a.r; i++ {
		for k = 0; k < a.c; k++ {
			aik = a.data[i*a.c+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < b.c; j++ {
				out.data[i*b.c+j] += aik * b.data[k*b.c+j]
			}
		}
	}

	return out, nil
}

// ConjTranspose returns Aᴴ, the conjugate transpose.
func ConjTranspose(m *CDense) (*CDense, error) {
	if m == nil {
		return nil, matrixErrorf(opConjTranspose, ErrNilMatrix)
	}
	out := &CDense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return out, nil
}

// MatVec computes y = A·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
func MatVec(m *CDense, x []complex128) ([]complex128, error) {
	if m == nil {
		return nil, matrixErrorf(opMatVec, ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, matrixErrorf(opMatVec, fmt.Errorf("len(x)=%d cols=%d: %w", len(x), m.c, ErrDimensionMismatch))
	}
	y := make([]complex128, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			y[i] += m.data[i*m.c+j] * x[j]
		}
	}

	return y, nil
}

// EqualApprox reports whether a and b have the same shape and every pair of
// elements differs by at most tol in modulus. Nil matrices are never equal.
func EqualApprox(a, b *CDense, tol float64) bool {
	if a == nil || b == nil || a.r != b.r || a.c != b.c {
		return false
	}
	for i := range a.data {
		if cmplx.Abs(a.data[i]-b.data[i]) > tol {
			return false
		}
	}

	return true
}
