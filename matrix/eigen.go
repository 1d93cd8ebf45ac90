// SPDX-License-Identifier: MIT
// Package matrix: Hermitian eigen-decomposition by cyclic complex Jacobi rotations.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// Operation tags for unified error wrapping.
const (
	opEigen         = "EigenHermitian"
	opMul           = "Mul"
	opConjTranspose = "ConjTranspose"
	opMatVec        = "MatVec"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// EigenHermitian computes all eigenvalues and eigenvectors of a Hermitian matrix.
// Implementation:
//   - Stage 1: Validate square, finite and Hermitian (relative tolerance, see WithHermitianTolerance).
//   - Stage 2: Cyclic sweeps over pivots (p,q), p<q. Each rotation first removes the
//     phase of A[p,q] with diag(1, e^{-iφ}), then applies the real Jacobi rotation that
//     zeroes the now-real off-diagonal pair.
//   - Stage 3: Stop once the off-diagonal Frobenius norm is ≤ eps·‖A‖_F.
//   - Stage 4: Sort eigenvalues ascending and permute eigenvector columns to match.
//
// Returns:
//   - []float64: ascending eigenvalues.
//   - *CDense: unitary V whose column j is the eigenvector of eigenvalue j (A·V = V·Λ).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrNotHermitian, ErrEigenFailed
//     (wrapped with "EigenHermitian: ").
//
// Determinism:
//   - Fixed p→q sweep order; ties in the final sort keep the diagonal order.
//
// Complexity:
//   - Time O(sweeps · n³), Space O(n²). Sweeps are typically 6..10 for eps=1e-12.
func EigenHermitian(m *CDense, opts ...Option) ([]float64, *CDense, error) {
	o := gatherOptions(opts...)

	// Stage 1: validate
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	norm := frobenius(m.data)
	if err := ValidateHermitian(m, o.hermTol*math.Max(1, norm)); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	n := m.r
	a := m.Clone()
	v, err := Identity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	// The diagonal of a Hermitian matrix is real; drop rounding residue.
	for i := 0; i < n; i++ {
		a.data[i*n+i] = complex(real(a.data[i*n+i]), 0)
	}

	// Stage 2/3: sweeps
	threshold := o.eps * norm
	converged := offNorm(a) <= threshold
	var (
		sweep, p, q, i        int
		apq, ph, cph          complex128
		upp, upq, uqp, uqq    complex128
		xp, xq                complex128
		r, app, aqq, theta, t float64
		c, s                  float64
	)
	for sweep = 0; sweep < o.maxSweeps && !converged; sweep++ {
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = a.data[p*n+q]
				r = cmplx.Abs(apq)
				if r == 0 {
					continue
				}
				app = real(a.data[p*n+p])
				aqq = real(a.data[q*n+q])

				// θ = (aqq−app)/(2|apq|); t = sign(θ)/(|θ|+√(θ²+1))
				theta = (aqq - app) / (2 * r)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				// U = diag(1, e^{-iφ}) · R(c,s)
				ph = apq / complex(r, 0)
				cph = cmplx.Conj(ph)
				upp = complex(c, 0)
				upq = complex(s, 0)
				uqp = complex(-s, 0) * cph
				uqq = complex(c, 0) * cph

				// A ← A·U (columns p,q)
				for i = 0; i < n; i++ {
					xp, xq = a.data[i*n+p], a.data[i*n+q]
					a.data[i*n+p] = xp*upp + xq*uqp
					a.data[i*n+q] = xp*upq + xq*uqq
				}
				// A ← Uᴴ·A (rows p,q)
				for i = 0; i < n; i++ {
					xp, xq = a.data[p*n+i], a.data[q*n+i]
					a.data[p*n+i] = cmplx.Conj(upp)*xp + cmplx.Conj(uqp)*xq
					a.data[q*n+i] = cmplx.Conj(upq)*xp + cmplx.Conj(uqq)*xq
				}
				a.data[p*n+q], a.data[q*n+p] = 0, 0
				a.data[p*n+p] = complex(real(a.data[p*n+p]), 0)
				a.data[q*n+q] = complex(real(a.data[q*n+q]), 0)

				// V ← V·U
				for i = 0; i < n; i++ {
					xp, xq = v.data[i*n+p], v.data[i*n+q]
					v.data[i*n+p] = xp*upp + xq*uqp
					v.data[i*n+q] = xp*upq + xq*uqq
				}
			}
		}
		converged = offNorm(a) <= threshold
	}
	if !converged {
		return nil, nil, matrixErrorf(opEigen, fmt.Errorf("%d sweeps: %w", o.maxSweeps, ErrEigenFailed))
	}

	// Stage 4: sort ascending, permute columns
	order := make([]int, n)
	for i = 0; i < n; i++ {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return real(a.data[order[x]*n+order[x]]) < real(a.data[order[y]*n+order[y]])
	})
	vals := make([]float64, n)
	vecs := &CDense{r: n, c: n, data: make([]complex128, n*n)}
	var src, row int
	for i, src = range order {
		vals[i] = real(a.data[src*n+src])
		for row = 0; row < n; row++ {
			vecs.data[row*n+i] = v.data[row*n+src]
		}
	}

	return vals, vecs, nil
}

// frobenius returns sqrt(Σ|x|²).
func frobenius(data []complex128) float64 {
	var sum, re, im float64
	for _, x := range data {
		re, im = real(x), imag(x)
		sum += re*re + im*im
	}

	return math.Sqrt(sum)
}

// offNorm returns the Frobenius norm of the off-diagonal part of a square matrix.
func offNorm(a *CDense) float64 {
	n := a.r
	var sum, re, im float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			re, im = real(a.data[i*n+j]), imag(a.data[i*n+j])
			sum += re*re + im*im
		}
	}

	return math.Sqrt(sum)
}
