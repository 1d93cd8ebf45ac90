// SPDX-License-Identifier: MIT

// Package matrix provides the complex dense linear algebra used by the
// tight-binding core: a row-major complex matrix (CDense), Hermitian and
// finite-value validators, and a cyclic Jacobi eigensolver for Hermitian
// matrices.
//
// What is here:
//
//	CDense            — r×c complex128 matrix in a flat slice.
//	ValidateHermitian — |A[i,j] − conj(A[j,i])| ≤ tol for all i,j.
//	EigenHermitian    — ascending real eigenvalues + unitary eigenvector columns.
//	Mul, ConjTranspose, MatVec, EqualApprox — small helpers for callers and tests.
//
// Conventions:
//   - Every exported function validates its inputs and returns one of the
//     sentinels in errors.go, wrapped with the operation tag ("EigenHermitian: ...").
//     Callers match them with errors.Is.
//   - No function panics on user input; option constructors panic on
//     nonsensical values (programmer error), mirroring matrix/options.go.
//   - Inputs are never mutated; results are freshly allocated.
//
// Usage:
//
//	h, _ := matrix.NewCDense(2, 2)
//	_ = h.Set(0, 1, -1i)
//	_ = h.Set(1, 0, 1i)
//	vals, vecs, err := matrix.EigenHermitian(h)
//	// vals == [-1 1], columns of vecs are the eigenvectors
package matrix
