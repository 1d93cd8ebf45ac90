// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (optionally wrapped with an operation
// tag) and tests check them via errors.Is.

package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (rows<=0 or cols<=0),
	// or when a data slice does not match rows*cols.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNotHermitian signals that A[i,j] and conj(A[j,i]) differ by more than the tolerance.
	ErrNotHermitian = errors.New("matrix: matrix is not hermitian within tolerance")

	// ErrNaNInf signals a NaN or ±Inf component where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates a nil *CDense receiver or argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrEigenFailed indicates that the Jacobi sweeps did not drive the
	// off-diagonal norm under the tolerance within the sweep budget.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)
