// SPDX-License-Identifier: MIT

package diag

import (
	"errors"
	"fmt"
)

var (
	// ErrAborted is returned by Run.Wait for a cancelled run. It is not a failure.
	ErrAborted = errors.New("diag: computation aborted")

	// ErrNoKPoints indicates an empty k-point sequence.
	ErrNoKPoints = errors.New("diag: no k-points to diagonalize")
)

// NumericError reports the k-point at which H(k) or the eigensolver failed.
type NumericError struct {
	Index int       // position in the k-point sequence
	K     []float64 // the k-point
	Err   error     // cause (matrix.ErrEigenFailed, matrix.ErrNaNInf, ...)
}

// Error implements error.
func (e *NumericError) Error() string {
	return fmt.Sprintf("diag: numeric failure at k-point %d %v: %v", e.Index, e.K, e.Err)
}

// Unwrap exposes the cause to errors.Is.
func (e *NumericError) Unwrap() error { return e.Err }
