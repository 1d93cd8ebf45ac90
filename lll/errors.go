// SPDX-License-Identifier: MIT

package lll

import "errors"

var (
	// ErrDelta indicates a Lovász parameter outside (0.25, 1].
	ErrDelta = errors.New("lll: delta must be in (0.25, 1]")

	// ErrShape indicates ragged rows or more rows than columns.
	ErrShape = errors.New("lll: basis rows must share one length ≥ row count")

	// ErrDependent indicates linearly dependent basis rows.
	ErrDependent = errors.New("lll: basis rows are linearly dependent")
)
