package kpath

import "errors"

var (
	// ErrTooFewPoints indicates fewer than two special points; no path exists.
	ErrTooFewPoints = errors.New("kpath: at least two special points required")

	// ErrDimension indicates ragged points or a fraction/basis length mismatch.
	ErrDimension = errors.New("kpath: inconsistent k dimension")

	// ErrTooFewSamples indicates nTotal smaller than the number of special points.
	ErrTooFewSamples = errors.New("kpath: sample count below number of special points")

	// ErrDivisions indicates a non-positive grid division.
	ErrDivisions = errors.New("kpath: grid divisions must be positive")
)
