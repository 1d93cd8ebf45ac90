package reciprocal

import "errors"

var (
	// ErrPeriodicCount indicates more than three periodic vectors.
	ErrPeriodicCount = errors.New("reciprocal: periodic vector count must be in [0,3]")

	// ErrDegenerate indicates linearly dependent (or zero) periodic vectors.
	ErrDegenerate = errors.New("reciprocal: periodic vectors are linearly dependent")
)
