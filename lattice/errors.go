// Package lattice: sentinel errors and the typed consistency error.
package lattice

import (
	"errors"
	"fmt"
)

// Sentinel errors for lattice operations.
var (
	// ErrBasisIndex indicates a basis vector index outside [0,3).
	ErrBasisIndex = errors.New("lattice: basis index out of range")

	// ErrDimensionality indicates a periodic-direction count outside [0,3].
	ErrDimensionality = errors.New("lattice: dimensionality must be in [0,3]")

	// ErrSiteNotFound indicates an operation referenced a non-existent site.
	ErrSiteNotFound = errors.New("lattice: site not found")

	// ErrStateNotFound indicates an operation referenced a non-existent state.
	ErrStateNotFound = errors.New("lattice: state not found")

	// ErrDuplicateID indicates an explicit id that is already in use in the cell.
	ErrDuplicateID = errors.New("lattice: duplicate id")

	// ErrHoppingNotFound indicates no record with the given displacement exists.
	ErrHoppingNotFound = errors.New("lattice: hopping not found")

	// ErrOnsiteNotReal indicates a complex on-site term written as a Hermitian pair.
	ErrOnsiteNotReal = errors.New("lattice: on-site amplitude must be real")

	// ErrNonFinite indicates a NaN or ±Inf coordinate or amplitude.
	ErrNonFinite = errors.New("lattice: NaN or Inf value")

	// ErrKDimension indicates a k-point whose length differs from the periodic count.
	ErrKDimension = errors.New("lattice: k-point dimension mismatch")

	// ErrSpecialPointIndex indicates a special point index out of range.
	ErrSpecialPointIndex = errors.New("lattice: special point index out of range")

	// ErrResultShape indicates eigen-data not aligned with its k-points.
	ErrResultShape = errors.New("lattice: eigen-data not aligned with k-points")

	// ErrStaleSnapshot indicates a commit computed from an outdated revision.
	ErrStaleSnapshot = errors.New("lattice: snapshot revision is stale")

	// ErrNotHermitian indicates a hopping table violating the Hermiticity invariant.
	ErrNotHermitian = errors.New("lattice: hopping table is not hermitian")
)

// ConsistencyError reports the first hopping key whose Hermitian counterpart
// does not match. It unwraps to ErrNotHermitian.
type ConsistencyError struct {
	Dst, Src ID     // offending key (destination, source)
	Reason   string // short human-readable diagnostic
}

// Error implements error.
func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("lattice: non-hermitian system: hopping (%s <- %s): %s", e.Dst, e.Src, e.Reason)
}

// Unwrap returns ErrNotHermitian so errors.Is works.
func (e *ConsistencyError) Unwrap() error { return ErrNotHermitian }
