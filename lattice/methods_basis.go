// File: methods_basis.go
// Role: basis vector and periodicity mutators.
// Invalidation:
//   - Every mutator here is structural and changes the reciprocal lattice, so
//     it clears special points, the path, the grid k-points and all eigen-data.

package lattice

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

func finiteVec(v r3.Vec) bool {
	return !(math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) ||
		math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0))
}

// SetBasisVector replaces the components of basis vector i, keeping its flag.
// Errors: ErrBasisIndex, ErrNonFinite.
func (c *UnitCell) SetBasisVector(i int, v r3.Vec) error {
	if i < 0 || i > 2 {
		return ErrBasisIndex
	}
	if !finiteVec(v) {
		return ErrNonFinite
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.basis[i].Vec = v
	c.invalidateGeometryLocked()

	return nil
}

// SetPeriodic sets the periodicity flag of basis vector i.
func (c *UnitCell) SetPeriodic(i int, periodic bool) error {
	if i < 0 || i > 2 {
		return ErrBasisIndex
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.basis[i].Periodic = periodic
	c.invalidateGeometryLocked()

	return nil
}

// SetDimensionality marks v1..vn periodic and the remaining vectors
// non-periodic. Errors: ErrDimensionality when n is outside [0,3].
func (c *UnitCell) SetDimensionality(n int) error {
	if n < 0 || n > 3 {
		return ErrDimensionality
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.basis {
		c.basis[i].Periodic = i < n
	}
	c.invalidateGeometryLocked()

	return nil
}

// SetBasis replaces all three basis vectors and flags at once.
func (c *UnitCell) SetBasis(b [3]BasisVector) error {
	for i := range b {
		if !finiteVec(b[i].Vec) {
			return ErrNonFinite
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.basis = b
	c.invalidateGeometryLocked()

	return nil
}

// PeriodicVectors returns the periodic basis vectors in basis order.
func (c *UnitCell) PeriodicVectors() []r3.Vec {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return periodicVectors(c.basis)
}

func periodicVectors(b [3]BasisVector) []r3.Vec {
	out := make([]r3.Vec, 0, 3)
	for i := range b {
		if b[i].Periodic {
			out = append(out, b[i].Vec)
		}
	}

	return out
}
