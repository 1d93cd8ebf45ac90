// File: geometry.go
// Role: reciprocal-space views of the cell and the LLL-reduced basis.
// Purity:
//   - Nothing here mutates the cell; hopping displacements refer to the
//     current basis, so a reduced basis is returned, never applied.

package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/lll"
	"github.com/katalvlaran/tightbind/reciprocal"
)

// DefaultReductionScale converts real coordinates to integers before LLL.
const DefaultReductionScale = 1e6

// ReciprocalVectors returns Gᵢ for the periodic basis vectors, in basis order.
// Errors: reciprocal.ErrDegenerate for linearly dependent periodic vectors.
func (c *UnitCell) ReciprocalVectors() ([]r3.Vec, error) {
	return reciprocal.Vectors(c.PeriodicVectors())
}

// BrillouinZone returns the first Brillouin zone of the cell.
func (c *UnitCell) BrillouinZone() (reciprocal.Zone, error) {
	g, err := c.ReciprocalVectors()
	if err != nil {
		return reciprocal.Zone{}, err
	}

	return reciprocal.BrillouinZone(g)
}

// ReducedBasis returns the basis with its periodic subset LLL-reduced.
// Periodic vectors are scaled by scale (≤ 0 selects DefaultReductionScale),
// rounded to integers, reduced with lll.DefaultDelta and scaled back.
// Non-periodic vectors keep their slot; reduced periodic vectors fill the
// periodic slots in order. Fewer than two periodic vectors → unchanged basis.
func (c *UnitCell) ReducedBasis(scale float64) ([3]BasisVector, error) {
	return ReduceBasis(c.Basis(), scale, lll.DefaultDelta)
}

// ReduceBasis is the cell-independent form of ReducedBasis.
// Errors: lll.ErrDelta, lll.ErrDependent, ErrNonFinite (scaled overflow).
func ReduceBasis(b [3]BasisVector, scale, delta float64) ([3]BasisVector, error) {
	if scale <= 0 {
		scale = DefaultReductionScale
	}
	slots := make([]int, 0, 3)
	for i := range b {
		if b[i].Periodic {
			slots = append(slots, i)
		}
	}
	if len(slots) < 2 {
		return b, nil
	}

	// Stage 1: integer matrix, one row per periodic vector.
	rows := make([][]int64, len(slots))
	for r, i := range slots {
		v := b[i].Vec
		row := make([]int64, 3)
		for j, x := range [3]float64{v.X, v.Y, v.Z} {
			s := math.Round(x * scale)
			if math.IsNaN(s) || math.Abs(s) > math.MaxInt64/4 {
				return b, fmt.Errorf("ReduceBasis: vector %d at scale %g: %w", i, scale, ErrNonFinite)
			}
			row[j] = int64(s)
		}
		rows[r] = row
	}

	// Stage 2: reduce and write back into the periodic slots.
	red, err := lll.Reduce(rows, delta)
	if err != nil {
		return b, fmt.Errorf("ReduceBasis: %w", err)
	}
	out := b
	for r, i := range slots {
		out[i].Vec = r3.Vec{
			X: float64(red[r][0]) / scale,
			Y: float64(red[r][1]) / scale,
			Z: float64(red[r][2]) / scale,
		}
	}

	return out, nil
}
