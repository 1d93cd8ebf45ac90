package reciprocal

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// TwoPi is the 2π factor of the duality condition Gᵢ·aⱼ = 2π δᵢⱼ.
const TwoPi = 2 * math.Pi

// degeneracyEps is the relative threshold below which a basis counts as singular.
const degeneracyEps = 1e-12

// Vectors returns the reciprocal basis of the given periodic lattice vectors.
// Implementation (analytic, per dimension):
//   - 0: empty slice.
//   - 1: G₁ = 2π a₁/|a₁|².
//   - 2: with n = a₁×a₂, G₁ = 2π (a₂×n)/(a₁·(a₂×n)), G₂ = 2π (n×a₁)/(a₂·(n×a₁)).
//   - 3: with V = a₁·(a₂×a₃), Gᵢ = 2π (aⱼ×a_k)/V for cyclic (i,j,k).
//
// Errors: ErrPeriodicCount (len(a) > 3), ErrDegenerate.
// Complexity: O(1).
func Vectors(a []r3.Vec) ([]r3.Vec, error) {
	switch len(a) {
	case 0:
		return []r3.Vec{}, nil

	case 1:
		n2 := r3.Dot(a[0], a[0])
		if n2 == 0 {
			return nil, fmt.Errorf("Vectors: |a1| = 0: %w", ErrDegenerate)
		}
		return []r3.Vec{r3.Scale(TwoPi/n2, a[0])}, nil

	case 2:
		n := r3.Cross(a[0], a[1])
		if r3.Norm(n) <= degeneracyEps*r3.Norm(a[0])*r3.Norm(a[1]) {
			return nil, fmt.Errorf("Vectors: a1 ∥ a2: %w", ErrDegenerate)
		}
		c1 := r3.Cross(a[1], n)
		c2 := r3.Cross(n, a[0])
		return []r3.Vec{
			r3.Scale(TwoPi/r3.Dot(a[0], c1), c1),
			r3.Scale(TwoPi/r3.Dot(a[1], c2), c2),
		}, nil

	case 3:
		c23 := r3.Cross(a[1], a[2])
		vol := r3.Dot(a[0], c23)
		if math.Abs(vol) <= degeneracyEps*r3.Norm(a[0])*r3.Norm(a[1])*r3.Norm(a[2]) {
			return nil, fmt.Errorf("Vectors: zero cell volume: %w", ErrDegenerate)
		}
		return []r3.Vec{
			r3.Scale(TwoPi/vol, c23),
			r3.Scale(TwoPi/vol, r3.Cross(a[2], a[0])),
			r3.Scale(TwoPi/vol, r3.Cross(a[0], a[1])),
		}, nil
	}

	return nil, fmt.Errorf("Vectors: %d periodic vectors: %w", len(a), ErrPeriodicCount)
}

// Shell returns the reciprocal points Σ nᵢGᵢ for every nonzero n ∈ {−1,0,1}^d,
// in lexicographic order of n.
func Shell(g []r3.Vec) []r3.Vec {
	d := len(g)
	if d == 0 {
		return nil
	}
	total := 1
	for i := 0; i < d; i++ {
		total *= 3
	}
	out := make([]r3.Vec, 0, total-1)
	var p r3.Vec
	for code := 0; code < total; code++ {
		p = r3.Vec{}
		zero := true
		rem := code
		for i := d - 1; i >= 0; i-- {
			coef := float64(rem%3 - 1)
			rem /= 3
			if coef != 0 {
				zero = false
				p = r3.Add(p, r3.Scale(coef, g[i]))
			}
		}
		if !zero {
			out = append(out, p)
		}
	}

	return out
}
