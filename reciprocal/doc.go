// Package reciprocal derives reciprocal-lattice vectors and the first
// Brillouin zone (the Wigner–Seitz cell of the reciprocal lattice) from the
// periodic basis vectors of a unit cell.
//
// What is it?
//
//	Given periodic lattice vectors a₁..a_d (d ≤ 3), Vectors returns the dual
//	basis G₁..G_d with Gᵢ·aⱼ = 2π δᵢⱼ. BrillouinZone intersects the bisector
//	half-spaces x·p ≤ |p|²/2 of the first shell of reciprocal points
//	p = Σ nᵢGᵢ, nᵢ ∈ {−1,0,1}, which is exactly the Voronoi region of the
//	origin among {0} ∪ shell.
//
// Output:
//
//	Zone.Vertices — corner points (2D: counter-clockwise in the lattice plane).
//	Zone.Faces    — index lists into Vertices, one per Voronoi ridge between the
//	                origin and a neighbour: polygons in 3D (counter-clockwise
//	                seen from outside), edges in 2D, single points in 1D.
//
// A single shell is exact for reduced (LLL) bases; strongly oblique bases
// should be reduced first.
//
// Complexity:
//
//	2D: O(8² · 8) ; 3D: O(C(26,3) · 26), constant per call.
package reciprocal
