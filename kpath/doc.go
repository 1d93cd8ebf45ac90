// Package kpath samples reciprocal space: piecewise-linear paths through
// special points for band structures, and Monkhorst–Pack / Γ-centred grids
// over the Brillouin zone.
//
// Path sampling (Interpolate):
//
//	Each segment receives a share of nTotal−1 samples proportional to its
//	Euclidean length (at least 2, rounded half away from zero); the final
//	segment absorbs the rounding so the shares sum exactly to nTotal−1, and
//	is topped up to 2 from the largest share when nTotal allows it.
//	Segments are start-inclusive and end-exclusive; the last special point
//	is appended, giving exactly nTotal points.
//
// Grids (Grid):
//
//	Γ-centred fractions i/n; Monkhorst–Pack fractions (2i−n+1)/(2n).
//	Fractions are mapped to k with ToCartesian.
//
// All k-vectors carry one component per periodic direction in the
// orthonormal frame of the periodic subspace (reciprocal.Frame), the form
// hamiltonian.At expects. For lattices periodic along x, xy or xyz these are
// the Cartesian components.
package kpath
