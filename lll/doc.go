// SPDX-License-Identifier: MIT

// Package lll implements Lenstra–Lenstra–Lovász lattice-basis reduction over
// integer bases with exact rational arithmetic.
//
// What is it?
//
//	Given linearly independent integer row vectors b₀..b_{n−1}, Reduce returns
//	a basis of the same lattice whose Gram–Schmidt coefficients satisfy
//	  |μ_{k,j}| ≤ 1/2           (size reduction)
//	  B_k ≥ (δ − μ²_{k,k−1}) B_{k−1}   (Lovász condition)
//	where B_k = |b*_k|². The result is a short, nearly orthogonal basis.
//
// Why exact?
//
//	Callers scale real vectors by ~1e6 before rounding, so squared norms reach
//	1e12..1e24. Float Gram–Schmidt at that magnitude loses the Lovász test;
//	math/big.Rat keeps it exact.
//
// Complexity:
//
//	O(n⁴ log M) rational operations for an n×m basis with entries ≤ M; n ≤ 3
//	in this module.
package lll
