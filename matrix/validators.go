// SPDX-License-Identifier: MIT
// Package matrix: central validators. Every kernel validates through these
// helpers so error priority stays uniform: nil -> shape -> NaN/Inf -> structure.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// validatorErrorf tags a validator failure with the validator name.
func validatorErrorf(name string, err error) error {
	return fmt.Errorf("%s: %w", name, err)
}

// ValidateSquare returns ErrNilMatrix for nil and ErrNonSquare for r != c.
func ValidateSquare(m *CDense) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateFinite returns ErrNaNInf when any real or imaginary part is NaN or ±Inf.
// Complexity: O(r*c).
func ValidateFinite(m *CDense) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	for idx, v := range m.data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return validatorErrorf("ValidateFinite", fmt.Errorf("element %d: %w", idx, ErrNaNInf))
		}
	}

	return nil
}

// ValidateHermitian checks |A[i,j] − conj(A[j,i])| ≤ tol for every i ≤ j,
// which includes |Im A[i,i]| ≤ tol on the diagonal.
// A negative tol is treated as its absolute value.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf (tol), ErrNotHermitian.
// Complexity: O(n²), scanning the upper triangle in fixed i→j order.
func ValidateHermitian(m *CDense, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return validatorErrorf("ValidateHermitian", err)
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateHermitian", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.r
	var (
		i, j     int
		aij, aji complex128
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			aij = m.data[i*n+j]
			aji = m.data[j*n+i]
			if cmplx.Abs(aij-cmplx.Conj(aji)) > tol {
				return validatorErrorf("ValidateHermitian",
					fmt.Errorf("(%d,%d): %w", i, j, ErrNotHermitian))
			}
		}
	}

	return nil
}
