// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the eigensolver numeric policy.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: constructors panic only on nonsensical values.
//   - Options fields are unexported; public APIs consume ...Option.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the convergence threshold of the Jacobi sweeps,
	// relative to the Frobenius norm of the input.
	DefaultEpsilon = 1e-12

	// DefaultMaxSweeps caps the number of full cyclic sweeps.
	DefaultMaxSweeps = 100

	// DefaultHermitianTolerance is the relative tolerance used to accept an
	// input as Hermitian before decomposition.
	DefaultHermitianTolerance = 1e-9
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite and > 0"
	panicSweepsInvalid  = "matrix: WithMaxSweeps: sweeps must be >= 1"
	panicHermTolInvalid = "matrix: WithHermitianTolerance: tol must be finite and >= 0"
)

// Option mutates internal options. Safe to apply repeatedly (last-writer-wins).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	eps       float64 // > 0; DefaultEpsilon
	maxSweeps int     // >= 1; DefaultMaxSweeps
	hermTol   float64 // >= 0; DefaultHermitianTolerance
}

// WithEpsilon sets the relative convergence threshold of EigenHermitian.
// Panics when eps is NaN, ±Inf or not strictly positive.
//
// AI-Hints:
//   - 1e-12 is close to the double-precision floor for n ≲ 100; looser values
//     (1e-8) trade accuracy of eigenvectors for fewer sweeps.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithMaxSweeps sets the sweep budget of EigenHermitian. Panics when sweeps < 1.
func WithMaxSweeps(sweeps int) Option {
	if sweeps < 1 {
		panic(panicSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// WithHermitianTolerance sets the relative tolerance of the input check
// performed by EigenHermitian. Zero demands exact Hermiticity.
func WithHermitianTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicHermTolInvalid)
	}

	return func(o *Options) { o.hermTol = tol }
}

// gatherOptions applies user options over the documented defaults.
func gatherOptions(user ...Option) Options {
	o := Options{
		eps:       DefaultEpsilon,
		maxSweeps: DefaultMaxSweeps,
		hermTol:   DefaultHermitianTolerance,
	}
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}
