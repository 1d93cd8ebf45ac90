// Package tightbind is the computational core of a tight-binding
// electronic-structure tool: build a crystal unit cell, attach orbital states
// and hopping amplitudes, and compute band structures over the Brillouin zone.
//
// What is in the module?
//
//	lattice/     — UnitCell: basis, sites, states, hoppings, cached results (thread-safe)
//	reciprocal/  — reciprocal vectors and the first Brillouin zone (Voronoi cell)
//	lll/         — exact LLL lattice reduction over big.Rat
//	hamiltonian/ — Bloch Hamiltonian H(k) compiled from a cell snapshot
//	matrix/      — complex dense matrices and the Hermitian Jacobi eigensolver
//	kpath/       — special-point path sampling and regular k-grids
//	diag/        — cancellable background diagonalization runs and the per-cell Manager
//	persist/     — YAML and msgpack model formats
//	project/     — ordered in-memory collection of cells
//	store/       — SQLite cell store
//	config/      — viper-backed settings
//	cmd/tbcore/  — command-line front-end
//
// Quick example (a 1D chain with nearest-neighbour hopping t = −1):
//
//	    ──A──A──A──
//
//	gives the single band E(k) = −2 cos(k·a).
//
//	go install github.com/katalvlaran/tightbind/cmd/tbcore@latest
package tightbind
