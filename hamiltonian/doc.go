// Package hamiltonian compiles a lattice.Snapshot into the Bloch Hamiltonian
// H(k), a pure function from a momentum vector to a complex Hermitian matrix.
//
// What is it?
//
//	For every hopping record (d, t) under key (dst, src):
//	  H(k)[dst, src] += t · exp(i k·R(d)),  R(d) = Σ dᵢ aᵢ over periodic aᵢ.
//	Non-periodic basis vectors are zeroed, so a cell with no periodic
//	direction (an isolated cluster) gets phase 1 everywhere.
//
// k convention:
//
//	k has one component per periodic direction, expressed in the orthonormal
//	frame of the periodic subspace (reciprocal.Frame). R is projected into the
//	same frame, so a chain along y or a square lattice in the xz plane keeps
//	its Bloch phase. For periodic vectors spanning x, xy or xyz the frame
//	components are the Cartesian ones.
//
// Precomputation (New) is done once: dense state indices, the zeroed basis
// and a flat term list. At(k) only accumulates phases, so it is safe to call
// concurrently from pipeline workers.
package hamiltonian
