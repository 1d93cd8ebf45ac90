// Package lattice is the tight-binding data model: a crystal UnitCell with
// three basis vectors, sites, quantum states and a hopping table, plus the
// derived caches (BandStructure, BrillouinZoneGrid) that computations fill in.
//
// What lives here:
//
//	ID            — 128-bit identifier (uuid) used for cells, sites and states.
//	UnitCell      — the aggregate; every mutation goes through its methods.
//	Snapshot      — immutable deep copy consumed by computations.
//	IsHermitian   — the consistency gate run before any diagonalization.
//	ReciprocalVectors / BrillouinZone / ReducedBasis — geometry of the periodic basis.
//
// Ownership:
//
//	UnitCell ─owns─▶ Site ─owns─▶ State
//	UnitCell.hoppings[(dst, src)] = [](Displacement, Amplitude)
//
// The key order is (destination, source): a record (d, t) under key (a, b)
// contributes t·exp(i k·R(d)) to H[a, b], where R(d) is the lattice vector of
// the periodic image holding b.
//
// Cache invalidation is explicit. Structural mutators (basis, periodicity,
// sites, states, hoppings) clear the eigen-data of both caches and bump the
// revision before returning; cosmetic mutators (names, colors, radii,
// fractional coordinates) leave them alone. Computation results are written
// back with CommitBands/CommitGrid, which refuse a stale revision.
//
// Concurrency:
//
//	All methods are safe for concurrent use; a single sync.RWMutex guards the
//	aggregate. Long computations work on a Snapshot and never hold the lock.
package lattice
