// File: snapshot.go
// Role: immutable copies of the aggregate handed to computations.

package lattice

import "gonum.org/v1/gonum/spatial/r3"

// Snapshot is a detached, read-only copy of everything a computation needs.
// It is safe to use from any goroutine while the cell keeps changing; Revision
// tells CommitBands/CommitGrid whether results are still current.
type Snapshot struct {
	CellID        ID
	Revision      uint64
	Basis         [3]BasisVector
	States        []StateRef
	Hoppings      map[HoppingKey][]Hopping
	SpecialPoints [][]float64
	Divisions     [3]int
	GammaCentered bool
}

// Snapshot copies the cell under its read lock.
// Complexity: O(states + records + special points).
func (c *UnitCell) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Snapshot{
		CellID:        c.id,
		Revision:      c.revision,
		Basis:         c.basis,
		States:        c.statesLocked(),
		Hoppings:      cloneTable(c.hoppings),
		SpecialPoints: clonePoints(c.bands.SpecialPoints),
		Divisions:     c.grid.Divisions,
		GammaCentered: c.grid.GammaCentered,
	}
}

// Model is the persistent state of a cell copied under one read lock, so its
// sites, states and hopping keys always agree with each other.
type Model struct {
	ID            ID
	Name          string
	Basis         [3]BasisVector
	Sites         []Site
	HoppingKeys   []HoppingKey // ordered by (Dst, Src)
	Hoppings      map[HoppingKey][]Hopping
	SpecialPoints [][]float64
	Divisions     [3]int
	GammaCentered bool
}

// Model copies everything a serializer needs. Eigen-data is not included.
// Complexity: O(sites + states + records + special points).
func (c *UnitCell) Model() Model {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Model{
		ID:            c.id,
		Name:          c.name,
		Basis:         c.basis,
		Sites:         c.sitesLocked(),
		HoppingKeys:   sortedKeys(c.hoppings),
		Hoppings:      cloneTable(c.hoppings),
		SpecialPoints: clonePoints(c.bands.SpecialPoints),
		Divisions:     c.grid.Divisions,
		GammaCentered: c.grid.GammaCentered,
	}
}

// PeriodicCount returns the number of periodic basis vectors.
func (s Snapshot) PeriodicCount() int { return len(s.PeriodicVectors()) }

// PeriodicVectors returns the periodic basis vectors in basis order.
func (s Snapshot) PeriodicVectors() []r3.Vec { return periodicVectors(s.Basis) }

// IsHermitian applies the consistency check to the snapshot's table.
func (s Snapshot) IsHermitian() bool { return checkHermitian(s.Hoppings) == nil }

// CheckHermitian returns nil or a *ConsistencyError.
func (s Snapshot) CheckHermitian() error { return checkHermitian(s.Hoppings) }

func clonePoints(in [][]float64) [][]float64 {
	if in == nil {
		return nil
	}
	out := make([][]float64, len(in))
	for i, p := range in {
		out[i] = append([]float64(nil), p...)
	}

	return out
}
