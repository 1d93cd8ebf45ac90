// File: cell.go
// Role: UnitCell declaration, constructor, read accessors and the
//       invalidation helpers every structural mutator calls.
// Concurrency:
//   - mu guards every field; accessors take the read lock and return copies.

package lattice

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// UnitCell is the tight-binding aggregate: basis, sites, states, hoppings and
// the derived caches. The zero value is not usable; call NewUnitCell.
type UnitCell struct {
	mu sync.RWMutex

	id    ID
	name  string
	basis [3]BasisVector

	sites     map[ID]*Site // site id → site
	siteOrder []ID         // insertion order of sites
	stateSite map[ID]ID    // state id → owning site id

	// hoppings[(dst, src)] = records; see package doc for the convention.
	hoppings map[HoppingKey][]Hopping

	bands BandStructure
	grid  BrillouinZoneGrid

	// revision increases on every edit that invalidates derived data.
	revision uint64
}

// NewUnitCell creates a cell with an orthonormal, fully non-periodic basis and
// no sites. The grid defaults to 1×1×1 Γ-centred divisions.
// Complexity: O(1).
func NewUnitCell(name string, opts ...CellOption) *UnitCell {
	c := &UnitCell{
		id:   NewID(),
		name: name,
		basis: [3]BasisVector{
			{Vec: r3.Vec{X: 1}},
			{Vec: r3.Vec{Y: 1}},
			{Vec: r3.Vec{Z: 1}},
		},
		sites:     make(map[ID]*Site),
		stateSite: make(map[ID]ID),
		hoppings:  make(map[HoppingKey][]Hopping),
		grid:      BrillouinZoneGrid{Divisions: [3]int{1, 1, 1}, GammaCentered: true},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ID returns the cell identifier.
func (c *UnitCell) ID() ID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.id
}

// Name returns the cell name.
func (c *UnitCell) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.name
}

// Rename sets the cell name. Cosmetic: caches are kept.
func (c *UnitCell) Rename(name string) {
	c.mu.Lock()
	c.name = name
	c.mu.Unlock()
}

// Revision returns the current structural revision.
func (c *UnitCell) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.revision
}

// Basis returns the three basis vectors.
func (c *UnitCell) Basis() [3]BasisVector {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.basis
}

// Sites returns detached copies of all sites in insertion order.
// Complexity: O(sites + states).
func (c *UnitCell) Sites() []Site {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.sitesLocked()
}

func (c *UnitCell) sitesLocked() []Site {
	out := make([]Site, 0, len(c.siteOrder))
	for _, id := range c.siteOrder {
		out = append(out, c.sites[id].clone())
	}

	return out
}

// Site returns a detached copy of one site.
func (c *UnitCell) Site(id ID) (Site, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.sites[id]
	if !ok {
		return Site{}, ErrSiteNotFound
	}

	return s.clone(), nil
}

// States returns the stable state enumeration: sites in insertion order,
// states in insertion order within each site. Hamiltonian indices follow it.
func (c *UnitCell) States() []StateRef {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.statesLocked()
}

// StateCount returns the number of states in the cell.
func (c *UnitCell) StateCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.stateSite)
}

func (c *UnitCell) statesLocked() []StateRef {
	out := make([]StateRef, 0, len(c.stateSite))
	for _, sid := range c.siteOrder {
		s := c.sites[sid]
		for _, st := range s.States {
			out = append(out, StateRef{ID: st.ID, Name: st.Name, SiteID: s.ID, SiteName: s.Name})
		}
	}

	return out
}

// periodicCountLocked counts periodic basis vectors.
func (c *UnitCell) periodicCountLocked() int {
	n := 0
	for i := range c.basis {
		if c.basis[i].Periodic {
			n++
		}
	}

	return n
}

// PeriodicCount returns the number of periodic basis vectors.
func (c *UnitCell) PeriodicCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.periodicCountLocked()
}

// invalidateLocked clears eigen-data and the interpolated path of both
// caches and bumps the revision. Special points and grid settings survive.
// Caller holds the write lock.
func (c *UnitCell) invalidateLocked() {
	c.bands.Path = nil
	c.bands.Eigenvalues = nil
	c.bands.Eigenvectors = nil
	c.grid.KPoints = nil
	c.grid.Eigenvalues = nil
	c.grid.Eigenvectors = nil
	c.revision++
}

// invalidateGeometryLocked additionally drops the special points, whose
// coordinates refer to the reciprocal lattice of the previous basis.
func (c *UnitCell) invalidateGeometryLocked() {
	c.bands.SpecialPoints = nil
	c.invalidateLocked()
}
