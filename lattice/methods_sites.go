// File: methods_sites.go
// Role: site and state lifecycle plus cosmetic edits.
// Invalidation:
//   - AddSite/RemoveSite/AddState/RemoveState are structural: eigen-data and
//     paths are cleared, special points kept.
//   - Rename*/SetSiteCoords/SetSiteAppearance are cosmetic: nothing derived
//     depends on them (Bloch phases use lattice vectors only).
// AI-HINT (file):
//   - Removing a site removes its states; removing a state removes every
//     hopping key that names it, in either slot.

package lattice

import (
	"math"
	"slices"
)

func finiteCoords(x [3]float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// idInUseLocked reports whether id names any site or state of the cell.
func (c *UnitCell) idInUseLocked(id ID) bool {
	if _, ok := c.sites[id]; ok {
		return true
	}
	_, ok := c.stateSite[id]

	return ok || id == c.id
}

// AddSite appends a site at fractional coordinates coords and returns its id.
// Errors: ErrNonFinite, ErrDuplicateID (explicit id already used).
// Complexity: O(1).
func (c *UnitCell) AddSite(name string, coords [3]float64, opts ...SiteOption) (ID, error) {
	if !finiteCoords(coords) {
		return NilID, ErrNonFinite
	}
	s := &Site{Name: name, Coords: coords, Color: DefaultSiteColor, Radius: DefaultSiteRadius}
	for _, opt := range opts {
		opt(s)
	}
	if s.ID.IsZero() {
		s.ID = NewID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idInUseLocked(s.ID) {
		return NilID, ErrDuplicateID
	}
	c.sites[s.ID] = s
	c.siteOrder = append(c.siteOrder, s.ID)
	c.invalidateLocked()

	return s.ID, nil
}

// RemoveSite deletes a site, its states and every hopping naming those states.
// Complexity: O(states_in_site · keys).
func (c *UnitCell) RemoveSite(id ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sites[id]
	if !ok {
		return ErrSiteNotFound
	}
	for _, st := range slices.Clone(s.States) {
		c.dropStateLocked(st.ID)
	}
	delete(c.sites, id)
	c.siteOrder = slices.DeleteFunc(c.siteOrder, func(x ID) bool { return x == id })
	c.invalidateLocked()

	return nil
}

// RenameSite changes a site name. Cosmetic.
func (c *UnitCell) RenameSite(id ID, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sites[id]
	if !ok {
		return ErrSiteNotFound
	}
	s.Name = name

	return nil
}

// SetSiteCoords moves a site. Cosmetic: no derived quantity depends on
// intra-cell positions, and [0,1) is a convention only.
func (c *UnitCell) SetSiteCoords(id ID, coords [3]float64) error {
	if !finiteCoords(coords) {
		return ErrNonFinite
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sites[id]
	if !ok {
		return ErrSiteNotFound
	}
	s.Coords = coords

	return nil
}

// SetSiteAppearance sets color and radius. Cosmetic.
func (c *UnitCell) SetSiteAppearance(id ID, color Color, radius float64) error {
	if math.IsNaN(radius) || math.IsInf(radius, 0) {
		return ErrNonFinite
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sites[id]
	if !ok {
		return ErrSiteNotFound
	}
	s.Color, s.Radius = color, radius

	return nil
}

// AddState appends a state to a site and returns its id.
// Errors: ErrSiteNotFound, ErrDuplicateID.
func (c *UnitCell) AddState(siteID ID, name string, opts ...StateOption) (ID, error) {
	st := State{Name: name}
	for _, opt := range opts {
		opt(&st)
	}
	if st.ID.IsZero() {
		st.ID = NewID()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sites[siteID]
	if !ok {
		return NilID, ErrSiteNotFound
	}
	if c.idInUseLocked(st.ID) {
		return NilID, ErrDuplicateID
	}
	s.States = append(s.States, st)
	c.stateSite[st.ID] = siteID
	c.invalidateLocked()

	return st.ID, nil
}

// RemoveState deletes a state and every hopping naming it.
func (c *UnitCell) RemoveState(id ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.stateSite[id]; !ok {
		return ErrStateNotFound
	}
	c.dropStateLocked(id)
	c.invalidateLocked()

	return nil
}

// RenameState changes a state name. Cosmetic.
func (c *UnitCell) RenameState(id ID, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	siteID, ok := c.stateSite[id]
	if !ok {
		return ErrStateNotFound
	}
	s := c.sites[siteID]
	s.States[s.stateIndex(id)].Name = name

	return nil
}

// dropStateLocked unlinks a state from its site, the index and the hopping table.
func (c *UnitCell) dropStateLocked(id ID) {
	if siteID, ok := c.stateSite[id]; ok {
		s := c.sites[siteID]
		if i := s.stateIndex(id); i >= 0 {
			s.States = slices.Delete(s.States, i, i+1)
		}
		delete(c.stateSite, id)
	}
	for k := range c.hoppings {
		if k.Dst == id || k.Src == id {
			delete(c.hoppings, k)
		}
	}
}
