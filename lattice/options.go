// Package lattice: functional options for constructors and adders.
package lattice

// CellOption configures a UnitCell at creation.
type CellOption func(*UnitCell)

// WithCellID sets an explicit cell id (used when restoring a persisted cell).
func WithCellID(id ID) CellOption {
	return func(c *UnitCell) { c.id = id }
}

// SiteOption configures a site when added.
type SiteOption func(*Site)

// WithSiteID sets an explicit site id; AddSite rejects ids already in use.
func WithSiteID(id ID) SiteOption {
	return func(s *Site) { s.ID = id }
}

// WithColor sets the display color.
func WithColor(c Color) SiteOption {
	return func(s *Site) { s.Color = c }
}

// WithRadius sets the display radius.
func WithRadius(r float64) SiteOption {
	return func(s *Site) { s.Radius = r }
}

// StateOption configures a state when added.
type StateOption func(*State)

// WithStateID sets an explicit state id; AddState rejects ids already in use.
func WithStateID(id ID) StateOption {
	return func(s *State) { s.ID = id }
}
