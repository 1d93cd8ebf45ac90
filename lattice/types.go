// Package lattice: value types of the data model.
package lattice

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/matrix"
)

// Appearance defaults for new sites.
const (
	// DefaultSiteRadius is the display radius of a new site.
	DefaultSiteRadius = 0.1
)

// DefaultSiteColor is the display color of a new site.
var DefaultSiteColor = Color{R: 255, G: 0, B: 0, A: 255}

// BasisVector is a lattice vector plus its periodicity flag. Only periodic
// vectors enter the reciprocal lattice, the Brillouin zone and Bloch phases.
type BasisVector struct {
	Vec      r3.Vec
	Periodic bool
}

// Color is an RGBA display color (appearance metadata only).
type Color struct {
	R, G, B, A uint8
}

// State is a named quantum state (orbital) owned by exactly one Site.
type State struct {
	ID   ID
	Name string
}

// Site is a named position in the cell, in fractional coordinates of the
// basis (conventionally in [0,1), not enforced), owning an ordered set of
// states. Values returned by UnitCell accessors are detached copies.
type Site struct {
	ID     ID
	Name   string
	Coords [3]float64
	Color  Color
	Radius float64
	States []State // insertion order
}

// clone returns a detached copy of the site.
func (s *Site) clone() Site {
	out := *s
	out.States = append([]State(nil), s.States...)

	return out
}

// stateIndex returns the position of the state in s.States or -1.
func (s *Site) stateIndex(id ID) int {
	for i := range s.States {
		if s.States[i].ID == id {
			return i
		}
	}

	return -1
}

// Displacement selects the periodic image (in units of the basis vectors)
// holding the source state of a hopping.
type Displacement [3]int

// Neg returns −d.
func (d Displacement) Neg() Displacement { return Displacement{-d[0], -d[1], -d[2]} }

// IsZero reports whether d is the home cell.
func (d Displacement) IsZero() bool { return d == Displacement{} }

// Hopping is one (displacement, amplitude) record of the hopping table.
type Hopping struct {
	Disp      Displacement
	Amplitude complex128
}

// HoppingKey is the ordered (destination, source) pair of state ids.
type HoppingKey struct {
	Dst, Src ID
}

// Reverse returns the (source, destination) key of the Hermitian counterpart.
func (k HoppingKey) Reverse() HoppingKey { return HoppingKey{Dst: k.Src, Src: k.Dst} }

// BandStructure caches the band-path computation of a cell.
//
// SpecialPoints are user-chosen path anchors (Cartesian k of length equal to
// the periodic count). Path is the interpolated sequence; Eigenvalues and
// Eigenvectors are aligned index-for-index with Path.
type BandStructure struct {
	SpecialPoints [][]float64
	Path          [][]float64
	Eigenvalues   [][]float64
	Eigenvectors  []*matrix.CDense
}

// BrillouinZoneGrid caches a uniform k-grid computation of a cell.
type BrillouinZoneGrid struct {
	Divisions     [3]int
	GammaCentered bool
	KPoints       [][]float64
	Eigenvalues   [][]float64
	Eigenvectors  []*matrix.CDense
}

// StateRef is one entry of the stable state enumeration of a snapshot.
type StateRef struct {
	ID       ID
	Name     string
	SiteID   ID
	SiteName string
}
