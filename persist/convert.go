package persist

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/lattice"
)

// toDoc captures the persistent part of a cell from one consistent Model.
func toDoc(c *lattice.UnitCell) cellDoc {
	m := c.Model()
	doc := cellDoc{ID: m.ID.String(), Name: m.Name}

	for _, b := range m.Basis {
		doc.Basis = append(doc.Basis, basisDoc{Vector: [3]float64{b.Vec.X, b.Vec.Y, b.Vec.Z}, Periodic: b.Periodic})
	}
	for _, s := range m.Sites {
		sd := siteDoc{
			ID:     s.ID.String(),
			Name:   s.Name,
			Coords: s.Coords,
			Color:  [4]uint8{s.Color.R, s.Color.G, s.Color.B, s.Color.A},
			Radius: s.Radius,
		}
		for _, st := range s.States {
			sd.States = append(sd.States, stateDoc{ID: st.ID.String(), Name: st.Name})
		}
		doc.Sites = append(doc.Sites, sd)
	}
	for _, k := range m.HoppingKeys {
		hd := hoppingDoc{Dst: k.Dst.String(), Src: k.Src.String()}
		for _, h := range m.Hoppings[k] {
			hd.Records = append(hd.Records, recordDoc{D: h.Disp, Re: real(h.Amplitude), Im: imag(h.Amplitude)})
		}
		doc.Hoppings = append(doc.Hoppings, hd)
	}
	doc.SpecialPoints = m.SpecialPoints
	doc.Grid = &gridDoc{Divisions: m.Divisions, GammaCentered: m.GammaCentered}

	return doc
}

// fromDoc rebuilds a cell through the lattice API.
// Stage 1: identity and basis. Stage 2: sites and states. Stage 3: hoppings
// verbatim. Stage 4: special points and grid settings, which need the basis.
func fromDoc(doc cellDoc) (*lattice.UnitCell, error) {
	if doc.Version > FormatVersion {
		return nil, fmt.Errorf("format version %d is newer than %d", doc.Version, FormatVersion)
	}
	id, err := lattice.ParseID(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("cell id %q: %w", doc.ID, err)
	}
	c := lattice.NewUnitCell(doc.Name, lattice.WithCellID(id))

	if len(doc.Basis) != 3 {
		return nil, fmt.Errorf("basis has %d vectors, want 3", len(doc.Basis))
	}
	var basis [3]lattice.BasisVector
	for i, b := range doc.Basis {
		basis[i] = lattice.BasisVector{Vec: r3.Vec{X: b.Vector[0], Y: b.Vector[1], Z: b.Vector[2]}, Periodic: b.Periodic}
	}
	if err := c.SetBasis(basis); err != nil {
		return nil, fmt.Errorf("basis: %w", err)
	}

	for _, sd := range doc.Sites {
		sid, err := lattice.ParseID(sd.ID)
		if err != nil {
			return nil, fmt.Errorf("site %q id: %w", sd.Name, err)
		}
		color := lattice.Color{R: sd.Color[0], G: sd.Color[1], B: sd.Color[2], A: sd.Color[3]}
		if _, err := c.AddSite(sd.Name, sd.Coords, lattice.WithSiteID(sid), lattice.WithColor(color), lattice.WithRadius(sd.Radius)); err != nil {
			return nil, fmt.Errorf("site %q: %w", sd.Name, err)
		}
		for _, st := range sd.States {
			stid, err := lattice.ParseID(st.ID)
			if err != nil {
				return nil, fmt.Errorf("state %q id: %w", st.Name, err)
			}
			if _, err := c.AddState(sid, st.Name, lattice.WithStateID(stid)); err != nil {
				return nil, fmt.Errorf("state %q: %w", st.Name, err)
			}
		}
	}

	for _, hd := range doc.Hoppings {
		dst, err1 := lattice.ParseID(hd.Dst)
		src, err2 := lattice.ParseID(hd.Src)
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("hopping key: %w", err)
		}
		for _, r := range hd.Records {
			if err := c.AppendHopping(dst, src, lattice.Displacement(r.D), complex(r.Re, r.Im)); err != nil {
				return nil, fmt.Errorf("hopping %s <- %s: %w", hd.Dst, hd.Src, err)
			}
		}
	}

	if len(doc.SpecialPoints) > 0 {
		if err := c.SetSpecialPoints(doc.SpecialPoints); err != nil {
			return nil, fmt.Errorf("special points: %w", err)
		}
	}
	if doc.Grid != nil {
		c.SetGridSettings(doc.Grid.Divisions, doc.Grid.GammaCentered)
	}

	return c, nil
}
