// File: methods_cache.go
// Role: derived caches: special points, grid settings, result commits.
// Invalidation:
//   - Adding/removing special points clears the path and band eigen-data.
//   - ClearBands also drops the special points.
//   - Changing grid settings clears grid k-points and eigen-data.
//   - Each of these bumps the revision, so commits of in-flight runs are refused.

package lattice

import (
	"math"
	"slices"

	"github.com/katalvlaran/tightbind/matrix"
)

// Bands returns a copy of the band-structure cache. Eigenvector matrices are
// shared and must be treated as read-only.
func (c *UnitCell) Bands() BandStructure {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return BandStructure{
		SpecialPoints: clonePoints(c.bands.SpecialPoints),
		Path:          clonePoints(c.bands.Path),
		Eigenvalues:   clonePoints(c.bands.Eigenvalues),
		Eigenvectors:  slices.Clone(c.bands.Eigenvectors),
	}
}

// Grid returns a copy of the grid cache. Eigenvector matrices are shared and
// must be treated as read-only.
func (c *UnitCell) Grid() BrillouinZoneGrid {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return BrillouinZoneGrid{
		Divisions:     c.grid.Divisions,
		GammaCentered: c.grid.GammaCentered,
		KPoints:       clonePoints(c.grid.KPoints),
		Eigenvalues:   clonePoints(c.grid.Eigenvalues),
		Eigenvectors:  slices.Clone(c.grid.Eigenvectors),
	}
}

// resetBandsLocked clears the path and band eigen-data and bumps the revision.
func (c *UnitCell) resetBandsLocked() {
	c.bands.Path = nil
	c.bands.Eigenvalues = nil
	c.bands.Eigenvectors = nil
	c.revision++
}

// AddSpecialPoint appends a path anchor (Cartesian k, one component per
// periodic direction). Errors: ErrKDimension, ErrNonFinite.
func (c *UnitCell) AddSpecialPoint(k []float64) error {
	if !finiteSlice(k) {
		return ErrNonFinite
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(k) != c.periodicCountLocked() {
		return ErrKDimension
	}
	c.bands.SpecialPoints = append(c.bands.SpecialPoints, slices.Clone(k))
	c.resetBandsLocked()

	return nil
}

// RemoveSpecialPoint deletes the anchor at index i.
func (c *UnitCell) RemoveSpecialPoint(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.bands.SpecialPoints) {
		return ErrSpecialPointIndex
	}
	c.bands.SpecialPoints = slices.Delete(c.bands.SpecialPoints, i, i+1)
	c.resetBandsLocked()

	return nil
}

// SetSpecialPoints replaces all anchors at once.
func (c *UnitCell) SetSpecialPoints(points [][]float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.periodicCountLocked()
	for _, k := range points {
		if len(k) != d {
			return ErrKDimension
		}
		if !finiteSlice(k) {
			return ErrNonFinite
		}
	}
	c.bands.SpecialPoints = clonePoints(points)
	c.resetBandsLocked()

	return nil
}

// ClearBands empties the whole band structure, special points included.
func (c *UnitCell) ClearBands() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bands.SpecialPoints = nil
	c.resetBandsLocked()
}

// SetGridSettings sets divisions and centring, clearing grid results.
// Non-positive divisions are stored as 1.
func (c *UnitCell) SetGridSettings(divisions [3]int, gammaCentered bool) {
	for i := range divisions {
		if divisions[i] < 1 {
			divisions[i] = 1
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.grid = BrillouinZoneGrid{Divisions: divisions, GammaCentered: gammaCentered}
	c.revision++
}

// CommitBands stores a finished band computation. Ownership of the slices
// passes to the cell.
// Errors: ErrStaleSnapshot when revision != Revision(); ErrResultShape when
// the three sequences are not aligned.
func (c *UnitCell) CommitBands(revision uint64, path, values [][]float64, vectors []*matrix.CDense) error {
	if len(values) != len(path) || len(vectors) != len(path) {
		return ErrResultShape
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if revision != c.revision {
		return ErrStaleSnapshot
	}
	c.bands.Path, c.bands.Eigenvalues, c.bands.Eigenvectors = path, values, vectors

	return nil
}

// CommitGrid stores a finished grid computation; same rules as CommitBands.
func (c *UnitCell) CommitGrid(revision uint64, kpoints, values [][]float64, vectors []*matrix.CDense) error {
	if len(values) != len(kpoints) || len(vectors) != len(kpoints) {
		return ErrResultShape
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if revision != c.revision {
		return ErrStaleSnapshot
	}
	c.grid.KPoints, c.grid.Eigenvalues, c.grid.Eigenvectors = kpoints, values, vectors

	return nil
}

func finiteSlice(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}
