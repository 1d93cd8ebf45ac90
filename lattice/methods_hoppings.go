// File: methods_hoppings.go
// Role: hopping table edits and read-only views.
// Invalidation:
//   - Every edit is structural (eigen-data and paths cleared, special points kept).
// Determinism:
//   - HoppingKeys() returns keys sorted by (Dst, Src) id order.

package lattice

import (
	"cmp"
	"math/cmplx"
	"slices"
)

func finiteAmplitude(t complex128) bool {
	return !cmplx.IsNaN(t) && !cmplx.IsInf(t)
}

// checkPairLocked verifies that both states exist.
func (c *UnitCell) checkPairLocked(dst, src ID) error {
	if _, ok := c.stateSite[dst]; !ok {
		return ErrStateNotFound
	}
	if _, ok := c.stateSite[src]; !ok {
		return ErrStateNotFound
	}

	return nil
}

// setLocked replaces the amplitude of the record with displacement d under
// key k, or appends a new record.
func (c *UnitCell) setLocked(k HoppingKey, d Displacement, t complex128) {
	recs := c.hoppings[k]
	for i := range recs {
		if recs[i].Disp == d {
			recs[i].Amplitude = t
			return
		}
	}
	c.hoppings[k] = append(recs, Hopping{Disp: d, Amplitude: t})
}

// SetHopping writes amplitude t for the hopping from src (in image d) into dst,
// replacing an existing record with the same displacement. It does not touch
// the counterpart key; see SetHoppingPair.
// Errors: ErrStateNotFound, ErrNonFinite.
func (c *UnitCell) SetHopping(dst, src ID, d Displacement, t complex128) error {
	if !finiteAmplitude(t) {
		return ErrNonFinite
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkPairLocked(dst, src); err != nil {
		return err
	}
	c.setLocked(HoppingKey{Dst: dst, Src: src}, d, t)
	c.invalidateLocked()

	return nil
}

// AppendHopping appends a record without looking for an existing displacement.
// The table is a growable list per key; persistence restores it verbatim.
func (c *UnitCell) AppendHopping(dst, src ID, d Displacement, t complex128) error {
	if !finiteAmplitude(t) {
		return ErrNonFinite
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkPairLocked(dst, src); err != nil {
		return err
	}
	k := HoppingKey{Dst: dst, Src: src}
	c.hoppings[k] = append(c.hoppings[k], Hopping{Disp: d, Amplitude: t})
	c.invalidateLocked()

	return nil
}

// SetHoppingPair writes (d, t) under (dst, src) and (−d, conj t) under
// (src, dst) in one edit, keeping the table Hermitian.
// An on-site term (dst == src, d == 0) must have a real amplitude.
func (c *UnitCell) SetHoppingPair(dst, src ID, d Displacement, t complex128) error {
	if !finiteAmplitude(t) {
		return ErrNonFinite
	}
	if dst == src && d.IsZero() && imag(t) != 0 {
		return ErrOnsiteNotReal
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkPairLocked(dst, src); err != nil {
		return err
	}
	k := HoppingKey{Dst: dst, Src: src}
	c.setLocked(k, d, t)
	c.setLocked(k.Reverse(), d.Neg(), cmplx.Conj(t))
	c.invalidateLocked()

	return nil
}

// RemoveHopping deletes the record with displacement d under (dst, src).
// The key disappears once its last record is removed.
func (c *UnitCell) RemoveHopping(dst, src ID, d Displacement) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := HoppingKey{Dst: dst, Src: src}
	recs := c.hoppings[k]
	i := slices.IndexFunc(recs, func(h Hopping) bool { return h.Disp == d })
	if i < 0 {
		return ErrHoppingNotFound
	}
	recs = slices.Delete(recs, i, i+1)
	if len(recs) == 0 {
		delete(c.hoppings, k)
	} else {
		c.hoppings[k] = recs
	}
	c.invalidateLocked()

	return nil
}

// ClearHoppings removes every record under (dst, src). Missing keys are a no-op.
func (c *UnitCell) ClearHoppings(dst, src ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := HoppingKey{Dst: dst, Src: src}
	if _, ok := c.hoppings[k]; !ok {
		return
	}
	delete(c.hoppings, k)
	c.invalidateLocked()
}

// Hoppings returns a deep copy of the records under (dst, src).
func (c *UnitCell) Hoppings(dst, src ID) []Hopping {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.hoppings[HoppingKey{Dst: dst, Src: src}])
}

// HoppingTable returns a deep copy of the whole table.
// Complexity: O(records).
func (c *UnitCell) HoppingTable() map[HoppingKey][]Hopping {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return cloneTable(c.hoppings)
}

// HoppingKeys returns the table keys in deterministic (Dst, Src) order.
func (c *UnitCell) HoppingKeys() []HoppingKey {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return sortedKeys(c.hoppings)
}

func cloneTable(in map[HoppingKey][]Hopping) map[HoppingKey][]Hopping {
	out := make(map[HoppingKey][]Hopping, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
	}

	return out
}

func sortedKeys(table map[HoppingKey][]Hopping) []HoppingKey {
	keys := make([]HoppingKey, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b HoppingKey) int {
		if r := a.Dst.Compare(b.Dst); r != 0 {
			return r
		}
		return a.Src.Compare(b.Src)
	})

	return keys
}

// compareHopping orders records by displacement, then amplitude (re, im).
func compareHopping(a, b Hopping) int {
	for i := 0; i < 3; i++ {
		if r := cmp.Compare(a.Disp[i], b.Disp[i]); r != 0 {
			return r
		}
	}
	if r := cmp.Compare(real(a.Amplitude), real(b.Amplitude)); r != 0 {
		return r
	}

	return cmp.Compare(imag(a.Amplitude), imag(b.Amplitude))
}

// amplitudeClose reports |a−b| ≤ tol.
func amplitudeClose(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol
}
