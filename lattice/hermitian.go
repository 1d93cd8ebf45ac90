// File: hermitian.go
// Role: the consistency checker gating every diagonalization.
// Rule:
//   - For every key (a,b) with records V, the records of (b,a) transformed by
//     (d,t) ↦ (−d, conj t) must equal V as a multiset. A missing key is the
//     empty set, which only matches an empty V.
// Determinism:
//   - Keys are visited in (Dst, Src) order so the reported first mismatch is stable.

package lattice

import (
	"fmt"
	"math/cmplx"
	"slices"
)

// HermitianTolerance is the absolute amplitude tolerance of the check.
const HermitianTolerance = 1e-12

// IsHermitian reports whether the hopping table satisfies the Hermiticity invariant.
func (c *UnitCell) IsHermitian() bool {
	return c.CheckHermitian() == nil
}

// CheckHermitian returns nil or a *ConsistencyError for the first offending key.
// Complexity: O(Σ|V|²) over keys; tables are small per key.
func (c *UnitCell) CheckHermitian() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return checkHermitian(c.hoppings)
}

func checkHermitian(table map[HoppingKey][]Hopping) error {
	for _, k := range sortedKeys(table) {
		recs := table[k]
		counter := table[k.Reverse()]
		if len(recs) != len(counter) {
			return &ConsistencyError{
				Dst: k.Dst, Src: k.Src,
				Reason: fmt.Sprintf("%d records, counterpart has %d", len(recs), len(counter)),
			}
		}
		want := make([]Hopping, len(counter))
		for i, h := range counter {
			want[i] = Hopping{Disp: h.Disp.Neg(), Amplitude: cmplx.Conj(h.Amplitude)}
		}
		if d, ok := matchMultiset(recs, want); !ok {
			return &ConsistencyError{
				Dst: k.Dst, Src: k.Src,
				Reason: fmt.Sprintf("record at displacement %v has no conjugate counterpart", d),
			}
		}
	}

	return nil
}

// matchMultiset pairs every record of got with an unused record of want having
// the same displacement and an amplitude within HermitianTolerance. On failure
// it returns the displacement of the first unmatched record.
func matchMultiset(got, want []Hopping) (Displacement, bool) {
	got = slices.Clone(got)
	slices.SortFunc(got, compareHopping)
	slices.SortFunc(want, compareHopping)

	used := make([]bool, len(want))
	for _, g := range got {
		found := false
		for j, w := range want {
			if used[j] || w.Disp != g.Disp || !amplitudeClose(w.Amplitude, g.Amplitude, HermitianTolerance) {
				continue
			}
			used[j], found = true, true
			break
		}
		if !found {
			return g.Disp, false
		}
	}

	return Displacement{}, true
}
