package hamiltonian

import (
	"fmt"
	"maps"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/matrix"
	"github.com/katalvlaran/tightbind/reciprocal"
)

// Func is the H(k) closure consumed by the diagonalization pipeline.
type Func func(k []float64) (*matrix.CDense, error)

// term is one precomputed contribution t·exp(i k·r) to H[dst, src]; r holds
// the components of R in the periodic frame.
type term struct {
	dst, src int
	r        [3]float64
	t        complex128
}

// Hamiltonian is the compiled form of a snapshot. It is immutable.
type Hamiltonian struct {
	ids      []lattice.ID
	periodic int
	terms    []term
}

// New precomputes the state index and the term list.
// Stage 1: index states in the snapshot's stable order.
// Stage 2: zero non-periodic basis vectors and fix the periodic frame
// (reciprocal.Frame) in which k and R are expressed.
// Stage 3: flatten the hopping table; keys are visited in sorted order so
// accumulation order (and thus rounding) is reproducible.
//
// Errors: ErrNoStates, ErrUnknownState, reciprocal.ErrDegenerate.
// Complexity: O(states + records).
func New(snap lattice.Snapshot) (*Hamiltonian, error) {
	if len(snap.States) == 0 {
		return nil, fmt.Errorf("New: cell %s: %w", snap.CellID, ErrNoStates)
	}
	h := &Hamiltonian{
		ids:      make([]lattice.ID, len(snap.States)),
		periodic: snap.PeriodicCount(),
	}
	index := make(map[lattice.ID]int, len(snap.States))
	for i, st := range snap.States {
		h.ids[i] = st.ID
		index[st.ID] = i
	}

	var basis [3]r3.Vec
	for i, b := range snap.Basis {
		if b.Periodic {
			basis[i] = b.Vec
		}
	}
	frame, err := reciprocal.Frame(snap.PeriodicVectors())
	if err != nil {
		return nil, fmt.Errorf("New: cell %s: %w", snap.CellID, err)
	}

	for _, key := range sortedKeys(snap.Hoppings) {
		dst, ok := index[key.Dst]
		if !ok {
			return nil, fmt.Errorf("New: destination %s: %w", key.Dst, ErrUnknownState)
		}
		src, ok := index[key.Src]
		if !ok {
			return nil, fmt.Errorf("New: source %s: %w", key.Src, ErrUnknownState)
		}
		for _, rec := range snap.Hoppings[key] {
			var r r3.Vec
			for i, n := range rec.Disp {
				if n != 0 {
					r = r3.Add(r, r3.Scale(float64(n), basis[i]))
				}
			}
			tm := term{dst: dst, src: src, t: rec.Amplitude}
			copy(tm.r[:], reciprocal.Components(r, frame))
			h.terms = append(h.terms, tm)
		}
	}

	return h, nil
}

// At evaluates H(k). The returned matrix is freshly allocated.
// Errors: ErrDimension.
// Complexity: O(n² + records).
func (h *Hamiltonian) At(k []float64) (*matrix.CDense, error) {
	if len(k) != h.periodic {
		return nil, fmt.Errorf("At: len(k)=%d, periodic=%d: %w", len(k), h.periodic, ErrDimension)
	}

	n := len(h.ids)
	m, err := matrix.NewCDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("At: %w", err)
	}
	for _, tm := range h.terms {
		phase := complex(1, 0)
		var arg float64
		for j, x := range k {
			arg += x * tm.r[j]
		}
		if arg != 0 {
			phase = cmplx.Exp(complex(0, arg))
		}
		// indices come from New, never out of range
		_ = m.AddAt(tm.dst, tm.src, tm.t*phase)
	}

	return m, nil
}

// Func returns At as a closure.
func (h *Hamiltonian) Func() Func { return h.At }

// StateIDs returns the state id of each row/column index.
func (h *Hamiltonian) StateIDs() []lattice.ID { return append([]lattice.ID(nil), h.ids...) }

// Size returns the matrix dimension (number of states).
func (h *Hamiltonian) Size() int { return len(h.ids) }

// Periodic returns the required k dimension.
func (h *Hamiltonian) Periodic() int { return h.periodic }

// Terms returns the number of precomputed hopping records.
func (h *Hamiltonian) Terms() int { return len(h.terms) }

// sortedKeys orders hopping keys by (Dst, Src).
func sortedKeys(table map[lattice.HoppingKey][]lattice.Hopping) []lattice.HoppingKey {
	keys := slices.Collect(maps.Keys(table))
	slices.SortFunc(keys, func(a, b lattice.HoppingKey) int {
		if c := a.Dst.Compare(b.Dst); c != 0 {
			return c
		}
		return a.Src.Compare(b.Src)
	})

	return keys
}
