// SPDX-License-Identifier: MIT

package lll

import (
	"fmt"
	"math/big"
)

// DefaultDelta is the customary Lovász parameter.
const DefaultDelta = 0.75

// Reduce returns an LLL-reduced copy of the integer basis (one vector per row).
// The input is not modified. Bases with fewer than two rows are returned as
// copies.
//
// Errors: ErrDelta, ErrShape, ErrDependent.
func Reduce(basis [][]int64, delta float64) ([][]int64, error) {
	if !(delta > 0.25 && delta <= 1) {
		return nil, fmt.Errorf("Reduce: delta=%g: %w", delta, ErrDelta)
	}
	n := len(basis)
	if n == 0 {
		return [][]int64{}, nil
	}
	m := len(basis[0])
	for i := range basis {
		if len(basis[i]) != m {
			return nil, fmt.Errorf("Reduce: row %d has %d entries, want %d: %w", i, len(basis[i]), m, ErrShape)
		}
	}
	if n > m {
		return nil, fmt.Errorf("Reduce: %d rows in dimension %d: %w", n, m, ErrShape)
	}

	r := newReducer(basis)
	if err := r.gramSchmidt(); err != nil {
		return nil, fmt.Errorf("Reduce: %w", err)
	}
	if n >= 2 {
		r.run(new(big.Rat).SetFloat64(delta))
	}

	return r.result()
}

// reducer holds the working basis and its Gram–Schmidt data.
type reducer struct {
	b  [][]*big.Int // working rows
	mu [][]*big.Rat // μ_{i,j} for j < i
	bn []*big.Rat   // B_i = |b*_i|²
}

func newReducer(basis [][]int64) *reducer {
	r := &reducer{
		b:  make([][]*big.Int, len(basis)),
		mu: make([][]*big.Rat, len(basis)),
		bn: make([]*big.Rat, len(basis)),
	}
	for i, row := range basis {
		r.b[i] = make([]*big.Int, len(row))
		for j, v := range row {
			r.b[i][j] = big.NewInt(v)
		}
		r.mu[i] = make([]*big.Rat, i)
	}

	return r
}

// gramSchmidt recomputes μ and B from scratch.
// Stage 1: b*_i = b_i − Σ_{j<i} μ_{i,j} b*_j with μ_{i,j} = ⟨b_i, b*_j⟩ / B_j.
// Stage 2: B_i = ⟨b*_i, b*_i⟩; zero means dependence.
func (r *reducer) gramSchmidt() error {
	n := len(r.b)
	star := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		star[i] = make([]*big.Rat, len(r.b[i]))
		for c, v := range r.b[i] {
			star[i][c] = new(big.Rat).SetInt(v)
		}
		for j := 0; j < i; j++ {
			mu := dotIntRat(r.b[i], star[j])
			mu.Quo(mu, r.bn[j])
			r.mu[i][j] = mu
			tmp := new(big.Rat)
			for c := range star[i] {
				star[i][c].Sub(star[i][c], tmp.Mul(mu, star[j][c]))
			}
		}
		r.bn[i] = dotRat(star[i], star[i])
		if r.bn[i].Sign() == 0 {
			return fmt.Errorf("row %d: %w", i, ErrDependent)
		}
	}

	return nil
}

// run is the textbook LLL loop with full Gram–Schmidt recomputation after
// each change; n ≤ 3 keeps that cheap.
func (r *reducer) run(delta *big.Rat) {
	k := 1
	lhs, rhs := new(big.Rat), new(big.Rat)
	for k < len(r.b) {
		// Size-reduce b_k against b_{k−1}..b_0.
		for j := k - 1; j >= 0; j-- {
			q := roundRat(r.mu[k][j])
			if q.Sign() == 0 {
				continue
			}
			tmp := new(big.Int)
			for c := range r.b[k] {
				r.b[k][c].Sub(r.b[k][c], tmp.Mul(q, r.b[j][c]))
			}
			_ = r.gramSchmidt() // rank is preserved
		}

		// Lovász: B_k ≥ (δ − μ²_{k,k−1}) B_{k−1}.
		lhs.Set(r.bn[k])
		rhs.Mul(r.mu[k][k-1], r.mu[k][k-1])
		rhs.Sub(delta, rhs)
		rhs.Mul(rhs, r.bn[k-1])
		if lhs.Cmp(rhs) >= 0 {
			k++
			continue
		}
		r.b[k], r.b[k-1] = r.b[k-1], r.b[k]
		_ = r.gramSchmidt()
		if k > 1 {
			k--
		}
	}
}

// result converts the working basis back to int64 rows.
func (r *reducer) result() ([][]int64, error) {
	out := make([][]int64, len(r.b))
	for i, row := range r.b {
		out[i] = make([]int64, len(row))
		for c, v := range row {
			if !v.IsInt64() {
				return nil, fmt.Errorf("Reduce: entry (%d,%d) overflows int64: %w", i, c, ErrShape)
			}
			out[i][c] = v.Int64()
		}
	}

	return out, nil
}

// roundRat returns the nearest integer to x, halves rounded up.
func roundRat(x *big.Rat) *big.Int {
	// floor((2·num + den) / (2·den)); Rat denominators are positive.
	num := new(big.Int).Lsh(x.Num(), 1)
	num.Add(num, x.Denom())
	den := new(big.Int).Lsh(x.Denom(), 1)

	return num.Div(num, den)
}

func dotRat(a, b []*big.Rat) *big.Rat {
	sum, tmp := new(big.Rat), new(big.Rat)
	for i := range a {
		sum.Add(sum, tmp.Mul(a[i], b[i]))
	}

	return sum
}

func dotIntRat(a []*big.Int, b []*big.Rat) *big.Rat {
	sum, tmp := new(big.Rat), new(big.Rat)
	for i := range a {
		sum.Add(sum, tmp.Mul(new(big.Rat).SetInt(a[i]), b[i]))
	}

	return sum
}
