package kpath

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/reciprocal"
)

// Fractions returns the n reduced coordinates of one grid axis.
// Γ-centred: i/n. Monkhorst–Pack: (2i−n+1)/(2n).
func Fractions(n int, gammaCentered bool) []float64 {
	out := make([]float64, n)
	for i := range out {
		if gammaCentered {
			out[i] = float64(i) / float64(n)
		} else {
			out[i] = float64(2*i-n+1) / float64(2*n)
		}
	}

	return out
}

// Grid returns the k-points of a regular grid over the len(g) periodic
// directions, in reciprocal.Frame(g) components; only the first len(g)
// divisions are used. The first
// axis varies slowest. With no periodic direction the grid is the single
// point Γ (an empty k-vector).
// Errors: ErrDimension (len(g) > 3), ErrDivisions, reciprocal.ErrDegenerate.
func Grid(divisions [3]int, gammaCentered bool, g []r3.Vec) ([][]float64, error) {
	d := len(g)
	if d > 3 {
		return nil, fmt.Errorf("Grid: %d reciprocal vectors: %w", d, ErrDimension)
	}
	frame, err := reciprocal.Frame(g)
	if err != nil {
		return nil, fmt.Errorf("Grid: %w", err)
	}
	axes := make([][]float64, d)
	total := 1
	for i := 0; i < d; i++ {
		if divisions[i] < 1 {
			return nil, fmt.Errorf("Grid: divisions[%d]=%d: %w", i, divisions[i], ErrDivisions)
		}
		axes[i] = Fractions(divisions[i], gammaCentered)
		total *= divisions[i]
	}

	out := make([][]float64, 0, total)
	frac := make([]float64, d)
	idx := make([]int, d)
	for n := 0; n < total; n++ {
		for i := range idx {
			frac[i] = axes[i][idx[i]]
		}
		out = append(out, toFrame(frac, g, frame))
		// odometer, last axis fastest
		for i := d - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < divisions[i] {
				break
			}
			idx[i] = 0
		}
	}

	return out, nil
}

// ToCartesian maps fractional reciprocal coordinates to a k-vector with one
// component per periodic direction, expressed in reciprocal.Frame(g) (plain
// Cartesian x, y, z when g spans the leading axes).
// Errors: ErrDimension, reciprocal.ErrDegenerate.
func ToCartesian(frac []float64, g []r3.Vec) ([]float64, error) {
	if len(frac) != len(g) || len(g) > 3 {
		return nil, fmt.Errorf("ToCartesian: %d fractions for %d vectors: %w", len(frac), len(g), ErrDimension)
	}
	frame, err := reciprocal.Frame(g)
	if err != nil {
		return nil, fmt.Errorf("ToCartesian: %w", err)
	}

	return toFrame(frac, g, frame), nil
}

// toFrame is ToCartesian with a precomputed frame.
func toFrame(frac []float64, g, frame []r3.Vec) []float64 {
	var k r3.Vec
	for i, f := range frac {
		k = r3.Add(k, r3.Scale(f, g[i]))
	}

	return reciprocal.Components(k, frame)
}

// PathToCartesian converts a list of fractional special points.
func PathToCartesian(points [][]float64, g []r3.Vec) ([][]float64, error) {
	out := make([][]float64, len(points))
	for i, p := range points {
		k, err := ToCartesian(p, g)
		if err != nil {
			return nil, fmt.Errorf("PathToCartesian: point %d: %w", i, err)
		}
		out[i] = k
	}

	return out, nil
}
