package reciprocal

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// frameEps is the residual norm below which a projected axis is skipped.
	frameEps = 1e-6
	// spanEps is the relative residual below which v counts as dependent.
	spanEps = 1e-8
)

// Frame returns an orthonormal basis of span(v), the frame in which k-vectors
// carry one component per periodic direction.
// Stage 1: orthonormalize v (Gram–Schmidt) to get a projector onto the span.
// Stage 2: project x̂, ŷ, ẑ in turn, orthogonalize against the axes already
// taken and keep those with a residual above frameEps until len(v) are found.
//
// The frame depends only on span(v), so the direct and the reciprocal vectors
// of one lattice share it. When the span is that of the leading axes (x, xy,
// xyz) the frame is those axes and frame components equal Cartesian ones.
//
// Errors: ErrPeriodicCount (len(v) > 3), ErrDegenerate.
// Complexity: O(1).
func Frame(v []r3.Vec) ([]r3.Vec, error) {
	d := len(v)
	if d > 3 {
		return nil, fmt.Errorf("Frame: %d vectors: %w", d, ErrPeriodicCount)
	}

	// Stage 1: orthonormal basis q of the span.
	q := make([]r3.Vec, 0, d)
	for i, x := range v {
		scale := r3.Norm(x)
		for _, e := range q {
			x = r3.Sub(x, r3.Scale(r3.Dot(x, e), e))
		}
		n := r3.Norm(x)
		if scale == 0 || n <= spanEps*scale {
			return nil, fmt.Errorf("Frame: vector %d: %w", i, ErrDegenerate)
		}
		q = append(q, r3.Scale(1/n, x))
	}

	// Stage 2: axis-aligned frame of the same span.
	out := make([]r3.Vec, 0, d)
	for _, axis := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		if len(out) == d {
			break
		}
		var p r3.Vec
		for _, e := range q {
			p = r3.Add(p, r3.Scale(r3.Dot(axis, e), e))
		}
		for _, e := range out {
			p = r3.Sub(p, r3.Scale(r3.Dot(p, e), e))
		}
		if n := r3.Norm(p); n > frameEps {
			out = append(out, r3.Scale(1/n, p))
		}
	}

	return out, nil
}

// Components returns the coordinates of x in frame.
func Components(x r3.Vec, frame []r3.Vec) []float64 {
	out := make([]float64, len(frame))
	for j, e := range frame {
		out[j] = r3.Dot(x, e)
	}

	return out
}
