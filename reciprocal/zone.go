package reciprocal

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Relative tolerances of the half-space construction, scaled by the shell size.
const (
	planeTol = 1e-8 // |n·x − c| ≤ planeTol·L²
	mergeTol = 1e-8 // |x − y| ≤ mergeTol·L
)

// Zone is the Wigner–Seitz cell of the reciprocal lattice.
type Zone struct {
	Vertices []r3.Vec
	Faces    [][]int // indices into Vertices
}

// Face returns the vertex coordinates of face i.
func (z Zone) Face(i int) []r3.Vec {
	out := make([]r3.Vec, len(z.Faces[i]))
	for j, idx := range z.Faces[i] {
		out[j] = z.Vertices[idx]
	}

	return out
}

// bisector is the plane n·x = c separating the origin from the shell point n.
type bisector struct {
	n r3.Vec
	c float64
}

// BrillouinZone computes the first Brillouin zone of the reciprocal basis g.
//   - 0 vectors: empty zone.
//   - 1 vector:  vertices ±G₁/2, each its own face.
//   - 2 vectors: polygon in the plane of G₁, G₂; faces are its edges.
//   - 3 vectors: polyhedron; faces are its polygons.
//
// Errors: ErrPeriodicCount, ErrDegenerate.
func BrillouinZone(g []r3.Vec) (Zone, error) {
	switch len(g) {
	case 0:
		return Zone{Vertices: []r3.Vec{}, Faces: [][]int{}}, nil
	case 1:
		if r3.Norm(g[0]) == 0 {
			return Zone{}, fmt.Errorf("BrillouinZone: %w", ErrDegenerate)
		}
		half := r3.Scale(0.5, g[0])
		return Zone{
			Vertices: []r3.Vec{half, r3.Scale(-1, half)},
			Faces:    [][]int{{0}, {1}},
		}, nil
	case 2:
		return zone2D(g)
	case 3:
		return zone3D(g)
	}

	return Zone{}, fmt.Errorf("BrillouinZone: %d vectors: %w", len(g), ErrPeriodicCount)
}

// bisectors builds the half-space planes of the first shell and returns the
// shell length scale L = max|p|.
func bisectors(shell []r3.Vec) ([]bisector, float64) {
	out := make([]bisector, len(shell))
	var scale float64
	for i, p := range shell {
		n2 := r3.Dot(p, p)
		out[i] = bisector{n: p, c: n2 / 2}
		scale = math.Max(scale, math.Sqrt(n2))
	}

	return out, scale
}

// inside reports whether x satisfies every half-space within tol.
func inside(x r3.Vec, planes []bisector, tol float64) bool {
	for _, b := range planes {
		if r3.Dot(b.n, x) > b.c+tol {
			return false
		}
	}

	return true
}

// addUnique appends x unless a vertex within tol already exists; returns its index.
func addUnique(vs []r3.Vec, x r3.Vec, tol float64) ([]r3.Vec, int) {
	for i, v := range vs {
		if r3.Norm(r3.Sub(v, x)) <= tol {
			return vs, i
		}
	}

	return append(vs, x), len(vs)
}

// zone2D works in an orthonormal frame (e1, e2) of the plane spanned by g.
func zone2D(g []r3.Vec) (Zone, error) {
	if r3.Norm(r3.Cross(g[0], g[1])) <= degeneracyEps*r3.Norm(g[0])*r3.Norm(g[1]) {
		return Zone{}, fmt.Errorf("BrillouinZone: %w", ErrDegenerate)
	}
	e1 := r3.Unit(g[0])
	e2 := r3.Unit(r3.Sub(g[1], r3.Scale(r3.Dot(g[1], e1), e1)))

	planes, scale := bisectors(Shell(g))
	ptol, mtol := planeTol*scale*scale, mergeTol*scale

	// Lines nx·x + ny·y = c in frame coordinates.
	type line struct{ nx, ny, c float64 }
	lines := make([]line, len(planes))
	for i, b := range planes {
		lines[i] = line{nx: r3.Dot(b.n, e1), ny: r3.Dot(b.n, e2), c: b.c}
	}

	var (
		verts     []r3.Vec
		det, x, y float64
	)
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			li, lj := lines[i], lines[j]
			det = li.nx*lj.ny - li.ny*lj.nx
			if math.Abs(det) <= degeneracyEps*scale*scale {
				continue // parallel bisectors
			}
			x = (li.c*lj.ny - li.ny*lj.c) / det
			y = (li.nx*lj.c - li.c*lj.nx) / det
			p := r3.Add(r3.Scale(x, e1), r3.Scale(y, e2))
			if inside(p, planes, ptol) {
				verts, _ = addUnique(verts, p, mtol)
			}
		}
	}

	// Counter-clockwise order in the (e1, e2) frame.
	slices.SortFunc(verts, func(a, b r3.Vec) int {
		return cmp.Compare(math.Atan2(r3.Dot(a, e2), r3.Dot(a, e1)), math.Atan2(r3.Dot(b, e2), r3.Dot(b, e1)))
	})

	faces := make([][]int, 0, len(planes))
	for _, b := range planes {
		var on []int
		for idx, v := range verts {
			if math.Abs(r3.Dot(b.n, v)-b.c) <= ptol {
				on = append(on, idx)
			}
		}
		if len(on) == 2 {
			if on[0] == 0 && on[1] == len(verts)-1 {
				on[0], on[1] = on[1], on[0] // closing edge keeps ccw direction
			}
			faces = append(faces, on)
		}
	}

	return Zone{Vertices: verts, Faces: faces}, nil
}

// zone3D enumerates feasible triple intersections of bisector planes.
func zone3D(g []r3.Vec) (Zone, error) {
	if math.Abs(r3.Dot(g[0], r3.Cross(g[1], g[2]))) <=
		degeneracyEps*r3.Norm(g[0])*r3.Norm(g[1])*r3.Norm(g[2]) {
		return Zone{}, fmt.Errorf("BrillouinZone: %w", ErrDegenerate)
	}
	planes, scale := bisectors(Shell(g))
	ptol, mtol := planeTol*scale*scale, mergeTol*scale

	var (
		verts         []r3.Vec
		cjk, cki, cij r3.Vec
		det           float64
	)
	for i := 0; i < len(planes); i++ {
		for j := i + 1; j < len(planes); j++ {
			cij = r3.Cross(planes[i].n, planes[j].n)
			for k := j + 1; k < len(planes); k++ {
				cjk = r3.Cross(planes[j].n, planes[k].n)
				det = r3.Dot(planes[i].n, cjk)
				if math.Abs(det) <= degeneracyEps*scale*scale*scale {
					continue
				}
				cki = r3.Cross(planes[k].n, planes[i].n)
				// Cramer: x = (cᵢ(nⱼ×n_k) + cⱼ(n_k×nᵢ) + c_k(nᵢ×nⱼ)) / nᵢ·(nⱼ×n_k)
				x := r3.Scale(1/det, r3.Add(r3.Add(
					r3.Scale(planes[i].c, cjk),
					r3.Scale(planes[j].c, cki)),
					r3.Scale(planes[k].c, cij)))
				if inside(x, planes, ptol) {
					verts, _ = addUnique(verts, x, mtol)
				}
			}
		}
	}
	slices.SortFunc(verts, compareVec)

	faces := make([][]int, 0, len(planes))
	for _, b := range planes {
		var on []int
		for idx, v := range verts {
			if math.Abs(r3.Dot(b.n, v)-b.c) <= ptol {
				on = append(on, idx)
			}
		}
		if len(on) >= 3 {
			faces = append(faces, orderAround(on, verts, b.n))
		}
	}

	return Zone{Vertices: verts, Faces: faces}, nil
}

// orderAround sorts face vertex indices counter-clockwise about the outward normal.
func orderAround(idx []int, verts []r3.Vec, normal r3.Vec) []int {
	var centroid r3.Vec
	for _, i := range idx {
		centroid = r3.Add(centroid, verts[i])
	}
	centroid = r3.Scale(1/float64(len(idx)), centroid)
	u := r3.Unit(r3.Sub(verts[idx[0]], centroid))
	w := r3.Cross(r3.Unit(normal), u)

	angle := func(i int) float64 {
		d := r3.Sub(verts[i], centroid)
		return math.Atan2(r3.Dot(d, w), r3.Dot(d, u))
	}
	out := slices.Clone(idx)
	slices.SortFunc(out, func(a, b int) int { return cmp.Compare(angle(a), angle(b)) })

	return out
}

func compareVec(a, b r3.Vec) int {
	if r := cmp.Compare(a.X, b.X); r != 0 {
		return r
	}
	if r := cmp.Compare(a.Y, b.Y); r != 0 {
		return r
	}

	return cmp.Compare(a.Z, b.Z)
}
