// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package delaunay computes planar Delaunay triangulations as the lower convex hull of
// points lifted onto the paraboloid z = x² + y².
package delaunay

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

type Triangulation struct {
	Vertices  []r2.Point
	Triangles [][3]int
	// NOTE: Sort in CCW per vertex
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if eps <= 0 {
			return fmt.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		if eps >= 1 {
			return fmt.Errorf("WithEps: eps must be below 1, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation triangulates vertices. Points are centred and scaled to unit extent
// before lifting so the hull tolerance does not depend on map size.
func NewTriangulation(vertices []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(vertices)
	if numVertices < 3 {
		return nil,
			errors.New("delaunay: insufficient vertices for triangulation (minimum 3 required)")
	}

	lifted := lift(vertices)
	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, opts.Eps)
	if len(ch.Indices)%3 != 0 {
		return nil, errors.New("delaunay: inconsistent number of indices returned from QuickHull")
	}

	var inner r3.Vector
	for _, v := range lifted {
		inner = inner.Add(v)
	}
	inner = inner.Mul(1 / float64(numVertices))

	triangles := make([][3]int, 0, len(ch.Indices)/6)
	for base := 0; base+2 < len(ch.Indices); base += 3 {
		t := [3]int{ch.Indices[base], ch.Indices[base+1], ch.Indices[base+2]}
		a, b, c := lifted[t[0]], lifted[t[1]], lifted[t[2]]
		norm := b.Sub(a).Cross(c.Sub(a))
		if norm.Dot(a.Sub(inner)) < 0 {
			norm = norm.Mul(-1)
		}
		// Upper hull and vertical faces (collinear boundary points) are not triangles
		// of the planar triangulation.
		if norm.Z >= -opts.Eps*norm.Norm() {
			continue
		}
		if !sortTriangleVerticesCCW(&t, vertices) {
			continue
		}
		triangles = append(triangles, t)
	}
	if len(triangles) == 0 {
		return nil, errors.New("delaunay: degenerate input, all vertices are collinear")
	}

	numTriangles := len(triangles)
	dt := &Triangulation{
		Vertices:                vertices,
		Triangles:               triangles,
		IncidentTriangleIndices: make([]int, numTriangles*3),
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}

	for _, t := range triangles {
		for _, v := range t {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := 0; i < numVertices; i++ {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for i, t := range triangles {
		for _, v := range t {
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
	}

	for i := 0; i < numVertices; i++ {
		sortIncidentTriangleIndicesCCW(i, dt.IncidentTriangles(i), dt.Triangles, dt.Vertices)
	}

	return dt, nil
}

func lift(vertices []r2.Point) []r3.Vector {
	bound := r2.RectFromPoints(vertices...)
	center := bound.Center()
	size := bound.Size()
	scale := math.Max(size.X, size.Y) / 2
	if scale == 0 {
		scale = 1
	}

	lifted := make([]r3.Vector, len(vertices))
	for i, p := range vertices {
		q := p.Sub(center).Mul(1 / scale)
		lifted[i] = r3.Vector{X: q.X, Y: q.Y, Z: q.X*q.X + q.Y*q.Y}
	}
	return lifted
}

// sortTriangleVerticesCCW orients t counter-clockwise in a y-up frame. It reports false
// for a zero-area triangle.
func sortTriangleVerticesCCW(t *[3]int, v []r2.Point) bool {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	cross := p1.Sub(p0).Cross(p2.Sub(p0))
	if cross == 0 {
		return false
	}
	if cross < 0 {
		t[1], t[2] = t[2], t[1]
	}
	return true
}

func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int, v []r2.Point) {
	center := v[vIdx]
	angle := func(tIdx int) float64 {
		t := tris[tIdx]
		c := v[t[0]].Add(v[t[1]]).Add(v[t[2]]).Mul(1.0 / 3)
		return math.Atan2(c.Y-center.Y, c.X-center.X)
	}
	sort.SliceStable(incidentTris, func(i, j int) bool {
		return angle(incidentTris[i]) < angle(incidentTris[j])
	})
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}

// Circumcenter returns the centre of the circle through a, b and c. It returns NaN
// coordinates for collinear input.
func Circumcenter(a, b, c r2.Point) r2.Point {
	ab := b.Sub(a)
	ac := c.Sub(a)
	d := 2 * ab.Cross(ac)
	if d == 0 {
		return r2.Point{X: math.NaN(), Y: math.NaN()}
	}
	ab2 := ab.Dot(ab)
	ac2 := ac.Dot(ac)
	return r2.Point{
		X: a.X + (ac.Y*ab2-ab.Y*ac2)/d,
		Y: a.Y + (ab.X*ac2-ac.X*ab2)/d,
	}
}
