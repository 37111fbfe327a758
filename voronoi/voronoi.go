// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/delaunay"
)

const (
	defaultEps = 1e-12
)

// Unresolved is the endpoint of an edge that runs to infinity.
var Unresolved = r2.Point{X: math.NaN(), Y: math.NaN()}

type Diagram struct {
	Sites    []r2.Point
	Vertices []r2.Point
	Edges    []Edge

	// NOTE: Sort in CCW per Cell
	CellVertices []int
	CellOffsets  []int
	// NOTE: true when the site lies on the convex hull of all sites
	CellUnbounded []bool

	// NOTE: Sort in CCW per Cell. Filled on first use by the Cell neighbour accessors.
	CellNeighbors       []int
	CellNeighborOffsets []int

	dt            *delaunay.Triangulation
	neighborsOnce sync.Once
}

// Edge separates the cells of sites Left and Right. A and B are its endpoints; an
// endpoint at infinity is Unresolved.
type Edge struct {
	Left, Right int
	A, B        r2.Point
}

// Resolved reports whether both endpoints are finite.
func (e Edge) Resolved() bool {
	return IsResolved(e.A) && IsResolved(e.B)
}

// IsResolved reports whether p is a finite vertex.
func IsResolved(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

type DiagramOptions struct {
	Eps float64
}

type DiagramOption func(*DiagramOptions) error

func WithEps(eps float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if eps <= 0 {
			return fmt.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

func (vd *Diagram) NumCells() int {
	return len(vd.Sites)
}

func (vd *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= vd.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, vd.NumCells())
	}
	return Cell{idx: i, d: vd}, nil
}

func NewDiagram(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	dt, err := delaunay.NewTriangulation(sites, delaunay.WithEps(opts.Eps))
	if err != nil {
		return nil, err
	}

	numTriangles := len(dt.Triangles)
	vd := &Diagram{
		Sites:         dt.Vertices,
		Vertices:      make([]r2.Point, numTriangles),
		CellVertices:  dt.IncidentTriangleIndices,
		CellOffsets:   dt.IncidentTriangleOffsets,
		CellUnbounded: make([]bool, len(dt.Vertices)),
		dt:            dt,
	}

	for i := 0; i < numTriangles; i++ {
		vd.Vertices[i] = delaunay.Circumcenter(dt.TriangleVertices(i))
	}

	vd.Edges = dualEdges(dt, vd.Vertices, vd.CellUnbounded)

	return vd, nil
}

// ensureNeighbors computes CellNeighbors and CellNeighborOffsets once.
func (vd *Diagram) ensureNeighbors() {
	vd.neighborsOnce.Do(func() {
		vd.CellNeighbors, vd.CellNeighborOffsets = cellNeighbors(vd.dt)
	})
}

// cellNeighbors lists, per site, the sites joined to it by a Delaunay edge, sorted by angle.
func cellNeighbors(dt *delaunay.Triangulation) ([]int, []int) {
	numSites := len(dt.Vertices)
	neighbors := make([]int, 0, len(dt.Triangles)*3+numSites)
	offsets := make([]int, numSites+1)

	var buf []int
	for vIdx := 0; vIdx < numSites; vIdx++ {
		buf = buf[:0]
		for _, tIdx := range dt.IncidentTriangles(vIdx) {
			t := dt.Triangles[tIdx]
			buf = append(buf, delaunay.NextVertex(t, vIdx), delaunay.PrevVertex(t, vIdx))
		}
		slices.Sort(buf)
		buf = slices.Compact(buf)

		center := dt.Vertices[vIdx]
		angle := func(n int) float64 {
			p := dt.Vertices[n]
			return math.Atan2(p.Y-center.Y, p.X-center.X)
		}
		slices.SortStableFunc(buf, func(a, b int) int {
			return cmp.Compare(angle(a), angle(b))
		})

		neighbors = append(neighbors, buf...)
		offsets[vIdx+1] = len(neighbors)
	}
	return neighbors, offsets
}

// dualEdges emits one edge per Delaunay edge, in the order the edges are first met
// while walking the triangles. A Delaunay edge on the convex hull has a single
// incident triangle; its dual runs to infinity and both its sites are unbounded.
func dualEdges(dt *delaunay.Triangulation, vertices []r2.Point, unbounded []bool) []Edge {
	type halfEdge struct{ from, to int }

	owner := make(map[halfEdge]int, len(dt.Triangles)*3)
	for tIdx, t := range dt.Triangles {
		for j := 0; j < 3; j++ {
			owner[halfEdge{t[j], t[(j+1)%3]}] = tIdx
		}
	}

	edges := make([]Edge, 0, len(dt.Triangles)*3/2+1)
	seen := make(map[halfEdge]struct{}, len(owner))
	for tIdx, t := range dt.Triangles {
		for j := 0; j < 3; j++ {
			u, v := t[j], t[(j+1)%3]
			key := halfEdge{min(u, v), max(u, v)}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			e := Edge{Left: u, Right: v, A: vertices[tIdx], B: Unresolved}
			if twin, ok := owner[halfEdge{v, u}]; ok {
				e.B = vertices[twin]
			} else {
				unbounded[u] = true
				unbounded[v] = true
			}
			edges = append(edges, e)
		}
	}
	return edges
}
