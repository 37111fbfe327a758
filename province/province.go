// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package province turns a Voronoi diagram of tiled sites into numbered provinces with
// a wrap-around adjacency graph and ordered boundary polygons.
package province

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/torus"
	"github.com/luisantonioa/dom3mapgen/voronoi"
)

const (
	dedupeEps = 1e-6
)

// DegenerateGeometryError reports a province whose cell has fewer than three distinct
// vertices.
type DegenerateGeometryError struct {
	ID       int
	Site     r2.Point
	Vertices int
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("province: province %d at %v has %d distinct vertices, need at least 3",
		e.ID, e.Site, e.Vertices)
}

// Province is one cell of the map. IDs start at 1.
type Province struct {
	ID      int
	Site    r2.Point
	Polygon []r2.Point
	// NOTE: Sorted ascending, no self-loops
	Neighbours []int
}

type Graph struct {
	Bounds    torus.Bounds
	Provinces []Province
	// Skipped counts diagram edges ignored for an unresolved endpoint.
	Skipped int

	locator *Locator
}

// Build assigns province i+1 to reals[i] and collects adjacency and polygons from d,
// which must be the diagram of b.Ghosts(reals).
func Build(d *voronoi.Diagram, reals []r2.Point, b torus.Bounds) (*Graph, error) {
	g := &Graph{
		Bounds:    b,
		Provinces: make([]Province, len(reals)),
		locator:   NewLocator(reals, b),
	}
	for i, p := range reals {
		g.Provinces[i] = Province{ID: i + 1, Site: p}
	}

	resolve := func(site r2.Point) int {
		return g.locator.Nearest(b.Wrap(site)) + 1
	}

	neighbours := make([]map[int]struct{}, len(reals))
	vertices := make([][]r2.Point, len(reals))
	for _, e := range d.Edges {
		if !e.Resolved() {
			g.Skipped++
			continue
		}
		left, right := d.Sites[e.Left], d.Sites[e.Right]
		inLeft, inRight := b.Contains(left), b.Contains(right)
		if !inLeft && !inRight {
			continue
		}

		p, q := resolve(left), resolve(right)
		if p != q {
			link(neighbours, p, q)
			link(neighbours, q, p)
		}
		if inLeft {
			vertices[p-1] = append(vertices[p-1], e.A, e.B)
		}
		if inRight {
			vertices[q-1] = append(vertices[q-1], e.A, e.B)
		}
	}

	for i := range g.Provinces {
		pr := &g.Provinces[i]
		pr.Polygon = orderPolygon(dedupe(vertices[i]))
		if len(pr.Polygon) < 3 {
			return nil, &DegenerateGeometryError{ID: pr.ID, Site: pr.Site, Vertices: len(pr.Polygon)}
		}
		pr.Neighbours = make([]int, 0, len(neighbours[i]))
		for n := range neighbours[i] {
			pr.Neighbours = append(pr.Neighbours, n)
		}
		slices.Sort(pr.Neighbours)
	}
	return g, nil
}

func link(neighbours []map[int]struct{}, p, q int) {
	if neighbours[p-1] == nil {
		neighbours[p-1] = make(map[int]struct{})
	}
	neighbours[p-1][q] = struct{}{}
}

func dedupe(points []r2.Point) []r2.Point {
	out := make([]r2.Point, 0, len(points)/2)
	for _, p := range points {
		if !slices.ContainsFunc(out, func(q r2.Point) bool {
			return math.Abs(p.X-q.X) <= dedupeEps && math.Abs(p.Y-q.Y) <= dedupeEps
		}) {
			out = append(out, p)
		}
	}
	return out
}

// orderPolygon sorts vertices by polar angle around their centroid.
func orderPolygon(vertices []r2.Point) []r2.Point {
	c := centroid(vertices)
	slices.SortStableFunc(vertices, func(a, b r2.Point) int {
		return cmp.Compare(math.Atan2(a.Y-c.Y, a.X-c.X), math.Atan2(b.Y-c.Y, b.X-c.X))
	})
	return vertices
}

func centroid(vertices []r2.Point) r2.Point {
	var c r2.Point
	if len(vertices) == 0 {
		return c
	}
	for _, v := range vertices {
		c = c.Add(v)
	}
	return c.Mul(1 / float64(len(vertices)))
}

func (g *Graph) Len() int {
	return len(g.Provinces)
}

func (g *Graph) Province(id int) *Province {
	if id < 1 || id > len(g.Provinces) {
		panic("Province: id out of range")
	}
	return &g.Provinces[id-1]
}

func (g *Graph) Neighbours(id int) []int {
	return g.Province(id).Neighbours
}

func (g *Graph) Adjacent(p, q int) bool {
	_, ok := slices.BinarySearch(g.Neighbours(p), q)
	return ok
}

func (g *Graph) Site(id int) r2.Point {
	return g.Province(id).Site
}

func (g *Graph) Sites() []r2.Point {
	sites := make([]r2.Point, len(g.Provinces))
	for i, p := range g.Provinces {
		sites[i] = p.Site
	}
	return sites
}

// At returns the province covering p, i.e. the one with the nearest site on the torus.
func (g *Graph) At(p r2.Point) int {
	if g.locator == nil {
		g.locator = NewLocator(g.Sites(), g.Bounds)
	}
	return g.locator.Nearest(p) + 1
}

// Area returns the shoelace area of the province polygon.
func (g *Graph) Area(id int) float64 {
	poly := g.Province(id).Polygon
	var sum float64
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		sum += a.Cross(b)
	}
	return math.Abs(sum) / 2
}

// Centroid returns the mean of the polygon vertices. It may lie outside the bounds
// for a province that straddles a seam.
func (g *Graph) Centroid(id int) r2.Point {
	return centroid(g.Province(id).Polygon)
}
