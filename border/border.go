// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package border replaces straight Voronoi edges with jagged, recursively subdivided
// borders that are shared by both sides of an edge and by every toroidal copy of it.
package border

import (
	"errors"
	"math/rand"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/torus"
	"github.com/luisantonioa/dom3mapgen/voronoi"
)

const (
	DefaultTradeoff  = 0.5
	DefaultMinLength = 14.0

	maxDepth = 32
)

// Synthesizer keys and builds jagged borders. An edge is synthesised when both endpoints
// are finite and it is visible in the primary cell, or when either of its sites lies in
// the primary cell. The second rule covers edges of in-bounds provinces that lie wholly
// in a ghost tile, so every province outline finds its borders in the cache.
type Synthesizer struct {
	Bounds torus.Bounds
	// Tradeoff blends the edge endpoints towards the two sites to build the quadrilateral
	// the border may wander in.
	Tradeoff  float64
	MinLength float64
	Rand      *rand.Rand
	Cache     *Cache
}

func NewSynthesizer(b torus.Bounds, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{
		Bounds:    b,
		Tradeoff:  DefaultTradeoff,
		MinLength: DefaultMinLength,
		Rand:      rng,
		Cache:     NewCache(b),
	}
}

// Stats describes one Synthesize pass.
type Stats struct {
	Edges      int
	Unresolved int
	Hidden     int
	Hits       int
}

// Synthesize populates the cache with a jagged path for every resolved edge of d that
// is visible in the primary cell or bounds a site inside it.
func (s *Synthesizer) Synthesize(d *voronoi.Diagram) (Stats, error) {
	var st Stats
	if s.Rand == nil {
		return st, errors.New("border: synthesizer has no random source")
	}
	if s.Cache == nil {
		s.Cache = NewCache(s.Bounds)
	}
	if s.MinLength <= 0 {
		return st, errors.New("border: minimum length must be positive")
	}

	for _, e := range d.Edges {
		if !e.Resolved() {
			st.Unresolved++
			continue
		}
		left, right := d.Sites[e.Left], d.Sites[e.Right]
		if !s.Bounds.SegmentVisible(e.A, e.B) && !s.Bounds.Contains(left) && !s.Bounds.Contains(right) {
			st.Hidden++
			continue
		}
		st.Edges++

		k, shift := KeyFor(e.A, e.B, s.Bounds)
		computed := false
		s.Cache.GetOrCompute(k, func() Path {
			computed = true
			a, b := quantise(e.A).Add(shift), quantise(e.B).Add(shift)
			return Path{
				Start:  a,
				End:    b,
				Points: s.Jagged(a, b, left.Add(shift), right.Add(shift)),
			}
		})
		if !computed {
			st.Hits++
		}
	}
	return st, nil
}

// Jagged returns a noisy polyline from a to b that stays inside the quadrilateral
// spanned by a, b and the two sites l and r.
func (s *Synthesizer) Jagged(a, b, l, r r2.Point) []r2.Point {
	t := Interp(a, l, s.Tradeoff)
	q := Interp(a, r, s.Tradeoff)
	u := Interp(b, l, s.Tradeoff)
	v := Interp(b, r, s.Tradeoff)
	mid := a.Add(b).Mul(0.5)

	first := s.NoisyLine(a, t, mid, q)
	second := s.NoisyLine(b, v, mid, u)
	slices.Reverse(second)
	return append(first, second[1:]...)
}

// NoisyLine subdivides the quadrilateral abcd and returns the path from a to c through
// the subdivision centres.
func (s *Synthesizer) NoisyLine(a, b, c, d r2.Point) []r2.Point {
	points := []r2.Point{a}
	points = s.subdivide(points, a, b, c, d, 0)
	return append(points, c)
}

func (s *Synthesizer) subdivide(points []r2.Point, a, b, c, d r2.Point, depth int) []r2.Point {
	if depth >= maxDepth || a.Sub(c).Norm() < s.MinLength || b.Sub(d).Norm() < s.MinLength {
		return points
	}

	p := 0.2 + 0.6*s.Rand.Float64()
	q := 0.2 + 0.6*s.Rand.Float64()

	e := Interp(a, d, p)
	f := Interp(b, c, p)
	g := Interp(a, b, q)
	i := Interp(d, c, q)
	h := Interp(e, f, q)

	ss := 1 - (s.Rand.Float64()*0.8 - 0.4)
	tt := 1 - (s.Rand.Float64()*0.8 - 0.4)

	points = s.subdivide(points, a, Interp(g, b, ss), h, Interp(e, d, tt), depth+1)
	points = append(points, h)
	return s.subdivide(points, h, Interp(f, c, ss), c, Interp(i, d, tt), depth+1)
}

// Interp returns b + (a-b)*pos, so pos 1 yields a and pos 0 yields b.
func Interp(a, b r2.Point, pos float64) r2.Point {
	return b.Add(a.Sub(b).Mul(pos))
}
