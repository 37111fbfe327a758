// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package torus provides the wrap-around geometry of a rectangular map whose opposite
// edges are identified.
package torus

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r2"
)

type Bounds struct {
	Width, Height float64
}

func New(width, height float64) (Bounds, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Bounds{}, fmt.Errorf("torus: invalid bounds %vx%v", width, height)
	}
	return Bounds{Width: width, Height: height}, nil
}

func (b Bounds) Rect() r2.Rect {
	return r2.RectFromPoints(r2.Point{}, r2.Point{X: b.Width, Y: b.Height})
}

func (b Bounds) Size() r2.Point {
	return r2.Point{X: b.Width, Y: b.Height}
}

// Contains reports whether p lies in the half-open primary cell [0, W) x [0, H).
func (b Bounds) Contains(p r2.Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Wrap maps p into the primary cell.
func (b Bounds) Wrap(p r2.Point) r2.Point {
	return r2.Point{X: wrap(p.X, b.Width), Y: wrap(p.Y, b.Height)}
}

func wrap(v, size float64) float64 {
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	if v >= size {
		v = 0
	}
	return v
}

// Offsets returns the 8 translations of the ghost copies, x-major from (-W, -H) to (W, H).
func (b Bounds) Offsets() []r2.Point {
	offsets := make([]r2.Point, 0, 8)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if i == 0 && j == 0 {
				continue
			}
			offsets = append(offsets, r2.Point{X: float64(i) * b.Width, Y: float64(j) * b.Height})
		}
	}
	return offsets
}

// Translations returns the placements a border is drawn at: centre, up, down, left, right.
func (b Bounds) Translations() []r2.Point {
	return []r2.Point{
		{},
		{X: 0, Y: -b.Height},
		{X: 0, Y: b.Height},
		{X: -b.Width, Y: 0},
		{X: b.Width, Y: 0},
	}
}

// Tiles returns the zero translation followed by Offsets.
func (b Bounds) Tiles() []r2.Point {
	return append([]r2.Point{{}}, b.Offsets()...)
}

// Ghosts returns reals followed by one block of translated copies per offset, so the
// copy of reals[i] under Offsets()[o] has index (o+1)*len(reals)+i.
func (b Bounds) Ghosts(reals []r2.Point) []r2.Point {
	offsets := b.Offsets()
	out := make([]r2.Point, 0, len(reals)*(len(offsets)+1))
	out = append(out, reals...)
	for _, o := range offsets {
		for _, p := range reals {
			out = append(out, p.Add(o))
		}
	}
	return out
}

// Delta returns the shortest displacement from p to q on the torus.
func (b Bounds) Delta(p, q r2.Point) r2.Point {
	d := q.Sub(p)
	d.X -= b.Width * math.Round(d.X/b.Width)
	d.Y -= b.Height * math.Round(d.Y/b.Height)
	return d
}

// Distance returns the toroidal distance between p and q.
func (b Bounds) Distance(p, q r2.Point) float64 {
	return b.Delta(p, q).Norm()
}

// SegmentVisible reports whether segment ab lies inside or crosses the primary rectangle.
func (b Bounds) SegmentVisible(a, c r2.Point) bool {
	rect := b.Rect()
	if rect.ContainsPoint(a) || rect.ContainsPoint(c) {
		return true
	}
	corners := rect.Vertices()
	for i := range corners {
		if SegmentsIntersect(a, c, corners[i], corners[(i+1)%4]) {
			return true
		}
	}
	return false
}

// SegmentsIntersect reports whether the closed segments p1p2 and p3p4 share a point.
func SegmentsIntersect(p1, p2, p3, p4 r2.Point) bool {
	d1 := orient(p3, p4, p1)
	d2 := orient(p3, p4, p2)
	d3 := orient(p1, p2, p3)
	d4 := orient(p1, p2, p4)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(p3, p4, p1):
		return true
	case d2 == 0 && onSegment(p3, p4, p2):
		return true
	case d3 == 0 && onSegment(p1, p2, p3):
		return true
	case d4 == 0 && onSegment(p1, p2, p4):
		return true
	}
	return false
}

func orient(a, b, c r2.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func onSegment(a, b, p r2.Point) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}

// ProvinceOrder returns a copy of points sorted into province order. Rows run from the
// bottom of the map (largest y) to the top, matching the bottom-up scan of the map image,
// and left to right within a row.
func (b Bounds) ProvinceOrder(points []r2.Point) []r2.Point {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(p, q r2.Point) int {
		if c := cmp.Compare(b.Height-math.Floor(p.Y), b.Height-math.Floor(q.Y)); c != 0 {
			return c
		}
		if c := cmp.Compare(math.Floor(p.X), math.Floor(q.X)); c != 0 {
			return c
		}
		if c := cmp.Compare(q.Y, p.Y); c != 0 {
			return c
		}
		return cmp.Compare(p.X, q.X)
	})
	return sorted
}
