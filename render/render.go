// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render draws generated maps: the TGA bitmap the game loads and an SVG preview.
package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/border"
	"github.com/luisantonioa/dom3mapgen/province"
	"github.com/luisantonioa/dom3mapgen/terrain"
	"golang.org/x/image/vector"
)

const (
	borderWidth = 1.0
)

// Scene is everything a renderer reads. Borders may be nil, in which case provinces are
// drawn with straight edges.
type Scene struct {
	Graph   *province.Graph
	Terrain terrain.Map
	Borders *border.Cache
}

// Outline returns the drawn outline of province id.
func (s Scene) Outline(id int) []r2.Point {
	poly := s.Graph.Province(id).Polygon
	if s.Borders == nil {
		return poly
	}
	return s.Borders.Outline(poly)
}

func (s Scene) size() (int, int, error) {
	if s.Graph == nil {
		return 0, 0, errors.New("render: scene has no province graph")
	}
	w := int(math.Ceil(s.Graph.Bounds.Width))
	h := int(math.Ceil(s.Graph.Bounds.Height))
	if w <= 0 || h <= 0 {
		return 0, 0, errors.New("render: empty map bounds")
	}
	return w, h, nil
}

// Rasterize draws province fills and borders at every toroidal copy that overlaps the
// image, then one Site pixel per province.
func Rasterize(s Scene, p Palette) (*image.RGBA, error) {
	w, h, err := s.size()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Border), image.Point{}, draw.Src)

	frame := r2.RectFromPoints(r2.Point{}, r2.Point{X: float64(w), Y: float64(h)})
	tiles := s.Graph.Bounds.Tiles()
	z := vector.NewRasterizer(w, h)

	for id := 1; id <= s.Graph.Len(); id++ {
		outline := s.Outline(id)
		if len(outline) < 3 {
			continue
		}
		bound := r2.RectFromPoints(outline...)
		z.Reset(w, h)
		for _, o := range tiles {
			if !shifted(bound, o).Intersects(frame) {
				continue
			}
			addPolygon(z, outline, o)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(p.Province(id, s.Terrain[id])), image.Point{})
	}

	if s.Borders != nil {
		z.Reset(w, h)
		s.Borders.Each(func(_ border.Key, path border.Path) {
			// Paths live in the folded frame; their copies cover the rest of the torus.
			for _, o := range tiles {
				for i := 1; i < len(path.Points); i++ {
					addSegment(z, path.Points[i-1].Add(o), path.Points[i].Add(o), frame)
				}
			}
		})
		z.Draw(img, img.Bounds(), image.NewUniform(p.Border), image.Point{})
	}

	for _, pr := range s.Graph.Provinces {
		site := s.Graph.Bounds.Wrap(pr.Site)
		x := min(int(site.X), w-1)
		y := min(int(site.Y), h-1)
		img.SetRGBA(x, y, p.Site)
	}
	return img, nil
}

func shifted(r r2.Rect, o r2.Point) r2.Rect {
	return r2.RectFromPoints(r.Lo().Add(o), r.Hi().Add(o))
}

func addPolygon(z *vector.Rasterizer, poly []r2.Point, o r2.Point) {
	first := poly[0].Add(o)
	z.MoveTo(float32(first.X), float32(first.Y))
	for _, v := range poly[1:] {
		v = v.Add(o)
		z.LineTo(float32(v.X), float32(v.Y))
	}
	z.ClosePath()
}

// addSegment adds segment ab as a thin quad. Every quad winds the same way, so
// overlapping quads never cancel.
func addSegment(z *vector.Rasterizer, a, b r2.Point, frame r2.Rect) {
	d := b.Sub(a)
	length := d.Norm()
	if length == 0 {
		return
	}
	if !r2.RectFromPoints(a, b).ExpandedByMargin(borderWidth).Intersects(frame) {
		return
	}
	n := d.Ortho().Mul(borderWidth / 2 / length)
	z.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
	z.LineTo(float32(b.X+n.X), float32(b.Y+n.Y))
	z.LineTo(float32(b.X-n.X), float32(b.Y-n.Y))
	z.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
	z.ClosePath()
}

// IsWhite reports whether c is the pure white reserved for province markers.
func IsWhite(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}
