// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package terrain

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/torus"
	"github.com/ojrac/opensimplex-go"
)

type octave struct {
	freq, weight, offset float64
}

var octaves = []octave{
	{freq: 1, weight: 0.7, offset: -0.5},
	{freq: 2, weight: 0.2, offset: 0},
	{freq: 4, weight: 0.1, offset: 0.5},
}

// ElevationField is a heuristic height map in [0, 1] that wraps seamlessly on the torus.
type ElevationField struct {
	bounds torus.Bounds
	noise  opensimplex.Noise
}

func NewElevationField(seed int64, b torus.Bounds) *ElevationField {
	return &ElevationField{
		bounds: b,
		noise:  opensimplex.NewNormalized(seed),
	}
}

// At samples the field. Each map axis is mapped onto a circle in 4D noise space, so
// opposite edges of the map meet without a seam.
func (f *ElevationField) At(p r2.Point) float64 {
	p = f.bounds.Wrap(p)
	theta := 2 * math.Pi * p.X / f.bounds.Width
	phi := 2 * math.Pi * p.Y / f.bounds.Height
	ct, st := math.Cos(theta), math.Sin(theta)
	cp, sp := math.Cos(phi), math.Sin(phi)

	var v float64
	for _, o := range octaves {
		v += o.weight * f.noise.Eval4(
			o.freq*ct+o.offset, o.freq*st+o.offset,
			o.freq*cp+o.offset, o.freq*sp+o.offset,
		)
	}
	return min(max(v, 0), 1)
}

// Provinces returns the elevation at each province site, indexed by id-1.
func (f *ElevationField) Provinces(g Graph) []float64 {
	out := make([]float64, g.Len())
	for id := 1; id <= g.Len(); id++ {
		out[id-1] = f.At(g.Site(id))
	}
	return out
}
