// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package province

import (
	"github.com/golang/geo/r2"
)

// Relax moves every site halfway towards its polygon centroid, wraps it back into
// bounds and returns the new sites in province order.
func Relax(g *Graph) []r2.Point {
	sites := make([]r2.Point, len(g.Provinces))
	for i, p := range g.Provinces {
		c := centroid(p.Polygon)
		sites[i] = g.Bounds.Wrap(p.Site.Add(c).Mul(0.5))
	}
	return g.Bounds.ProvinceOrder(sites)
}
