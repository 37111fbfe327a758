// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package border

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/torus"
)

// quantum is the grid endpoints are snapped to before keying, so that two copies of one
// vertex computed from different ghost triangles produce the same key.
const quantum = 1.0 / 1024

// Key identifies a border segment independently of endpoint order and of the toroidal
// copy it is seen in. It is the bounding rectangle of the folded endpoints.
type Key r2.Rect

func (k Key) Rect() r2.Rect {
	return r2.Rect(k)
}

func quantise(p r2.Point) r2.Point {
	return r2.Point{
		X: math.Round(p.X/quantum) * quantum,
		Y: math.Round(p.Y/quantum) * quantum,
	}
}

func less(a, b r2.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

// KeyFor folds segment ac into the primary cell and returns its key and the translation
// applied. The fold moves the lexicographically smaller endpoint into bounds, so every
// translated copy of the segment folds onto the same representative. It stands in for
// wrapping the first endpoint and then shifting left or up when the segment crosses the
// right or bottom seam; that rule can key one seam edge differently from its two sides.
func KeyFor(a, c r2.Point, b torus.Bounds) (Key, r2.Point) {
	qa, qc := quantise(a), quantise(c)
	anchor := qa
	if less(qc, qa) {
		anchor = qc
	}
	shift := b.Wrap(anchor).Sub(anchor)
	return Key(r2.RectFromPoints(qa.Add(shift), qc.Add(shift))), shift
}
