// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package province

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/torus"
)

// Locator answers nearest-point queries on the torus over a uniform bucket grid.
type Locator struct {
	bounds     torus.Bounds
	points     []r2.Point
	cols, rows int
	cellW      float64
	cellH      float64
	buckets    [][]int
}

// NewLocator indexes points, which must lie inside b.
func NewLocator(points []r2.Point, b torus.Bounds) *Locator {
	n := max(len(points), 1)
	side := math.Sqrt(b.Width * b.Height / float64(n))
	cols := max(1, int(b.Width/side))
	rows := max(1, int(b.Height/side))

	l := &Locator{
		bounds:  b,
		points:  points,
		cols:    cols,
		rows:    rows,
		cellW:   b.Width / float64(cols),
		cellH:   b.Height / float64(rows),
		buckets: make([][]int, cols*rows),
	}
	for i, p := range points {
		c, r := l.cell(b.Wrap(p))
		l.buckets[r*cols+c] = append(l.buckets[r*cols+c], i)
	}
	return l
}

func (l *Locator) cell(p r2.Point) (int, int) {
	c := min(max(int(p.X/l.cellW), 0), l.cols-1)
	r := min(max(int(p.Y/l.cellH), 0), l.rows-1)
	return c, r
}

// Nearest returns the index of the point closest to p on the torus, preferring the
// lower index on ties, or -1 when the locator is empty.
func (l *Locator) Nearest(p r2.Point) int {
	if len(l.points) == 0 {
		return -1
	}
	p = l.bounds.Wrap(p)
	c0, r0 := l.cell(p)

	best, bestDist := -1, math.Inf(1)
	maxRing := max(l.cols, l.rows)/2 + 1
	for ring := 0; ring <= maxRing; ring++ {
		// Everything beyond this ring is at least ring cells away.
		if best >= 0 && bestDist <= float64(ring-1)*math.Min(l.cellW, l.cellH) {
			break
		}
		for dr := -ring; dr <= ring; dr++ {
			for dc := -ring; dc <= ring; dc++ {
				if max(abs(dr), abs(dc)) != ring {
					continue
				}
				c := mod(c0+dc, l.cols)
				r := mod(r0+dr, l.rows)
				for _, idx := range l.buckets[r*l.cols+c] {
					d := l.bounds.Distance(p, l.points[idx])
					if d < bestDist || (d == bestDist && idx < best) {
						best, bestDist = idx, d
					}
				}
			}
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
