// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package border

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/torus"
)

// Path is a jagged border in the folded frame of its key. Points runs from Start to End.
type Path struct {
	Start, End r2.Point
	Points     []r2.Point
}

type entry struct {
	once sync.Once
	path Path
	done bool
}

// Cache holds one jagged path per Key. Each key is computed at most once, even under
// concurrent GetOrCompute calls.
type Cache struct {
	bounds torus.Bounds

	mu      sync.Mutex
	entries map[Key]*entry
	order   []Key

	computed atomic.Int64
}

func NewCache(b torus.Bounds) *Cache {
	return &Cache{
		bounds:  b,
		entries: make(map[Key]*entry),
	}
}

func (c *Cache) Bounds() torus.Bounds {
	return c.bounds
}

// GetOrCompute returns the path stored under k, calling compute to create it if the key
// is new. Concurrent callers for the same key wait for the first computation.
func (c *Cache) GetOrCompute(k Key, compute func() Path) Path {
	c.mu.Lock()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{}
		c.entries[k] = e
		c.order = append(c.order, k)
	}
	c.mu.Unlock()

	e.once.Do(func() {
		p := compute()
		c.computed.Add(1)
		c.mu.Lock()
		e.path = p
		e.done = true
		c.mu.Unlock()
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	return e.path
}

// Len returns the number of keys seen.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Computed returns how many times a compute function has run.
func (c *Cache) Computed() int {
	return int(c.computed.Load())
}

// Each calls fn for every computed path in insertion order.
func (c *Cache) Each(fn func(Key, Path)) {
	c.mu.Lock()
	keys := slices.Clone(c.order)
	paths := make([]Path, 0, len(keys))
	for _, k := range keys {
		paths = append(paths, c.entries[k].path)
	}
	done := make([]bool, len(keys))
	for i, k := range keys {
		done[i] = c.entries[k].done
	}
	c.mu.Unlock()

	for i, k := range keys {
		if done[i] {
			fn(k, paths[i])
		}
	}
}

// Path returns the border from a to b: the cached path oriented to start at a and
// translated back into the frame of a and b. Without a cached path it returns the
// straight segment.
func (c *Cache) Path(a, b r2.Point) []r2.Point {
	k, shift := KeyFor(a, b, c.bounds)

	c.mu.Lock()
	e, ok := c.entries[k]
	var p Path
	if ok && e.done {
		p = e.path
	}
	c.mu.Unlock()
	if !ok || len(p.Points) < 2 {
		return []r2.Point{a, b}
	}

	qa, qb := quantise(a).Add(shift), quantise(b).Add(shift)
	var pts []r2.Point
	switch {
	case qa == p.Start && qb == p.End:
		pts = slices.Clone(p.Points)
	case qa == p.End && qb == p.Start:
		pts = slices.Clone(p.Points)
		slices.Reverse(pts)
	default:
		// Another segment sharing the bounding rectangle.
		return []r2.Point{a, b}
	}

	for i := range pts {
		pts[i] = pts[i].Sub(shift)
	}
	pts[0], pts[len(pts)-1] = a, b
	return pts
}

// Outline returns the closed jagged outline of polygon. The first point is not repeated
// at the end.
func (c *Cache) Outline(polygon []r2.Point) []r2.Point {
	var out []r2.Point
	for i, a := range polygon {
		b := polygon[(i+1)%len(polygon)]
		seg := c.Path(a, b)
		out = append(out, seg[:len(seg)-1]...)
	}
	return out
}
