// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package terrain classifies provinces: contiguous seas, deep seas, forests, mountains
// and relative size classes.
package terrain

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"

	"github.com/golang/geo/r2"
)

const (
	DefaultTeleportThreshold = 75
)

// Graph is the province adjacency the classifier works on. Ids run from 1 to Len.
type Graph interface {
	Len() int
	Neighbours(id int) []int
	Area(id int) float64
	Site(id int) r2.Point
}

// CapacityError reports a request for more provinces of a kind than the map can supply.
type CapacityError struct {
	Kind      string
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("terrain: %d %s provinces requested, only %d available",
		e.Requested, e.Kind, e.Available)
}

type Classifier struct {
	SeaCount    int
	ForestCount int
	// TeleportThreshold is the province count above which sea growth occasionally jumps
	// two hops away. The jump probability is TeleportThreshold/N.
	TeleportThreshold int
}

func NewClassifier(sea, forest int) *Classifier {
	return &Classifier{
		SeaCount:          sea,
		ForestCount:       forest,
		TeleportThreshold: DefaultTeleportThreshold,
	}
}

// Classify returns flags for every province: sea growth, deep sea, forests, then size
// classes.
func (c *Classifier) Classify(g Graph, rng *rand.Rand) (Map, error) {
	if c.SeaCount < 0 || c.ForestCount < 0 {
		return nil, fmt.Errorf("terrain: negative province count (sea %d, forest %d)", c.SeaCount, c.ForestCount)
	}
	m := make(Map, g.Len())
	for id := 1; id <= g.Len(); id++ {
		m[id] = 0
	}

	if err := c.growSea(g, m, rng); err != nil {
		return nil, err
	}
	markDeep(g, m)
	if err := c.placeForests(g, m, rng); err != nil {
		return nil, err
	}
	classifySizes(g, m)
	return m, nil
}

func (c *Classifier) growSea(g Graph, m Map, rng *rand.Rand) error {
	n := g.Len()
	if c.SeaCount == 0 {
		return nil
	}
	if c.SeaCount > n {
		return &CapacityError{Kind: "sea", Requested: c.SeaCount, Available: n}
	}

	start := rng.Intn(n) + 1
	if size := componentSize(g, start); c.SeaCount > size {
		return &CapacityError{Kind: "sea", Requested: c.SeaCount, Available: size}
	}

	m[start] |= Sea
	sea := []int{start}
	current := start
	for len(sea) < c.SeaCount {
		if n > c.TeleportThreshold && rng.Float64() < float64(c.TeleportThreshold)/float64(n) {
			for i := 0; i < 2; i++ {
				if nb := g.Neighbours(current); len(nb) > 0 {
					current = nb[rng.Intn(len(nb))]
				}
			}
		}

		// A land neighbour is listed once more for every sea province next to it.
		var candidates []int
		for _, nb := range g.Neighbours(current) {
			if m[nb].Has(Sea) {
				continue
			}
			candidates = append(candidates, nb)
			for _, nn := range g.Neighbours(nb) {
				if m[nn].Has(Sea) {
					candidates = append(candidates, nb)
				}
			}
		}
		if len(candidates) == 0 {
			current = sea[rng.Intn(len(sea))]
			continue
		}

		current = candidates[rng.Intn(len(candidates))]
		m[current] |= Sea
		sea = append(sea, current)
	}
	return nil
}

func componentSize(g Graph, start int) int {
	seen := map[int]bool{start: true}
	queue := []int{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, q := range g.Neighbours(p) {
			if !seen[q] {
				seen[q] = true
				queue = append(queue, q)
			}
		}
	}
	return len(seen)
}

// markDeep flags sea provinces whose neighbours are all sea.
func markDeep(g Graph, m Map) {
	for id := 1; id <= g.Len(); id++ {
		if !m[id].Has(Sea) {
			continue
		}
		nb := g.Neighbours(id)
		if len(nb) == 0 {
			continue
		}
		deep := true
		for _, q := range nb {
			if !m[q].Has(Sea) {
				deep = false
				break
			}
		}
		if deep {
			m[id] |= Deep
		}
	}
}

func (c *Classifier) placeForests(g Graph, m Map, rng *rand.Rand) error {
	land := g.Len() - m.Count(Sea)
	if c.ForestCount > land {
		return &CapacityError{Kind: "forest", Requested: c.ForestCount, Available: land}
	}
	for placed := 0; placed < c.ForestCount; {
		id := rng.Intn(g.Len()) + 1
		if m[id].Has(Sea) || m[id].Has(Forest) {
			continue
		}
		m[id] |= Forest
		placed++
	}
	return nil
}

// classifySizes flags the smallest quarter of provinces by area as Small and the
// largest quarter as Large.
func classifySizes(g Graph, m Map) {
	n := g.Len()
	ids := make([]int, n)
	areas := make([]float64, n+1)
	for i := range ids {
		ids[i] = i + 1
		areas[i+1] = g.Area(i + 1)
	}
	slices.SortStableFunc(ids, func(a, b int) int {
		return cmp.Compare(areas[a], areas[b])
	})
	for i, id := range ids {
		switch {
		case i < n/4:
			m[id] |= Small
		case i >= n*3/4:
			m[id] |= Large
		}
	}
}

// PlaceMountains flags the count highest land provinces that are not forest as
// Mountain. elevation is indexed by id-1.
func PlaceMountains(m Map, elevation []float64, count int) error {
	if count <= 0 {
		return nil
	}
	var ids []int
	for id := 1; id <= len(elevation); id++ {
		if !m[id].Has(Sea) && !m[id].Has(Forest) {
			ids = append(ids, id)
		}
	}
	if count > len(ids) {
		return &CapacityError{Kind: "mountain", Requested: count, Available: len(ids)}
	}
	slices.SortStableFunc(ids, func(a, b int) int {
		return cmp.Compare(elevation[b-1], elevation[a-1])
	})
	for _, id := range ids[:count] {
		m[id] |= Mountain
	}
	return nil
}
