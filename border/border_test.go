// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package border

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/luisantonioa/dom3mapgen/sampler"
	"github.com/luisantonioa/dom3mapgen/torus"
	"github.com/luisantonioa/dom3mapgen/voronoi"
)

func TestInterp(t *testing.T) {
	a := r2.Point{X: 10, Y: 0}
	b := r2.Point{X: 0, Y: 20}
	tests := []struct {
		pos  float64
		want r2.Point
	}{
		{0, b},
		{1, a},
		{0.5, r2.Point{X: 5, Y: 10}},
		{0.25, r2.Point{X: 2.5, Y: 15}},
	}
	for _, tt := range tests {
		if got := Interp(a, b, tt.pos); got != tt.want {
			t.Errorf("Interp(%v, %v, %v) = %v, want %v", a, b, tt.pos, got, tt.want)
		}
	}
}

func TestKeyFor_Invariance(t *testing.T) {
	b := torus.Bounds{Width: 1024, Height: 768}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		// Endpoints near the seams so that many segments cross them.
		a := r2.Point{X: rng.Float64()*80 - 40, Y: rng.Float64()*80 - 40}
		c := a.Add(r2.Point{X: rng.Float64()*60 - 30, Y: rng.Float64()*60 - 30})
		want, _ := KeyFor(a, c, b)

		if got, _ := KeyFor(c, a, b); got != want {
			t.Errorf("case %d: KeyFor(c, a) = %v, want %v", i, got, want)
		}
		for _, o := range b.Tiles() {
			if got, _ := KeyFor(a.Add(o), c.Add(o), b); got != want {
				t.Errorf("case %d: KeyFor translated by %v = %v, want %v", i, o, got, want)
			}
		}
	}
}

func TestKeyFor_Folded(t *testing.T) {
	b := torus.Bounds{Width: 100, Height: 100}
	k, shift := KeyFor(r2.Point{X: 8, Y: 12}, r2.Point{X: -5, Y: 10}, b)
	want := r2.RectFromPoints(r2.Point{X: 95, Y: 10}, r2.Point{X: 108, Y: 12})
	if k.Rect() != want {
		t.Errorf("KeyFor(...) = %v, want %v", k.Rect(), want)
	}
	if want := (r2.Point{X: 100, Y: 0}); shift != want {
		t.Errorf("KeyFor(...) shift = %v, want %v", shift, want)
	}
}

func TestCache_ComputeOnce(t *testing.T) {
	const (
		workers = 16
		keys    = 10
	)
	c := NewCache(torus.Bounds{Width: 100, Height: 100})

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < keys; i++ {
				a := r2.Point{X: float64(i), Y: 0}
				b := r2.Point{X: float64(i), Y: 5}
				k, _ := KeyFor(a, b, c.Bounds())
				p := c.GetOrCompute(k, func() Path {
					return Path{Start: a, End: b, Points: []r2.Point{a, b}}
				})
				if p.Start != a {
					t.Errorf("GetOrCompute(key %d).Start = %v, want %v", i, p.Start, a)
				}
			}
		}()
	}
	wg.Wait()

	if got := c.Computed(); got != keys {
		t.Errorf("c.Computed() = %v, want %v", got, keys)
	}
	if got := c.Len(); got != keys {
		t.Errorf("c.Len() = %v, want %v", got, keys)
	}
}

func TestCache_PathFallback(t *testing.T) {
	c := NewCache(torus.Bounds{Width: 100, Height: 100})
	a, b := r2.Point{X: 1, Y: 2}, r2.Point{X: 30, Y: 40}
	want := []r2.Point{a, b}
	if diff := cmp.Diff(want, c.Path(a, b)); diff != "" {
		t.Errorf("c.Path(...) mismatch (-want +got):\n%s", diff)
	}
}

func TestSynthesizer_NoisyLine(t *testing.T) {
	s := NewSynthesizer(torus.Bounds{Width: 100, Height: 100}, rand.New(rand.NewSource(0)))
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 20, Y: 40}
	c := r2.Point{X: 80, Y: 80}
	d := r2.Point{X: 40, Y: -10}

	got := s.NoisyLine(a, b, c, d)
	if len(got) < 3 {
		t.Fatalf("len(s.NoisyLine(...)) = %v, want >= 3", len(got))
	}
	if got[0] != a || got[len(got)-1] != c {
		t.Errorf("s.NoisyLine(...) runs %v -> %v, want %v -> %v", got[0], got[len(got)-1], a, c)
	}

	s.MinLength = 1e6
	if got := s.NoisyLine(a, b, c, d); len(got) != 2 {
		t.Errorf("len(s.NoisyLine(...)) with large MinLength = %v, want 2", len(got))
	}
}

func TestSynthesizer_JaggedDeterministic(t *testing.T) {
	b := torus.Bounds{Width: 200, Height: 200}
	a, c := r2.Point{X: 50, Y: 20}, r2.Point{X: 60, Y: 120}
	l, r := r2.Point{X: 10, Y: 70}, r2.Point{X: 110, Y: 75}

	s1 := NewSynthesizer(b, rand.New(rand.NewSource(9)))
	s2 := NewSynthesizer(b, rand.New(rand.NewSource(9)))
	p1 := s1.Jagged(a, c, l, r)
	p2 := s2.Jagged(a, c, l, r)
	if diff := cmp.Diff(p1, p2); diff != "" {
		t.Errorf("Jagged(...) mismatch (-want +got):\n%s", diff)
	}
	if p1[0] != a || p1[len(p1)-1] != c {
		t.Errorf("Jagged(...) runs %v -> %v, want %v -> %v", p1[0], p1[len(p1)-1], a, c)
	}
	for i := 1; i < len(p1); i++ {
		if p1[i] == p1[i-1] {
			t.Errorf("Jagged(...) repeats point %v at %d", p1[i], i)
		}
	}
}

func TestSynthesizer_Synthesize(t *testing.T) {
	b := torus.Bounds{Width: 1024, Height: 1024}
	d, _ := mustDiagram(t, b, 150, 1)
	s := NewSynthesizer(b, rand.New(rand.NewSource(1)))

	st, err := s.Synthesize(d)
	if err != nil {
		t.Fatalf("s.Synthesize(...) error = %v, want nil", err)
	}
	if st.Edges == 0 || st.Hits == 0 {
		t.Errorf("s.Synthesize(...) stats = %+v, want edges and cache hits", st)
	}
	if got, want := s.Cache.Computed(), s.Cache.Len(); got != want {
		t.Errorf("s.Cache.Computed() = %v, want %v", got, want)
	}
	if got, want := s.Cache.Len(), st.Edges-st.Hits; got != want {
		t.Errorf("s.Cache.Len() = %v, want %v", got, want)
	}

	count := 0
	s.Cache.Each(func(Key, Path) { count++ })
	if count != s.Cache.Len() {
		t.Errorf("s.Cache.Each visited %v paths, want %v", count, s.Cache.Len())
	}
}

func TestCache_PathOrientation(t *testing.T) {
	b := torus.Bounds{Width: 1024, Height: 1024}
	d, _ := mustDiagram(t, b, 150, 2)
	s := NewSynthesizer(b, rand.New(rand.NewSource(2)))
	if _, err := s.Synthesize(d); err != nil {
		t.Fatalf("s.Synthesize(...) error = %v, want nil", err)
	}

	for i, e := range d.Edges {
		if !e.Resolved() || !b.SegmentVisible(e.A, e.B) {
			continue
		}
		forward := s.Cache.Path(e.A, e.B)
		backward := s.Cache.Path(e.B, e.A)
		if forward[0] != e.A || forward[len(forward)-1] != e.B {
			t.Errorf("edge %d: Path runs %v -> %v, want %v -> %v",
				i, forward[0], forward[len(forward)-1], e.A, e.B)
		}
		reversed := make([]r2.Point, len(backward))
		for j, p := range backward {
			reversed[len(backward)-1-j] = p
		}
		if diff := cmp.Diff(forward, reversed); diff != "" {
			t.Errorf("edge %d: Path(b, a) is not the reverse of Path(a, b) (-want +got):\n%s", i, diff)
		}
	}
}

func TestCache_PathTranslation(t *testing.T) {
	b := torus.Bounds{Width: 1024, Height: 1024}
	d, _ := mustDiagram(t, b, 150, 3)
	s := NewSynthesizer(b, rand.New(rand.NewSource(3)))
	if _, err := s.Synthesize(d); err != nil {
		t.Fatalf("s.Synthesize(...) error = %v, want nil", err)
	}

	approx := cmpopts.EquateApprox(0, 1e-9)
	checked := 0
	for _, e := range d.Edges {
		if !e.Resolved() || !b.SegmentVisible(e.A, e.B) {
			continue
		}
		base := s.Cache.Path(e.A, e.B)
		for _, o := range b.Translations() {
			got := s.Cache.Path(e.A.Add(o), e.B.Add(o))
			want := make([]r2.Point, len(base))
			for j, p := range base {
				want[j] = p.Add(o)
			}
			if diff := cmp.Diff(want, got, approx); diff != "" {
				t.Errorf("Path translated by %v mismatch (-want +got):\n%s", o, diff)
			}
		}
		checked++
	}
	if checked == 0 {
		t.Fatalf("no visible edges checked")
	}
}

func TestCache_Outline(t *testing.T) {
	b := torus.Bounds{Width: 512, Height: 512}
	d, sites := mustDiagram(t, b, 40, 4)
	s := NewSynthesizer(b, rand.New(rand.NewSource(4)))
	if _, err := s.Synthesize(d); err != nil {
		t.Fatalf("s.Synthesize(...) error = %v, want nil", err)
	}

	for i := range sites {
		cell, err := d.Cell(i)
		if err != nil {
			t.Fatalf("d.Cell(%d) error = %v, want nil", i, err)
		}
		poly := cell.Polygon()
		outline := s.Cache.Outline(poly)
		if len(outline) < len(poly) {
			t.Errorf("cell %d: len(Outline) = %v, want >= %v", i, len(outline), len(poly))
		}
		if outline[0] != poly[0] {
			t.Errorf("cell %d: Outline starts at %v, want %v", i, outline[0], poly[0])
		}
	}
}

// Benchmarks

func BenchmarkSynthesize(b *testing.B) {
	sizes := []int{50, 150, 400}
	for _, n := range sizes {
		b.Run(fmt.Sprintf("N%d", n), func(b *testing.B) {
			bounds := torus.Bounds{Width: 2048, Height: 2048}
			reals, err := sampler.New(n, bounds).Sample(rand.New(rand.NewSource(0)))
			if err != nil {
				b.Fatalf("Sample(...) error = %v, want nil", err)
			}
			d, err := voronoi.NewDiagram(bounds.Ghosts(reals))
			if err != nil {
				b.Fatalf("voronoi.NewDiagram(...) error = %v, want nil", err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				s := NewSynthesizer(bounds, rand.New(rand.NewSource(0)))
				if _, err := s.Synthesize(d); err != nil {
					b.Fatalf("s.Synthesize(...) error = %v, want nil", err)
				}
			}
		})
	}
}

// Helpers

func mustDiagram(t *testing.T, b torus.Bounds, n int, seed int64) (*voronoi.Diagram, []r2.Point) {
	t.Helper()
	reals, err := sampler.New(n, b).Sample(rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("Sample(...) error = %v, want nil", err)
	}
	d, err := voronoi.NewDiagram(b.Ghosts(reals))
	if err != nil {
		t.Fatalf("voronoi.NewDiagram(...) error = %v, want nil", err)
	}
	return d, reals
}
