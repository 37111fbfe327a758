// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package torus

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/luisantonioa/dom3mapgen/utils"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"square", 100, 100, false},
		{"zero width", 0, 100, true},
		{"negative height", 100, -1, true},
		{"nan", math.NaN(), 10, true},
		{"inf", math.Inf(1), 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	tests := []struct {
		p    r2.Point
		want bool
	}{
		{r2.Point{X: 0, Y: 0}, true},
		{r2.Point{X: 99.9, Y: 49.9}, true},
		{r2.Point{X: 100, Y: 10}, false},
		{r2.Point{X: 10, Y: 50}, false},
		{r2.Point{X: -0.1, Y: 10}, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.p); got != tt.want {
			t.Errorf("b.Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestBounds_Wrap(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	tests := []struct {
		p, want r2.Point
	}{
		{r2.Point{X: 10, Y: 10}, r2.Point{X: 10, Y: 10}},
		{r2.Point{X: 110, Y: 60}, r2.Point{X: 10, Y: 10}},
		{r2.Point{X: -10, Y: -10}, r2.Point{X: 90, Y: 40}},
		{r2.Point{X: 100, Y: 50}, r2.Point{X: 0, Y: 0}},
		{r2.Point{X: -250, Y: 125}, r2.Point{X: 50, Y: 25}},
	}
	for _, tt := range tests {
		got := b.Wrap(tt.p)
		if got != tt.want {
			t.Errorf("b.Wrap(%v) = %v, want %v", tt.p, got, tt.want)
		}
		if !b.Contains(got) {
			t.Errorf("b.Wrap(%v) = %v, want inside bounds", tt.p, got)
		}
	}
}

func TestBounds_Offsets(t *testing.T) {
	b := Bounds{Width: 10, Height: 20}
	want := []r2.Point{
		{X: -10, Y: -20}, {X: -10, Y: 0}, {X: -10, Y: 20},
		{X: 0, Y: -20}, {X: 0, Y: 20},
		{X: 10, Y: -20}, {X: 10, Y: 0}, {X: 10, Y: 20},
	}
	if diff := cmp.Diff(want, b.Offsets()); diff != "" {
		t.Errorf("b.Offsets() mismatch (-want +got):\n%s", diff)
	}
	if got := len(b.Tiles()); got != 9 {
		t.Errorf("len(b.Tiles()) = %v, want 9", got)
	}
	if got := len(b.Translations()); got != 5 {
		t.Errorf("len(b.Translations()) = %v, want 5", got)
	}
}

func TestBounds_Ghosts(t *testing.T) {
	b := Bounds{Width: 100, Height: 100}
	reals := utils.GenerateRandomPoints(7, 100, 100, 1)
	all := b.Ghosts(reals)
	if len(all) != 9*len(reals) {
		t.Fatalf("len(b.Ghosts(...)) = %v, want %v", len(all), 9*len(reals))
	}
	for i, p := range all {
		orig := reals[i%len(reals)]
		if i < len(reals) {
			if !b.Contains(p) {
				t.Errorf("real %d = %v, want inside bounds", i, p)
			}
			continue
		}
		if b.Contains(p) {
			t.Errorf("ghost %d = %v, want outside bounds", i, p)
		}
		if w := b.Wrap(p); w.Sub(orig).Norm() > 1e-9 {
			t.Errorf("b.Wrap(ghost %d) = %v, want %v", i, w, orig)
		}
	}
}

func TestBounds_Distance(t *testing.T) {
	b := Bounds{Width: 100, Height: 100}
	tests := []struct {
		p, q r2.Point
		want float64
	}{
		{r2.Point{X: 10, Y: 10}, r2.Point{X: 20, Y: 10}, 10},
		{r2.Point{X: 5, Y: 10}, r2.Point{X: 95, Y: 10}, 10},
		{r2.Point{X: 5, Y: 5}, r2.Point{X: 95, Y: 95}, math.Sqrt(200)},
	}
	for _, tt := range tests {
		if got := b.Distance(tt.p, tt.q); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("b.Distance(%v, %v) = %v, want %v", tt.p, tt.q, got, tt.want)
		}
	}
}

func TestBounds_SegmentVisible(t *testing.T) {
	b := Bounds{Width: 100, Height: 100}
	tests := []struct {
		name string
		a, c r2.Point
		want bool
	}{
		{"inside", r2.Point{X: 10, Y: 10}, r2.Point{X: 20, Y: 20}, true},
		{"one endpoint inside", r2.Point{X: 90, Y: 50}, r2.Point{X: 110, Y: 50}, true},
		{"crossing corner", r2.Point{X: -10, Y: 15}, r2.Point{X: 15, Y: -10}, true},
		{"outside", r2.Point{X: 110, Y: 10}, r2.Point{X: 120, Y: 20}, false},
		{"outside diagonal", r2.Point{X: -10, Y: 5}, r2.Point{X: -5, Y: -10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.SegmentVisible(tt.a, tt.c); got != tt.want {
				t.Errorf("b.SegmentVisible(%v, %v) = %v, want %v", tt.a, tt.c, got, tt.want)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 r2.Point
		want           bool
	}{
		{"cross", r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 2}, r2.Point{X: 0, Y: 2}, r2.Point{X: 2, Y: 0}, true},
		{"parallel", r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 0, Y: 1}, r2.Point{X: 2, Y: 1}, false},
		{"touching", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 0}, true},
		{"collinear overlap", r2.Point{X: 0, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 3, Y: 0}, true},
		{"collinear disjoint", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 2, Y: 0}, r2.Point{X: 3, Y: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentsIntersect(tt.p1, tt.p2, tt.p3, tt.p4); got != tt.want {
				t.Errorf("SegmentsIntersect(...) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBounds_ProvinceOrder(t *testing.T) {
	b := Bounds{Width: 100, Height: 100}
	points := []r2.Point{
		{X: 50, Y: 10},
		{X: 10, Y: 90.5},
		{X: 80, Y: 90.2},
		{X: 20, Y: 50},
	}
	want := []r2.Point{
		{X: 10, Y: 90.5},
		{X: 80, Y: 90.2},
		{X: 20, Y: 50},
		{X: 50, Y: 10},
	}
	got := b.ProvinceOrder(points)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("b.ProvinceOrder(...) mismatch (-want +got):\n%s", diff)
	}
	if points[0] != (r2.Point{X: 50, Y: 10}) {
		t.Errorf("b.ProvinceOrder(...) modified its input")
	}
}
