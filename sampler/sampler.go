// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package sampler draws well-separated province sites by dart throwing.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/luisantonioa/dom3mapgen/torus"
)

const (
	DefaultSeparation    = 30.0
	DefaultMargin        = 10.0
	DefaultMaxRejections = 5000
	DefaultMaxRestarts   = 64

	adaptiveStep = 0.9
)

// DensityError reports that Count points could not be placed Separation apart.
type DensityError struct {
	Count         int
	Separation    float64
	Width, Height float64
	Restarts      int
}

func (e *DensityError) Error() string {
	if e.Restarts == 0 {
		return fmt.Sprintf("sampler: %d points cannot be packed %v apart in %vx%v",
			e.Count, e.Separation, e.Width, e.Height)
	}
	return fmt.Sprintf("sampler: failed to place %d points %v apart in %vx%v after %d restarts",
		e.Count, e.Separation, e.Width, e.Height, e.Restarts)
}

type Sampler struct {
	Count  int
	Bounds torus.Bounds
	// Separation is the minimum distance between two accepted points.
	Separation float64
	// Margin keeps points away from the map edges.
	Margin float64
	// MaxRejections consecutive rejections abandon the current attempt.
	MaxRejections int
	MaxRestarts   int
	// Adaptive lowers Separation by 10% per round, down to MinSeparation, instead of
	// failing.
	Adaptive      bool
	MinSeparation float64
}

func New(count int, b torus.Bounds) *Sampler {
	return &Sampler{
		Count:         count,
		Bounds:        b,
		Separation:    DefaultSeparation,
		Margin:        DefaultMargin,
		MaxRejections: DefaultMaxRejections,
		MaxRestarts:   DefaultMaxRestarts,
	}
}

// Sample returns Count points in province order.
func (s *Sampler) Sample(rng *rand.Rand) ([]r2.Point, error) {
	if s.Count <= 0 {
		return nil, fmt.Errorf("sampler: count must be positive, got %d", s.Count)
	}
	if s.MaxRejections <= 0 || s.MaxRestarts < 0 {
		return nil, errors.New("sampler: attempt budget must be positive")
	}

	d := s.Separation
	for {
		points, err := s.sampleAt(d, rng)
		if err == nil {
			return s.Bounds.ProvinceOrder(points), nil
		}
		if !s.Adaptive || d <= s.MinSeparation {
			return nil, err
		}
		d = math.Max(d*adaptiveStep, s.MinSeparation)
	}
}

func (s *Sampler) sampleAt(d float64, rng *rand.Rand) ([]r2.Point, error) {
	w := s.Bounds.Width - 2*s.Margin
	h := s.Bounds.Height - 2*s.Margin
	if w <= 0 || h <= 0 || s.Count > packingLimit(w, h, d) {
		return nil, &DensityError{
			Count: s.Count, Separation: d, Width: s.Bounds.Width, Height: s.Bounds.Height,
		}
	}

	points := make([]r2.Point, 0, s.Count)
	for restart := 0; restart <= s.MaxRestarts; restart++ {
		points = points[:0]
		rejections := 0
		for len(points) < s.Count && rejections < s.MaxRejections {
			p := r2.Point{
				X: s.Margin + rng.Float64()*w,
				Y: s.Margin + rng.Float64()*h,
			}
			if tooClose(points, p, d) {
				rejections++
				continue
			}
			points = append(points, p)
			rejections = 0
		}
		if len(points) == s.Count {
			return points, nil
		}
	}
	return nil, &DensityError{
		Count: s.Count, Separation: d, Width: s.Bounds.Width, Height: s.Bounds.Height,
		Restarts: s.MaxRestarts,
	}
}

// packingLimit bounds the number of points a w x h rectangle can hold d apart, from the
// density of the hexagonal packing.
func packingLimit(w, h, d float64) int {
	if d <= 0 {
		return math.MaxInt
	}
	return int(2 * (w + d) * (h + d) / (math.Sqrt(3) * d * d))
}

func tooClose(points []r2.Point, p r2.Point, d float64) bool {
	for _, q := range points {
		if p.Sub(q).Norm() < d {
			return true
		}
	}
	return false
}
