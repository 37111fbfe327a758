// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating planar point sets used by
// the triangulation and diagram tests, benchmarks and examples.

package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates cnt uniformly distributed points inside [0, width) × [0, height).
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, width, height float64, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	for i := 0; i < cnt; i++ {
		points[i] = r2.Point{
			X: random.Float64() * width,
			Y: random.Float64() * height,
		}
	}

	return points
}

// GenerateGridPoints generates a jittered cols × rows grid filling [0, width) × [0, height).
// Every point stays inside its own grid cell, so the minimum distance between points is
// bounded below by the cell size times (1 - jitter).
func GenerateGridPoints(cols, rows int, width, height, jitter float64, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	cw := width / float64(cols)
	ch := height / float64(rows)
	points := make([]r2.Point, 0, cols*rows)

	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			dx := (random.Float64() - 0.5) * jitter * cw
			dy := (random.Float64() - 0.5) * jitter * ch
			points = append(points, r2.Point{
				X: (float64(i)+0.5)*cw + dx,
				Y: (float64(j)+0.5)*ch + dy,
			})
		}
	}

	return points
}
