// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"image/color"
	"math"

	"github.com/hsluv/hsluv-go"
	"github.com/luisantonioa/dom3mapgen/terrain"
)

const goldenAngle = 137.50776405003785

// Palette colours the map. No province or border colour is pure white: the game reads
// white pixels as province markers.
type Palette struct {
	Sea    color.RGBA
	Deep   color.RGBA
	Border color.RGBA
	Site   color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Sea:    color.RGBA{R: 135, G: 206, B: 250, A: 0xff}, // LightSkyBlue
		Deep:   color.RGBA{R: 30, G: 144, B: 255, A: 0xff},  // DodgerBlue
		Border: color.RGBA{R: 24, G: 20, B: 16, A: 0xff},
		Site:   color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Province returns the fill colour of province id.
func (p Palette) Province(id int, f terrain.Flags) color.RGBA {
	switch {
	case f.Has(terrain.Deep):
		return p.Deep
	case f.Has(terrain.Sea):
		return p.Sea
	}

	hue := math.Mod(float64(id)*goldenAngle, 360)
	saturation, lightness := 45.0, 62.0
	switch {
	case f.Has(terrain.Forest):
		hue = 100 + math.Mod(float64(id)*goldenAngle, 40)
		saturation, lightness = 70, 45
	case f.Has(terrain.Mountain):
		saturation, lightness = 10, 55
	}
	if f.Has(terrain.Large) {
		lightness -= 6
	}
	if f.Has(terrain.Small) {
		lightness += 6
	}
	return hsluvColor(hue, saturation, lightness)
}

func hsluvColor(h, s, l float64) color.RGBA {
	r, g, b := hsluv.HsluvToRGB(h, s, l)
	return color.RGBA{
		R: channel(r),
		G: channel(g),
		B: channel(b),
		A: 0xff,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(min(max(v, 0), 1) * 0xff))
}
