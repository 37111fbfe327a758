// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
)

const (
	siteRadius = 3
)

// WriteSVG writes a vector preview of the scene, with the jagged outline of every
// province drawn at the five border translations.
func WriteSVG(w io.Writer, s Scene, p Palette) error {
	width, height, err := s.size()
	if err != nil {
		return err
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fill(p.Border))

	xPoints := make([]int, 0)
	yPoints := make([]int, 0)
	for id := 1; id <= s.Graph.Len(); id++ {
		outline := s.Outline(id)
		style := fill(p.Province(id, s.Terrain[id])) + ";" + stroke(p.Border)
		for _, o := range s.Graph.Bounds.Translations() {
			xPoints = xPoints[:0]
			yPoints = yPoints[:0]
			for _, v := range outline {
				x, y := toScreen(v.Add(o))
				xPoints = append(xPoints, x)
				yPoints = append(yPoints, y)
			}
			canvas.Polygon(xPoints, yPoints, style)
		}
	}

	for _, pr := range s.Graph.Provinces {
		x, y := toScreen(s.Graph.Bounds.Wrap(pr.Site))
		canvas.Circle(x, y, siteRadius, fill(p.Site)+";"+stroke(p.Border))
	}
	canvas.End()
	return nil
}

func toScreen(p r2.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

func fill(c color.RGBA) string {
	return fmt.Sprintf("fill:rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func stroke(c color.RGBA) string {
	return fmt.Sprintf("stroke:rgb(%d,%d,%d);stroke-width:1", c.R, c.G, c.B)
}
