// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colormap maps temperatures to colors along a Bezier curve
// through a list of control colors, and renders whole grids to images.
package colormap

import (
	"image"
	"image/color"

	"cogentcore.org/heat/grid"
	"cogentcore.org/heat/math32"
	"cogentcore.org/heat/math32/minmax"
)

// Bezier is a color map defined by the control points of a Bezier
// curve in RGBA space. The curve passes through the first and last
// colors and is pulled toward the others.
type Bezier struct {

	// Colors are the control points, in order. Alpha is ignored:
	// mapped colors are always opaque.
	Colors []color.RGBA
}

// Default is the standard heat map, from cold to hot:
// black, blue, magenta, red, yellow, white.
var Default = &Bezier{
	Colors: []color.RGBA{
		{0, 0, 0, 255},
		{0, 0, 255, 255},
		{255, 0, 255, 255},
		{255, 0, 0, 255},
		{255, 255, 0, 255},
		{255, 255, 255, 255},
	},
}

// Map returns the color at position t along the curve, with t clipped
// to [0, 1] and NaN mapped to 0. The curve is evaluated with
// de Casteljau's algorithm, and channels are truncated.
func (bz *Bezier) Map(t float32) color.RGBA {
	n := len(bz.Colors)
	if n == 0 {
		return color.RGBA{A: 255}
	}
	if math32.IsNaN(t) {
		t = 0
	}
	u := float64(math32.Clamp(t, 0, 1))
	var pts [][3]float64
	for _, c := range bz.Colors {
		pts = append(pts, [3]float64{float64(c.R), float64(c.G), float64(c.B)})
	}
	for k := n - 1; k > 0; k-- {
		for i := range k {
			for ch := range 3 {
				pts[i][ch] += u * (pts[i+1][ch] - pts[i][ch])
			}
		}
	}
	p := pts[0]
	return color.RGBA{R: channel(p[0]), G: channel(p[1]), B: channel(p[2]), A: 255}
}

func channel(v float64) uint8 {
	return uint8(min(max(v, 0), 255))
}

// Render returns an image of the same size as the grid, with the
// temperature of each cell normalized by rng and mapped through cm.
// If rng has zero extent every cell maps to the start of cm.
func Render(g *grid.Grid, rng minmax.F32, cm *Bezier) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := range g.Height {
		for x := range g.Width {
			img.SetRGBA(x, y, cm.Map(rng.NormValue(g.Temp[g.Index(x, y)])))
		}
	}
	return img
}
