// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"image"
	"image/color"

	"cogentcore.org/heat/base/iox/imagex"
)

// ConductionScale is the divisor applied to the 8-bit conduction channel,
// mapping it into [0, 1).
const ConductionScale = 256

// FromImage returns a new grid loaded from the given image.
// The red channel gives both the heat floor and the initial temperature,
// and the blue channel divided by [ConductionScale] gives the conduction.
// The green channel is not used. Values stay on the 0..255 scale.
func FromImage(img image.Image) (*Grid, error) {
	b := img.Bounds()
	g := New(b.Dx(), b.Dy())
	if err := g.Validate(); err != nil {
		return nil, err
	}
	rgba := imagex.AsRGBA(img)
	rb := rgba.Bounds()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			off := rgba.PixOffset(rb.Min.X+x, rb.Min.Y+y)
			red := float32(rgba.Pix[off])
			blue := float32(rgba.Pix[off+2])
			g.Set(x, y, red, red, blue/ConductionScale)
		}
	}
	return g, nil
}

// ToImage returns an image from which [FromImage] loads the heat floors
// and conductions of the grid, with channels rounded down to 8 bits.
// The temperatures are not stored.
func ToImage(g *Grid) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := range g.Height {
		for x := range g.Width {
			i := g.Index(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(min(max(g.Heat[i], 0), 255)),
				B: uint8(min(max(g.Cond[i]*ConductionScale, 0), 255)),
				A: 255,
			})
		}
	}
	return img
}
