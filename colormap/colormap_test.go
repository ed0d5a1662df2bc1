// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colormap

import (
	"image/color"
	"testing"

	"cogentcore.org/heat/grid"
	"cogentcore.org/heat/math32"
	"cogentcore.org/heat/math32/minmax"
	"github.com/stretchr/testify/assert"
)

func TestMapEndpoints(t *testing.T) {
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, Default.Map(0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, Default.Map(1))
	assert.Equal(t, Default.Map(0), Default.Map(-3))
	assert.Equal(t, Default.Map(1), Default.Map(7))
	assert.Equal(t, Default.Map(0), Default.Map(math32.NaN()))
}

func TestMapLinear(t *testing.T) {
	bz := &Bezier{Colors: []color.RGBA{{0, 0, 0, 255}, {200, 100, 50, 255}}}
	assert.Equal(t, color.RGBA{100, 50, 25, 255}, bz.Map(0.5))
	assert.Equal(t, color.RGBA{A: 255}, (&Bezier{}).Map(0.5))
}

func TestMapMonotone(t *testing.T) {
	// brightness rises along the default map
	prev := -1
	for i := range 11 {
		c := Default.Map(float32(i) / 10)
		sum := int(c.R) + int(c.G) + int(c.B)
		assert.GreaterOrEqual(t, sum, prev, "t = %g", float32(i)/10)
		prev = sum
	}
}

func TestRender(t *testing.T) {
	g := grid.New(4, 3)
	for i := range g.Temp {
		g.Temp[i] = float32(i)
	}
	rng := g.TempRange()
	img := Render(g, rng, Default)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	assert.Equal(t, Default.Map(0), img.RGBAAt(0, 0))
	assert.Equal(t, Default.Map(1), img.RGBAAt(3, 2))

	again := Render(g, rng, Default)
	assert.Equal(t, img.Pix, again.Pix)

	flat := Render(g, minmax.F32{Min: 5, Max: 5}, Default)
	for y := range 3 {
		for x := range 4 {
			assert.Equal(t, Default.Map(0), flat.RGBAAt(x, y))
		}
	}
}
