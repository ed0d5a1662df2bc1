// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid provides the 2D heat / temperature / conduction grid
// that the heat solver relaxes.
package grid

import (
	"fmt"

	"cogentcore.org/heat/base/errors"
	"cogentcore.org/heat/math32/minmax"
)

// ErrShape is returned (wrapped) for a malformed grid.
var ErrShape = errors.New("grid: malformed shape")

// MinSize is the minimum width and height of a grid: the 1-cell margin
// on every edge is never updated, so at least one interior cell is needed.
const MinSize = 3

// Grid is a Height x Width grid of cells, each holding a heat floor,
// a temperature, and a conduction coefficient. Each channel is stored
// as its own row-major slice, so that a row of temperatures is contiguous.
//
// Heat and Cond are fixed once loaded; only Temp is relaxed.
type Grid struct {

	// Width is the number of columns.
	Width int

	// Height is the number of rows.
	Height int

	// Heat is the intrinsic heat source level of each cell:
	// the temperature never drops below it.
	Heat []float32

	// Temp is the simulated temperature field.
	Temp []float32

	// Cond is the conduction coefficient in [0, 1] of each cell:
	// the fraction of a computed change that is actually applied.
	Cond []float32
}

// New returns a new zero grid of the given size.
func New(width, height int) *Grid {
	n := max(width, 0) * max(height, 0)
	return &Grid{
		Width:  width,
		Height: height,
		Heat:   make([]float32, n),
		Temp:   make([]float32, n),
		Cond:   make([]float32, n),
	}
}

// Validate returns an error wrapping [ErrShape] if the grid is smaller
// than [MinSize] in either dimension, or any channel does not have
// exactly Width * Height values.
func (g *Grid) Validate() error {
	if g.Width < MinSize || g.Height < MinSize {
		return fmt.Errorf("%w: %dx%d is smaller than %dx%d", ErrShape, g.Width, g.Height, MinSize, MinSize)
	}
	n := g.Width * g.Height
	for _, ch := range []struct {
		name string
		vals []float32
	}{{"heat", g.Heat}, {"temperature", g.Temp}, {"conduction", g.Cond}} {
		if len(ch.vals) != n {
			return fmt.Errorf("%w: %s channel has %d values, expected %d", ErrShape, ch.name, len(ch.vals), n)
		}
	}
	return nil
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return g.Width * g.Height
}

// Index returns the index into the channel slices of cell (x, y).
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// Set sets all three channels of cell (x, y).
func (g *Grid) Set(x, y int, heat, temp, cond float32) {
	i := g.Index(x, y)
	g.Heat[i] = heat
	g.Temp[i] = temp
	g.Cond[i] = cond
}

// TempRow returns row y of the temperature channel.
// It is a view onto Temp, not a copy.
func (g *Grid) TempRow(y int) []float32 {
	return g.Temp[y*g.Width : (y+1)*g.Width]
}

// TempRows returns rows [start, end) of the temperature channel.
// It is a view onto Temp, not a copy.
func (g *Grid) TempRows(start, end int) []float32 {
	return g.Temp[start*g.Width : end*g.Width]
}

// TempRange returns the minimum and maximum temperature.
func (g *Grid) TempRange() minmax.F32 {
	return minmax.Of(g.Temp)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		Width:  g.Width,
		Height: g.Height,
		Heat:   append([]float32(nil), g.Heat...),
		Temp:   append([]float32(nil), g.Temp...),
		Cond:   append([]float32(nil), g.Cond...),
	}
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid %dx%d", g.Width, g.Height)
}
