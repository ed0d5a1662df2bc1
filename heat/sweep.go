// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heat

import (
	"cogentcore.org/heat/grid"
	"cogentcore.org/heat/math32"
)

const (
	// NoiseFloor is added to the neighbor average before comparing it
	// with the heat floor: 6.4 units of 8-bit resolution. It keeps the
	// field from settling on a flat minimum.
	NoiseFloor float32 = 6.4 / 256

	// Threshold is the global mean change per cell at or below which
	// the field is considered converged: 0.5 units of 8-bit resolution.
	Threshold float32 = 0.5 / 256

	// MaxIterations bounds the number of sweeps.
	MaxIterations = 5000
)

// Phase is one color of the checkerboard: the cells whose row and
// column parities are Row and Col.
type Phase struct {
	Row int
	Col int
}

// Phases are the four color passes of a full sweep, in order.
// The first two are the cells with an even row + column sum
// and the last two the odd ones, so each half only reads
// neighbors of the other half.
var Phases = [4]Phase{{1, 1}, {0, 0}, {1, 0}, {0, 1}}

// SweepPhase updates all the cells of the given phase within the band,
// and returns the sum of the absolute changes. The margin rows and
// columns of the grid are never updated, even if the band includes them.
//
// Each cell moves toward max(heat, average of 4 neighbors + NoiseFloor)
// by its conduction fraction.
func SweepPhase(g *grid.Grid, band Band, ph Phase) float32 {
	w := g.Width
	t := g.Temp
	start := max(band.Start, 1)
	end := min(band.End, g.Height-1)
	if start%2 != ph.Row {
		start++
	}
	x0 := 1
	if x0%2 != ph.Col {
		x0++
	}
	var sum float32
	for y := start; y < end; y += 2 {
		row := y * w
		for x := x0; x < w-1; x += 2 {
			i := row + x
			avg := (t[i-w]+t[i-1]+t[i+1]+t[i+w])/4 + NoiseFloor
			cand := math32.Max(g.Heat[i], avg)
			delta := g.Cond[i] * (cand - t[i])
			t[i] += delta
			sum += math32.Abs(delta)
		}
	}
	return sum
}

// HalfSweep does the two color passes of the given half (0 or 1) of a sweep.
func HalfSweep(g *grid.Grid, band Band, half int) float32 {
	sum := SweepPhase(g, band, Phases[2*half])
	sum += SweepPhase(g, band, Phases[2*half+1])
	return sum
}

// Sweep does one full sweep of all four color passes over the band,
// and returns the sum of the absolute changes.
func Sweep(g *grid.Grid, band Band) float32 {
	var sum float32
	for _, ph := range Phases {
		sum += SweepPhase(g, band, ph)
	}
	return sum
}
