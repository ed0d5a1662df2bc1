// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import "cogentcore.org/heat/base/randx"

// Random returns a new grid with random heat floors on the 0..255 scale,
// temperatures equal to the heat floors, and random conductions in
// steps of 1/[ConductionScale], as if loaded from a random image.
func Random(width, height int, rnd randx.Rand) *Grid {
	g := New(width, height)
	for i := range g.Heat {
		g.Heat[i] = float32(rnd.Intn(256))
		g.Temp[i] = g.Heat[i]
		g.Cond[i] = float32(rnd.Intn(ConductionScale)) / ConductionScale
	}
	return g
}
