// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package heat relaxes the temperature of a [grid.Grid] toward its
// steady state, with a red / black checkerboard stencil.
//
// In serial mode one [Solver] sweeps the whole grid. In distributed mode
// every proc of an [mpi.Comm] runs its own Solver on its own copy of the
// grid, updating only the band of rows it owns: after each half sweep the
// boundary rows are exchanged with the ring neighbors, after each full
// sweep the changes are summed across all procs so that every proc makes
// the same decision to stop, and finally the bands are gathered on the
// root proc.
package heat
