// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heat

import (
	"fmt"

	"cogentcore.org/heat/base/mpi"
	"cogentcore.org/heat/grid"
)

// Gather collects the temperatures of every proc's band into the grid
// of the root proc, which receives them in rank order. Other procs send
// their band and are then done. It does nothing in serial mode.
func Gather(comm *mpi.Comm, g *grid.Grid, bands []Band) error {
	if comm == nil || comm.Size() == 1 {
		return nil
	}
	rank := comm.Rank()
	if rank != mpi.Root {
		b := bands[rank]
		if err := comm.SendF32(mpi.Root, TagGather, g.TempRows(b.Start, b.End)); err != nil {
			return fmt.Errorf("sending band %v: %w", b, err)
		}
		return nil
	}
	for r := 1; r < comm.Size(); r++ {
		b := bands[r]
		if err := comm.RecvF32(r, TagGather, g.TempRows(b.Start, b.End)); err != nil {
			return fmt.Errorf("gathering band %v from proc %d: %w", b, r, err)
		}
	}
	return nil
}
