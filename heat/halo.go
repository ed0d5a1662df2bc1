// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heat

import (
	"fmt"

	"cogentcore.org/heat/base/mpi"
	"cogentcore.org/heat/grid"
)

// Message tags.
const (
	// TagUp carries the top row of a band to the proc above.
	TagUp = 123

	// TagGather carries a whole band to the root proc.
	TagGather = 456

	// TagDown carries the bottom row of a band to the proc below.
	TagDown = 789
)

// Neighbors returns the procs above and below the given rank,
// in a ring of nranks procs.
func Neighbors(rank, nranks int) (above, below int) {
	return (rank + nranks - 1) % nranks, (rank + nranks + 1) % nranks
}

// Exchange is a halo exchange in progress, started by [BeginExchange].
type Exchange struct {
	band Band
	reqs []*mpi.Request
}

// BeginExchange starts exchanging the boundary rows of the band with the
// ring neighbors, without blocking: the top row is sent up and the bottom
// row down, while the rows just outside the band are received from the
// neighbors. Neither the band boundary rows nor the halo rows may be
// touched until [Exchange.Wait] returns.
//
// The ring wraps from the last proc to the first; rows received across
// the wrap are discarded, so the fixed margin rows are never overwritten.
func BeginExchange(comm *mpi.Comm, g *grid.Grid, band Band) *Exchange {
	rank, n := comm.Rank(), comm.Size()
	above, below := Neighbors(rank, n)

	fromBelow := g.TempRow(band.End)
	if rank == n-1 {
		fromBelow = make([]float32, g.Width)
	}
	fromAbove := g.TempRow(band.Start - 1)
	if rank == 0 {
		fromAbove = make([]float32, g.Width)
	}
	return &Exchange{
		band: band,
		reqs: []*mpi.Request{
			comm.ISendF32(above, TagUp, g.TempRow(band.Start)),
			comm.IRecvF32(below, TagUp, fromBelow),
			comm.ISendF32(below, TagDown, g.TempRow(band.End-1)),
			comm.IRecvF32(above, TagDown, fromAbove),
		},
	}
}

// Wait blocks until all sends and receives of the exchange are done.
// There is no timeout: if a neighbor never responds, Wait never returns.
func (ex *Exchange) Wait() error {
	if err := mpi.WaitAll(ex.reqs...); err != nil {
		return fmt.Errorf("halo exchange of band %v: %w", ex.band, err)
	}
	return nil
}
