// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heat

import (
	"cogentcore.org/heat/base/mpi"
	"cogentcore.org/heat/grid"
	"golang.org/x/sync/errgroup"
)

// SolveLocal runs a distributed solve of the grid with nprocs procs
// in the current process, each in its own goroutine, communicating
// through an in-process [mpi.Comm] world. The final temperatures are
// gathered into g, and the result of the root proc is returned.
// configure, if non-nil, is called on the solver of each proc before
// it runs. If any proc fails, all of them are aborted.
func SolveLocal(g *grid.Grid, nprocs int, configure func(sv *Solver)) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if _, err := Partition(g.Height, nprocs); err != nil {
		return nil, err
	}
	world := mpi.NewLocalWorld(nprocs)
	defer func() {
		for _, cm := range world {
			cm.Close()
		}
	}()
	grids := make([]*grid.Grid, nprocs)
	grids[mpi.Root] = g
	for rank := 1; rank < nprocs; rank++ {
		grids[rank] = g.Clone()
	}
	results := make([]*Result, nprocs)
	var eg errgroup.Group
	for rank, cm := range world {
		eg.Go(func() error {
			sv := NewSolver(cm)
			if configure != nil {
				configure(sv)
			}
			res, err := sv.Run(grids[rank])
			if err != nil {
				for _, c := range world {
					c.Close()
				}
				return err
			}
			results[rank] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results[mpi.Root], nil
}
