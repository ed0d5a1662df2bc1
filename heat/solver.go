// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heat

import (
	"fmt"
	"log/slog"

	"cogentcore.org/heat/base/mpi"
	"cogentcore.org/heat/grid"
	"cogentcore.org/heat/math32/minmax"
)

// States are the states of a [Solver] run.
type States int32

const (
	// Running is the state while sweeps are still being done.
	Running States = iota

	// Converged means that the global mean change of the last sweep
	// was at or below the threshold.
	Converged

	// Capped means that the maximum number of iterations was reached
	// before converging.
	Capped
)

func (s States) String() string {
	switch s {
	case Running:
		return "Running"
	case Converged:
		return "Converged"
	case Capped:
		return "Capped"
	}
	return fmt.Sprintf("States(%d)", int32(s))
}

// Result is the outcome of a [Solver] run.
type Result struct {

	// Iterations is the number of full sweeps done.
	Iterations int

	// MeanDelta is the global mean change per cell of the last sweep.
	MeanDelta float32

	// State is Converged or Capped.
	State States

	// Range is the range of the final temperatures over the whole grid.
	// It is only set on the root proc.
	Range minmax.F32
}

// MeanDelta8 returns the mean change in units of 8-bit resolution.
func (r *Result) MeanDelta8() float32 {
	return r.MeanDelta * 256
}

// String returns the report line printed at the end of a run.
func (r *Result) String() string {
	return fmt.Sprintf("Iteration #%d, mean adjustment = %g / 256, t_min = %g, t_max = %g", r.Iterations, r.MeanDelta8(), r.Range.Min, r.Range.Max)
}

// Solver runs sweeps over a grid until it converges.
// The zero value is not usable: use [NewSolver].
type Solver struct {

	// Comm is the communicator for distributed mode.
	// If nil, the solver runs in serial mode.
	Comm *mpi.Comm

	// MaxIterations is the maximum number of sweeps.
	MaxIterations int

	// Threshold is the global mean change at or below which
	// the run has converged.
	Threshold float32

	// OnSweep, if set, is called after every sweep with the
	// iteration count and the global mean change.
	OnSweep func(iter int, mean float32)

	// Log receives a debug record per sweep. Defaults to [slog.Default].
	Log *slog.Logger
}

// NewSolver returns a new solver with the default iteration cap
// and threshold, for the given communicator (nil for serial mode).
func NewSolver(comm *mpi.Comm) *Solver {
	return &Solver{
		Comm:          comm,
		MaxIterations: MaxIterations,
		Threshold:     Threshold,
	}
}

// distributed returns whether the solver exchanges halos and reduces
// across procs.
func (sv *Solver) distributed() bool {
	return sv.Comm != nil
}

func (sv *Solver) logger() *slog.Logger {
	if sv.Log != nil {
		return sv.Log
	}
	return slog.Default()
}

// Run sweeps the grid in place until the global mean change is at or
// below the threshold, or the iteration cap is reached. In distributed
// mode every proc calls Run with its own copy of the whole grid, and
// on return the root proc's grid holds the final temperatures of all
// bands. The other procs' grids only hold valid values for their own band.
func (sv *Solver) Run(g *grid.Grid) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	var bands []Band
	band := Interior(g.Height)
	rank := 0
	if sv.distributed() {
		var err error
		bands, err = Partition(g.Height, sv.Comm.Size())
		if err != nil {
			return nil, err
		}
		rank = sv.Comm.Rank()
		band = bands[rank]
	}
	lg := sv.logger().With("rank", rank, "band", band.String())
	cells := g.Len()
	res := &Result{State: Running}
	for res.State == Running {
		if res.Iterations >= sv.MaxIterations {
			res.State = Capped
			break
		}
		local, err := sv.sweep(g, band)
		if err != nil {
			return nil, err
		}
		mean, err := GlobalMeanDelta(sv.Comm, local, cells)
		if err != nil {
			return nil, err
		}
		res.Iterations++
		res.MeanDelta = mean
		lg.Debug("sweep", "iteration", res.Iterations, "mean", mean*256)
		if sv.OnSweep != nil {
			sv.OnSweep(res.Iterations, mean)
		}
		if mean <= sv.Threshold {
			res.State = Converged
		}
	}
	if sv.distributed() {
		if err := Gather(sv.Comm, g, bands); err != nil {
			return nil, err
		}
	}
	if rank == mpi.Root {
		res.Range = g.TempRange()
	}
	lg.Debug("done", "state", res.State, "iterations", res.Iterations)
	return res, nil
}

// sweep does one full sweep over the band, exchanging halos after
// each half in distributed mode, and returns the local sum of changes.
func (sv *Solver) sweep(g *grid.Grid, band Band) (float32, error) {
	if !sv.distributed() {
		return Sweep(g, band), nil
	}
	var sum float32
	for half := range 2 {
		sum += HalfSweep(g, band, half)
		if err := BeginExchange(sv.Comm, g, band).Wait(); err != nil {
			return 0, err
		}
	}
	return sum, nil
}
