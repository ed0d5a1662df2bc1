// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"log/slog"

	"cogentcore.org/heat/base/errors"
	"cogentcore.org/heat/base/iox/imagex"
	"cogentcore.org/heat/base/mpi"
	"cogentcore.org/heat/cmd/heat/config"
	"cogentcore.org/heat/colormap"
	"cogentcore.org/heat/grid"
	"cogentcore.org/heat/heat"
)

// Load reads the grid from the input image, downscaled to
// MaxSize if set.
func Load(c *config.Config) (*grid.Grid, error) {
	img, _, err := imagex.Open(c.Input)
	if err != nil {
		return nil, &ExitError{Code: ExitLoad, Err: err}
	}
	img = imagex.FitSize(img, c.MaxSize)
	g, err := grid.FromImage(img)
	if err != nil {
		return nil, &ExitError{Code: ExitLoad, Err: fmt.Errorf("%s: %w", c.Input, err)}
	}
	slog.Info("loaded", "input", c.Input, "grid", g.String())
	return g, nil
}

// Save writes the temperatures of the grid to the output file,
// through the default color map scaled to the range of the result.
func Save(c *config.Config, g *grid.Grid, res *heat.Result) error {
	img := colormap.Render(g, res.Range, colormap.Default)
	if err := imagex.Save(img, c.Output); err != nil {
		return &ExitError{Code: ExitSave, Err: err}
	}
	slog.Info("saved", "output", c.Output)
	return nil
}

// report prints the result line, on the root proc only.
func report(comm *mpi.Comm, res *heat.Result) {
	comm.Println(res.String())
}

// solveError classifies an error from running a solver.
func solveError(err error) error {
	if errors.Is(err, heat.ErrDecomposition) {
		return usageError(err)
	}
	return err
}

// Solve solves the input serially if NP is 1, or with NP procs in
// this process otherwise, and writes the output.
func Solve(c *config.Config) (*heat.Result, error) {
	if c.NP < 1 {
		return nil, usageError(fmt.Errorf("solve: np must be at least 1, not %d", c.NP))
	}
	g, err := Load(c)
	if err != nil {
		return nil, err
	}
	var res *heat.Result
	if c.NP == 1 {
		res, err = heat.NewSolver(nil).Run(g)
	} else {
		res, err = heat.SolveLocal(g, c.NP, nil)
	}
	if err != nil {
		return nil, solveError(err)
	}
	report(nil, res)
	return res, Save(c, g, res)
}
