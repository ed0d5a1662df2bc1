// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"log/slog"

	"cogentcore.org/heat/base/iox/imagex"
	"cogentcore.org/heat/base/randx"
	"cogentcore.org/heat/cmd/heat/config"
	"cogentcore.org/heat/grid"
)

// Gen writes a random input image of the configured size to the
// output file. The same seed always gives the same image.
func Gen(c *config.Config) error {
	if c.Width < grid.MinSize || c.Height < grid.MinSize {
		return usageError(fmt.Errorf("gen: %dx%d is smaller than %dx%d", c.Width, c.Height, grid.MinSize, grid.MinSize))
	}
	g := grid.Random(c.Width, c.Height, randx.NewSysRand(c.Seed))
	if err := imagex.Save(grid.ToImage(g), c.Output); err != nil {
		return &ExitError{Code: ExitSave, Err: err}
	}
	slog.Info("generated", "output", c.Output, "grid", g.String(), "seed", c.Seed)
	return nil
}
