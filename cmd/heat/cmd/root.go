// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of the heat tool.
package cmd

import (
	"fmt"

	"cogentcore.org/heat/base/errors"
	"cogentcore.org/heat/cli"
	"cogentcore.org/heat/cmd/heat/config"
	"cogentcore.org/heat/logx"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Root returns the root heat command, with a new [config.Config]
// shared by all of its subcommands.
func Root() *cobra.Command {
	c := config.New()
	root := &cobra.Command{
		Use:   "heat",
		Short: "Relax the heat of an image to its steady state",
		Long: `heat loads a grid from an image, whose red channel is the heat floor
and starting temperature and whose blue channel is the conduction, relaxes
the temperature until it settles, and writes it as a false color image.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	errors.Must(cli.AddFlags(root.PersistentFlags(), c))
	root.AddCommand(
		&cobra.Command{
			Use:   "solve [input]",
			Short: "Solve serially, or with --np procs in this process",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setup(cmd, c, args, true); err != nil {
					return err
				}
				_, err := Solve(c)
				return err
			},
		},
		&cobra.Command{
			Use:   "rank [input]",
			Short: "Run one rank of a solve distributed over --peers",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setup(cmd, c, args, true); err != nil {
					return err
				}
				_, err := Rank(c)
				return err
			},
		},
		&cobra.Command{
			Use:   "gen",
			Short: "Write a random input image to --output",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setup(cmd, c, args, false); err != nil {
					return err
				}
				return Gen(c)
			},
		},
		&cobra.Command{
			Use:   "watch [input]",
			Short: "Solve again every time the input changes",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := setup(cmd, c, args, true); err != nil {
					return err
				}
				return Watch(cmd.Context(), c)
			},
		},
	)
	return root
}

// setup finishes the config of a command: it loads the config file, if
// any, under the flags that were set, takes the input from the
// arguments, and sets up logging.
func setup(cmd *cobra.Command, c *config.Config, args []string, needInput bool) error {
	if c.Config != "" {
		changed := map[string]string{}
		cmd.Flags().Visit(func(f *pflag.Flag) {
			changed[f.Name] = f.Value.String()
		})
		if err := cli.Open(c, c.Config); err != nil {
			return usageError(err)
		}
		for name, val := range changed {
			if err := cmd.Flags().Set(name, val); err != nil {
				return usageError(err)
			}
		}
	}
	if len(args) == 1 {
		c.Input = args[0]
	}
	if needInput && c.Input == "" {
		return usageError(fmt.Errorf("%s: no input image given", cmd.Name()))
	}
	if err := c.ExpandPaths(); err != nil {
		return usageError(err)
	}
	logx.UserLevel = c.Level()
	logx.SetDefaultLogger()
	return nil
}
