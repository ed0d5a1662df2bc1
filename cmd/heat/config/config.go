// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the heat command.
package config

import (
	"log/slog"

	"cogentcore.org/heat/cli"
	"cogentcore.org/heat/logx"
)

// Config is the configuration of the heat command. Values come from
// the `default:` tags, then the config file if any, then the flags.
type Config struct {

	// Includes are other config files to load before this one.
	Includes []string `toml:"includes" yaml:"includes" flag:"-"`

	// Input is the image file to load the grid from:
	// red is the heat floor and starting temperature, blue the conduction.
	Input string `toml:"input" yaml:"input" short:"i" desc:"input image file (png, jpeg, gif, bmp, tiff or webp)"`

	// Output is the file to write the final temperature image to.
	Output string `toml:"output" yaml:"output" default:"result.png" short:"o" desc:"output image file"`

	// NP is the number of procs for an in-process distributed solve.
	// 1 solves serially.
	NP int `toml:"np" yaml:"np" default:"1" short:"n" desc:"number of in-process procs (1 = serial)"`

	// Rank is the rank of this process in a networked solve.
	Rank int `toml:"rank" yaml:"rank" short:"r" desc:"rank of this process in a networked solve"`

	// Peers are the host:port addresses of all ranks of a networked
	// solve, in rank order.
	Peers []string `toml:"peers" yaml:"peers" short:"p" desc:"host:port of every rank of a networked solve, in rank order"`

	// DialTimeout is how long to keep retrying to connect to a peer.
	DialTimeout cli.Duration `toml:"dial-timeout" yaml:"dial-timeout" default:"30s" desc:"how long to keep retrying to connect to a peer"`

	// Compression enables per message compression between peers.
	Compression bool `toml:"compression" yaml:"compression" desc:"compress messages between peers"`

	// MaxSize, if positive, downscales the input image so that neither
	// side exceeds it.
	MaxSize int `toml:"max-size" yaml:"max-size" desc:"downscale the input so neither side exceeds this (0 = no limit)"`

	// Width is the width of a generated input.
	Width int `toml:"width" yaml:"width" default:"256" desc:"width of a generated input"`

	// Height is the height of a generated input.
	Height int `toml:"height" yaml:"height" default:"256" desc:"height of a generated input"`

	// Seed is the random seed of a generated input.
	Seed uint64 `toml:"seed" yaml:"seed" default:"1" desc:"random seed of a generated input"`

	// Verbose shows informational messages.
	Verbose bool `toml:"verbose" yaml:"verbose" short:"v" desc:"show informational messages"`

	// Debug shows a message for every sweep.
	Debug bool `toml:"debug" yaml:"debug" desc:"show a debug message for every sweep"`

	// Quiet only shows errors.
	Quiet bool `toml:"quiet" yaml:"quiet" short:"q" desc:"only show errors"`

	// Config is the TOML or YAML file to load the config from.
	Config string `toml:"-" yaml:"-" short:"c" desc:"TOML or YAML config file"`
}

// IncludesPtr implements [cli.Includer].
func (c *Config) IncludesPtr() *[]string { return &c.Includes }

// New returns a new config with the default values set.
func New() *Config {
	c := &Config{}
	cli.SetFromDefaults(c)
	return c
}

// Level returns the logging level selected by the flags.
func (c *Config) Level() slog.Level {
	return logx.LevelFromFlags(c.Debug, c.Verbose, c.Quiet)
}

// ExpandPaths expands a leading ~ in the input and output paths.
func (c *Config) ExpandPaths() error {
	var err error
	if c.Input, err = cli.ExpandPath(c.Input); err != nil {
		return err
	}
	c.Output, err = cli.ExpandPath(c.Output)
	return err
}
