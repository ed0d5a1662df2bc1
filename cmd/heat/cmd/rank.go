// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"log/slog"

	"cogentcore.org/heat/base/errors"
	"cogentcore.org/heat/base/mpi"
	"cogentcore.org/heat/cmd/heat/config"
	"cogentcore.org/heat/heat"
)

// Rank runs this process as rank Rank of a solve distributed over
// the processes listening on Peers. Every rank loads the input itself,
// and only rank 0 reports the result and writes the output.
// The result is only complete on rank 0.
func Rank(c *config.Config) (*heat.Result, error) {
	if len(c.Peers) == 0 {
		return nil, usageError(errors.New("rank: no peers given"))
	}
	if c.Rank < 0 || c.Rank >= len(c.Peers) {
		return nil, usageError(fmt.Errorf("rank: rank %d out of range for %d peers", c.Rank, len(c.Peers)))
	}
	g, err := Load(c)
	if err != nil {
		return nil, err
	}
	if _, err := heat.Partition(g.Height, len(c.Peers)); err != nil {
		return nil, usageError(err)
	}
	comm, err := mpi.NewWebsocketComm(c.Rank, c.Peers, mpi.WebsocketOptions{
		DialTimeout: c.DialTimeout.Std(),
		Compression: c.Compression,
	})
	if err != nil {
		return nil, err
	}
	defer comm.Close()
	slog.Info("joined", "rank", comm.Rank(), "size", comm.Size())

	res, err := heat.NewSolver(comm).Run(g)
	if err != nil {
		return nil, solveError(err)
	}
	// every rank stays up until the root has gathered all the bands
	if err := comm.Barrier(); err != nil {
		return nil, err
	}
	report(comm, res)
	if !comm.IsRoot() {
		return res, nil
	}
	return res, Save(c, g, res)
}
