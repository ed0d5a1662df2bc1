// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpi

import "slices"

// localTransport delivers messages between ranks in the same process.
type localTransport struct {
	rank  int
	boxes []*mailbox
}

// NewLocalWorld returns the communicators of an in-process world of n procs,
// indexed by rank. Each Comm should be used by its own goroutine.
// Sends never block.
func NewLocalWorld(n int) []*Comm {
	boxes := make([]*mailbox, n)
	for i := range boxes {
		boxes[i] = newMailbox()
	}
	comms := make([]*Comm, n)
	for r := range comms {
		comms[r] = &Comm{rank: r, size: n, tr: &localTransport{rank: r, boxes: boxes}}
	}
	return comms
}

func (lt *localTransport) Send(toProc, tag int, vals []float32) error {
	lt.boxes[toProc].put(lt.rank, tag, slices.Clone(vals))
	return nil
}

func (lt *localTransport) Recv(fromProc, tag int) ([]float32, error) {
	return lt.boxes[lt.rank].get(fromProc, tag)
}

func (lt *localTransport) Close() error {
	lt.boxes[lt.rank].close()
	return nil
}
