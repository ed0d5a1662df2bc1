// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mpi provides a message-passing communicator among a fixed
// group of processes (ranks), with blocking and non-blocking point-to-point
// messages and collective reductions of float32 values.
//
// The actual message delivery is done by a [Transport]: [NewLocalWorld]
// creates an in-process world where each rank typically runs in its own
// goroutine, and [NewWebsocketComm] connects separate OS processes over
// websockets.
package mpi

import (
	"fmt"
	"slices"

	"cogentcore.org/heat/base/errors"
)

// set LogErrors to control whether MPI errors are automatically logged or not
var LogErrors = true

// Op is an aggregation operation: Sum, Min, Max, etc
type Op int

const (
	OpSum Op = iota
	OpMax
	OpMin
	OpProd
)

func (op Op) String() string {
	switch op {
	case OpSum:
		return "Sum"
	case OpMax:
		return "Max"
	case OpMin:
		return "Min"
	case OpProd:
		return "Prod"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// apply combines b into a, element-wise.
func (op Op) apply(a, b []float32) {
	for i, v := range b {
		switch op {
		case OpSum:
			a[i] += v
		case OpMax:
			a[i] = max(a[i], v)
		case OpMin:
			a[i] = min(a[i], v)
		case OpProd:
			a[i] *= v
		}
	}
}

const (
	// Root is the rank 0 node -- it is more semantic to use this
	Root int = 0
)

// tags used internally by collective operations; user tags must be >= 0.
const (
	tagReduce = -1 - iota
	tagResult
)

// ErrClosed is returned by receives on a communicator that has been closed.
var ErrClosed = errors.New("mpi: communicator closed")

// Transport delivers messages between ranks. Messages sent from one rank
// to another with the same tag are received in the order they were sent.
// Send must not retain vals after it returns. Recv blocks until a message
// from the given rank with the given tag is available, or the transport
// is closed.
type Transport interface {
	Send(toProc, tag int, vals []float32) error
	Recv(fromProc, tag int) ([]float32, error)
	Close() error
}

// Comm is the MPI communicator -- all MPI communication operates as methods
// on this struct. It is safe to have several non-blocking requests
// outstanding at the same time, as long as they use distinct
// (rank, tag) pairs.
type Comm struct {
	rank int
	size int
	tr   Transport
}

// NewComm creates a new communicator for the given rank
// in a world of the given size, using the given transport.
func NewComm(rank, size int, tr Transport) (*Comm, error) {
	if size < 1 {
		return nil, fmt.Errorf("mpi.NewComm: size must be >= 1, not %d", size)
	}
	if rank < 0 || rank >= size {
		return nil, fmt.Errorf("mpi.NewComm: rank %d out of range for size %d", rank, size)
	}
	return &Comm{rank: rank, size: size, tr: tr}, nil
}

// Rank returns the rank/ID for this proc
func (cm *Comm) Rank() (rank int) {
	return cm.rank
}

// Size returns the number of procs in this communicator
func (cm *Comm) Size() (size int) {
	return cm.size
}

// IsRoot returns true if this proc is the [Root].
func (cm *Comm) IsRoot() bool {
	return cm.rank == Root
}

func (cm *Comm) checkProc(proc int, fun string) error {
	if proc < 0 || proc >= cm.size {
		return fmt.Errorf("mpi.%s: proc %d out of range for size %d", fun, proc, cm.size)
	}
	return nil
}

func (cm *Comm) logErr(err error) error {
	if LogErrors {
		return errors.Log(err)
	}
	return err
}

// SendF32 sends values to toProc, using given unique tag identifier.
// This is blocking until the transport has accepted the message.
func (cm *Comm) SendF32(toProc int, tag int, vals []float32) error {
	if err := cm.checkProc(toProc, "SendF32"); err != nil {
		return cm.logErr(err)
	}
	return cm.logErr(cm.tr.Send(toProc, tag, vals))
}

// RecvF32 receives values from proc fmProc, using given unique tag identifier.
// This is blocking until a message is received, and the number of received
// values must match len(vals).
func (cm *Comm) RecvF32(fromProc int, tag int, vals []float32) error {
	if err := cm.checkProc(fromProc, "RecvF32"); err != nil {
		return cm.logErr(err)
	}
	msg, err := cm.tr.Recv(fromProc, tag)
	if err != nil {
		return cm.logErr(err)
	}
	if len(msg) != len(vals) {
		return cm.logErr(fmt.Errorf("mpi.RecvF32: from proc %d tag %d: got %d values, expected %d", fromProc, tag, len(msg), len(vals)))
	}
	copy(vals, msg)
	return nil
}

// ISendF32 starts sending values to toProc, using given unique tag identifier,
// and returns immediately. vals must not be modified until
// [Request.Wait] has returned.
func (cm *Comm) ISendF32(toProc int, tag int, vals []float32) *Request {
	req := newRequest()
	go func() {
		req.finish(cm.SendF32(toProc, tag, vals))
	}()
	return req
}

// IRecvF32 starts receiving values from fromProc into vals, using given
// unique tag identifier, and returns immediately. vals must not be read
// until [Request.Wait] has returned.
func (cm *Comm) IRecvF32(fromProc int, tag int, vals []float32) *Request {
	req := newRequest()
	go func() {
		req.finish(cm.RecvF32(fromProc, tag, vals))
	}()
	return req
}

// AllReduceF32 reduces all values across procs to all procs from orig into dest
// using given operation. The values are combined on the [Root] in rank order
// and the result is sent back to every proc, so all procs receive
// bit-identical results. dest and orig may be the same slice.
func (cm *Comm) AllReduceF32(op Op, dest, orig []float32) error {
	if len(dest) != len(orig) {
		return cm.logErr(fmt.Errorf("mpi.AllReduceF32: dest len %d != orig len %d", len(dest), len(orig)))
	}
	if cm.size == 1 {
		copy(dest, orig)
		return nil
	}
	if cm.rank != Root {
		if err := cm.SendF32(Root, tagReduce, orig); err != nil {
			return err
		}
		return cm.RecvF32(Root, tagResult, dest)
	}
	acc := slices.Clone(orig)
	buf := make([]float32, len(orig))
	for r := 1; r < cm.size; r++ {
		if err := cm.RecvF32(r, tagReduce, buf); err != nil {
			return err
		}
		op.apply(acc, buf)
	}
	for r := 1; r < cm.size; r++ {
		if err := cm.SendF32(r, tagResult, acc); err != nil {
			return err
		}
	}
	copy(dest, acc)
	return nil
}

// Barrier forces synchronisation
func (cm *Comm) Barrier() error {
	v := []float32{0}
	return cm.AllReduceF32(OpSum, v, v)
}

// Close closes the underlying transport. Pending receives on this proc
// return [ErrClosed].
func (cm *Comm) Close() error {
	return cm.tr.Close()
}

// Request is a handle on a non-blocking send or receive.
type Request struct {
	done chan struct{}
	err  error
}

func newRequest() *Request {
	return &Request{done: make(chan struct{})}
}

func (r *Request) finish(err error) {
	r.err = err
	close(r.done)
}

// Wait blocks until the request has completed, returning any error.
// There is no timeout: a peer that never sends blocks Wait forever.
func (r *Request) Wait() error {
	<-r.done
	return r.err
}

// WaitAll waits for all of the given requests to complete, and
// returns all of their errors joined together.
func WaitAll(reqs ...*Request) error {
	var errs []error
	for _, r := range reqs {
		if err := r.Wait(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
