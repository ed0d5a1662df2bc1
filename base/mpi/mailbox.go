// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpi

import "sync"

type msgKey struct {
	from, tag int
}

// mailbox holds the messages received by one proc, queued per
// sender and tag. Puts never block.
type mailbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queues map[msgKey][][]float32
	closed bool
}

func newMailbox() *mailbox {
	mb := &mailbox{queues: map[msgKey][][]float32{}}
	mb.cond = sync.NewCond(&mb.mu)
	return mb
}

func (mb *mailbox) put(from, tag int, vals []float32) {
	mb.mu.Lock()
	k := msgKey{from, tag}
	mb.queues[k] = append(mb.queues[k], vals)
	mb.mu.Unlock()
	mb.cond.Broadcast()
}

func (mb *mailbox) get(from, tag int) ([]float32, error) {
	k := msgKey{from, tag}
	mb.mu.Lock()
	defer mb.mu.Unlock()
	for len(mb.queues[k]) == 0 {
		if mb.closed {
			return nil, ErrClosed
		}
		mb.cond.Wait()
	}
	q := mb.queues[k]
	vals := q[0]
	q[0] = nil
	if len(q) == 1 {
		delete(mb.queues, k)
	} else {
		mb.queues[k] = q[1:]
	}
	return vals, nil
}

func (mb *mailbox) close() {
	mb.mu.Lock()
	mb.closed = true
	mb.mu.Unlock()
	mb.cond.Broadcast()
}
