// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpi

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// runWorld runs f concurrently on every comm, returning the first error.
func runWorld(comms []*Comm, f func(cm *Comm) error) error {
	var eg errgroup.Group
	for _, cm := range comms {
		eg.Go(func() error { return f(cm) })
	}
	return eg.Wait()
}

func TestNewComm(t *testing.T) {
	_, err := NewComm(0, 0, nil)
	assert.Error(t, err)
	_, err = NewComm(3, 3, nil)
	assert.Error(t, err)
	cm, err := NewComm(2, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cm.Rank())
	assert.Equal(t, 3, cm.Size())
	assert.False(t, cm.IsRoot())
}

func TestLocalSendRecv(t *testing.T) {
	comms := NewLocalWorld(2)
	sent := []float32{1, 2, 3}
	require.NoError(t, comms[0].SendF32(1, 5, sent))
	sent[0] = 100 // sender may reuse its buffer after send returns
	got := make([]float32, 3)
	require.NoError(t, comms[1].RecvF32(0, 5, got))
	assert.Equal(t, []float32{1, 2, 3}, got)

	require.NoError(t, comms[0].SendF32(1, 5, []float32{1}))
	assert.Error(t, comms[1].RecvF32(0, 5, got), "length mismatch")
	assert.Error(t, comms[0].SendF32(2, 5, got), "proc out of range")
}

func TestLocalTagsAndOrder(t *testing.T) {
	comms := NewLocalWorld(2)
	require.NoError(t, comms[0].SendF32(1, 1, []float32{10}))
	require.NoError(t, comms[0].SendF32(1, 2, []float32{20}))
	require.NoError(t, comms[0].SendF32(1, 1, []float32{11}))
	v := make([]float32, 1)
	require.NoError(t, comms[1].RecvF32(0, 2, v))
	assert.Equal(t, float32(20), v[0])
	require.NoError(t, comms[1].RecvF32(0, 1, v))
	assert.Equal(t, float32(10), v[0])
	require.NoError(t, comms[1].RecvF32(0, 1, v))
	assert.Equal(t, float32(11), v[0])
}

func TestNonBlocking(t *testing.T) {
	comms := NewLocalWorld(2)
	in := make([]float32, 2)
	recv := comms[1].IRecvF32(0, 7, in)
	send := comms[0].ISendF32(1, 7, []float32{4, 5})
	require.NoError(t, WaitAll(send, recv))
	assert.Equal(t, []float32{4, 5}, in)
}

func TestSelfExchange(t *testing.T) {
	comms := NewLocalWorld(1)
	cm := comms[0]
	in := make([]float32, 1)
	recv := cm.IRecvF32(0, 3, in)
	send := cm.ISendF32(0, 3, []float32{9})
	require.NoError(t, WaitAll(send, recv))
	assert.Equal(t, float32(9), in[0])
}

func TestAllReduce(t *testing.T) {
	const n = 5
	comms := NewLocalWorld(n)
	results := make([][]float32, n)
	err := runWorld(comms, func(cm *Comm) error {
		r := float32(cm.Rank())
		orig := []float32{r + 0.1, -r}
		dest := make([]float32, 2)
		if err := cm.AllReduceF32(OpSum, dest, orig); err != nil {
			return err
		}
		mx := []float32{r}
		if err := cm.AllReduceF32(OpMax, mx, mx); err != nil {
			return err
		}
		results[cm.Rank()] = append(dest, mx[0])
		return cm.Barrier()
	})
	require.NoError(t, err)
	for r := 1; r < n; r++ {
		assert.Equal(t, results[0], results[r], "rank %d sees a different reduction", r)
	}
	assert.InDelta(t, 10.5, results[0][0], 1e-5)
	assert.Equal(t, float32(-10), results[0][1])
	assert.Equal(t, float32(4), results[0][2])
}

func TestClosed(t *testing.T) {
	comms := NewLocalWorld(2)
	done := make(chan error)
	go func() {
		done <- comms[1].RecvF32(0, 1, make([]float32, 1))
	}()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, comms[1].Close())
	assert.ErrorIs(t, <-done, ErrClosed)
}

func TestPrintf(t *testing.T) {
	var buf bytes.Buffer
	old := Stdout
	Stdout = &buf
	defer func() { Stdout = old }()
	comms := NewLocalWorld(2)
	comms[0].Printf("hello %d\n", 0)
	comms[1].Printf("hello %d\n", 1)
	comms[1].Println("quiet")
	var nilComm *Comm
	nilComm.Println("serial")
	assert.Equal(t, "hello 0\nserial\n", buf.String())

	buf.Reset()
	comms[1].AllPrintln("loud")
	assert.Equal(t, "P1: loud\n", buf.String())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "Sum", OpSum.String())
	assert.Equal(t, "Op(9)", Op(9).String())
}

func TestFrame(t *testing.T) {
	b := encodeFrame(3, tagResult, []float32{1.5, -2})
	from, tag, vals, err := decodeFrame(b)
	require.NoError(t, err)
	assert.Equal(t, 3, from)
	assert.Equal(t, tagResult, tag)
	assert.Equal(t, []float32{1.5, -2}, vals)

	_, _, _, err = decodeFrame(b[:5])
	assert.Error(t, err)
	_, _, _, err = decodeFrame(b[:len(b)-1])
	assert.Error(t, err)
}

func newWebsocketWorld(t *testing.T, n int) []*Comm {
	listeners := make([]net.Listener, n)
	addrs := make([]string, n)
	for i := range listeners {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		listeners[i] = ln
		addrs[i] = ln.Addr().String()
	}
	opts := WebsocketOptions{DialTimeout: 5 * time.Second, Compression: true}
	comms := make([]*Comm, n)
	for r := range comms {
		cm, err := NewComm(r, n, newWebsocketTransport(r, listeners[r], addrs, opts))
		require.NoError(t, err)
		comms[r] = cm
	}
	return comms
}

func TestWebsocketWorld(t *testing.T) {
	const n = 3
	comms := newWebsocketWorld(t, n)
	defer func() {
		for _, cm := range comms {
			cm.Close()
		}
	}()
	sums := make([]float32, n)
	fromAbove := make([]float32, n)
	err := runWorld(comms, func(cm *Comm) error {
		r := cm.Rank()
		above := (r + n - 1) % n
		below := (r + 1) % n
		in := make([]float32, 4)
		recv := cm.IRecvF32(above, 1, in)
		send := cm.ISendF32(below, 1, []float32{float32(r), 1, 2, 3})
		if err := WaitAll(send, recv); err != nil {
			return err
		}
		fromAbove[r] = in[0]
		v := []float32{float32(r + 1)}
		if err := cm.AllReduceF32(OpSum, v, v); err != nil {
			return err
		}
		sums[r] = v[0]
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 0, 1}, fromAbove)
	assert.Equal(t, []float32{6, 6, 6}, sums)
}

func TestWebsocketCloseAfterPeer(t *testing.T) {
	comms := newWebsocketWorld(t, 2)
	err := runWorld(comms, func(cm *Comm) error {
		other := 1 - cm.Rank()
		in := make([]float32, 1)
		return WaitAll(cm.IRecvF32(other, 1, in), cm.ISendF32(other, 1, []float32{1}))
	})
	require.NoError(t, err)
	require.NoError(t, comms[1].Close())
	assert.NoError(t, comms[0].Close())
}

func TestWebsocketDialTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	dead, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	deadAddr := dead.Addr().String()
	dead.Close()

	tr := newWebsocketTransport(0, ln, []string{ln.Addr().String(), deadAddr}, WebsocketOptions{DialTimeout: 50 * time.Millisecond})
	defer tr.Close()
	assert.Error(t, tr.Send(1, 0, []float32{1}))
}
