// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketPath is the http path on which each proc accepts
// connections from its peers.
const WebsocketPath = "/mpi"

// frameHeader is the size of the (from, tag, count) header of each message.
const frameHeader = 12

// WebsocketOptions are the options for [NewWebsocketComm].
type WebsocketOptions struct {

	// DialTimeout is how long to keep trying to connect to a peer
	// that is not yet listening, when first sending to it.
	// Procs of one world are typically started at slightly different
	// times, so the first connection needs some slack.
	DialTimeout time.Duration

	// Compression enables permessage-deflate compression of messages.
	Compression bool
}

// wsTransport delivers messages between procs in different OS processes.
// Each proc listens on its own address; outgoing connections are dialed
// lazily and only written to, incoming connections are only read from.
type wsTransport struct {
	rank  int
	addrs []string
	opts  WebsocketOptions
	box   *mailbox

	listener net.Listener
	server   *http.Server
	upgrader websocket.Upgrader
	dialer   websocket.Dialer

	mu       sync.Mutex
	peers    map[int]*wsPeer
	incoming []*websocket.Conn
}

type wsPeer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebsocketComm returns the communicator for the given rank, in a world
// whose procs listen on the given addresses (host:port), indexed by rank.
// It starts listening on addrs[rank] immediately.
func NewWebsocketComm(rank int, addrs []string, opts WebsocketOptions) (*Comm, error) {
	if rank < 0 || rank >= len(addrs) {
		return nil, fmt.Errorf("mpi.NewWebsocketComm: rank %d out of range for %d addresses", rank, len(addrs))
	}
	ln, err := net.Listen("tcp", addrs[rank])
	if err != nil {
		return nil, fmt.Errorf("mpi.NewWebsocketComm: %w", err)
	}
	tr := newWebsocketTransport(rank, ln, addrs, opts)
	return NewComm(rank, len(addrs), tr)
}

func newWebsocketTransport(rank int, ln net.Listener, addrs []string, opts WebsocketOptions) *wsTransport {
	wt := &wsTransport{
		rank:     rank,
		addrs:    addrs,
		opts:     opts,
		box:      newMailbox(),
		listener: ln,
		peers:    map[int]*wsPeer{},
		upgrader: websocket.Upgrader{EnableCompression: opts.Compression},
		dialer: websocket.Dialer{
			HandshakeTimeout:  10 * time.Second,
			EnableCompression: opts.Compression,
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc(WebsocketPath, wt.serve)
	wt.server = &http.Server{Handler: mux}
	go func() {
		err := wt.server.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("mpi: websocket server stopped", "rank", rank, "err", err)
		}
	}()
	return wt
}

func (wt *wsTransport) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := wt.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("mpi: upgrading peer connection", "rank", wt.rank, "err", err)
		return
	}
	wt.mu.Lock()
	wt.incoming = append(wt.incoming, conn)
	wt.mu.Unlock()
	go wt.readLoop(conn)
}

func (wt *wsTransport) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !errors.Is(err, net.ErrClosed) {
				slog.Debug("mpi: peer connection ended", "rank", wt.rank, "err", err)
			}
			return
		}
		if typ != websocket.BinaryMessage {
			continue
		}
		from, tag, vals, err := decodeFrame(data)
		if err != nil {
			slog.Error("mpi: bad message", "rank", wt.rank, "err", err)
			continue
		}
		wt.box.put(from, tag, vals)
	}
}

func (wt *wsTransport) peer(proc int) (*wsPeer, error) {
	wt.mu.Lock()
	p, ok := wt.peers[proc]
	if !ok {
		p = &wsPeer{}
		wt.peers[proc] = p
	}
	wt.mu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		return p, nil
	}
	url := "ws://" + wt.addrs[proc] + WebsocketPath
	start := time.Now()
	wait := 10 * time.Millisecond
	for {
		conn, _, err := wt.dialer.Dial(url, nil)
		if err == nil {
			p.conn = conn
			return p, nil
		}
		if time.Since(start) >= wt.opts.DialTimeout {
			return nil, fmt.Errorf("mpi: connecting to proc %d at %s: %w", proc, wt.addrs[proc], err)
		}
		time.Sleep(wait)
		wait = min(2*wait, time.Second)
	}
}

func (wt *wsTransport) Send(toProc, tag int, vals []float32) error {
	if toProc == wt.rank {
		wt.box.put(wt.rank, tag, slices.Clone(vals))
		return nil
	}
	p, err := wt.peer(toProc)
	if err != nil {
		return err
	}
	frame := encodeFrame(wt.rank, tag, vals)
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteMessage(websocket.BinaryMessage, frame)
}

func (wt *wsTransport) Recv(fromProc, tag int) ([]float32, error) {
	return wt.box.get(fromProc, tag)
}

func (wt *wsTransport) Close() error {
	var errs []error
	wt.mu.Lock()
	for _, p := range wt.peers {
		p.mu.Lock()
		if p.conn != nil {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			// the peer may have closed first, so the close frame is best effort
			_ = p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			errs = append(errs, p.conn.Close())
			p.conn = nil
		}
		p.mu.Unlock()
	}
	for _, conn := range wt.incoming {
		conn.Close()
	}
	wt.incoming = nil
	wt.mu.Unlock()
	errs = append(errs, wt.server.Close())
	wt.box.close()
	return errors.Join(errs...)
}

// encodeFrame encodes a message as a little-endian header of
// (from, tag, count) followed by count float32 values.
func encodeFrame(from, tag int, vals []float32) []byte {
	b := make([]byte, frameHeader+4*len(vals))
	binary.LittleEndian.PutUint32(b[0:], uint32(int32(from)))
	binary.LittleEndian.PutUint32(b[4:], uint32(int32(tag)))
	binary.LittleEndian.PutUint32(b[8:], uint32(len(vals)))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[frameHeader+4*i:], math.Float32bits(v))
	}
	return b
}

func decodeFrame(b []byte) (from, tag int, vals []float32, err error) {
	if len(b) < frameHeader {
		return 0, 0, nil, fmt.Errorf("frame too short: %d bytes", len(b))
	}
	from = int(int32(binary.LittleEndian.Uint32(b[0:])))
	tag = int(int32(binary.LittleEndian.Uint32(b[4:])))
	n := int(binary.LittleEndian.Uint32(b[8:]))
	if len(b) != frameHeader+4*n {
		return 0, 0, nil, fmt.Errorf("frame from proc %d: expected %d values in %d bytes", from, n, len(b))
	}
	vals = make([]float32, n)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[frameHeader+4*i:]))
	}
	return from, tag, vals, nil
}
