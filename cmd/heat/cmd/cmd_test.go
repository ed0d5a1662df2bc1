// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/heat/base/errors"
	"cogentcore.org/heat/base/iox/imagex"
	"cogentcore.org/heat/base/mpi"
	"cogentcore.org/heat/cli"
	"cogentcore.org/heat/cmd/heat/config"
	"cogentcore.org/heat/heat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// writeInput writes a 12x12 input image with a hot spot at (6, 6).
func writeInput(t *testing.T, fn string, hot uint8) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for y := range 12 {
		for x := range 12 {
			img.SetRGBA(x, y, color.RGBA{B: 200, A: 255})
		}
	}
	img.SetRGBA(6, 6, color.RGBA{R: hot, B: 200, A: 255})
	require.NoError(t, imagex.Save(img, fn))
	return fn
}

// captureReport redirects the report line to a buffer for the test.
func captureReport(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := mpi.Stdout
	mpi.Stdout = &buf
	t.Cleanup(func() { mpi.Stdout = old })
	return &buf
}

func execute(args ...string) error {
	root := Root()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func assertImageSize(t *testing.T, fn string, w, h int) {
	t.Helper()
	img, f, err := imagex.Open(fn)
	require.NoError(t, err)
	assert.Equal(t, imagex.PNG, f)
	assert.Equal(t, image.Pt(w, h), img.Bounds().Size())
}

func TestSolve(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, filepath.Join(dir, "in.png"), 255)
	for _, np := range []string{"1", "2", "5"} {
		buf := captureReport(t)
		out := filepath.Join(dir, "out"+np+".png")
		require.NoError(t, execute("solve", in, "-o", out, "--np", np))
		assertImageSize(t, out, 12, 12)
		assert.Contains(t, buf.String(), "Iteration #")
		assert.Contains(t, buf.String(), "t_max = 255")
	}
}

func TestSolveMatchesProcs(t *testing.T) {
	dir := t.TempDir()
	c := config.New()
	c.Input = writeInput(t, filepath.Join(dir, "in.png"), 255)
	c.Output = filepath.Join(dir, "serial.png")
	captureReport(t)
	serial, err := Solve(c)
	require.NoError(t, err)
	assert.Equal(t, heat.Converged, serial.State)

	c.NP = 5
	c.Output = filepath.Join(dir, "local.png")
	local, err := Solve(c)
	require.NoError(t, err)
	assert.InDelta(t, serial.Iterations, local.Iterations, 1)
	assert.InDelta(t, serial.Range.Min, local.Range.Min, 1e-3)
}

func TestSolveMaxSize(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, filepath.Join(dir, "in.png"), 255)
	out := filepath.Join(dir, "out.png")
	captureReport(t)
	require.NoError(t, execute("solve", in, "-o", out, "--max-size", "6"))
	assertImageSize(t, out, 6, 6)
}

func TestSolveConfigFile(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, filepath.Join(dir, "in.png"), 255)
	cfgOut := filepath.Join(dir, "from-config.png")
	cfg := filepath.Join(dir, "heat.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("input = \""+in+"\"\noutput = \""+cfgOut+"\"\nnp = 50\n"), 0o666))
	captureReport(t)

	// np from the flag wins over the file
	require.NoError(t, execute("solve", "-c", cfg, "--np", "2"))
	assertImageSize(t, cfgOut, 12, 12)

	err := execute("solve", "-c", cfg)
	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.ErrorIs(t, err, heat.ErrDecomposition)
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, filepath.Join(dir, "in.png"), 255)
	notImage := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(notImage, []byte("just some text"), 0o666))
	out := filepath.Join(dir, "out.png")
	captureReport(t)

	assert.Equal(t, ExitUsage, ExitCode(execute("solve")))
	assert.Equal(t, ExitUsage, ExitCode(execute("solve", in, "--np", "0")))
	assert.Equal(t, ExitUsage, ExitCode(execute("solve", in, "--np", "6", "-o", out)))
	assert.Equal(t, ExitUsage, ExitCode(execute("solve", in, "--bogus")))
	assert.Equal(t, ExitUsage, ExitCode(execute("rank", in)))
	assert.Equal(t, ExitLoad, ExitCode(execute("solve", filepath.Join(dir, "missing.png"), "-o", out)))
	assert.Equal(t, ExitLoad, ExitCode(execute("solve", notImage, "-o", out)))
	assert.Equal(t, ExitSave, ExitCode(execute("solve", in, "-o", filepath.Join(dir, "nodir", "out.png"))))
	assert.NoFileExists(t, out)

	assert.Zero(t, ExitCode(nil))
	assert.Equal(t, ExitUsage, ExitCode(errors.New("other")))
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return ln.Addr().String()
}

func TestRank(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, filepath.Join(dir, "in.png"), 255)
	peers := []string{freeAddr(t), freeAddr(t)}
	buf := captureReport(t)

	results := make([]*heat.Result, len(peers))
	outs := make([]string, len(peers))
	var eg errgroup.Group
	for rank := range peers {
		c := config.New()
		c.Input = in
		c.Rank = rank
		c.Peers = peers
		c.DialTimeout = cli.Duration(10 * time.Second)
		outs[rank] = filepath.Join(dir, "rank"+string(rune('0'+rank))+".png")
		c.Output = outs[rank]
		eg.Go(func() error {
			res, err := Rank(c)
			results[rank] = res
			return err
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, results[0].Iterations, results[1].Iterations)
	assertImageSize(t, outs[0], 12, 12)
	assert.NoFileExists(t, outs[1])
	assert.Contains(t, buf.String(), "Iteration #")
}

func TestWatch(t *testing.T) {
	old := WatchDelay
	WatchDelay = 20 * time.Millisecond
	defer func() { WatchDelay = old }()

	dir := t.TempDir()
	c := config.New()
	c.Input = writeInput(t, filepath.Join(dir, "in.png"), 255)
	c.Output = filepath.Join(dir, "out.png")
	captureReport(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, c) }()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(c.Output)
		return err == nil
	}, 10*time.Second, 10*time.Millisecond)
	require.NoError(t, os.Remove(c.Output))

	writeInput(t, c.Input, 128)
	assert.Eventually(t, func() bool {
		_, err := os.Stat(c.Output)
		return err == nil
	}, 10*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestGen(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	require.NoError(t, execute("gen", "-o", a, "--width", "20", "--height", "14", "--seed", "5"))
	require.NoError(t, execute("gen", "-o", b, "--width", "20", "--height", "14", "--seed", "5"))
	assertImageSize(t, a, 20, 14)
	ab, err := os.ReadFile(a)
	require.NoError(t, err)
	bb, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, ab, bb)

	assert.Equal(t, ExitUsage, ExitCode(execute("gen", "-o", a, "--width", "2")))
	assert.Equal(t, ExitUsage, ExitCode(execute("gen", "extra")))

	captureReport(t)
	out := filepath.Join(dir, "out.png")
	require.NoError(t, execute("solve", a, "-o", out, "--np", "4"))
	assertImageSize(t, out, 20, 14)
}
