// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"cogentcore.org/heat/cmd/heat/config"
	"cogentcore.org/heat/logx"
	"github.com/fsnotify/fsnotify"
)

// WatchDelay is how long the input must be left alone after
// a change before it is solved again.
var WatchDelay = 200 * time.Millisecond

// Watch solves the input, and then solves it again every time it
// changes, until the context is done. Errors of a solve are printed
// and do not stop watching.
func Watch(ctx context.Context, c *config.Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	input := filepath.Clean(c.Input)
	// watch the directory, as editors often replace the file
	if err := w.Add(filepath.Dir(input)); err != nil {
		return &ExitError{Code: ExitLoad, Err: err}
	}

	solve := func() {
		res, err := Solve(c)
		if err != nil {
			logx.PrintlnError(err)
			return
		}
		logx.PrintlnSuccess(fmt.Sprintf("%s: %v after %d iterations", c.Output, res.State, res.Iterations))
	}
	solve()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != input {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("input changed", "event", ev.String())
			pending = time.After(WatchDelay)
		case <-pending:
			pending = nil
			solve()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			slog.Error("watching input", "err", err)
		}
	}
}
