// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, false))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, true))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	old := UserLevel
	defer func() { UserLevel = old }()
	UserLevel = slog.LevelInfo

	var buf bytes.Buffer
	lg := slog.New(NewHandler(&buf)).With("rank", 2).WithGroup("sweep")
	lg.Debug("hidden")
	lg.Info("done", "iteration", 7)
	assert.Equal(t, "INFO done rank=2 sweep.iteration=7\n", buf.String())

	buf.Reset()
	UserLevel = slog.LevelDebug
	lg.Debug("shown", slog.Group("range", "min", 1, "max", 2))
	assert.Equal(t, "DEBUG shown rank=2 sweep.range.min=1 sweep.range.max=2\n", buf.String())
}

func TestPrint(t *testing.T) {
	oldLevel, oldOut := UserLevel, Stdout
	defer func() { UserLevel, Stdout = oldLevel, oldOut }()

	var buf bytes.Buffer
	Stdout = termenv.NewOutput(&buf, termenv.WithProfile(termenv.Ascii))
	UserLevel = slog.LevelWarn
	PrintlnInfo("info")
	PrintlnWarn("warn")
	PrintlnError("error", 3)
	PrintfInfo("%d", 1)
	assert.Equal(t, "warn\nerror3\n", buf.String())

	buf.Reset()
	UserLevel = slog.LevelInfo
	PrintfInfo("%d\n", 1)
	PrintlnSuccess("ok")
	assert.Equal(t, "1\nok\n", buf.String())
}
