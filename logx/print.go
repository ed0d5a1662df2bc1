// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// Stdout is the output used by the print functions.
var Stdout = termenv.NewOutput(os.Stdout)

// SuccessColor returns the given string in the success color, if supported.
func SuccessColor(s string) string {
	return Stdout.String(s).Foreground(termenv.ANSIGreen).String()
}

// WarnColor returns the given string in the warning color, if supported.
func WarnColor(s string) string {
	return Stdout.String(s).Foreground(termenv.ANSIYellow).String()
}

// ErrorColor returns the given string in the error color, if supported.
func ErrorColor(s string) string {
	return Stdout.String(s).Foreground(termenv.ANSIRed).Bold().String()
}

// PrintlnInfo prints the given values followed by a newline
// if [UserLevel] is [slog.LevelInfo] or below.
func PrintlnInfo(a ...any) {
	if UserLevel <= slog.LevelInfo {
		fmt.Fprintln(Stdout, a...)
	}
}

// PrintfInfo is the formatted version of [PrintlnInfo].
func PrintfInfo(format string, a ...any) {
	if UserLevel <= slog.LevelInfo {
		fmt.Fprintf(Stdout, format, a...)
	}
}

// PrintlnSuccess prints the given values followed by a newline in
// [SuccessColor] if [UserLevel] is [slog.LevelWarn] or below.
func PrintlnSuccess(a ...any) {
	if UserLevel <= slog.LevelWarn {
		fmt.Fprintln(Stdout, SuccessColor(fmt.Sprint(a...)))
	}
}

// PrintlnWarn prints the given values followed by a newline in
// [WarnColor] if [UserLevel] is [slog.LevelWarn] or below.
func PrintlnWarn(a ...any) {
	if UserLevel <= slog.LevelWarn {
		fmt.Fprintln(Stdout, WarnColor(fmt.Sprint(a...)))
	}
}

// PrintlnError prints the given values followed by a newline in
// [ErrorColor] if [UserLevel] is [slog.LevelError] or below.
func PrintlnError(a ...any) {
	if UserLevel <= slog.LevelError {
		fmt.Fprintln(Stdout, ErrorColor(fmt.Sprint(a...)))
	}
}
