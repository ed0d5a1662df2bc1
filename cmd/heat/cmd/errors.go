// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import "cogentcore.org/heat/base/errors"

// Process exit codes.
const (
	// ExitUsage is for bad arguments, flags, or config.
	ExitUsage = 1

	// ExitLoad is for an input that cannot be loaded.
	ExitLoad = 2

	// ExitSave is for an output that cannot be written.
	ExitSave = 3
)

// ExitError is an error with the process exit code it should cause.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}

// ExitCode returns the process exit code for the given error:
// 0 for nil, the code of an [ExitError], and [ExitUsage] otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitUsage
}
