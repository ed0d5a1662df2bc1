// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli loads the configuration of a command line tool from
// `default:` struct field tags, config files, and command line flags,
// in that order of increasing priority.
package cli

import (
	"cogentcore.org/heat/base/errors"
	"cogentcore.org/heat/base/reflectx"
)

// SetFromDefaults sets the values of the given config object
// from `default:` struct field tag values. Errors are automatically
// logged in addition to being returned.
func SetFromDefaults(cfg any) error {
	return errors.Log(reflectx.SetFromDefaultTags(cfg))
}
