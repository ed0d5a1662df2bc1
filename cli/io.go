// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Includer is implemented by config types that can include
// other config files.
type Includer interface {

	// IncludesPtr returns a pointer to the list of files to include.
	IncludesPtr() *[]string
}

// ExpandPath expands a leading ~ in the given path to the home directory.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// Open reads the config object from the given TOML (.toml) or
// YAML (.yaml, .yml) file, after expanding a leading ~.
// If the config is an [Includer], the included files are opened
// first, in the natural include order, so that includers overwrite
// included settings. Included paths are relative to the directory
// of the including file.
func Open(cfg any, filename string) error {
	return openWithIncludes(cfg, filename, nil)
}

func openWithIncludes(cfg any, filename string, stack []string) error {
	fn, err := ExpandPath(filename)
	if err != nil {
		return err
	}
	fn = filepath.Clean(fn)
	if slices.Contains(stack, fn) {
		return fmt.Errorf("cli.Open: include cycle: %s", strings.Join(append(stack, fn), " -> "))
	}
	stack = append(stack, fn)
	b, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	inc, ok := cfg.(Includer)
	if !ok {
		return unmarshal(cfg, fn, b)
	}
	// only read the includes of this file, so that they are
	// opened before its own settings
	*inc.IncludesPtr() = nil
	if err := unmarshal(cfg, fn, b); err != nil {
		return err
	}
	incs := *inc.IncludesPtr()
	for _, in := range incs {
		if !filepath.IsAbs(in) && !strings.HasPrefix(in, "~") {
			in = filepath.Join(filepath.Dir(fn), in)
		}
		if err := openWithIncludes(cfg, in, stack); err != nil {
			return err
		}
	}
	// reopen original
	if len(incs) > 0 {
		if err := unmarshal(cfg, fn, b); err != nil {
			return err
		}
	}
	*inc.IncludesPtr() = incs
	return nil
}

func unmarshal(cfg any, filename string, b []byte) error {
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	default:
		return fmt.Errorf("cli.Open: %s: unsupported config file type %q (use .toml, .yaml or .yml)", filename, filepath.Ext(filename))
	}
	if err != nil {
		return fmt.Errorf("cli.Open: %s: %w", filename, err)
	}
	return nil
}
