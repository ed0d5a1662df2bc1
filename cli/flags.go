// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"cogentcore.org/heat/base/reflectx"
	"github.com/spf13/pflag"
)

// AddFlags adds a flag to the given flag set for every exported field of
// the given config struct pointer, bound directly to the field, so that
// parsing the flags overrides the values from defaults and config files.
//
// The flag name is the kebab-case field name, or the `flag:` tag if set
// ("-" skips the field). The `short:` tag sets a one-letter shorthand and
// the `desc:` tag the usage text.
func AddFlags(fs *pflag.FlagSet, cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("cli.AddFlags: expected a pointer to a struct, not %T", cfg)
	}
	v = v.Elem()
	typ := v.Type()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Tag.Get("flag")
		if name == "-" {
			continue
		}
		if name == "" {
			name = kebab(f.Name)
		}
		fv := &fieldValue{v: v.Field(i)}
		fl := fs.VarPF(fv, name, f.Tag.Get("short"), f.Tag.Get("desc"))
		if f.Type.Kind() == reflect.Bool {
			fl.NoOptDefVal = "true"
		}
	}
	return nil
}

// fieldValue is a [pflag.Value] that sets a struct field.
type fieldValue struct {
	v reflect.Value
}

func (fv *fieldValue) String() string {
	return reflectx.ToString(fv.v)
}

func (fv *fieldValue) Set(s string) error {
	return reflectx.SetFromString(fv.v, s)
}

func (fv *fieldValue) Type() string {
	if fv.v.Kind() == reflect.Slice {
		return fv.v.Type().Elem().Kind().String() + "s"
	}
	if t := fv.v.Type(); t == reflect.TypeOf(time.Duration(0)) || t == reflect.TypeOf(Duration(0)) {
		return "duration"
	}
	return fv.v.Kind().String()
}

// kebab converts a CamelCase name to kebab-case,
// keeping acronyms together: MaxSize -> max-size, NP -> np.
func kebab(name string) string {
	var sb strings.Builder
	rs := []rune(name)
	for i, r := range rs {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(rs[i-1])
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if prevLower || (nextLower && unicode.IsUpper(rs[i-1])) {
				sb.WriteByte('-')
			}
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
