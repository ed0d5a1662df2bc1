// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package minmax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestF32(t *testing.T) {
	mr := Of([]float32{3, -1, 7, 2})
	assert.Equal(t, F32{Min: -1, Max: 7}, mr)
	assert.True(t, mr.IsValid())
	assert.Equal(t, float32(8), mr.Range())
	assert.Equal(t, float32(0.5), mr.NormValue(3))
	assert.Equal(t, float32(1), mr.NormValue(100))
	assert.Equal(t, float32(0), mr.NormValue(-100))
	assert.True(t, mr.InRange(7))
	assert.False(t, mr.InRange(7.5))
	assert.Equal(t, "[-1, 7]", mr.String())
}

func TestF32Empty(t *testing.T) {
	mr := Of(nil)
	assert.False(t, mr.IsValid())
}

func TestF32ZeroRange(t *testing.T) {
	mr := F32{Min: 2, Max: 2}
	assert.Equal(t, float32(0), mr.Scale())
	assert.Equal(t, float32(0), mr.NormValue(2))
}
