// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	bands, err := Partition(20, 4)
	require.NoError(t, err)
	assert.Equal(t, []Band{{1, 5}, {5, 9}, {9, 13}, {13, 19}}, bands)

	bands, err = Partition(20, 1)
	require.NoError(t, err)
	assert.Equal(t, []Band{Interior(20)}, bands)

	// odd interior: the last interior row is not owned
	bands, err = Partition(7, 2)
	require.NoError(t, err)
	assert.Equal(t, []Band{{1, 3}, {3, 5}}, bands)
	assert.False(t, bands[1].Contains(5))
}

func TestPartitionCovers(t *testing.T) {
	for _, height := range []int{4, 9, 20, 33, 100, 101} {
		for nranks := 1; 2*nranks <= height-2; nranks++ {
			bands, err := Partition(height, nranks)
			require.NoError(t, err)
			next := 1
			for r, b := range bands {
				assert.Equal(t, next, b.Start, "height %d ranks %d rank %d", height, nranks, r)
				assert.Zero(t, (b.Start-1)%2, "bands start on even offsets")
				assert.GreaterOrEqual(t, b.Len(), 2)
				next = b.End
			}
			n := height - 2
			assert.Equal(t, 1+n-n%2, next)
		}
	}
}

func TestPartitionErrors(t *testing.T) {
	_, err := Partition(5, 2)
	assert.ErrorIs(t, err, ErrDecomposition)
	_, err = Partition(10, 0)
	assert.ErrorIs(t, err, ErrDecomposition)
	_, err = Partition(2, 1)
	assert.ErrorIs(t, err, ErrDecomposition)
}

func TestBand(t *testing.T) {
	b := Band{3, 7}
	assert.Equal(t, 4, b.Len())
	assert.True(t, b.Contains(3))
	assert.False(t, b.Contains(7))
	assert.Equal(t, "[3, 7)", b.String())
	assert.Equal(t, Band{1, 9}, Interior(10))
}

func TestNeighbors(t *testing.T) {
	above, below := Neighbors(0, 4)
	assert.Equal(t, 3, above)
	assert.Equal(t, 1, below)
	above, below = Neighbors(3, 4)
	assert.Equal(t, 2, above)
	assert.Equal(t, 0, below)
	above, below = Neighbors(0, 1)
	assert.Equal(t, 0, above)
	assert.Equal(t, 0, below)
}
