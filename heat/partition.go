// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heat

import (
	"fmt"

	"cogentcore.org/heat/base/errors"
)

// ErrDecomposition is returned (wrapped) when the grid cannot be divided
// into non-empty, even-aligned bands for the given number of procs.
var ErrDecomposition = errors.New("heat: invalid decomposition")

// Band is a contiguous range of rows [Start, End) owned by one proc.
type Band struct {
	Start int
	End   int
}

// Len returns the number of rows in the band.
func (b Band) Len() int {
	return b.End - b.Start
}

// Contains returns true if row y is in the band.
func (b Band) Contains(y int) bool {
	return y >= b.Start && y < b.End
}

func (b Band) String() string {
	return fmt.Sprintf("[%d, %d)", b.Start, b.End)
}

// Boundary returns the offset at which the band of the given rank starts,
// when dividing n rows among nranks procs. It is always even, so that
// every band starts on the same checkerboard parity, and
// Boundary(n, 0, nranks) == 0 while Boundary(n, nranks, nranks) is n
// rounded down to even.
func Boundary(n, rank, nranks int) int {
	return n * rank / (2 * nranks) * 2
}

// Interior returns the band of all rows that are updated in a grid
// of the given height: everything but the first and last row.
func Interior(height int) Band {
	return Band{Start: 1, End: height - 1}
}

// BandFor returns the band of rows owned by the given rank,
// within the interior of a grid of the given height.
// If the interior has an odd number of rows, the last one
// is not owned by any rank.
func BandFor(height, rank, nranks int) Band {
	n := height - 2
	return Band{Start: 1 + Boundary(n, rank, nranks), End: 1 + Boundary(n, rank+1, nranks)}
}

// Partition returns the bands of all ranks, indexed by rank.
// It returns an error wrapping [ErrDecomposition] if there are not
// at least two interior rows per rank.
func Partition(height, nranks int) ([]Band, error) {
	if nranks < 1 {
		return nil, fmt.Errorf("%w: %d procs", ErrDecomposition, nranks)
	}
	if n := height - 2; n < 2*nranks {
		return nil, fmt.Errorf("%w: %d interior rows cannot be split into %d even bands", ErrDecomposition, max(n, 0), nranks)
	}
	bands := make([]Band, nranks)
	for r := range bands {
		bands[r] = BandFor(height, r, nranks)
	}
	return bands, nil
}
