// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package heat

import (
	"fmt"

	"cogentcore.org/heat/base/mpi"
)

// GlobalMeanDelta sums the local sum of absolute changes of every proc
// and divides it by the total number of cells of the whole grid.
// Every proc gets the identical value. A nil comm is serial mode.
func GlobalMeanDelta(comm *mpi.Comm, local float32, cells int) (float32, error) {
	if comm == nil {
		return local / float32(cells), nil
	}
	v := []float32{local}
	if err := comm.AllReduceF32(mpi.OpSum, v, v); err != nil {
		return 0, fmt.Errorf("reducing change: %w", err)
	}
	return v[0] / float32(cells), nil
}
