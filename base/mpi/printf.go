// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpi

import (
	"fmt"
	"io"
	"os"
)

// PrintAllProcs causes mpi.Printf to print on all processors -- otherwise just 0
var PrintAllProcs = false

// Stdout is where the print functions write to.
var Stdout io.Writer = os.Stdout

// Printf does fmt.Printf only on the 0 rank node (see also AllPrintf to do all)
// and PrintAllProcs var to override for debugging, and print all.
// A nil Comm is treated as a single proc world.
func (cm *Comm) Printf(fs string, pars ...any) {
	rank := cm.printRank()
	if !PrintAllProcs && rank > 0 {
		return
	}
	if rank > 0 {
		cm.AllPrintf(fs, pars...)
	} else {
		fmt.Fprintf(Stdout, fs, pars...)
	}
}

// AllPrintf does fmt.Printf on all nodes, with node rank printed first
// This is best for debugging MPI itself.
func (cm *Comm) AllPrintf(fs string, pars ...any) {
	fs = fmt.Sprintf("P%d: ", cm.printRank()) + fs
	fmt.Fprintf(Stdout, fs, pars...)
}

// Println does fmt.Println only on the 0 rank node (see also AllPrintln to do all)
// and PrintAllProcs var to override for debugging, and print all
func (cm *Comm) Println(fs ...any) {
	rank := cm.printRank()
	if !PrintAllProcs && rank > 0 {
		return
	}
	if rank > 0 {
		cm.AllPrintln(fs...)
	} else {
		fmt.Fprintln(Stdout, fs...)
	}
}

// AllPrintln does fmt.Println on all nodes, with node rank printed first
// This is best for debugging MPI itself.
func (cm *Comm) AllPrintln(fs ...any) {
	fsa := make([]any, len(fs)+1)
	copy(fsa[1:], fs)
	fsa[0] = fmt.Sprintf("P%d:", cm.printRank())
	fmt.Fprintln(Stdout, fsa...)
}

func (cm *Comm) printRank() int {
	if cm == nil {
		return 0
	}
	return cm.rank
}
