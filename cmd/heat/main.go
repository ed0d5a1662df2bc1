// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command heat relaxes the heat of an image to its steady state.
//
//	heat solve input.png -o result.png
//	heat solve input.png --np 4
//	heat rank input.png --rank 0 --peers host0:7000,host1:7000
//	heat watch input.png
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"cogentcore.org/heat/cmd/heat/cmd"
	"cogentcore.org/heat/logx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.Root().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, logx.ErrorColor("heat: "+err.Error()))
		os.Exit(cmd.ExitCode(err))
	}
}
