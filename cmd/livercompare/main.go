// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command livercompare shows two sets of liver models side by side,
// viewed through one shared camera, for comparison.
package main

import (
	"cogentcore.org/core/cli"
	"cogentcore.org/livercompare/config"
	"cogentcore.org/livercompare/viewer"
)

func main() {
	opts := cli.DefaultOptions("livercompare", "Side-by-side visualization of liver models for comparison.")
	opts.Fatal = true
	cli.Run(opts, &config.Config{}, &cli.Cmd[*config.Config]{
		Func: viewer.Run,
		Name: "livercompare",
		Doc:  "Run opens the comparison window for the eight given models.",
		Root: true,
	})
}
