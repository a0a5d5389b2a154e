// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"context"
	"io"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/livercompare/config"
)

// Run loads the models of the given configuration and opens the
// comparison window, or prints the statistics report if
// [config.Config.Report] is set.
func Run(c *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v, err := Load(ctx, c)
	if err != nil {
		return err
	}
	if c.Report {
		return v.PrintReport(os.Stdout)
	}
	b := v.Body()
	if c.Watch {
		errors.Log(v.Watch(ctx))
		defer v.Close()
	}
	b.RunMainWindow()
	return nil
}

// PrintReport writes the statistics report to w.
func (v *Viewer) PrintReport(w io.Writer) error {
	_, err := v.Report.WriteTo(w)
	return err
}
