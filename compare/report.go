// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"fmt"
	"io"
	"text/tabwriter"

	"cogentcore.org/livercompare/anatomy"
	"github.com/dustin/go-humanize"
)

// Row compares one element of the two model sets.
type Row struct {

	// Element is the anatomical element.
	Element string

	// TrianglesA is the number of triangles of model A.
	TrianglesA int

	// TrianglesB is the number of triangles of model B.
	TrianglesB int

	// VolumeA is the enclosed volume of model A.
	VolumeA float64 `format:"%.1f"`

	// VolumeB is the enclosed volume of model B.
	VolumeB float64 `format:"%.1f"`

	// VolumeDiff is the relative volume difference of B from A, in percent.
	VolumeDiff float64 `format:"%+.2f"`

	// AreaA is the surface area of model A.
	AreaA float64 `format:"%.1f"`

	// AreaB is the surface area of model B.
	AreaB float64 `format:"%.1f"`

	// AreaDiff is the relative surface area difference of B from A, in percent.
	AreaDiff float64 `format:"%+.2f"`
}

// Report is the per-element comparison of two model sets.
type Report []Row

// NewReport computes the comparison of model sets a and b.
// Missing meshes count as empty.
func NewReport(a, b *anatomy.Set) Report {
	rep := make(Report, 0, len(anatomy.Elements))
	for _, el := range anatomy.Elements {
		sa, sb := stats(a[el]), stats(b[el])
		rep = append(rep, Row{
			Element:    el.Title(),
			TrianglesA: sa.Triangles,
			TrianglesB: sb.Triangles,
			VolumeA:    sa.Volume,
			VolumeB:    sb.Volume,
			VolumeDiff: percentDiff(sa.Volume, sb.Volume),
			AreaA:      sa.Area,
			AreaB:      sb.Area,
			AreaDiff:   percentDiff(sa.Area, sb.Area),
		})
	}
	return rep
}

func stats(ms *anatomy.Mesh) anatomy.Stats {
	if ms == nil {
		return anatomy.Stats{}
	}
	return anatomy.ComputeStats(ms)
}

// percentDiff returns the change from a to b in percent of a, or 0 if a is 0.
func percentDiff(a, b float64) float64 {
	if a == 0 {
		return 0
	}
	return 100 * (b - a) / a
}

// WriteTo writes the report as an aligned text table.
func (rep Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Element\tTriangles A\tTriangles B\tVolume A\tVolume B\tVolume Δ%\tArea A\tArea B\tArea Δ%\t")
	for _, r := range rep {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%+.2f\t%s\t%s\t%+.2f\t\n", r.Element,
			humanize.Comma(int64(r.TrianglesA)), humanize.Comma(int64(r.TrianglesB)),
			humanize.CommafWithDigits(r.VolumeA, 1), humanize.CommafWithDigits(r.VolumeB, 1), r.VolumeDiff,
			humanize.CommafWithDigits(r.AreaA, 1), humanize.CommafWithDigits(r.AreaB, 1), r.AreaDiff)
	}
	err := tw.Flush()
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
