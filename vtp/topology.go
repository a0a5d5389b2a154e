// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vtp

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// addPiece appends the points, normals and triangles of one piece,
// offsetting its indexes past the points already in pd.
func (d *decoder) addPiece(pd *PolyData, pc *xmlPiece) error {
	base := pd.NumPoints()
	np := pc.NumberOfPoints
	if np > 0 {
		if len(pc.Points.Arrays) == 0 {
			return fmt.Errorf("%w: piece has %d points but no Points array", ErrFormat, np)
		}
		pts, err := d.values(&pc.Points.Arrays[0])
		if err != nil {
			return fmt.Errorf("points: %w", err)
		}
		if len(pts) != 3*np {
			return fmt.Errorf("%w: %d point coordinates, want %d", ErrFormat, len(pts), 3*np)
		}
		for _, v := range pts {
			pd.Points = append(pd.Points, float32(v))
		}
	}

	nrm, err := d.normals(pc)
	if err != nil {
		return err
	}
	if nrm != nil && len(pd.Normals) == 3*base {
		pd.Normals = append(pd.Normals, nrm...)
	} else {
		// mixed pieces with and without normals: recompute all
		pd.Normals = nil
	}

	vcells, err := d.cells(&pc.Verts, pc.NumberOfVerts, np)
	if err != nil {
		return fmt.Errorf("verts: %w", err)
	}
	pd.NumVerts += len(vcells)
	lcells, err := d.cells(&pc.Lines, pc.NumberOfLines, np)
	if err != nil {
		return fmt.Errorf("lines: %w", err)
	}
	pd.NumLines += len(lcells)

	polys, err := d.cells(&pc.Polys, pc.NumberOfPolys, np)
	if err != nil {
		return fmt.Errorf("polys: %w", err)
	}
	for _, c := range polys {
		for i := 1; i+1 < len(c); i++ {
			pd.Triangles = append(pd.Triangles, uint32(base+c[0]), uint32(base+c[i]), uint32(base+c[i+1]))
		}
	}
	strips, err := d.cells(&pc.Strips, pc.NumberOfStrips, np)
	if err != nil {
		return fmt.Errorf("strips: %w", err)
	}
	for _, c := range strips {
		for i := 0; i+2 < len(c); i++ {
			a, b := c[i], c[i+1]
			if i%2 == 1 {
				a, b = b, a
			}
			pd.Triangles = append(pd.Triangles, uint32(base+a), uint32(base+b), uint32(base+c[i+2]))
		}
	}
	return nil
}

// normals returns the point normals of the piece, or nil if it has none.
func (d *decoder) normals(pc *xmlPiece) ([]float32, error) {
	attrs := xmlArrays{Arrays: pc.PointData.Arrays}
	name := pc.PointData.Normals
	if name == "" {
		name = "Normals"
	}
	da := attrs.byName(name)
	if da == nil || da.components() != 3 {
		return nil, nil
	}
	vals, err := d.values(da)
	if err != nil {
		return nil, fmt.Errorf("normals: %w", err)
	}
	if len(vals) != 3*pc.NumberOfPoints {
		return nil, nil
	}
	nrm := make([]float32, len(vals))
	for i, v := range vals {
		nrm[i] = float32(v)
	}
	return nrm, nil
}

// cells splits a cell array with connectivity and end offsets into
// per-cell index lists, checking every index against npts.
func (d *decoder) cells(xa *xmlArrays, ncells, npts int) ([][]int, error) {
	if ncells == 0 {
		return nil, nil
	}
	cda := xa.byName("connectivity")
	oda := xa.byName("offsets")
	if cda == nil || oda == nil {
		return nil, fmt.Errorf("%w: missing connectivity or offsets", ErrFormat)
	}
	conn, err := d.values(cda)
	if err != nil {
		return nil, err
	}
	offs, err := d.values(oda)
	if err != nil {
		return nil, err
	}
	// VTK 2.x files carry a leading zero offset
	if len(offs) == ncells+1 && offs[0] == 0 {
		offs = offs[1:]
	}
	if len(offs) != ncells {
		return nil, fmt.Errorf("%w: %d offsets for %d cells", ErrFormat, len(offs), ncells)
	}
	cells := make([][]int, ncells)
	start := 0
	for i, o := range offs {
		end := int(o)
		if end < start || end > len(conn) {
			return nil, fmt.Errorf("%w: cell %d offset %d out of range", ErrFormat, i, end)
		}
		c := make([]int, end-start)
		for j := range c {
			idx := int(conn[start+j])
			if idx < 0 || idx >= npts {
				return nil, fmt.Errorf("%w: cell %d index %d out of range [0, %d)", ErrFormat, i, idx, npts)
			}
			c[j] = idx
		}
		cells[i] = c
		start = end
	}
	return cells, nil
}

// ComputeNormals returns area-weighted unit vertex normals for the
// given points and triangles. Points used by no triangle get a zero normal.
func ComputeNormals(points []float32, tris []uint32) []float32 {
	np := len(points) / 3
	acc := make([]math32.Vector3, np)
	pt := func(i uint32) math32.Vector3 {
		return math32.Vec3(points[3*i], points[3*i+1], points[3*i+2])
	}
	for t := 0; t+2 < len(tris); t += 3 {
		a, b, c := tris[t], tris[t+1], tris[t+2]
		pa := pt(a)
		// cross product length is twice the area, which gives the weighting
		fn := pt(b).Sub(pa).Cross(pt(c).Sub(pa))
		acc[a] = acc[a].Add(fn)
		acc[b] = acc[b].Add(fn)
		acc[c] = acc[c].Add(fn)
	}
	nrm := make([]float32, 3*np)
	for i, n := range acc {
		if n.Length() > 0 {
			n = n.Normal()
		}
		nrm[3*i], nrm[3*i+1], nrm[3*i+2] = n.X, n.Y, n.Z
	}
	return nrm
}
