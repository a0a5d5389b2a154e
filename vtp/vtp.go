// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vtp reads VTK XML PolyData (.vtp) surface files into
// indexed triangle meshes suitable for direct GPU rendering.
//
// Inline ascii and base64 binary data arrays are supported, as well
// as raw and base64 appended data, with or without zlib block compression
// (vtkZLibDataCompressor). Polygons are fan-triangulated and triangle
// strips are unrolled; vertices and lines are counted but not kept.
package vtp

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
)

var (
	// ErrNotPolyData is returned for VTK XML files of any type other than PolyData.
	ErrNotPolyData = errors.New("vtp: not a VTK PolyData file")

	// ErrUnsupportedCompressor is returned for compressors other than zlib.
	ErrUnsupportedCompressor = errors.New("vtp: unsupported compressor")

	// ErrFormat is returned for structurally invalid files.
	ErrFormat = errors.New("vtp: invalid format")
)

// PolyData is the triangulated surface read from a .vtp file.
type PolyData struct {

	// Points has the x, y, z coordinates of each point.
	Points []float32

	// Normals has one unit normal per point, taken from the
	// file point data when present, otherwise computed.
	Normals []float32

	// Triangles has three point indexes per triangle.
	Triangles []uint32

	// NumVerts is the number of vertex cells in the file (not rendered).
	NumVerts int

	// NumLines is the number of line cells in the file (not rendered).
	NumLines int
}

// NumPoints returns the number of points.
func (pd *PolyData) NumPoints() int {
	return len(pd.Points) / 3
}

// NumTriangles returns the number of triangles.
func (pd *PolyData) NumTriangles() int {
	return len(pd.Triangles) / 3
}

// Point returns point i as a vector.
func (pd *PolyData) Point(i int) math32.Vector3 {
	return math32.Vec3(pd.Points[3*i], pd.Points[3*i+1], pd.Points[3*i+2])
}

// Bounds returns the axis-aligned bounding box of all points.
// An empty mesh has a zero box.
func (pd *PolyData) Bounds() math32.Box3 {
	np := pd.NumPoints()
	if np == 0 {
		return math32.Box3{}
	}
	mn := pd.Point(0)
	mx := mn
	for i := 1; i < np; i++ {
		p := pd.Point(i)
		mn = mn.Min(p)
		mx = mx.Max(p)
	}
	return math32.Box3{Min: mn, Max: mx}
}

// ReadFile reads the .vtp file at the given path.
func ReadFile(filename string) (*PolyData, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	pd, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return pd, nil
}

// Decode reads a .vtp document from the given reader.
func Decode(r io.Reader) (*PolyData, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse parses a complete .vtp document.
func Parse(b []byte) (*PolyData, error) {
	doc, appended, err := splitAppended(b)
	if err != nil {
		return nil, err
	}
	f, err := unmarshalFile(doc)
	if err != nil {
		return nil, err
	}
	if f.Type != "PolyData" || f.PolyData == nil {
		return nil, fmt.Errorf("%w (type %q)", ErrNotPolyData, f.Type)
	}
	d, err := newDecoder(f, appended)
	if err != nil {
		return nil, err
	}
	pd := &PolyData{}
	for i := range f.PolyData.Pieces {
		if err := d.addPiece(pd, &f.PolyData.Pieces[i]); err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
	}
	if len(pd.Normals) != len(pd.Points) {
		pd.Normals = ComputeNormals(pd.Points, pd.Triangles)
	}
	return pd, nil
}

// appendedData is the content of an AppendedData element.
type appendedData struct {
	encoding string
	data     []byte
}

// splitAppended separates any AppendedData section from the XML
// document, because raw appended data is not valid XML. The returned
// document is closed so that it still parses.
func splitAppended(b []byte) ([]byte, *appendedData, error) {
	start := bytes.Index(b, []byte("<AppendedData"))
	if start < 0 {
		return b, nil, nil
	}
	end := bytes.IndexByte(b[start:], '>')
	if end < 0 {
		return nil, nil, fmt.Errorf("%w: unterminated AppendedData tag", ErrFormat)
	}
	end += start
	tag := b[start : end+1]
	ad := &appendedData{encoding: "raw"}
	var xa xmlAppended
	if err := unmarshalElement(tag, "AppendedData", &xa); err == nil && xa.Encoding != "" {
		ad.encoding = xa.Encoding
	}
	us := bytes.IndexByte(b[end+1:], '_')
	if us < 0 {
		return nil, nil, fmt.Errorf("%w: AppendedData has no '_' marker", ErrFormat)
	}
	ad.data = b[end+1+us+1:]
	if ad.encoding == "base64" {
		if ce := bytes.Index(ad.data, []byte("</AppendedData")); ce >= 0 {
			ad.data = ad.data[:ce]
		}
	}
	doc := make([]byte, 0, start+len("</VTKFile>"))
	doc = append(doc, b[:start]...)
	doc = append(doc, "</VTKFile>"...)
	return doc, ad, nil
}
