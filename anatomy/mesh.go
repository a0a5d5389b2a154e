// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anatomy

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/livercompare/vtp"
)

// Mesh is an indexed triangle surface ready to be handed to the 3D scene.
type Mesh struct {

	// Source is the file the mesh was loaded from.
	Source string

	// Vertex has x, y, z per vertex.
	Vertex []float32

	// Normal has one unit normal per vertex.
	Normal []float32

	// Index has three vertex indexes per triangle.
	Index []uint32

	// BBox is the bounding box of all vertices.
	BBox math32.Box3
}

// NumVertex returns the number of vertices.
func (ms *Mesh) NumVertex() int { return len(ms.Vertex) / 3 }

// NumTriangles returns the number of triangles.
func (ms *Mesh) NumTriangles() int { return len(ms.Index) / 3 }

// IsEmpty returns whether the mesh has no triangles.
func (ms *Mesh) IsEmpty() bool { return len(ms.Index) == 0 }

// FromPolyData returns a mesh sharing the arrays of the given poly data.
func FromPolyData(source string, pd *vtp.PolyData) *Mesh {
	return &Mesh{
		Source: source,
		Vertex: pd.Points,
		Normal: pd.Normals,
		Index:  pd.Triangles,
		BBox:   pd.Bounds(),
	}
}

// Load reads a mesh file, choosing the format from the extension:
// .vtp for VTK XML PolyData and .stl for ASCII or binary STL.
func Load(filename string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".vtp":
		pd, err := vtp.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		return FromPolyData(filename, pd), nil
	case ".stl":
		return loadSTL(filename)
	default:
		return nil, fmt.Errorf("anatomy: %s: unsupported model format %q (want .vtp or .stl)", filename, ext)
	}
}
