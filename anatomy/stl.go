// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anatomy

import (
	"fmt"

	"cogentcore.org/core/math32"
	"cogentcore.org/livercompare/vtp"
	"github.com/hschendel/stl"
)

func loadSTL(filename string) (*Mesh, error) {
	solid, err := stl.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return meshFromSTL(filename, solid), nil
}

// meshFromSTL welds the unshared STL triangle corners by exact position,
// so that vertex normals come out smooth.
func meshFromSTL(source string, solid *stl.Solid) *Mesh {
	ms := &Mesh{Source: source}
	index := make(map[stl.Vec3]uint32, len(solid.Triangles))
	for _, tri := range solid.Triangles {
		for _, v := range tri.Vertices {
			idx, ok := index[v]
			if !ok {
				idx = uint32(len(ms.Vertex) / 3)
				index[v] = idx
				ms.Vertex = append(ms.Vertex, v[0], v[1], v[2])
			}
			ms.Index = append(ms.Index, idx)
		}
	}
	ms.Normal = vtp.ComputeNormals(ms.Vertex, ms.Index)
	ms.BBox = vertexBounds(ms.Vertex)
	return ms
}

func vertexBounds(vtx []float32) math32.Box3 {
	if len(vtx) < 3 {
		return math32.Box3{}
	}
	mn := math32.Vec3(vtx[0], vtx[1], vtx[2])
	mx := mn
	for i := 3; i+2 < len(vtx); i += 3 {
		p := math32.Vec3(vtx[i], vtx[i+1], vtx[i+2])
		mn = mn.Min(p)
		mx = mx.Max(p)
	}
	return math32.Box3{Min: mn, Max: mx}
}
