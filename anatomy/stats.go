// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anatomy

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Stats are gross geometric properties of a mesh, in model units.
type Stats struct {

	// Vertices is the number of vertices.
	Vertices int

	// Triangles is the number of triangles.
	Triangles int

	// Area is the total surface area.
	Area float64

	// Volume is the enclosed volume, which is only meaningful
	// for closed surfaces such as the parenchyma and tumor.
	Volume float64

	// Size is the extent of the bounding box along each axis.
	Size r3.Vec
}

// ComputeStats returns the statistics of the given mesh. The volume uses the
// divergence theorem, summing signed tetrahedra from the origin to each triangle.
func ComputeStats(ms *Mesh) Stats {
	st := Stats{Vertices: ms.NumVertex(), Triangles: ms.NumTriangles()}
	vtx := func(i uint32) r3.Vec {
		return r3.Vec{X: float64(ms.Vertex[3*i]), Y: float64(ms.Vertex[3*i+1]), Z: float64(ms.Vertex[3*i+2])}
	}
	vol := 0.0
	for t := 0; t+2 < len(ms.Index); t += 3 {
		a, b, c := vtx(ms.Index[t]), vtx(ms.Index[t+1]), vtx(ms.Index[t+2])
		st.Area += r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) / 2
		vol += r3.Dot(a, r3.Cross(b, c)) / 6
	}
	st.Volume = math.Abs(vol)
	sz := ms.BBox.Size()
	st.Size = r3.Vec{X: float64(sz.X), Y: float64(sz.Y), Z: float64(sz.Z)}
	return st
}
