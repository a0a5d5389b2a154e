// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"cogentcore.org/livercompare/anatomy"
	"cogentcore.org/livercompare/compare"
)

// meshName returns the scene mesh name of an element on a side, e.g. "A-tumor".
func meshName(sd compare.Side, el anatomy.Element) string {
	return sd.String() + "-" + el.String()
}

// newGenMesh wraps the arrays of a model mesh as a scene mesh.
func newGenMesh(name string, ms *anatomy.Mesh) *xyz.GenMesh {
	gm := &xyz.GenMesh{
		Vertex:   ms.Vertex,
		Normal:   ms.Normal,
		TexCoord: make(math32.ArrayF32, 2*ms.NumVertex()),
		Index:    ms.Index,
	}
	gm.Name = name
	return gm
}

// configScene fills an empty scene with the lights and one solid per
// element of the given model set.
func configScene(sc *xyz.Scene, sd compare.Side, ly *compare.Layout, set *anatomy.Set, pal *anatomy.Palette) {
	// the frame is cleared to one color; the gradient shows around it
	sc.Background = colors.Uniform(ly.Background)

	xyz.NewAmbient(sc, "ambient", 0.3, xyz.DirectSun)
	key := xyz.NewDirectional(sc, "key", 1, xyz.DirectSun)
	key.Pos.Set(0, 1, 1)
	fill := xyz.NewDirectional(sc, "fill", 0.4, xyz.DirectSun)
	fill.Pos.Set(0, -1, -1)

	for _, el := range anatomy.Elements {
		ms := set[el]
		if ms == nil {
			ms = &anatomy.Mesh{}
		}
		gm := newGenMesh(meshName(sd, el), ms)
		sc.SetMesh(gm)
		sld := xyz.NewSolid(sc).SetMesh(gm).SetColor(pal[el])
		sld.SetName(el.String())
	}
}

// setElementMesh replaces the scene mesh of an element and
// points the element's solid at it.
func setElementMesh(sc *xyz.Scene, sd compare.Side, el anatomy.Element, ms *anatomy.Mesh) {
	gm := newGenMesh(meshName(sd, el), ms)
	sc.SetMesh(gm)
	if sld, ok := sc.ChildByName(el.String(), 0).(*xyz.Solid); ok {
		sld.SetMesh(gm)
	}
}
