// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"bytes"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"cogentcore.org/livercompare/anatomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutViewports(t *testing.T) {
	ly := NewLayout()
	assert.Equal(t, Viewport{0, 0, 0.5, 1}, ly.View(A).Viewport)
	assert.Equal(t, Viewport{0.5, 0, 1, 1}, ly.View(B).Viewport)
	assert.Equal(t, ly.View(A).Viewport.Width(), ly.View(B).Viewport.Width())
	assert.Equal(t, float32(1), ly.View(A).Viewport.Height())
	assert.Equal(t, ly.View(A).Viewport.XMax, ly.DividerX)
	assert.Equal(t, "A", ly.View(A).Label)
	assert.Equal(t, "B", ly.View(B).Label)
}

func TestLayoutSharedCamera(t *testing.T) {
	ly := NewLayout()
	require.NotNil(t, ly.Camera)
	assert.Same(t, ly.Camera, ly.View(A).Camera)
	assert.Same(t, ly.Camera, ly.View(B).Camera)

	other := NewLayout()
	assert.NotSame(t, ly.Camera, other.Camera)
}

func TestSides(t *testing.T) {
	assert.Equal(t, B, A.Other())
	assert.Equal(t, A, B.Other())
	assert.Equal(t, "A", A.String())
	assert.Equal(t, "B", B.String())
}

func TestCameraLink(t *testing.T) {
	ly := NewLayout()
	link := NewCameraLink(ly.Camera)
	sa, sb := xyz.NewScene(), xyz.NewScene()
	sb.Camera.Aspect = 0.75

	sa.Camera.Orbit(20, 10)
	sa.Camera.Zoom(0.2)
	assert.False(t, SameView(&sa.Camera, &sb.Camera))

	link.Sync(sa, sa, sb)
	assert.True(t, SameView(&sa.Camera, &sb.Camera))
	assert.True(t, SameView(ly.Camera, &sb.Camera))
	assert.Equal(t, float32(0.75), sb.Camera.Aspect)

	// moving B now drives A
	sb.Camera.Pan(1, 0)
	link.Sync(sb, sa, sb)
	assert.True(t, SameView(&sa.Camera, &sb.Camera))
	assert.True(t, SameView(ly.Camera, &sa.Camera))
}

func TestFitCamera(t *testing.T) {
	cam := &xyz.Camera{}
	cam.Defaults()
	box := math32.B3(100, 200, 300, 140, 260, 320)
	FitCamera(cam, box)

	center := box.Center()
	assert.Equal(t, center, cam.Target)
	view := cam.Pose.Pos.Sub(center)
	assert.InDelta(t, 0, view.X, 1e-3)
	assert.InDelta(t, 0, view.Y, 1e-3)
	assert.Greater(t, view.Z, float32(0))

	radius := box.Size().Length() / 2
	dist := view.Length()
	// the bounding sphere fits in the field of view
	assert.InDelta(t, radius/math32.Sin(math32.DegToRad(cam.FOV/2)), dist, 1e-2)
	assert.Less(t, cam.Near, dist-radius)
	assert.Greater(t, cam.Far, dist+radius)
}

func cube(size float32) *anatomy.Mesh {
	ms := &anatomy.Mesh{}
	for i := 0; i < 8; i++ {
		ms.Vertex = append(ms.Vertex, size*float32(i&1), size*float32((i>>1)&1), size*float32((i>>2)&1))
	}
	ms.Index = []uint32{
		0, 2, 1, 1, 2, 3, 4, 5, 6, 5, 7, 6,
		0, 1, 4, 1, 5, 4, 2, 6, 3, 3, 6, 7,
		0, 4, 2, 2, 4, 6, 1, 3, 5, 3, 7, 5,
	}
	return ms
}

func TestReport(t *testing.T) {
	var a, b anatomy.Set
	a[anatomy.Tumor] = cube(1)
	b[anatomy.Tumor] = cube(2)
	rep := NewReport(&a, &b)
	require.Len(t, rep, len(anatomy.Elements))

	tr := rep[anatomy.Tumor]
	assert.Equal(t, "Tumor", tr.Element)
	assert.Equal(t, 12, tr.TrianglesA)
	assert.InDelta(t, 1, tr.VolumeA, 1e-9)
	assert.InDelta(t, 8, tr.VolumeB, 1e-9)
	assert.InDelta(t, 700, tr.VolumeDiff, 1e-9)
	assert.InDelta(t, 300, tr.AreaDiff, 1e-9)

	pr := rep[anatomy.Parenchyma]
	assert.Equal(t, 0, pr.TrianglesA)
	assert.Equal(t, 0.0, pr.VolumeDiff)

	var buf bytes.Buffer
	n, err := rep.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "Tumor")
	assert.Contains(t, buf.String(), "+700.00")
}
