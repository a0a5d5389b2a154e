// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/livercompare/compare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

var (
	red   = color.RGBA{255, 0, 0, 255}
	green = color.RGBA{0, 255, 0, 255}
)

// hasColor reports whether any pixel of img within r has color c.
func hasColor(img *image.RGBA, r image.Rectangle, c color.RGBA) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				return true
			}
		}
	}
	return false
}

func TestCompose(t *testing.T) {
	ly := compare.NewLayout()
	img := Compose(solid(200, 150, red), solid(200, 150, green), ly)
	require.Equal(t, image.Rect(0, 0, 400, 150), img.Bounds())

	assert.Equal(t, red, img.RGBAAt(100, 5))
	assert.Equal(t, green, img.RGBAAt(300, 5))
	assert.Equal(t, ly.DividerColor, img.RGBAAt(200, 5))
	assert.Equal(t, ly.DividerColor, img.RGBAAt(196, 75))
	assert.Equal(t, ly.DividerColor, img.RGBAAt(204, 75))
	assert.Equal(t, red, img.RGBAAt(194, 5))

	// labels sit in the bottom left corner of each half
	labelA := image.Rect(10, 60, 60, 140)
	labelB := image.Rect(210, 60, 260, 140)
	assert.True(t, hasColor(img, labelA, ly.LabelColor))
	assert.True(t, hasColor(img, labelB, ly.LabelColor))
	assert.False(t, hasColor(img, image.Rect(100, 0, 190, 50), ly.LabelColor))
}

// near asserts that c is within tol of want in every channel.
func near(t *testing.T, want, c color.RGBA, tol int) {
	t.Helper()
	assert.InDelta(t, int(want.R), int(c.R), float64(tol), "R of %v", c)
	assert.InDelta(t, int(want.G), int(c.G), float64(tol), "G of %v", c)
	assert.InDelta(t, int(want.B), int(c.B), float64(tol), "B of %v", c)
}

func TestComposeUnequal(t *testing.T) {
	ly := compare.NewLayout()
	img := Compose(solid(100, 120, red), solid(100, 80, green), ly)
	require.Equal(t, image.Rect(0, 0, 200, 120), img.Bounds())

	// the gap under the shorter view shows the background gradient,
	// darker toward the top
	near(t, ly.Background, img.RGBAAt(190, 119), 4)
	near(t, ly.Background2, img.RGBAAt(190, 0), 4)
	top, bottom := img.RGBAAt(150, 82), img.RGBAAt(150, 118)
	assert.Less(t, top.B, bottom.B)
}

func TestComposeDividerX(t *testing.T) {
	ly := compare.NewLayout()
	img := Compose(solid(300, 50, red), solid(100, 50, green), ly)
	assert.Equal(t, ly.DividerColor, img.RGBAAt(200, 25))
	assert.Equal(t, red, img.RGBAAt(100, 25))
	assert.Equal(t, red, img.RGBAAt(290, 25))

	ly.DividerX = 0.25
	img = Compose(solid(200, 50, red), solid(200, 50, green), ly)
	assert.Equal(t, ly.DividerColor, img.RGBAAt(100, 25))
	assert.Equal(t, red, img.RGBAAt(199, 25))
	assert.Equal(t, green, img.RGBAAt(201, 25))
}

func TestLabelImage(t *testing.T) {
	assert.Nil(t, LabelImage("", 72, red))

	img := LabelImage("A", 72, red)
	require.NotNil(t, img)
	sz := img.Bounds().Size()
	assert.InDelta(t, 72, sz.Y, 13)
	assert.True(t, hasColor(img, img.Bounds(), red))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))

	small := LabelImage("A", 12, red)
	assert.Less(t, small.Bounds().Dy(), sz.Y)
}

func TestSave(t *testing.T) {
	ly := compare.NewLayout()
	fn := filepath.Join(t.TempDir(), "compare.png")
	require.NoError(t, Save(solid(64, 64, red), solid(64, 64, green), ly, fn))
	st, err := os.Stat(fn)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))

	assert.Error(t, Save(nil, solid(64, 64, green), ly, fn))
}
