// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snapshot composes the rendered A and B views into one
// side-by-side image with the divider line and side labels, as shown
// in the comparison window, and saves it.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/math32"
	"cogentcore.org/livercompare/compare"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Compose returns a new image with a on the left and b on the right,
// overlaid with the divider and labels of the given layout.
// The images are top-aligned; a shorter one leaves the background
// gradient showing. The divider is centered on the layout's DividerX.
func Compose(a, b image.Image, ly *compare.Layout) *image.RGBA {
	ab, bb := a.Bounds(), b.Bounds()
	w := ab.Dx() + bb.Dx()
	h := max(ab.Dy(), bb.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := ly.BackgroundImage()
	bg.Update(1, math32.B2FromRect(dst.Bounds()), math32.Identity2())
	draw.Draw(dst, dst.Bounds(), bg, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, 0, ab.Dx(), ab.Dy()), a, ab.Min, draw.Src)
	draw.Draw(dst, image.Rect(ab.Dx(), 0, w, bb.Dy()), b, bb.Min, draw.Src)

	dx := int(ly.DividerX*float32(w) + 0.5)
	half := int(ly.DividerWidth / 2)
	div := image.Rect(dx-half, 0, dx-half+int(ly.DividerWidth), h)
	draw.Draw(dst, div, image.NewUniform(ly.DividerColor), image.Point{}, draw.Src)

	left := [compare.SidesN]int{0, ab.Dx()}
	for _, sd := range compare.Sides {
		vw := ly.View(sd)
		DrawLabel(dst, vw.Label, image.Pt(left[sd]+int(ly.LabelOffset), h-int(ly.LabelOffset)), ly.LabelSize, ly.LabelColor)
	}
	return dst
}

// DrawLabel draws text with its bottom left corner at the given point,
// scaling the built-in bitmap font up to approximately the given pixel size.
func DrawLabel(dst draw.Image, text string, bottomLeft image.Point, size float32, clr color.Color) {
	img := LabelImage(text, size, clr)
	if img == nil {
		return
	}
	sz := img.Bounds().Size()
	r := image.Rect(bottomLeft.X, bottomLeft.Y-sz.Y, bottomLeft.X+sz.X, bottomLeft.Y)
	draw.Draw(dst, r, img, image.Point{}, draw.Over)
}

// LabelImage returns text rendered on a transparent background with the
// built-in bitmap font, scaled up to approximately the given pixel height.
// It returns nil for empty text.
func LabelImage(text string, size float32, clr color.Color) *image.RGBA {
	face := basicfont.Face7x13
	met := face.Metrics()
	lh := (met.Ascent + met.Descent).Ceil()
	tw := font.MeasureString(face, text).Ceil()
	if tw == 0 || lh == 0 {
		return nil
	}
	small := image.NewRGBA(image.Rect(0, 0, tw, lh))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: met.Ascent},
	}
	d.DrawString(text)

	scale := max(1, int(size/float32(lh)+0.5))
	img := image.NewRGBA(image.Rect(0, 0, tw*scale, lh*scale))
	xdraw.NearestNeighbor.Scale(img, img.Bounds(), small, small.Bounds(), xdraw.Over, nil)
	return img
}

// Save composes a and b and saves the result to the given file;
// the format follows the extension (.png, .jpg, .gif).
func Save(a, b image.Image, ly *compare.Layout, filename string) error {
	if a == nil || b == nil {
		return fmt.Errorf("snapshot: both views must be rendered before saving %s", filename)
	}
	return imagex.Save(Compose(a, b, ly), filename)
}
