// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compare defines the side-by-side comparison: the two sides,
// their fixed half-window viewports, the overlay divider and labels,
// the single camera shared by both views and the A/B statistics report.
package compare

import (
	"image/color"

	"cogentcore.org/core/colors/gradient"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
)

// Side is one of the two compared model sets.
type Side int32

const (
	// A is the left side.
	A Side = iota

	// B is the right side.
	B

	// SidesN is the number of sides.
	SidesN
)

// Sides lists both sides in display order.
var Sides = [SidesN]Side{A, B}

func (sd Side) String() string {
	if sd == B {
		return "B"
	}
	return "A"
}

// Other returns the opposite side.
func (sd Side) Other() Side {
	return 1 - sd
}

// Viewport is a rectangle in normalized window coordinates,
// with (0, 0) at the bottom left and (1, 1) at the top right.
type Viewport struct {
	XMin, YMin, XMax, YMax float32
}

// Width returns the normalized width.
func (vp Viewport) Width() float32 { return vp.XMax - vp.XMin }

// Height returns the normalized height.
func (vp Viewport) Height() float32 { return vp.YMax - vp.YMin }

// View is the rendering setup of one side.
type View struct {

	// Side is the side shown.
	Side Side

	// Viewport is where the side is drawn in the window.
	Viewport Viewport

	// Label is the overlay text identifying the side.
	Label string

	// Camera is the camera the side is viewed through.
	// It is the same object for both views.
	Camera *xyz.Camera
}

// Layout is the complete two-view arrangement of the comparison window.
type Layout struct {

	// Views are the A and B views.
	Views [SidesN]View

	// Camera is the single camera shared by both views.
	Camera *xyz.Camera

	// DividerX is the normalized x position of the dividing line.
	DividerX float32

	// DividerWidth is the width of the dividing line in pixels.
	DividerWidth float32

	// DividerColor is the color of the dividing line.
	DividerColor color.RGBA

	// LabelSize is the font size of the side labels in points.
	LabelSize float32

	// LabelColor is the color of the side labels.
	LabelColor color.RGBA

	// LabelOffset is the distance of the labels from the
	// bottom left corner of their viewport in pixels.
	LabelOffset float32

	// Background is the scene background color at the bottom of the views.
	Background color.RGBA

	// Background2 is the scene background color at the top of the views.
	Background2 color.RGBA
}

// NewLayout returns the comparison layout: A on the left half of the window,
// B on the right half, both at full height and looking through one camera.
// The layout does not depend on the models shown.
func NewLayout() *Layout {
	cam := &xyz.Camera{}
	cam.Defaults()
	ly := &Layout{
		Camera:       cam,
		DividerX:     0.5,
		DividerWidth: 10,
		DividerColor: color.RGBA{255, 255, 255, 255},
		LabelSize:    72,
		LabelColor:   color.RGBA{0, 0, 0, 255},
		LabelOffset:  10,
		Background:   rgbf(0.7, 0.7, 0.9),
		Background2:  rgbf(0.4, 0.4, 0.7),
	}
	ly.Views[A] = View{Side: A, Label: "A", Camera: cam, Viewport: Viewport{0, 0, 0.5, 1}}
	ly.Views[B] = View{Side: B, Label: "B", Camera: cam, Viewport: Viewport{0.5, 0, 1, 1}}
	return ly
}

// View returns the view of the given side.
func (ly *Layout) View(sd Side) *View {
	return &ly.Views[sd]
}

// BackgroundImage returns the vertical background gradient of the views,
// from Background2 at the top to Background at the bottom.
func (ly *Layout) BackgroundImage() *gradient.Linear {
	return gradient.NewLinear().SetEnd(math32.Vec2(0, 1)).
		AddStop(ly.Background2, 0).AddStop(ly.Background, 1)
}

// rgbf returns an opaque color from normalized components.
func rgbf(r, g, b float32) color.RGBA {
	c := func(v float32) uint8 { return uint8(v*255 + 0.5) }
	return color.RGBA{c(r), c(g), c(b), 255}
}
