// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewer provides the livercompare window: two 3D views of
// liver model sets A and B side by side, viewed through one shared camera,
// with a dividing line and side labels.
package viewer

import (
	"context"
	"log/slog"

	"cogentcore.org/core/xyz"
	"cogentcore.org/core/xyz/xyzcore"
	"cogentcore.org/livercompare/anatomy"
	"cogentcore.org/livercompare/compare"
	"cogentcore.org/livercompare/config"
	"github.com/fsnotify/fsnotify"
)

// Viewer holds the state of one comparison window.
type Viewer struct {

	// Config is the configuration the viewer was made from.
	Config *config.Config

	// Layout is the arrangement of the two views.
	Layout *compare.Layout

	// Link keeps the cameras of both scenes on the shared layout camera.
	Link *compare.CameraLink

	// Palette has the element colors.
	Palette anatomy.Palette

	// Sets are the loaded model sets, by side.
	Sets [compare.SidesN]anatomy.Set

	// Report is the A/B statistics of the loaded models.
	Report compare.Report

	// Scenes are the 3D scenes, by side.
	Scenes [compare.SidesN]*xyz.Scene

	// Widgets are the GUI widgets showing the scenes, by side.
	// They are nil until the window is built.
	Widgets [compare.SidesN]*xyzcore.Scene

	watcher *fsnotify.Watcher
}

// New returns a viewer for the given model sets and palette.
func New(a, b anatomy.Set, pal anatomy.Palette) *Viewer {
	ly := compare.NewLayout()
	v := &Viewer{
		Config:  &config.Config{},
		Layout:  ly,
		Link:    compare.NewCameraLink(ly.Camera),
		Palette: pal,
	}
	v.Sets[compare.A] = a
	v.Sets[compare.B] = b
	v.UpdateReport()
	return v
}

// Load validates the configuration, loads the palette and all
// eight models, and returns a viewer for them.
func Load(ctx context.Context, c *config.Config) (*Viewer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	pal := anatomy.DefaultPalette()
	if c.Palette != "" {
		var err error
		pal, err = anatomy.LoadPalette(c.Palette)
		if err != nil {
			return nil, err
		}
	}
	a, b, err := anatomy.LoadPairs(ctx, c.Pairs(), anatomy.Load)
	if err != nil {
		return nil, err
	}
	v := New(a, b, pal)
	v.Config = c
	return v, nil
}

// UpdateReport recomputes the statistics report from the current sets.
func (v *Viewer) UpdateReport() {
	v.Report = compare.NewReport(&v.Sets[compare.A], &v.Sets[compare.B])
}

// SetScene configures the given scene to show the models of the given side.
func (v *Viewer) SetScene(sd compare.Side, sc *xyz.Scene) {
	v.Scenes[sd] = sc
	configScene(sc, sd, v.Layout, &v.Sets[sd], &v.Palette)
	v.Link.Push(sc)
	sc.SaveCamera("default")
}

// ResetView frames the models of side A, as when the window first opens,
// and applies the result to both scenes.
func (v *Viewer) ResetView() {
	if bb, ok := v.Sets[compare.A].Bounds(); ok {
		compare.FitCamera(v.Layout.Camera, bb)
	} else if bb, ok := v.Sets[compare.B].Bounds(); ok {
		compare.FitCamera(v.Layout.Camera, bb)
	}
	for _, sd := range compare.Sides {
		if sc := v.Scenes[sd]; sc != nil {
			v.Link.Push(sc)
			sc.SaveCamera("default")
		}
	}
	v.needsRender()
}

// SyncCamera copies the camera of the given side, after the user has
// moved it, to the shared camera and the other side.
func (v *Viewer) SyncCamera(from compare.Side) {
	src := v.Scenes[from]
	if src == nil {
		return
	}
	dst := v.Scenes[from.Other()]
	if dst == nil {
		v.Link.Pull(src)
		return
	}
	v.Link.Sync(src, dst)
	dst.SetNeedsRender()
	if w := v.Widgets[from.Other()]; w != nil {
		w.NeedsRender()
	}
}

// SetMesh replaces the mesh of one element on one side, as after
// the model file changed.
func (v *Viewer) SetMesh(sd compare.Side, el anatomy.Element, ms *anatomy.Mesh) {
	v.Sets[sd][el] = ms
	if sc := v.Scenes[sd]; sc != nil {
		setElementMesh(sc, sd, el, ms)
		sc.SetNeedsUpdate()
	}
	v.UpdateReport()
	slog.Info("updated model", "element", el, "side", sd, "file", ms.Source, "triangles", ms.NumTriangles())
}

// needsRender asks both scenes and widgets to render again.
func (v *Viewer) needsRender() {
	for _, sd := range compare.Sides {
		if sc := v.Scenes[sd]; sc != nil {
			sc.SetNeedsUpdate()
		}
		if w := v.Widgets[sd]; w != nil {
			w.NeedsRender()
		}
	}
}

// MoveCamera applies fun to the shared camera and pushes the
// result to both scenes.
func (v *Viewer) MoveCamera(fun func(cam *xyz.Camera)) {
	fun(v.Layout.Camera)
	v.Layout.Camera.UpdateMatrix()
	for _, sd := range compare.Sides {
		if sc := v.Scenes[sd]; sc != nil {
			v.Link.Push(sc)
		}
	}
	v.needsRender()
}
