// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"fmt"
	"image"
	"image/draw"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/icons"
	"cogentcore.org/core/paint"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/styles/abilities"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
	"cogentcore.org/core/xyz/xyzcore"
	"cogentcore.org/livercompare/compare"
	"cogentcore.org/livercompare/snapshot"
)

// Body returns the body of the comparison window: a toolbar over
// pane A, the dividing line, and pane B.
func (v *Viewer) Body() *core.Body {
	b := core.NewBody("livercompare").SetTitle("Liver model comparison")
	b.AddTopBar(func(bar *core.Frame) {
		core.NewToolbar(bar).Maker(v.MakeToolbar)
	})

	row := core.NewFrame(b)
	row.Styler(func(s *styles.Style) {
		s.Grow.Set(1, 1)
		s.Gap.Zero()
		s.Padding.Zero()
	})
	v.ResetView()
	v.makePane(row, compare.A)
	div := core.NewFrame(row)
	div.SetName("divider")
	div.Styler(func(s *styles.Style) {
		s.Grow.Set(0, 1)
		s.Min.X.Dp(v.Layout.DividerWidth)
		s.Max.X.Dp(v.Layout.DividerWidth)
		s.Background = colors.Uniform(v.Layout.DividerColor)
	})
	v.makePane(row, compare.B)
	return b
}

// makePane adds the scene of one side to the parent, sized by the
// width of its viewport, and returns the scene widget.
func (v *Viewer) makePane(parent core.Widget, sd compare.Side) *xyzcore.Scene {
	view := v.Layout.View(sd)
	pane := core.NewFrame(parent)
	pane.SetName("pane-" + sd.String())
	pane.Styler(func(s *styles.Style) {
		s.Direction = styles.Column
		s.Grow.Set(view.Viewport.Width(), view.Viewport.Height())
		s.Gap.Zero()
		s.Padding.Zero()
		s.Background = v.Layout.BackgroundImage()
	})

	sw := xyzcore.NewScene(pane)
	sw.SetName("scene-" + sd.String())
	v.Widgets[sd] = sw
	v.SetScene(sd, sw.XYZ)
	v.handleNavEvents(sd, sw)
	v.addLabel(sd, sw)
	return sw
}

// handleNavEvents does the camera navigation of the scene widget itself,
// ahead of the handlers of [xyzcore.Scene], so that every move is
// copied to the other side before the event is marked as handled.
func (v *Viewer) handleNavEvents(sd compare.Side, sw *xyzcore.Scene) {
	moved := func(e events.Event) {
		e.SetHandled()
		v.SyncCamera(sd)
		sw.NeedsRender()
	}
	sw.On(events.SlideMove, func(e events.Event) {
		if sw.CurrentManipPoint != nil && sw.CurrentSelected != nil {
			return
		}
		e.SetLocalOff(e.LocalOff().Add(sw.Geom.ContentBBox.Min))
		sw.XYZ.SlideMoveEvent(e)
		moved(e)
	})
	sw.On(events.Scroll, func(e events.Event) {
		e.SetLocalOff(e.LocalOff().Add(sw.Geom.ContentBBox.Min))
		sw.XYZ.MouseScrollEvent(e.(*events.MouseScroll))
		moved(e)
	})
	sw.On(events.KeyChord, func(e events.Event) {
		sw.XYZ.KeyChordEvent(e)
		if e.IsHandled() {
			moved(e)
		}
	})
}

// addLabel shows the side label over the bottom left corner of the
// scene widget. The 3D view is drawn over all widgets of the window,
// so the label is a sprite, which is drawn over everything.
func (v *Viewer) addLabel(sd compare.Side, sw *xyzcore.Scene) {
	img := snapshot.LabelImage(v.Layout.View(sd).Label, v.Layout.LabelSize, v.Layout.LabelColor)
	if img == nil {
		return
	}
	sz := img.Bounds().Size()
	off := int(v.Layout.LabelOffset)
	sp := core.NewSprite("livercompare-label-"+sd.String(), func(pc *paint.Painter) {
		if sw.This == nil || !sw.IsVisible() {
			return
		}
		bb := sw.Geom.ContentBBox.Add(sw.Scene.SceneGeom.Pos)
		r := image.Rect(bb.Min.X+off, bb.Max.Y-off-sz.Y, bb.Min.X+off+sz.X, bb.Max.Y-off)
		pc.DrawImage(img, r, image.Point{}, draw.Over)
	})
	sp.Active = true
	sw.OnShow(func(e events.Event) {
		if st := sw.Scene.Stage; st != nil && st.Main != nil {
			st.Main.Sprites.Add(sp)
		}
	})
}

// MakeToolbar adds the view actions to the toolbar.
func (v *Viewer) MakeToolbar(p *tree.Plan) {
	tree.Add(p, func(w *core.Button) {
		w.SetText("Reset view").SetIcon(icons.Update).SetTooltip("frame model A in both views").
			OnClick(func(e events.Event) {
				v.ResetView()
			})
	})
	tree.Add(p, func(w *core.Button) {
		w.SetIcon(icons.ZoomIn).SetTooltip("zoom in")
		w.Styler(func(s *styles.Style) {
			s.SetAbilities(true, abilities.RepeatClickable)
		})
		w.OnClick(func(e events.Event) {
			v.MoveCamera(func(cam *xyz.Camera) { cam.Zoom(-.05) })
		})
	})
	tree.Add(p, func(w *core.Button) {
		w.SetIcon(icons.ZoomOut).SetTooltip("zoom out")
		w.Styler(func(s *styles.Style) {
			s.SetAbilities(true, abilities.RepeatClickable)
		})
		w.OnClick(func(e events.Event) {
			v.MoveCamera(func(cam *xyz.Camera) { cam.Zoom(.05) })
		})
	})
	tree.Add(p, func(w *core.Separator) {})
	tree.Add(p, func(w *core.Button) {
		w.SetText("Snapshot").SetIcon(icons.Image).SetTooltip("save both views as one image").
			OnClick(func(e events.Event) {
				if err := v.SaveSnapshot(v.Config.Snapshot); err != nil {
					core.ErrorSnackbar(w, err, "Error saving snapshot")
					return
				}
				core.MessageSnackbar(w, "Saved "+v.Config.Snapshot)
			})
	})
	tree.Add(p, func(w *core.Button) {
		w.SetText("Statistics").SetIcon(icons.Info).SetTooltip("compare the model sizes").
			OnClick(func(e events.Event) {
				d := core.NewBody("Statistics")
				core.NewText(d).SetText("A/B model statistics").SetType(core.TextHeadlineSmall)
				core.NewTable(d).SetSlice(&v.Report)
				d.RunWindowDialog(w)
			})
	})
}

// SaveSnapshot reads the current rendering of both scenes back from the
// GPU and saves them to the given file, composed the way they appear
// in the window.
func (v *Viewer) SaveSnapshot(filename string) error {
	var imgs [compare.SidesN]image.Image
	for _, sd := range compare.Sides {
		sc := v.Scenes[sd]
		if sc == nil {
			return errors.New("livercompare: no scene for side " + sd.String())
		}
		img, err := captureScene(sc)
		if err != nil {
			return fmt.Errorf("side %s: %w", sd, err)
		}
		imgs[sd] = img
	}
	return snapshot.Save(imgs[compare.A], imgs[compare.B], v.Layout, filename)
}
