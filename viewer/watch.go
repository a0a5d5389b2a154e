// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"context"
	"log/slog"
	"path/filepath"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/livercompare/anatomy"
	"cogentcore.org/livercompare/compare"
	"github.com/fsnotify/fsnotify"
)

// target is an element and side shown from a model file.
type target struct {
	side    compare.Side
	element anatomy.Element
}

// targets returns the elements and sides shown from each model file,
// by cleaned file path. The same file may be shown more than once.
func targets(pairs anatomy.Pairs) map[string][]target {
	ts := map[string][]target{}
	for _, el := range anatomy.Elements {
		for _, sd := range compare.Sides {
			fn := pairs[el].A
			if sd == compare.B {
				fn = pairs[el].B
			}
			fn = filepath.Clean(fn)
			ts[fn] = append(ts[fn], target{side: sd, element: el})
		}
	}
	return ts
}

// Watch starts watching the directories of all model files, and reloads
// a model whenever its file is written, until ctx is done or [Viewer.Close]
// is called. Editors that save by replacing the file are handled by
// watching the directory rather than the file.
func (v *Viewer) Watch(ctx context.Context) error {
	if v.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	ts := targets(v.Config.Pairs())
	dirs := map[string]bool{}
	for fn := range ts {
		dir := filepath.Dir(fn)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.Add(dir); err != nil {
			w.Close()
			return err
		}
	}
	v.watcher = w
	go v.watch(ctx, w, ts)
	return nil
}

func (v *Viewer) watch(ctx context.Context, w *fsnotify.Watcher, ts map[string][]target) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fn := filepath.Clean(event.Name)
			if len(ts[fn]) == 0 {
				continue
			}
			errors.Log(v.reload(fn, ts[fn]))
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// reload loads the given file again and shows it in place of the
// meshes of the given targets. A file that does not load, as while it is
// still being written, leaves the current meshes in place.
func (v *Viewer) reload(fn string, ts []target) error {
	ms, err := anatomy.Load(fn)
	if err != nil {
		return err
	}
	slog.Info("reloading model", "file", fn)
	for _, t := range ts {
		w := v.Widgets[t.side]
		if w == nil {
			v.SetMesh(t.side, t.element, ms)
			continue
		}
		w.AsyncLock()
		v.SetMesh(t.side, t.element, ms)
		w.NeedsRender()
		w.AsyncUnlock()
	}
	return nil
}

// Close stops watching the model files.
func (v *Viewer) Close() error {
	if v.watcher == nil {
		return nil
	}
	err := v.watcher.Close()
	v.watcher = nil
	return err
}
