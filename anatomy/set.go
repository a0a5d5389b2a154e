// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anatomy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/math32"
	"golang.org/x/sync/errgroup"
)

// Pair has the model files of one element for sides A and B.
type Pair struct {
	A string
	B string
}

// Pairs has the model files of every element.
type Pairs [ElementsN]Pair

// Set is one complete liver model: one mesh per element.
type Set [ElementsN]*Mesh

// Bounds returns the bounding box enclosing all non-empty meshes of the set,
// and false if there are none.
func (st *Set) Bounds() (math32.Box3, bool) {
	var bb math32.Box3
	found := false
	for _, ms := range st {
		if ms == nil || ms.IsEmpty() {
			continue
		}
		if !found {
			bb = ms.BBox
			found = true
			continue
		}
		bb.Min = bb.Min.Min(ms.BBox.Min)
		bb.Max = bb.Max.Max(ms.BBox.Max)
	}
	return bb, found
}

// Loader loads one model file; [Load] is the default.
type Loader func(filename string) (*Mesh, error)

// LoadPairs loads all model files of both sides concurrently.
// The first error cancels the remaining loads and is returned
// annotated with its element and side.
func LoadPairs(ctx context.Context, pairs Pairs, load Loader) (a, b Set, err error) {
	if load == nil {
		load = Load
	}
	st := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, el := range Elements {
		sides := [2]struct {
			name string
			file string
			dst  **Mesh
		}{
			{"A", pairs[el].A, &a[el]},
			{"B", pairs[el].B, &b[el]},
		}
		for _, sd := range sides {
			side, fn, dst := sd.name, sd.file, sd.dst
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				ms, err := load(fn)
				if err != nil {
					return fmt.Errorf("%s %s: %w", el.Title(), side, err)
				}
				slog.Debug("loaded model", "element", el, "side", side, "file", fn,
					"vertices", ms.NumVertex(), "triangles", ms.NumTriangles())
				*dst = ms
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Set{}, Set{}, err
	}
	slog.Info("loaded models", "files", 2*len(Elements), "elapsed", time.Since(st))
	return a, b, nil
}
