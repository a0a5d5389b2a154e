// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"image"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/gpu"
	"cogentcore.org/core/system"
	"cogentcore.org/core/xyz"
	"github.com/cogentcore/webgpu/wgpu"
)

// errNotRendered is returned when a scene has no GPU frame to read.
var errNotRendered = errors.New("livercompare: scene has not been rendered yet")

// frameImage reads the last rendered frame of the scene back from the GPU.
// It must run on the main thread; see [captureScene].
func frameImage(sc *xyz.Scene) (*image.RGBA, error) {
	rt, ok := sc.Frame.(*gpu.RenderTexture)
	if !ok || rt == nil || sc.Phong == nil || sc.Phong.System == nil {
		return nil, errNotRendered
	}
	tex, err := rt.GetCurrentTextureObject()
	if err != nil {
		return nil, err
	}
	if err := tex.ConfigReadBuffer(); err != nil {
		return nil, err
	}
	sy := sc.Phong.System
	cmd, err := sy.NewCommandEncoder()
	if err != nil {
		return nil, err
	}
	if err := tex.CopyToReadBuffer(cmd); err != nil {
		cmd.Release()
		return nil, err
	}
	buf, err := cmd.Finish(nil)
	if err != nil {
		cmd.Release()
		return nil, err
	}
	sy.Device().Queue.Submit(buf)
	buf.Release()
	cmd.Release()

	var data []byte
	if err := tex.ReadData(&data, true); err != nil {
		return nil, err
	}
	dims := tex.ReadBufferDims
	return pixelsToRGBA(data, int(dims.Width), int(dims.Height), int(dims.UnpaddedRowSize), bgra(tex.Format.Format)), nil
}

// bgra reports whether the texture format stores blue first.
func bgra(f wgpu.TextureFormat) bool {
	return f == wgpu.TextureFormatBGRA8Unorm || f == wgpu.TextureFormatBGRA8UnormSrgb
}

// pixelsToRGBA copies rows of 4-byte pixels with the given stride into a new
// opaque image, swapping the red and blue channels if swap is set.
func pixelsToRGBA(data []byte, w, h, stride int, swap bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		src := data[y*stride : y*stride+4*w]
		dst := img.Pix[y*img.Stride : y*img.Stride+4*w]
		copy(dst, src)
		for x := 0; x < len(dst); x += 4 {
			if swap {
				dst[x], dst[x+2] = dst[x+2], dst[x]
			}
			dst[x+3] = 255
		}
	}
	return img
}

// captureScene reads the current frame of the scene on the main thread.
func captureScene(sc *xyz.Scene) (img *image.RGBA, err error) {
	if sc.Frame == nil {
		return nil, errNotRendered
	}
	system.TheApp.RunOnMain(func() {
		img, err = frameImage(sc)
	})
	return
}
