// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compare

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
)

// CameraLink makes several scenes behave as if they were viewed through one
// camera. Every scene owns its own [xyz.Camera] value, so the link holds the
// shared camera and copies it out to the scenes after each change.
type CameraLink struct {

	// Shared is the one camera all linked scenes are viewed through.
	Shared *xyz.Camera
}

// NewCameraLink returns a link around the given shared camera.
func NewCameraLink(shared *xyz.Camera) *CameraLink {
	return &CameraLink{Shared: shared}
}

// Pull copies the camera of the given scene into the shared camera,
// after the user has moved it.
func (cl *CameraLink) Pull(sc *xyz.Scene) {
	copyCamera(cl.Shared, &sc.Camera)
	cl.Shared.UpdateMatrix()
}

// Push applies the shared camera to the given scene. The scene keeps its own
// aspect ratio, which follows the size of its viewport.
func (cl *CameraLink) Push(sc *xyz.Scene) {
	aspect := sc.Camera.Aspect
	copyCamera(&sc.Camera, cl.Shared)
	if aspect > 0 {
		sc.Camera.Aspect = aspect
	}
	sc.Camera.UpdateMatrix()
}

// Sync pulls the camera from one scene and pushes it to all the others.
func (cl *CameraLink) Sync(from *xyz.Scene, to ...*xyz.Scene) {
	cl.Pull(from)
	for _, sc := range to {
		if sc != from {
			cl.Push(sc)
		}
	}
}

// copyCamera copies the viewpoint and projection of src into dst,
// leaving dst's mutex and derived matrices alone.
func copyCamera(dst, src *xyz.Camera) {
	dst.Pose = src.Pose
	dst.Target = src.Target
	dst.UpDir = src.UpDir
	dst.Ortho = src.Ortho
	dst.FOV = src.FOV
	dst.Near = src.Near
	dst.Far = src.Far
}

// SameView returns whether two cameras have the same viewpoint and projection.
func SameView(a, b *xyz.Camera) bool {
	return a.Pose.Pos == b.Pose.Pos && a.Pose.Quat == b.Pose.Quat &&
		a.Target == b.Target && a.UpDir == b.UpDir && a.Ortho == b.Ortho &&
		a.FOV == b.FOV && a.Near == b.Near && a.Far == b.Far
}

// FitCamera points the camera at the center of the box from far enough away
// that the whole box is in view, keeping the current viewing direction
// (or looking down -Z if there is none) and up direction.
// The clipping planes are set to leave room for zooming out.
func FitCamera(cam *xyz.Camera, box math32.Box3) {
	center := box.Center()
	radius := box.Size().Length() / 2
	if radius <= 0 {
		radius = 0.5
	}
	fov := cam.FOV
	if fov <= 0 {
		fov = 30
	}
	dist := radius / math32.Sin(math32.DegToRad(fov/2))

	dir := cam.Pose.Pos.Sub(cam.Target)
	if dir.Length() == 0 {
		dir = math32.Vec3(0, 0, 1)
	}
	dir = dir.Normal()
	up := cam.UpDir
	if up.Length() == 0 {
		up = math32.Vec3(0, 1, 0)
	}
	cam.Pose.Pos = center.Add(dir.MulScalar(dist))
	cam.Near = max(dist*0.001, 0.001)
	cam.Far = max(10*(dist+radius), cam.Far)
	cam.LookAt(center, up)
}
