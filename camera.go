package voxmorph

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera holds the view parameters the renderer consumes. The animation core
// only ever feeds start/end poses into the rig below.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	Fovy   float32
	Aspect float32
	Near   float32
	Far    float32
}

func NewCamera(eye, target mgl32.Vec3, aspect float32) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     mgl32.Vec3{0, 1, 0},
		Fovy:   20,
		Aspect: aspect,
		Near:   0.1,
		Far:    2000,
	}
}

// ViewProjection builds the combined matrix for the current pose.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	proj := mgl32.Perspective(mgl32.DegToRad(c.Fovy), c.Aspect, c.Near, c.Far)
	view := mgl32.LookAtV(c.Eye, c.Target, c.Up)
	return proj.Mul4(view)
}

// CameraPose is a preset eye/target pair the rig glides between.
type CameraPose struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

// glideAnim tweens each eye/target component independently; indices 0-2 are
// the eye, 3-5 the target.
type glideAnim struct {
	tweens [6]*gween.Tween
	done   [6]bool
}

// CameraRig animates a camera between poses, typically driven by scroll
// bucket changes.
type CameraRig struct {
	camera *Camera
	glide  *glideAnim
}

func NewCameraRig(camera *Camera) *CameraRig {
	return &CameraRig{camera: camera}
}

// GlideTo starts a tweened move to the given pose over duration seconds. A
// glide already in flight is replaced, starting from the current pose.
func (r *CameraRig) GlideTo(pose CameraPose, duration float32) {
	from := [6]float32{
		r.camera.Eye.X(), r.camera.Eye.Y(), r.camera.Eye.Z(),
		r.camera.Target.X(), r.camera.Target.Y(), r.camera.Target.Z(),
	}
	to := [6]float32{
		pose.Eye.X(), pose.Eye.Y(), pose.Eye.Z(),
		pose.Target.X(), pose.Target.Y(), pose.Target.Z(),
	}
	anim := &glideAnim{}
	for i := range anim.tweens {
		anim.tweens[i] = gween.New(from[i], to[i], duration, ease.OutCubic)
	}
	r.glide = anim
}

// Gliding reports whether a move is in flight.
func (r *CameraRig) Gliding() bool {
	return r.glide != nil
}

// Update advances the active glide by dt seconds and writes the interpolated
// pose into the camera.
func (r *CameraRig) Update(dt float32) {
	if r.glide == nil {
		return
	}
	var vals [6]float32
	vals = [6]float32{
		r.camera.Eye.X(), r.camera.Eye.Y(), r.camera.Eye.Z(),
		r.camera.Target.X(), r.camera.Target.Y(), r.camera.Target.Z(),
	}
	allDone := true
	for i, tw := range r.glide.tweens {
		if r.glide.done[i] {
			continue
		}
		v, done := tw.Update(dt)
		vals[i] = v
		r.glide.done[i] = done
		if !done {
			allDone = false
		}
	}
	r.camera.Eye = mgl32.Vec3{vals[0], vals[1], vals[2]}
	r.camera.Target = mgl32.Vec3{vals[3], vals[4], vals[5]}
	if allDone {
		r.glide = nil
	}
}
