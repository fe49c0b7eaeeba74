package voxmorph

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ScrollState carries the externally-fed scroll position that drives shape
// and camera transitions.
type ScrollState struct {
	Position int64
}

// UploadTarget wraps the optional instance-buffer writer so it can live in
// the resource map.
type UploadTarget struct {
	Writer InstanceWriter
}

// SceneModule wires the whole morphing scene: the instance grid, the
// animation registry seeded with the vertical bob, the shape catalog and
// assignment engine, and the scroll-driven triggers.
type SceneModule struct {
	Config Config
	Writer InstanceWriter
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	log := app.Logger()
	cfg := m.Config

	instances := GridInstances(cfg.Grid.Width, cfg.Grid.Depth, cfg.Grid.Spacing)
	controller := NewInstanceController(instances)

	persistent := []PersistentAnimation{{
		Movement: mgl32.Vec3{0, cfg.Animation.BobHeight, 0},
		Easing:   EaseInEaseOutLoop,
	}}
	handler, err := NewAnimationHandler(controller.Instances, persistent, log)
	if err != nil {
		panic(fmt.Sprintf("scene module: %v", err))
	}
	handler.SetDelayScale(cfg.Animation.DelayScale)

	catalog := NewCatalog(log)
	for _, shape := range cfg.Shapes {
		catalog.AddShape(shape.Id, shape.Path)
	}

	voxels := NewVoxelHandler(catalog, log)
	voxels.ShapeSpeed = cfg.Animation.ShapeSpeed
	voxels.DisperseSpeed = cfg.Animation.DisperseSpeed
	voxels.DisperseRadius = cfg.Animation.DisperseRadius
	voxels.DisperseSkip = cfg.Animation.DisperseSkip

	cmd.AddResources(
		controller,
		handler,
		catalog,
		voxels,
		&ScrollState{},
		NewTransitionHandler(cfg.Triggers),
		&UploadTarget{Writer: m.Writer},
	)

	app.UseSystem(Update, sceneAdvanceSystem)
	app.UseSystem(PostUpdate, sceneUploadSystem)
}

// sceneAdvanceSystem is the single mutation point per frame: fire any
// scroll-triggered transition, advance every record, and write the resolved
// poses back into the instance list.
func sceneAdvanceSystem(
	t *Time,
	scroll *ScrollState,
	triggers *TransitionHandler[ShapeId],
	voxels *VoxelHandler,
	handler *AnimationHandler,
	controller *InstanceController,
) {
	if shape, ok := triggers.GetTransitionOnce(scroll.Position); ok && !handler.IsLocked() {
		voxels.TransitionTo(shape, handler)
	}

	handler.Advance(t.Seconds())
	for i := range controller.Instances {
		handler.UpdateInstance(i, &controller.Instances[i])
	}
}

// sceneUploadSystem ships a snapshot of the finished frame to the renderer.
func sceneUploadSystem(controller *InstanceController, target *UploadTarget) {
	controller.Upload(target.Writer)
}

// CameraModule glides a camera between preset poses as the scroll position
// crosses bucket boundaries.
type CameraModule struct {
	Camera        *Camera
	Poses         map[int64]CameraPose
	GlideDuration float32
}

func (m CameraModule) Install(app *App, cmd *Commands) {
	duration := m.GlideDuration
	if duration <= 0 {
		duration = 1.5
	}
	cmd.AddResources(
		m.Camera,
		NewCameraRig(m.Camera),
		NewTransitionHandler(m.Poses),
		&cameraGlideDuration{seconds: duration},
	)
	app.UseSystem(Update, cameraGlideSystem)
}

type cameraGlideDuration struct {
	seconds float32
}

func cameraGlideSystem(
	t *Time,
	scroll *ScrollState,
	poses *TransitionHandler[CameraPose],
	rig *CameraRig,
	duration *cameraGlideDuration,
) {
	if pose, ok := poses.GetTransitionOnce(scroll.Position); ok {
		rig.GlideTo(pose, duration.seconds)
	}
	rig.Update(t.Seconds())
}
