package voxmorph

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Instance is one renderable grid cell. The animation engine owns Position,
// Bounding and Color; everything else belongs to the renderer.
type Instance struct {
	Position     mgl32.Vec3
	Size         mgl32.Vec3
	Bounding     mgl32.Vec3
	Scale        float32
	Color        mgl32.Vec3
	ShouldRender bool
}

// GridInstances lays out width*depth unit cubes on the y=0 plane, spaced by
// spacing units, the resting pose the morphs return to.
func GridInstances(width, depth int, spacing float32) []Instance {
	instances := make([]Instance, 0, width*depth)
	for x := 0; x < width; x++ {
		for z := 0; z < depth; z++ {
			pos := mgl32.Vec3{float32(x) * spacing, 0, float32(z) * spacing}
			instances = append(instances, Instance{
				Position:     pos,
				Size:         mgl32.Vec3{1, 1, 1},
				Bounding:     pos.Add(mgl32.Vec3{1, 1, 1}),
				Scale:        1,
				Color:        rampLow,
				ShouldRender: true,
			})
		}
	}
	return instances
}

// CircleInstances lays out count unit cubes evenly on a circle of the given
// radius on the y=0 plane.
func CircleInstances(count int, radius float32) []Instance {
	instances := make([]Instance, 0, count)
	for n := 0; n < count; n++ {
		theta := 2 * math32.Pi * float32(n) / float32(max(count, 1))
		pos := mgl32.Vec3{math32.Cos(theta) * radius, 0, math32.Sin(theta) * radius}
		instances = append(instances, Instance{
			Position:     pos,
			Size:         mgl32.Vec3{1, 1, 1},
			Bounding:     pos.Add(mgl32.Vec3{1, 1, 1}),
			Scale:        1,
			Color:        rampLow,
			ShouldRender: true,
		})
	}
	return instances
}

// InstanceWriter receives a finished snapshot of the instance list, typically
// to rebuild a GPU instance buffer. Implementations live outside this module.
type InstanceWriter interface {
	WriteInstances(instances []Instance)
}

// InstanceController owns the flat, stable-indexed instance list that the
// animation registry is index-parallel with.
type InstanceController struct {
	Instances []Instance
}

func NewInstanceController(instances []Instance) *InstanceController {
	return &InstanceController{Instances: instances}
}

// Snapshot clones the instance list so the renderer never observes a torn
// write from the next tick.
func (c *InstanceController) Snapshot() []Instance {
	out := make([]Instance, len(c.Instances))
	copy(out, c.Instances)
	return out
}

// Upload hands a snapshot to the writer on a background goroutine and returns
// immediately. The next tick rewrites positions by index, so the upload never
// races with a mutation of the data it was given.
func (c *InstanceController) Upload(w InstanceWriter) {
	if w == nil {
		return
	}
	snapshot := c.Snapshot()
	go w.WriteInstances(snapshot)
}
