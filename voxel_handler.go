package voxmorph

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default tuning for shape transitions. Assigned instances move faster than
// released ones so the shape reads before the dispersal finishes.
const (
	DefaultShapeSpeed     = 0.4
	DefaultDisperseSpeed  = 0.25
	DefaultDisperseRadius = 750.0
	DefaultDisperseSkip   = 500.0
)

// VoxelHandler maps catalog shapes onto grid instances. It keeps the set of
// instance indices representing the active shape across calls, so repeated
// transitions reuse overlapping assignments instead of rescattering the whole
// pool. The pool is owned state, scoped to this handler.
type VoxelHandler struct {
	catalog      *Catalog
	currentShape ShapeId
	hasShape     bool
	currentCubes []int
	log          Logger

	ShapeSpeed     float32
	DisperseSpeed  float32
	DisperseRadius float32
	DisperseSkip   float32
}

func NewVoxelHandler(catalog *Catalog, log Logger) *VoxelHandler {
	if log == nil {
		log = NewNopLogger()
	}
	return &VoxelHandler{
		catalog:        catalog,
		log:            log,
		ShapeSpeed:     DefaultShapeSpeed,
		DisperseSpeed:  DefaultDisperseSpeed,
		DisperseRadius: DefaultDisperseRadius,
		DisperseSkip:   DefaultDisperseSkip,
	}
}

// CurrentShape returns the shape currently shown, if any.
func (v *VoxelHandler) CurrentShape() (ShapeId, bool) {
	return v.currentShape, v.hasShape
}

// CurrentCubes exposes the in-use instance index pool (read-only view).
func (v *VoxelHandler) CurrentCubes() []int {
	return v.currentCubes
}

// TransitionTo morphs the grid into the named shape: every cube of the shape
// gets an instance animated toward it with a one-time step, every instance
// left over is dispersed onto a Fibonacci sphere.
func (v *VoxelHandler) TransitionTo(id ShapeId, h *AnimationHandler) {
	v.transition(id, h, 1.0, true, false)
}

// TransitionToColored is TransitionTo with the shape's own palette colors
// pinned onto the assigned instances.
func (v *VoxelHandler) TransitionToColored(id ShapeId, h *AnimationHandler) {
	v.transition(id, h, 1.0, true, true)
}

// ExplodeObject re-runs the current shape's assignment with an amplified,
// non-one-time displacement. Because the steps never fold into the anchor,
// the pulse is reversible: anchors are untouched and Reverse pulls the cubes
// back in.
func (v *VoxelHandler) ExplodeObject(h *AnimationHandler, amplify float32) {
	if !v.hasShape {
		v.log.Warnf("explode requested with no active shape")
		return
	}
	v.transition(v.currentShape, h, amplify, false, false)
}

func (v *VoxelHandler) transition(id ShapeId, h *AnimationHandler, amplify float32, oneTime, useObjectColor bool) {
	obj, ok := v.catalog.Object(id)
	if !ok {
		v.log.Warnf("shape %q does not exist", id)
		return
	}
	total := h.Len()
	if len(obj.Cubes) > total {
		v.log.Warnf("shape %q too large to show: %d cubes, %d instances", id, len(obj.Cubes), total)
		return
	}

	pool := append([]int(nil), v.currentCubes...)
	if len(pool) == 0 {
		pool = make([]int, total)
		for i := range pool {
			pool[i] = i
		}
	}

	// Grow the working pool from unused indices when the new shape needs more
	// cubes than the previous one left behind. Already-assigned indices are
	// never disturbed, which is what keeps morphs visually continuous.
	if deficit := len(obj.Cubes) - len(pool); deficit > 0 {
		inPool := make([]bool, total)
		for _, idx := range pool {
			inPool[idx] = true
		}
		unused := make([]int, 0, total-len(pool))
		for i := 0; i < total; i++ {
			if !inPool[i] {
				unused = append(unused, i)
			}
		}
		rand.Shuffle(len(unused), func(a, b int) {
			unused[a], unused[b] = unused[b], unused[a]
		})
		pool = append(pool, unused[:deficit]...)
	}

	rand.Shuffle(len(pool), func(a, b int) {
		pool[a], pool[b] = pool[b], pool[a]
	})

	newCubes := make([]int, 0, len(obj.Cubes))
	for i, cube := range obj.Cubes {
		idx := pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		newCubes = append(newCubes, idx)

		anchor, _ := h.GridPos(idx)
		movement := cube.Sub(anchor).Mul(amplify)
		h.SetAnimation(idx, NewStepAnimation(movement, v.ShapeSpeed, false, false, oneTime, EaseInEaseOut))
		if useObjectColor && i < len(obj.Colors) {
			h.SetManualAnimationColor(idx, obj.Colors[i])
		}
		h.SetAnimationState(idx, true)
	}

	used := make([]bool, total)
	for _, idx := range newCubes {
		used[idx] = true
	}
	released := make([]int, 0, total-len(newCubes))
	for i := 0; i < total; i++ {
		if !used[i] {
			released = append(released, i)
		}
	}

	sphere := fibonacciSphere(len(released), v.DisperseRadius)
	for k, idx := range released {
		anchor, _ := h.GridPos(idx)
		var movement mgl32.Vec3
		// Instances already flung far out stay put instead of hopping between
		// sphere points on every transition.
		if anchor.Len() <= v.DisperseSkip {
			movement = sphere[k].Sub(anchor)
		}
		h.SetAnimation(idx, NewStepAnimation(movement, v.DisperseSpeed, false, false, oneTime, EaseInEaseOut))
		h.SetAnimatedColor(idx)
		h.SetAnimationState(idx, true)
	}

	v.currentShape = id
	v.hasShape = true
	v.currentCubes = newCubes
}

// fibonacciSphere distributes points evenly on a sphere of the given radius.
// A single point degenerates to the north pole rather than dividing by zero.
func fibonacciSphere(points int, radius float32) []mgl32.Vec3 {
	if points <= 0 {
		return nil
	}
	if points == 1 {
		return []mgl32.Vec3{{0, radius, 0}}
	}
	out := make([]mgl32.Vec3, 0, points)
	phi := math32.Pi * (math32.Sqrt(5) - 1)
	for n := 0; n < points; n++ {
		y := 1 - (float32(n)/float32(points-1))*2
		r2 := 1 - y*y
		if r2 < 0 {
			r2 = 0
		}
		r := math32.Sqrt(r2)
		theta := phi * float32(n)
		out = append(out, mgl32.Vec3{math32.Cos(theta) * r, y, math32.Sin(theta) * r}.Mul(radius))
	}
	return out
}
