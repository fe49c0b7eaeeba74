package voxmorph

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// RayAABBIntersect tests a ray against an axis-aligned box via the slab
// method. Returns the positive hit distance, or false on a miss or when the
// box is entirely behind the origin.
func RayAABBIntersect(origin, dir, min, max mgl32.Vec3) (float32, bool) {
	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)

	for i := 0; i < 3; i++ {
		o := origin[i]
		d := dir[i]

		if math32.Abs(d) < 1e-6 {
			// Ray parallel to this slab.
			if o < min[i] || o > max[i] {
				return 0, false
			}
			continue
		}

		invD := 1 / d
		t1 := (min[i] - o) * invD
		t2 := (max[i] - o) * invD
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}

	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// AABBSphereIntersect reports whether a sphere overlaps an axis-aligned box.
func AABBSphereIntersect(min, max, center mgl32.Vec3, radius float32) bool {
	closest := center
	for i := 0; i < 3; i++ {
		if closest[i] < min[i] {
			closest[i] = min[i]
		} else if closest[i] > max[i] {
			closest[i] = max[i]
		}
	}
	diff := closest.Sub(center)
	return diff.Dot(diff) <= radius*radius
}

// LineTrace finds the closest visible instance hit by the ray, if any.
func LineTrace(instances []Instance, origin, dir mgl32.Vec3) (int, bool) {
	dir = dir.Normalize()

	closest := -1
	closestDistance := math32.Inf(1)
	for i := range instances {
		inst := &instances[i]
		if !inst.ShouldRender {
			continue
		}
		min := inst.Position
		max := inst.Position.Add(inst.Size)
		if distance, hit := RayAABBIntersect(origin, dir, min, max); hit {
			if distance < closestDistance {
				closestDistance = distance
				closest = i
			}
		}
	}
	if closest < 0 {
		return 0, false
	}
	return closest, true
}

// LineTraceAnimate pushes the given step animation onto the closest instance
// hit by the ray and activates it. Reports whether anything was hit.
func LineTraceAnimate(c *InstanceController, h *AnimationHandler, step StepAnimation, origin, dir mgl32.Vec3) bool {
	index, hit := LineTrace(c.Instances, origin, dir)
	if !hit {
		return false
	}
	h.SetAnimation(index, step)
	h.SetAnimationState(index, true)
	return true
}
