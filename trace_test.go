package voxmorph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRayAABBIntersect_HitAndMiss(t *testing.T) {
	min := mgl32.Vec3{0, 0, 0}
	max := mgl32.Vec3{1, 1, 1}

	dist, hit := RayAABBIntersect(mgl32.Vec3{0.5, 0.5, -5}, mgl32.Vec3{0, 0, 1}, min, max)
	if !hit {
		t.Fatal("expected hit")
	}
	if dist < 4.9 || dist > 5.1 {
		t.Errorf("expected distance ~5, got %v", dist)
	}

	// Parallel ray outside the slab.
	if _, hit := RayAABBIntersect(mgl32.Vec3{5, 5, -5}, mgl32.Vec3{0, 0, 1}, min, max); hit {
		t.Error("parallel ray outside the box must miss")
	}

	// Box behind the origin.
	if _, hit := RayAABBIntersect(mgl32.Vec3{0.5, 0.5, 5}, mgl32.Vec3{0, 0, 1}, min, max); hit {
		t.Error("box behind the ray must miss")
	}
}

func TestLineTrace_PicksClosestVisible(t *testing.T) {
	instances := rowInstances(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 5})

	idx, hit := LineTrace(instances, mgl32.Vec3{0.5, 0.5, -5}, mgl32.Vec3{0, 0, 1})
	if !hit || idx != 0 {
		t.Fatalf("expected closest instance 0, got %d (hit=%v)", idx, hit)
	}

	// Hiding the nearer instance exposes the farther one.
	instances[0].ShouldRender = false
	idx, hit = LineTrace(instances, mgl32.Vec3{0.5, 0.5, -5}, mgl32.Vec3{0, 0, 1})
	if !hit || idx != 1 {
		t.Fatalf("expected instance 1 after hiding 0, got %d (hit=%v)", idx, hit)
	}
}

func TestLineTraceAnimate_QueuesStepAtHit(t *testing.T) {
	instances := rowInstances(mgl32.Vec3{0, 0, 0})
	controller := NewInstanceController(instances)
	h, err := NewAnimationHandler(controller.Instances, nil, NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}

	step := NewStepAnimation(mgl32.Vec3{0, 1, 0}, 1, false, false, true, EaseInEaseOut)
	if !LineTraceAnimate(controller, h, step, mgl32.Vec3{0.5, 0.5, -5}, mgl32.Vec3{0, 0, 1}) {
		t.Fatal("expected a hit")
	}
	if len(h.Record(0).Steps) != 1 {
		t.Fatalf("expected one queued step, got %d", len(h.Record(0).Steps))
	}
	if !h.Record(0).Steps[0].Activated {
		t.Error("queued step should be activated")
	}

	if LineTraceAnimate(controller, h, step, mgl32.Vec3{50, 50, -5}, mgl32.Vec3{0, 0, 1}) {
		t.Error("ray far from the grid must not hit")
	}
}

func TestAABBSphereIntersect(t *testing.T) {
	min := mgl32.Vec3{0, 0, 0}
	max := mgl32.Vec3{1, 1, 1}

	if !AABBSphereIntersect(min, max, mgl32.Vec3{0.5, 0.5, 0.5}, 0.1) {
		t.Error("sphere inside the box must intersect")
	}
	if !AABBSphereIntersect(min, max, mgl32.Vec3{2, 0.5, 0.5}, 1.1) {
		t.Error("sphere touching a face must intersect")
	}
	if AABBSphereIntersect(min, max, mgl32.Vec3{5, 5, 5}, 1) {
		t.Error("distant sphere must not intersect")
	}
}
