package voxmorph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestEaseOutCubic_Endpoints(t *testing.T) {
	assert.Equal(t, float32(0), EaseOutCubic(0))
	assert.Equal(t, float32(1), EaseOutCubic(1))

	// Out-of-range inputs clamp.
	assert.Equal(t, float32(0), EaseOutCubic(-3))
	assert.Equal(t, float32(1), EaseOutCubic(42))
}

func TestEaseOutCubic_MonotonicInRange(t *testing.T) {
	prev := float32(-1)
	for i := 0; i <= 100; i++ {
		tt := float32(i) / 100
		v := EaseOutCubic(tt)
		if v < 0 || v > 1 {
			t.Fatalf("EaseOutCubic(%v) = %v out of [0,1]", tt, v)
		}
		if v < prev {
			t.Fatalf("EaseOutCubic not monotonic at t=%v: %v < %v", tt, v, prev)
		}
		prev = v
	}
}

func TestEaseInEaseOutCubic_ContinuousAtMidpoint(t *testing.T) {
	left := EaseInEaseOutCubic(0.4999999)
	right := EaseInEaseOutCubic(0.5000001)
	assert.InDelta(t, 0.5, left, 1e-4)
	assert.InDelta(t, 0.5, right, 1e-4)
	assert.Equal(t, float32(0), EaseInEaseOutCubic(0))
	assert.Equal(t, float32(1), EaseInEaseOutCubic(1))
}

func TestEaseInEaseOutLoop_Symmetry(t *testing.T) {
	const delay, period = 0.3, 1.0

	assert.Equal(t, float32(0), EaseInEaseOutLoopAt(0, delay, period), "before delay")
	assert.InDelta(t, 0, EaseInEaseOutLoopAt(delay, delay, period), 1e-6)
	assert.InDelta(t, 1, EaseInEaseOutLoopAt(delay+period, delay, period), 1e-6)
	assert.InDelta(t, 0, EaseInEaseOutLoopAt(delay+2*period, delay, period), 1e-5)
}

func TestEaseInEaseOutLoop_Periodic(t *testing.T) {
	const delay, period = 0.0, 1.0
	for i := 0; i <= 20; i++ {
		x := float32(i) * 0.1
		a := EaseInEaseOutLoopAt(delay+x, delay, period)
		b := EaseInEaseOutLoopAt(delay+x+2*period, delay, period)
		assert.InDelta(t, a, b, 1e-5, "elapsed %v", x)
	}
}

func TestEaseInEaseOutLoop_FoldsLargeElapsed(t *testing.T) {
	const delay, period = 0.5, 1.0
	near := EaseInEaseOutLoopAt(delay+0.25, delay, period)
	far := EaseInEaseOutLoopAt(delay+1000.25, delay, period)
	// float32 modulo loses a little precision at large elapsed values.
	assert.InDelta(t, near, far, 1e-3)

	// Still in range, never NaN.
	v := EaseInEaseOutLoopAt(1e9, delay, period)
	assert.False(t, v != v, "loop blend is NaN")
	assert.GreaterOrEqual(t, v, float32(0))
	assert.LessOrEqual(t, v, float32(1))
}

func TestInterpolate_LoopRecenters(t *testing.T) {
	start := mgl32.Vec3{0, 0, 0}
	end := mgl32.Vec3{0, 2, 0}

	// At elapsed == delay the loop blend is 0, recentered to -0.5: the loop
	// dips half the movement below the anchor.
	got := Interpolate(EaseInEaseOutLoop, start, end, 0.3, 0.3)
	assert.InDelta(t, -1, got.Y(), 1e-5)

	// At the peak the recentered blend is +0.5.
	got = Interpolate(EaseInEaseOutLoop, start, end, 1.3, 0.3)
	assert.InDelta(t, 1, got.Y(), 1e-5)
}

func TestInterpolate_StepKinds(t *testing.T) {
	start := mgl32.Vec3{1, 0, 0}
	end := mgl32.Vec3{3, 0, 0}

	assert.InDelta(t, 3, Interpolate(EaseOut, start, end, 1, 0).X(), 1e-6)
	assert.InDelta(t, 1, Interpolate(EaseInEaseOut, start, end, 0, 0).X(), 1e-6)
	assert.InDelta(t, 2, Interpolate(EaseInEaseOut, start, end, 0.5, 0).X(), 1e-5)
}
