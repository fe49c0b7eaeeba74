package voxmorph

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// EasingKind selects the blend curve applied by Interpolate. Kept as a plain
// tag with a single dispatch point so the per-tick loop stays branch-predictable.
type EasingKind int

const (
	EaseOut EasingKind = iota
	EaseInEaseOut
	EaseInEaseOutLoop
)

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// EaseOutCubic maps t in [0,1] to 1-(1-t)^3. Inputs outside [0,1] are clamped.
func EaseOutCubic(t float32) float32 {
	t = clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// EaseInEaseOutCubic is the symmetric cubic S-curve: 4t^3 below the midpoint,
// 1-(-2t+2)^3/2 above it. Both halves meet at 0.5.
func EaseInEaseOutCubic(t float32) float32 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	v := -2*t + 2
	return 1 - v*v*v/2
}

// EaseInEaseOutLoopAt folds elapsed time into a ping-pong blend in [0,1] with
// period 2*period. Returns 0 until delay has passed. The rational formula
// t²/(2(t²−t)+1) keeps the slope continuous at both ends of the fold, so the
// loop has no visible kink at wrap.
func EaseInEaseOutLoopAt(elapsed, delay, period float32) float32 {
	if period <= 0 || elapsed < delay {
		return 0
	}
	e := math32.Mod(elapsed-delay, 2*period)
	var t float32
	if e >= period {
		t = (2*period - e) / period
	} else {
		t = e / period
	}
	sqr := t * t
	return sqr / (2*(sqr-t) + 1)
}

// Interpolate blends start toward end using the given easing kind. For the
// periodic loop kind, t is raw elapsed time and the blend is recentered by
// -0.5 so persistent motion oscillates around the anchor instead of above it.
func Interpolate(kind EasingKind, start, end mgl32.Vec3, t, delay float32) mgl32.Vec3 {
	switch kind {
	case EaseOut:
		return start.Add(end.Sub(start).Mul(EaseOutCubic(t)))
	case EaseInEaseOutLoop:
		return start.Add(end.Sub(start).Mul(EaseInEaseOutLoopAt(t, delay, 1.0) - 0.5))
	default:
		return start.Add(end.Sub(start).Mul(EaseInEaseOutCubic(t)))
	}
}
