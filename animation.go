package voxmorph

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// Animation is either a StepAnimation or a PersistentAnimation. The interface
// is sealed; SetAnimation dispatches on the concrete type.
type Animation interface {
	isAnimation()
}

// StepAnimation is a transient, finite displacement applied to one instance.
// Time runs forward (or backward when Reversed) in [0,1], scaled by Speed.
// A one-time step folds its full movement into the record anchor on completion
// and is removed; a reversed step is removed at time zero with no residual.
type StepAnimation struct {
	Movement  mgl32.Vec3
	Time      float32
	Speed     float32
	Reversed  bool
	Activated bool
	OneTime   bool
	Easing    EasingKind
}

func (StepAnimation) isAnimation() {}

// NewStepAnimation is a plain data constructor; fields are stored as given.
func NewStepAnimation(movement mgl32.Vec3, speed float32, reversed, activated, oneTime bool, easing EasingKind) StepAnimation {
	return StepAnimation{
		Movement:  movement,
		Speed:     speed,
		Reversed:  reversed,
		Activated: activated,
		OneTime:   oneTime,
		Easing:    easing,
	}
}

// PersistentAnimation is an unending displacement, typically the periodic
// vertical bob. It contributes every tick and never terminates.
type PersistentAnimation struct {
	Movement mgl32.Vec3
	Time     float32
	Easing   EasingKind
}

func (PersistentAnimation) isAnimation() {}

// AnimationRecord holds the animation state of a single instance. Records are
// index-parallel with the instance list they were constructed from.
//
// Invariant: CurrentPos is the sum of Start plus the blended contribution of
// every active persistent and step animation. GridPos only advances when a
// one-time step completes and its displacement is locked into the anchor.
type AnimationRecord struct {
	Activated   bool
	Time        float32
	Start       mgl32.Vec3
	CurrentPos  mgl32.Vec3
	GridPos     mgl32.Vec3
	Steps       []StepAnimation
	Persistent  []PersistentAnimation
	Color       mgl32.Vec3
	ManualColor bool
}

// Color ramp endpoints for the animated height color.
var (
	rampLow  = mgl32.Vec3{0.0, 0.25, 0.35}
	rampHigh = mgl32.Vec3{0.1, 0.85, 0.95}
)

func rampColor(blend float32) mgl32.Vec3 {
	return rampLow.Add(rampHigh.Sub(rampLow).Mul(blend))
}

// AnimationHandler owns one AnimationRecord per grid instance and advances
// them all once per frame. All mutating operations short-circuit while the
// handler is disabled; UpdateInstance keeps working so a frozen pose stays
// visible.
type AnimationHandler struct {
	records    []AnimationRecord
	disabled   bool
	delayScale float32
	log        Logger
}

// DefaultDelayScale is the per-unit diagonal wave delay. The per-instance
// delay is (x+z)*scale, a linear function of the planar anchor so that
// instances on the same diagonal bob in phase.
const DefaultDelayScale = 0.15

// NewAnimationHandler builds one record per instance, anchored at the
// instance's current position and seeded with a copy of the persistent
// animation template. The record list stays index-parallel with instances for
// the handler's whole lifetime; an empty instance list is a precondition
// violation and returns an error.
func NewAnimationHandler(instances []Instance, persistent []PersistentAnimation, log Logger) (*AnimationHandler, error) {
	if len(instances) == 0 {
		return nil, errors.New("animation handler needs at least one instance")
	}
	if log == nil {
		log = NewNopLogger()
	}
	records := make([]AnimationRecord, len(instances))
	for i := range instances {
		pos := instances[i].Position
		records[i] = AnimationRecord{
			Activated:  true,
			Start:      pos,
			CurrentPos: pos,
			GridPos:    pos,
			Persistent: append([]PersistentAnimation(nil), persistent...),
		}
	}
	return &AnimationHandler{
		records:    records,
		delayScale: DefaultDelayScale,
		log:        log,
	}, nil
}

// SetDelayScale overrides the diagonal wave factor.
func (h *AnimationHandler) SetDelayScale(scale float32) {
	h.delayScale = scale
}

// Len reports the number of records (== number of instances).
func (h *AnimationHandler) Len() int {
	return len(h.records)
}

// Record returns a pointer to the record at index, or nil when out of range.
func (h *AnimationHandler) Record(index int) *AnimationRecord {
	if index < 0 || index >= len(h.records) {
		return nil
	}
	return &h.records[index]
}

// GridPos returns the locked-in anchor of the record at index.
func (h *AnimationHandler) GridPos(index int) (mgl32.Vec3, bool) {
	if index < 0 || index >= len(h.records) {
		return mgl32.Vec3{}, false
	}
	return h.records[index].GridPos, true
}

// SetAnimation appends a step or persistent animation to the record at index.
// Out-of-range indices are a silent no-op; callers are expected to only use
// indices from the instance pool they were given.
func (h *AnimationHandler) SetAnimation(index int, anim Animation) {
	if h.disabled || index < 0 || index >= len(h.records) {
		return
	}
	rec := &h.records[index]
	switch a := anim.(type) {
	case StepAnimation:
		rec.Steps = append(rec.Steps, a)
	case PersistentAnimation:
		rec.Persistent = append(rec.Persistent, a)
	}
}

// SetAnimationState flips the activated flag on every step animation of the
// record, kicking off or freezing queued steps. Activating also wakes the
// record itself.
func (h *AnimationHandler) SetAnimationState(index int, active bool) {
	if h.disabled || index < 0 || index >= len(h.records) {
		return
	}
	rec := &h.records[index]
	for i := range rec.Steps {
		rec.Steps[i].Activated = active
	}
	if active {
		rec.Activated = true
	}
}

// SetManualAnimationColor pins the record's color, bypassing the height ramp.
func (h *AnimationHandler) SetManualAnimationColor(index int, color mgl32.Vec3) {
	if index < 0 || index >= len(h.records) {
		return
	}
	h.records[index].Color = color
	h.records[index].ManualColor = true
}

// SetAnimatedColor returns the record to the height-ramp color.
func (h *AnimationHandler) SetAnimatedColor(index int) {
	if index < 0 || index >= len(h.records) {
		return
	}
	h.records[index].ManualColor = false
}

func (h *AnimationHandler) delayFor(rec *AnimationRecord) float32 {
	return (rec.GridPos.X() + rec.GridPos.Z()) * h.delayScale
}

// Advance moves every activated record forward by dt seconds: persistent
// animations accumulate time and contribute their eased offset, active steps
// advance (or retreat when reversed), completed one-time steps fold their
// displacement into the anchor exactly once, and every step that reached a
// terminal bound is dropped from the active list.
func (h *AnimationHandler) Advance(dt float32) {
	if h.disabled {
		return
	}
	for i := range h.records {
		rec := &h.records[i]
		if !rec.Activated {
			continue
		}
		rec.Time += dt
		delay := h.delayFor(rec)

		var offset mgl32.Vec3
		loopBlend := float32(0)
		for j := range rec.Persistent {
			p := &rec.Persistent[j]
			p.Time += dt
			pos := Interpolate(p.Easing, rec.Start, rec.Start.Add(p.Movement), p.Time, delay)
			offset = offset.Add(pos.Sub(rec.Start))
			if p.Easing == EaseInEaseOutLoop {
				loopBlend = EaseInEaseOutLoopAt(p.Time, delay, 1.0)
			}
		}

		var stepOffset mgl32.Vec3
		kept := rec.Steps[:0]
		for j := range rec.Steps {
			s := rec.Steps[j]
			if !s.Activated {
				kept = append(kept, s)
				continue
			}
			if s.Reversed {
				s.Time -= dt * s.Speed
			} else {
				s.Time += dt * s.Speed
			}
			s.Time = clamp01(s.Time)

			delta := Interpolate(s.Easing, mgl32.Vec3{}, s.Movement, s.Time, delay)

			finishedForward := !s.Reversed && s.OneTime && s.Time >= 1
			finishedReverse := s.Reversed && s.Time <= 0
			if finishedForward {
				// Lock the displacement into the anchor so it is not
				// double-counted next tick.
				rec.Start = rec.Start.Add(delta)
				rec.GridPos = rec.Start
				continue
			}
			if finishedReverse {
				continue
			}
			stepOffset = stepOffset.Add(delta)
			kept = append(kept, s)
		}
		rec.Steps = kept

		rec.CurrentPos = rec.Start.Add(offset).Add(stepOffset)
		if !rec.ManualColor {
			rec.Color = rampColor(loopBlend)
		}
	}
}

// IsLocked reports whether any record still holds an active one-time step,
// i.e. a shape transition is in flight.
func (h *AnimationHandler) IsLocked() bool {
	for i := range h.records {
		for j := range h.records[i].Steps {
			s := &h.records[i].Steps[j]
			if s.OneTime && s.Activated {
				return true
			}
		}
	}
	return false
}

// Reverse flips every active step animation into reverse. Reversed steps run
// back to time zero and remove themselves without touching the anchor.
func (h *AnimationHandler) Reverse() {
	if h.disabled {
		return
	}
	for i := range h.records {
		for j := range h.records[i].Steps {
			h.records[i].Steps[j].Reversed = true
		}
	}
}

// ResetToCurrentPosition rebases every record that has pending steps: the
// persistent-only contribution is subtracted from the current position to get
// a clean anchor, the anchor is written back to the matching instance, and the
// step list is cleared. Used when switching between auto and manual control so
// the grid does not jump.
func (h *AnimationHandler) ResetToCurrentPosition(instances []Instance) {
	for i := range h.records {
		rec := &h.records[i]
		if len(rec.Steps) == 0 {
			continue
		}
		delay := h.delayFor(rec)
		var offset mgl32.Vec3
		for j := range rec.Persistent {
			p := &rec.Persistent[j]
			pos := Interpolate(p.Easing, rec.Start, rec.Start.Add(p.Movement), p.Time, delay)
			offset = offset.Add(pos.Sub(rec.Start))
		}
		anchor := rec.CurrentPos.Sub(offset)
		rec.Start = anchor
		rec.GridPos = anchor
		rec.Steps = rec.Steps[:0]
		if i < len(instances) {
			instances[i].Position = anchor
			instances[i].Bounding = instances[i].Size.Add(anchor)
		}
	}
}

// Enable lifts the process-wide freeze.
func (h *AnimationHandler) Enable() {
	h.disabled = false
}

// Disable freezes all motion where it is. SetAnimation, SetAnimationState,
// Advance and Reverse become no-ops until Enable is called.
func (h *AnimationHandler) Disable() {
	h.disabled = true
}

// Disabled reports the freeze state.
func (h *AnimationHandler) Disabled() bool {
	return h.disabled
}

// UpdateInstance writes the resolved position, bounding and color of the
// record back into the render-visible instance. Works while disabled so a
// frozen pose remains visible. Inactive records are skipped.
func (h *AnimationHandler) UpdateInstance(index int, inst *Instance) {
	if index < 0 || index >= len(h.records) || inst == nil {
		return
	}
	rec := &h.records[index]
	if !rec.Activated {
		return
	}
	inst.Position = rec.CurrentPos
	inst.Bounding = inst.Size.Add(rec.CurrentPos)
	inst.Color = rec.Color
}
