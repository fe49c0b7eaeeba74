package voxmorph

import (
	"time"
)

// maxFrameDt caps the delta after a stall (window drag, debugger pause) so a
// single frame cannot jump every animation to its end.
const maxFrameDt = 250 * time.Millisecond

type Time struct {
	Time time.Time
	Dt   time.Duration
}

// Seconds returns the frame delta as the float32 the animation core consumes.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct{}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
		Dt:   0,
	})
	app.UseSystem(PreUpdate, timeSystem)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	dt := now.Sub(timeResource.Time)
	if dt > maxFrameDt {
		dt = maxFrameDt
	}
	timeResource.Dt = dt
	timeResource.Time = now
}
