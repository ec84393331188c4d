package heroscene

import (
	"time"
)

// ElapsedSource supplies seconds since scene start. Successive calls must
// not decrease.
type ElapsedSource interface {
	Elapsed() float32
}

// MonotonicClock reads the process monotonic clock.
type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Elapsed() float32 {
	return float32(time.Since(c.start).Seconds())
}

// FixedStepClock advances by Step on every call, starting at zero. Used for
// reproducible offline rendering.
type FixedStepClock struct {
	Step  float32
	calls uint64
}

func (c *FixedStepClock) Elapsed() float32 {
	t := float32(float64(c.calls) * float64(c.Step))
	c.calls++
	return t
}

// Time is the per-frame timing resource, refreshed at the start of every tick.
// Delta is zero on the first frame and whenever elapsed restarts.
type Time struct {
	Elapsed float32
	Delta   float32
	Frame   uint64

	source ElapsedSource
}

// Source is the clock the app's run loop reads.
func (t *Time) Source() ElapsedSource {
	return t.source
}

type TimeModule struct {
	// Source defaults to a monotonic clock started at install time.
	Source ElapsedSource
}

func (mod TimeModule) Install(app *App) {
	src := mod.Source
	if src == nil {
		src = NewMonotonicClock()
	}
	t := &Time{source: src}
	app.addResources(t)
	app.loop.Add(PreUpdate, "time", func(elapsed float32) {
		t.Delta = 0
		if t.Frame > 0 && elapsed > t.Elapsed {
			t.Delta = elapsed - t.Elapsed
		}
		t.Elapsed = elapsed
		t.Frame++
	})
}
