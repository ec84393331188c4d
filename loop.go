package heroscene

import (
	"time"
)

// UpdateFunc is called once per tick with the elapsed seconds since start.
type UpdateFunc func(elapsed float32)

// Handle identifies a registered callback. The zero Handle is never issued.
type Handle struct {
	id uint64
}

func (h Handle) Valid() bool { return h.id != 0 }

type callback struct {
	handle  Handle
	name    string
	fn      UpdateFunc
	removed bool

	calls int64
	last  time.Duration
	total time.Duration
}

// CallbackStats reports how often and how long a callback ran.
type CallbackStats struct {
	Stage string
	Name  string
	Calls int64
	Last  time.Duration
	Total time.Duration
}

// RenderLoop owns the per-frame callbacks of an app. It is driven from a
// single goroutine; nothing in it is safe for concurrent use.
type RenderLoop struct {
	stages    []Stage
	callbacks [][]*callback
	nextID    uint64

	frames      uint64
	lastElapsed float32
	ticking     bool
	dirty       bool

	log Logger
}

func NewRenderLoop(log Logger) *RenderLoop {
	if log == nil {
		log = NewNopLogger()
	}
	stages := DefaultStages()
	return &RenderLoop{
		stages:    stages,
		callbacks: make([][]*callback, len(stages)),
		log:       log,
	}
}

// Add registers fn in the given stage. A callback added while a tick is
// running is first called on the next tick.
func (l *RenderLoop) Add(stage Stage, name string, fn UpdateFunc) Handle {
	idx := l.stageIndex(stage)
	l.nextID++
	h := Handle{id: l.nextID}
	l.callbacks[idx] = append(l.callbacks[idx], &callback{handle: h, name: name, fn: fn})
	l.log.Debugf("loop: added %q to %s", name, stage)
	return h
}

// Remove unregisters a callback. It is not called again, even later in the
// tick that removed it. Reports whether the handle was registered.
func (l *RenderLoop) Remove(h Handle) bool {
	for _, list := range l.callbacks {
		for _, cb := range list {
			if cb.handle == h && !cb.removed {
				cb.removed = true
				l.dirty = true
				if !l.ticking {
					l.compact()
				}
				l.log.Debugf("loop: removed %q", cb.name)
				return true
			}
		}
	}
	return false
}

// Len is the number of live callbacks.
func (l *RenderLoop) Len() int {
	n := 0
	for _, list := range l.callbacks {
		for _, cb := range list {
			if !cb.removed {
				n++
			}
		}
	}
	return n
}

// ResetElapsed lets the next tick start again from any elapsed value.
func (l *RenderLoop) ResetElapsed() {
	l.lastElapsed = 0
}

// Frames is the number of completed ticks.
func (l *RenderLoop) Frames() uint64 {
	return l.frames
}

// Tick calls every live callback once, stage by stage. Elapsed values that
// go backwards are clamped to the previous tick's value.
func (l *RenderLoop) Tick(elapsed float32) {
	if elapsed < l.lastElapsed {
		l.log.Warnf("loop: elapsed went backwards (%.4f < %.4f), clamping", elapsed, l.lastElapsed)
		elapsed = l.lastElapsed
	}
	l.lastElapsed = elapsed

	l.ticking = true
	for idx := range l.callbacks {
		n := len(l.callbacks[idx])
		for i := 0; i < n; i++ {
			cb := l.callbacks[idx][i]
			if cb.removed {
				continue
			}
			start := time.Now()
			cb.fn(elapsed)
			cb.last = time.Since(start)
			cb.total += cb.last
			cb.calls++
		}
	}
	l.ticking = false

	if l.dirty {
		l.compact()
	}
	l.frames++
	l.log.Debugf("loop: frame %d at %.3fs", l.frames, elapsed)
}

func (l *RenderLoop) compact() {
	for idx, list := range l.callbacks {
		kept := list[:0]
		for _, cb := range list {
			if !cb.removed {
				kept = append(kept, cb)
			}
		}
		for i := len(kept); i < len(list); i++ {
			list[i] = nil
		}
		l.callbacks[idx] = kept
	}
	l.dirty = false
}

func (l *RenderLoop) Stats() []CallbackStats {
	var out []CallbackStats
	for idx, list := range l.callbacks {
		for _, cb := range list {
			if cb.removed {
				continue
			}
			out = append(out, CallbackStats{
				Stage: l.stages[idx].Name,
				Name:  cb.name,
				Calls: cb.calls,
				Last:  cb.last,
				Total: cb.total,
			})
		}
	}
	return out
}
