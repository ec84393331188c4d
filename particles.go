package heroscene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// WrapMode selects what happens to a particle that drifts past the upper bound.
type WrapMode int

const (
	// WrapReset snaps the particle back to the lower bound.
	WrapReset WrapMode = iota
	// WrapCarry keeps the overshoot, so heights follow
	// (h0 - lo + n*step) mod (hi - lo) + lo exactly.
	WrapCarry
)

func (m WrapMode) String() string {
	if m == WrapCarry {
		return "carry"
	}
	return "reset"
}

// Spread is the box particle positions are drawn from at creation.
// Each coordinate is uniform in [Min, Max).
type Spread struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// CenteredSpread is a box of the given extents around the origin, with the
// height range given explicitly.
func CenteredSpread(width, depth, yMin, yMax float32) Spread {
	return Spread{
		Min: mgl32.Vec3{-width / 2, yMin, -depth / 2},
		Max: mgl32.Vec3{width / 2, yMax, depth / 2},
	}
}

// ParticleSystem is a fixed-size buffer of point positions. The count never
// changes after creation; positions are mutated in place.
type ParticleSystem struct {
	positions []mgl32.Vec3
	version   uint64

	// NeedsUpdate is set whenever positions change and cleared by the
	// renderer once it has consumed them.
	NeedsUpdate bool
}

func NewParticleSystem(count int, spread Spread, rng *rand.Rand) *ParticleSystem {
	if count < 0 {
		count = 0
	}
	positions := make([]mgl32.Vec3, count)
	for i := range positions {
		for axis := 0; axis < 3; axis++ {
			lo, hi := spread.Min[axis], spread.Max[axis]
			positions[i][axis] = lo + rng.Float32()*(hi-lo)
		}
	}
	return &ParticleSystem{positions: positions, NeedsUpdate: true}
}

// NewParticleSystemFrom copies the given positions into a new system.
func NewParticleSystemFrom(positions []mgl32.Vec3) *ParticleSystem {
	buf := make([]mgl32.Vec3, len(positions))
	copy(buf, positions)
	return &ParticleSystem{positions: buf, NeedsUpdate: true}
}

func (p *ParticleSystem) Len() int {
	return len(p.positions)
}

func (p *ParticleSystem) At(i int) mgl32.Vec3 {
	return p.positions[i]
}

// Positions returns a copy of the current buffer.
func (p *ParticleSystem) Positions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(p.positions))
	copy(out, p.positions)
	return out
}

// Version increases by one on every mutation.
func (p *ParticleSystem) Version() uint64 {
	return p.version
}

// MarkUploaded clears NeedsUpdate.
func (p *ParticleSystem) MarkUploaded() {
	p.NeedsUpdate = false
}

// Drift moves every particle up by step, wrapping heights that reach hi back
// into [lo, hi). Horizontal coordinates are never touched. A degenerate range
// (hi <= lo) leaves the buffer as is.
func (p *ParticleSystem) Drift(step, lo, hi float32, mode WrapMode) {
	if p == nil || hi <= lo {
		return
	}
	span := float64(hi - lo)
	for i := range p.positions {
		y := p.positions[i][1] + step
		if y >= hi {
			switch mode {
			case WrapCarry:
				off := math.Mod(float64(y-lo), span)
				y = lo + float32(off)
				if y >= hi {
					y = lo
				}
			default:
				y = lo
			}
		}
		p.positions[i][1] = y
	}
	p.version++
	p.NeedsUpdate = true
}
