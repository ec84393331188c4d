package heroscene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Animator updates one object from the elapsed seconds since scene start.
// A nil target makes Animate a no-op.
type Animator interface {
	Animate(elapsed float32)
}

const twoPi = 2 * math.Pi

// WrapAngle reduces an angle to [0, 2π).
func WrapAngle(angle float64) float32 {
	a := math.Mod(angle, twoPi)
	if a < 0 {
		a += twoPi
	}
	out := float32(a)
	if out >= twoPi {
		out = 0
	}
	return out
}

// Spin sets rotation = elapsed * rate on every axis with a non-zero rate.
type Spin struct {
	Target *Transform
	Rates  mgl32.Vec3 // radians per second
}

func (s *Spin) Animate(elapsed float32) {
	if s == nil || s.Target == nil {
		return
	}
	for axis := 0; axis < 3; axis++ {
		if s.Rates[axis] == 0 {
			continue
		}
		s.Target.Rotation[axis] = WrapAngle(float64(elapsed) * float64(s.Rates[axis]))
	}
}

// Sway oscillates one rotation axis: angle = sin(elapsed * Frequency) * Amplitude.
type Sway struct {
	Target    *Transform
	Axis      int
	Frequency float32
	Amplitude float32
}

func (s *Sway) Animate(elapsed float32) {
	if s == nil || s.Target == nil {
		return
	}
	s.Target.Rotation[s.Axis] = float32(math.Sin(float64(elapsed)*float64(s.Frequency))) * s.Amplitude
}

// Float bobs and tilts a wrapper group around its base position.
type Float struct {
	Target            *Transform
	Base              mgl32.Vec3
	Speed             float32
	RotationIntensity float32
	FloatIntensity    float32
	// Range is the vertical travel before FloatIntensity is applied.
	// Nil means [-0.1, 0.1].
	Range *[2]float32
	// Offset desynchronises floats that share a speed.
	Offset float32
}

func NewFloat(target *Transform, speed, rotationIntensity, floatIntensity, offset float32) *Float {
	return &Float{
		Target:            target,
		Base:              target.Position,
		Speed:             speed,
		RotationIntensity: rotationIntensity,
		FloatIntensity:    floatIntensity,
		Offset:            offset,
	}
}

func (f *Float) Animate(elapsed float32) {
	if f == nil || f.Target == nil {
		return
	}
	tau := (float64(f.Offset) + float64(elapsed)) / 4 * float64(f.Speed)
	sin, cos := math.Sin(tau), math.Cos(tau)
	ri := float64(f.RotationIntensity)

	f.Target.Rotation = mgl32.Vec3{
		float32(cos / 8 * ri),
		float32(sin / 8 * ri),
		float32(sin / 20 * ri),
	}

	lo, hi := float32(-0.1), float32(0.1)
	if f.Range != nil {
		lo, hi = f.Range[0], f.Range[1]
	}
	bob := mapLinear(float32(sin/10), -0.1, 0.1, lo, hi)
	f.Target.Position = f.Base
	f.Target.Position[1] = f.Base[1] + bob*f.FloatIntensity
}

func mapLinear(x, a1, a2, b1, b2 float32) float32 {
	return b1 + (x-a1)*(b2-b1)/(a2-a1)
}

// Drift advances a particle system by one step per frame. It ignores
// elapsed time: each call depends only on the particles' previous heights.
type Drift struct {
	Particles *ParticleSystem
	Step      float32
	Lower     float32
	Upper     float32
	Mode      WrapMode
}

func (d *Drift) Animate(float32) {
	if d == nil || d.Particles == nil {
		return
	}
	d.Particles.Drift(d.Step, d.Lower, d.Upper, d.Mode)
}
