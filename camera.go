package heroscene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a perspective camera looking at Target. FOV is the vertical
// field of view in degrees; DPR bounds the device pixel ratio a renderer
// may use.
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	FOV      float32
	Near     float32
	Far      float32
	DPR      [2]float32
}

func DefaultCamera() Camera {
	return Camera{
		Position: mgl32.Vec3{0, 0, 5},
		Target:   mgl32.Vec3{0, 0, 0},
		Up:       mgl32.Vec3{0, 1, 0},
		FOV:      50,
		Near:     0.1,
		Far:      1000,
		DPR:      [2]float32{1, 2},
	}
}

// ClampDPR limits a requested pixel ratio to the camera's range.
func (c Camera) ClampDPR(dpr float32) float32 {
	lo, hi := c.DPR[0], c.DPR[1]
	if lo <= 0 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	return mgl32.Clamp(dpr, lo, hi)
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Projector maps world points to pixel coordinates for a fixed viewport.
type Projector struct {
	vp            mgl32.Mat4
	width, height float32
	focal         float32 // pixels per world unit at distance 1
}

func (c Camera) Projector(width, height int) Projector {
	w, h := float32(width), float32(height)
	fov := float64(mgl32.DegToRad(c.FOV))
	return Projector{
		vp:     c.Projection(w / h).Mul4(c.View()),
		width:  w,
		height: h,
		focal:  h / 2 / float32(math.Tan(fov/2)),
	}
}

// Project returns the pixel position of p, its view depth and whether it
// lies between the near and far planes.
func (p Projector) Project(world mgl32.Vec3) (x, y, depth float32, ok bool) {
	clip := p.vp.Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / w)
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, w, false
	}
	x = (ndc.X() + 1) / 2 * p.width
	y = (1 - ndc.Y()) / 2 * p.height
	return x, y, w, true
}

// Scale converts a world-space length at the given depth to pixels.
func (p Projector) Scale(length, depth float32) float32 {
	if depth <= 0 {
		return 0
	}
	return length * p.focal / depth
}
