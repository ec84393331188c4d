package heroscene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCamera_ProjectCenter(t *testing.T) {
	proj := DefaultCamera().Projector(200, 100)

	x, y, depth, ok := proj.Project(mgl32.Vec3{0, 0, 0})

	assert.True(t, ok)
	assert.InDelta(t, 100, x, 1e-3)
	assert.InDelta(t, 50, y, 1e-3)
	assert.InDelta(t, 5, depth, 1e-4)
}

func TestCamera_ProjectOrientation(t *testing.T) {
	proj := DefaultCamera().Projector(100, 100)

	xr, _, _, _ := proj.Project(mgl32.Vec3{1, 0, 0})
	_, yu, _, _ := proj.Project(mgl32.Vec3{0, 1, 0})

	assert.Greater(t, xr, float32(50), "+X is to the right")
	assert.Less(t, yu, float32(50), "+Y is up, towards row zero")
}

func TestCamera_BehindIsRejected(t *testing.T) {
	proj := DefaultCamera().Projector(100, 100)

	_, _, _, ok := proj.Project(mgl32.Vec3{0, 0, 10})

	assert.False(t, ok)
}

func TestCamera_Scale(t *testing.T) {
	proj := DefaultCamera().Projector(100, 100)

	near := proj.Scale(1, 2)
	far := proj.Scale(1, 4)

	assert.InDelta(t, near/2, far, 1e-4)
	assert.Equal(t, float32(0), proj.Scale(1, 0))
}

func TestCamera_ClampDPR(t *testing.T) {
	cam := DefaultCamera()

	assert.Equal(t, float32(1), cam.ClampDPR(0.5))
	assert.Equal(t, float32(1.5), cam.ClampDPR(1.5))
	assert.Equal(t, float32(2), cam.ClampDPR(3))

	cam.DPR = [2]float32{0, 0}
	assert.Equal(t, float32(1), cam.ClampDPR(4))
}
