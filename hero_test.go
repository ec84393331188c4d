package heroscene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeroScene_Composition(t *testing.T) {
	scene := HeroScene(DefaultHeroOptions())

	assert.Len(t, scene.Lights(), 3)
	assert.Len(t, scene.Meshes(), 9) // cup parts, pastries, fruits
	require.Len(t, scene.Points(), 2)
	assert.Len(t, scene.Animators(), 12)

	steam := scene.Find("steam").(*PointsNode)
	dust := scene.Find("dust").(*PointsNode)
	assert.Equal(t, 50, steam.Particles.Len())
	assert.Equal(t, 100, dust.Particles.Len())
	assert.Equal(t, float32(0.4), steam.Material.Opacity)
	assert.Equal(t, MustColor("#FFD166"), dust.Material.Color)

	assert.Equal(t, float32(50), scene.Camera.FOV)
	assert.Equal(t, [2]float32{1, 2}, scene.Camera.DPR)
}

func TestHeroScene_LightRig(t *testing.T) {
	scene := HeroScene(DefaultHeroOptions())
	scene.UpdateWorldTransforms()

	byName := map[string]*LightNode{}
	for _, l := range scene.Lights() {
		byName[l.Name()] = l
	}
	assert.Equal(t, LightTypeAmbient, byName["ambient"].Light.Type)
	assert.Equal(t, float32(0.5), byName["ambient"].Light.Intensity)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, WorldPosition(byName["key"]))
	assert.Equal(t, LightTypePoint, byName["fill"].Light.Type)
	assert.Equal(t, MustColor("#FFD166"), byName["fill"].Light.Color)
}

func TestHeroScene_SteamSpread(t *testing.T) {
	scene := HeroScene(HeroOptions{Seed: 9, SteamCount: 200, SteamStep: 0.01, DustCount: 0})
	steam := scene.Find("steam").(*PointsNode)

	for i := 0; i < steam.Particles.Len(); i++ {
		p := steam.Particles.At(i)
		assert.True(t, p.Y() >= 0 && p.Y() < 2)
		assert.LessOrEqual(t, p.X(), float32(0.15))
		assert.GreaterOrEqual(t, p.X(), float32(-0.15))
		assert.LessOrEqual(t, p.Z(), float32(0.15))
		assert.GreaterOrEqual(t, p.Z(), float32(-0.15))
	}
	assert.Equal(t, 0, scene.Find("dust").(*PointsNode).Particles.Len())
}

func TestHeroScene_DeterministicPerSeed(t *testing.T) {
	a := HeroScene(HeroOptions{Seed: 5, SteamCount: 50, SteamStep: 0.01, DustCount: 100})
	b := HeroScene(HeroOptions{Seed: 5, SteamCount: 50, SteamStep: 0.01, DustCount: 100})
	c := HeroScene(HeroOptions{Seed: 6, SteamCount: 50, SteamStep: 0.01, DustCount: 100})

	steamA := a.Find("steam").(*PointsNode).Particles.Positions()
	assert.Equal(t, steamA, b.Find("steam").(*PointsNode).Particles.Positions())
	assert.NotEqual(t, steamA, c.Find("steam").(*PointsNode).Particles.Positions())

	assert.NotEqual(t, a.Find("steam").ID(), b.Find("steam").ID(), "node ids are unique per scene")
}

func TestHeroScene_CupHierarchy(t *testing.T) {
	scene := HeroScene(DefaultHeroOptions())
	scene.UpdateWorldTransforms()

	handle := scene.Find("cup-handle")
	require.NotNil(t, handle)
	pos := WorldPosition(handle)
	assert.InDelta(t, 0.95, pos.X(), 1e-6)
	assert.InDelta(t, -0.5, pos.Y(), 1e-6)

	saucer := scene.Find("saucer")
	assert.InDelta(t, -1.35, WorldPosition(saucer).Y(), 1e-6)
}

func TestHeroScene_AnimatedFrameMovesObjects(t *testing.T) {
	scene := HeroScene(DefaultHeroOptions())
	scene.UpdateWorldTransforms()
	pastry := scene.Find("pastry-a")
	before := pastry.World()

	for _, a := range scene.Animators() {
		a.Animate(2.5)
	}
	scene.UpdateWorldTransforms()

	assert.NotEqual(t, before, pastry.World())
	assert.InDelta(t, WrapAngle(2.5*0.5), pastry.Local().Rotation.X(), 1e-6)
}
