package heroscene

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// SpecialsOptions tune the specials section backdrop.
type SpecialsOptions struct {
	Seed int64
}

func DefaultSpecialsOptions() SpecialsOptions {
	return SpecialsOptions{Seed: 1}
}

type dessert struct {
	pos   mgl32.Vec3
	color Color
	size  float32
}

var specialsDesserts = []dessert{
	{mgl32.Vec3{-3, 2, -2}, cocoa, 0.4},
	{mgl32.Vec3{3, -1.5, -1}, terracotta, 0.5},
	{mgl32.Vec3{-2.5, -2, -3}, mint, 0.35},
	{mgl32.Vec3{2.5, 1.5, -2}, honey, 0.45},
	{mgl32.Vec3{0, 2.5, -4}, terracotta, 0.3},
	{mgl32.Vec3{-3.5, 0, -2}, mint, 0.4},
}

// SpecialsScene composes the dimmer backdrop behind the specials menu: six
// slowly tumbling desserts under the same camera as the hero scene.
func SpecialsScene(opts SpecialsOptions) *Scene {
	rng := rand.New(rand.NewSource(opts.Seed))
	scene := NewScene(DefaultCamera())

	scene.Add(
		NewLight("ambient", mgl32.Vec3{}, AmbientLight(0.4)),
		NewLight("key", mgl32.Vec3{5, 5, 5}, DirectionalLight(0.8)),
		NewLight("fill", mgl32.Vec3{-5, 5, -5}, PointLight(0.4, honey)),
	)
	for i, d := range specialsDesserts {
		node, anim := floatingDessert(rng, i, d)
		scene.Add(node).Animate(anim...)
	}
	return scene
}

func floatingDessert(rng *rand.Rand, i int, d dessert) (Node, []Animator) {
	mesh := NewMesh(indexedName("dessert", i), d.pos,
		DodecahedronGeometry{Radius: d.size},
		DistortMaterial{Color: d.color, Speed: 2, Distort: 0.2, Roughness: 0.3})
	wrapper := NewGroup(indexedName("dessert-float", i), mgl32.Vec3{}).Add(mesh)
	return wrapper, []Animator{
		NewFloat(wrapper.Local(), 2, 0.8, 1.5, floatOffset(rng)),
		&Spin{Target: mesh.Local(), Rates: mgl32.Vec3{0.3, 0, 0.2}},
	}
}

// SpecialsSceneModule makes the specials backdrop the app's mountable scene.
type SpecialsSceneModule struct {
	Options SpecialsOptions
}

func (m SpecialsSceneModule) Install(app *App) {
	opts := m.Options
	app.addResources(&opts)
	app.SetComposer(func() *Scene {
		return SpecialsScene(opts)
	})
}
