package heroscene

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// HeroOptions are the tunable parts of the café hero scene.
type HeroOptions struct {
	Seed       int64
	SteamCount int
	SteamStep  float32
	SteamWrap  WrapMode
	DustCount  int
}

func DefaultHeroOptions() HeroOptions {
	return HeroOptions{
		Seed:       1,
		SteamCount: 50,
		SteamStep:  0.01,
		SteamWrap:  WrapReset,
		DustCount:  100,
	}
}

var (
	porcelain  = MustColor("#F5F1E9")
	coffee     = MustColor("#3d2314")
	honey      = MustColor("#FFD166")
	cocoa      = MustColor("#8B6D5C")
	terracotta = MustColor("#E08D79")
	mint       = MustColor("#A3D9A5")
)

const (
	steamTop    = 2
	steamBottom = 0
)

// HeroScene composes the hero section backdrop: a floating coffee cup with
// rising steam, drifting pastries and fruit, and a slowly turning dust field.
func HeroScene(opts HeroOptions) *Scene {
	rng := rand.New(rand.NewSource(opts.Seed))
	scene := NewScene(DefaultCamera())

	scene.Add(
		NewLight("ambient", mgl32.Vec3{}, AmbientLight(0.5)),
		NewLight("key", mgl32.Vec3{5, 5, 5}, DirectionalLight(1)),
		NewLight("fill", mgl32.Vec3{-5, 5, -5}, PointLight(0.5, honey)),
	)

	cup, cupAnim := coffeeCup(rng)
	scene.Add(cup).Animate(cupAnim...)

	steam, steamAnim := steamColumn(rng, opts)
	scene.Add(steam).Animate(steamAnim...)

	pastries := []struct {
		pos   mgl32.Vec3
		color Color
	}{
		{mgl32.Vec3{-2, 1, -1}, cocoa},
		{mgl32.Vec3{2.5, -0.5, -2}, terracotta},
	}
	for i, p := range pastries {
		node, anim := floatingPastry(rng, i, p.pos, p.color)
		scene.Add(node).Animate(anim...)
	}

	fruits := []struct {
		pos   mgl32.Vec3
		color Color
	}{
		{mgl32.Vec3{-2.5, -1, 0}, mint},
		{mgl32.Vec3{2, 1.5, -1}, honey},
		{mgl32.Vec3{-1.5, 2, -2}, terracotta},
	}
	for i, f := range fruits {
		node, anim := floatingFruit(rng, i, f.pos, f.color)
		scene.Add(node).Animate(anim...)
	}

	dust, dustAnim := dustField(rng, opts)
	scene.Add(dust).Animate(dustAnim...)

	return scene
}

func floatOffset(rng *rand.Rand) float32 {
	return rng.Float32() * 10000
}

func coffeeCup(rng *rand.Rand) (Node, []Animator) {
	china := StandardMaterial{Color: porcelain, Roughness: 0.3, Metalness: 0.1}

	cup := NewGroup("cup", mgl32.Vec3{0, -0.5, 0})
	handle := NewMesh("cup-handle", mgl32.Vec3{0.95, 0, 0},
		TorusGeometry{Radius: 0.3, Tube: 0.08, RadialSegments: 16, TubularSegments: 32, Arc: math.Pi},
		china)
	handle.Local().Rotation = mgl32.Vec3{0, 0, math.Pi / 2}

	cup.Add(
		NewMesh("cup-body", mgl32.Vec3{0, 0, 0},
			CylinderGeometry{RadiusTop: 0.8, RadiusBottom: 0.6, Height: 1.5, RadialSegments: 32},
			china),
		NewMesh("cup-inner", mgl32.Vec3{0, 0.3, 0},
			CylinderGeometry{RadiusTop: 0.7, RadiusBottom: 0.5, Height: 1, RadialSegments: 32},
			StandardMaterial{Color: coffee, Roughness: 0.8}),
		handle,
		NewMesh("saucer", mgl32.Vec3{0, -0.85, 0},
			CylinderGeometry{RadiusTop: 1.2, RadiusBottom: 1.1, Height: 0.1, RadialSegments: 32},
			china),
	)

	wrapper := NewGroup("cup-float", mgl32.Vec3{})
	wrapper.Add(cup)

	return wrapper, []Animator{
		NewFloat(wrapper.Local(), 2, 0.5, 1, floatOffset(rng)),
		&Sway{Target: cup.Local(), Axis: 1, Frequency: 0.3, Amplitude: 0.1},
	}
}

func steamColumn(rng *rand.Rand, opts HeroOptions) (Node, []Animator) {
	particles := NewParticleSystem(opts.SteamCount, CenteredSpread(0.3, 0.3, steamBottom, steamTop), rng)
	steam := NewPoints("steam", mgl32.Vec3{0, 0.5, 0}, particles, PointsMaterial{
		Color:           white,
		Size:            0.05,
		Opacity:         0.4,
		Transparent:     true,
		SizeAttenuation: true,
	})
	return steam, []Animator{
		&Spin{Target: steam.Local(), Rates: mgl32.Vec3{0, 0.2, 0}},
		&Drift{Particles: particles, Step: opts.SteamStep, Lower: steamBottom, Upper: steamTop, Mode: opts.SteamWrap},
	}
}

func floatingPastry(rng *rand.Rand, i int, pos mgl32.Vec3, color Color) (Node, []Animator) {
	pastry := NewMesh(indexedName("pastry", i), pos,
		IcosahedronGeometry{Radius: 0.4},
		DistortMaterial{Color: color, Speed: 2, Distort: 0.3, Roughness: 0.4})
	wrapper := NewGroup(indexedName("pastry-float", i), mgl32.Vec3{}).Add(pastry)
	return wrapper, []Animator{
		NewFloat(wrapper.Local(), 1.5, 1, 2, floatOffset(rng)),
		&Spin{Target: pastry.Local(), Rates: mgl32.Vec3{0.5, 0, 0.3}},
	}
}

func floatingFruit(rng *rand.Rand, i int, pos mgl32.Vec3, color Color) (Node, []Animator) {
	fruit := NewMesh(indexedName("fruit", i), pos,
		SphereGeometry{Radius: 0.25, WidthSegments: 32, HeightSegments: 32},
		StandardMaterial{Color: color, Roughness: 0.3, Metalness: 0.1})
	wrapper := NewGroup(indexedName("fruit-float", i), mgl32.Vec3{}).Add(fruit)
	return wrapper, []Animator{
		NewFloat(wrapper.Local(), 2, 0.8, 1.5, floatOffset(rng)),
	}
}

func dustField(rng *rand.Rand, opts HeroOptions) (Node, []Animator) {
	particles := NewParticleSystem(opts.DustCount, Spread{
		Min: mgl32.Vec3{-5, -5, -5},
		Max: mgl32.Vec3{5, 5, 5},
	}, rng)
	dust := NewPoints("dust", mgl32.Vec3{}, particles, PointsMaterial{
		Color:           honey,
		Size:            0.03,
		Opacity:         0.6,
		Transparent:     true,
		SizeAttenuation: true,
	})
	return dust, []Animator{
		&Spin{Target: dust.Local(), Rates: mgl32.Vec3{0, 0.02, 0}},
	}
}

func indexedName(prefix string, i int) string {
	return prefix + "-" + string(rune('a'+i))
}

// HeroSceneModule makes the hero scene the app's mountable scene. The
// options live on as a resource so config reloads can change them.
type HeroSceneModule struct {
	Options HeroOptions
}

func (m HeroSceneModule) Install(app *App) {
	opts := m.Options
	app.addResources(&opts)
	app.SetComposer(func() *Scene {
		return HeroScene(opts)
	})
}
