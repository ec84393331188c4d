package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/feelfresh/heroscene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	indices []uint64
}

func (s *recordingSink) WriteFrame(index uint64, img image.Image) error {
	s.indices = append(s.indices, index)
	return nil
}

func redBallScene() *heroscene.Scene {
	scene := heroscene.NewScene(heroscene.DefaultCamera())
	scene.Add(
		heroscene.NewLight("ambient", mgl32.Vec3{}, heroscene.AmbientLight(1)),
		heroscene.NewMesh("ball", mgl32.Vec3{},
			heroscene.SphereGeometry{Radius: 0.5, WidthSegments: 16, HeightSegments: 16},
			heroscene.StandardMaterial{Color: heroscene.MustColor("#FF0000")}),
	)
	scene.UpdateWorldTransforms()
	return scene
}

func TestRenderer_DrawsLitMesh(t *testing.T) {
	sink := &recordingSink{}
	r := New(Options{Width: 64, Height: 36, DPR: 1, Sink: sink})
	require.NoError(t, r.Attach(redBallScene()))

	require.NoError(t, r.Render(heroscene.Frame{Index: 0}))
	require.NoError(t, r.Render(heroscene.Frame{Index: 1}))

	img := r.Last()
	assert.Equal(t, image.Pt(64, 36), img.Bounds().Size())
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{255, 0, 0, 255}), color.RGBAModel.Convert(img.At(32, 18)))
	assert.Equal(t, color.RGBAModel.Convert(color.White), color.RGBAModel.Convert(img.At(0, 0)))
	assert.Equal(t, []uint64{0, 1}, sink.indices)
}

func TestRenderer_SupersamplesByClampedDPR(t *testing.T) {
	r := New(Options{Width: 64, Height: 36, DPR: 2})
	require.NoError(t, r.Attach(redBallScene()))
	assert.Equal(t, image.Pt(128, 72), r.Size())

	require.NoError(t, r.Render(heroscene.Frame{}))
	assert.Equal(t, image.Pt(64, 36), r.Last().Bounds().Size())

	r = New(Options{Width: 64, Height: 36, DPR: 3})
	require.NoError(t, r.Attach(redBallScene()))
	assert.Equal(t, image.Pt(128, 72), r.Size())
}

func TestRenderer_RequiresAttach(t *testing.T) {
	r := New(Options{Width: 64, Height: 36})

	assert.ErrorIs(t, r.Render(heroscene.Frame{}), ErrNotAttached)

	require.NoError(t, r.Attach(redBallScene()))
	r.Detach()
	assert.ErrorIs(t, r.Render(heroscene.Frame{}), ErrNotAttached)
}

func TestRenderer_RejectsEmptyViewport(t *testing.T) {
	r := New(Options{})

	assert.Error(t, r.Attach(redBallScene()))
}

func TestRenderer_UploadsParticles(t *testing.T) {
	scene := heroscene.HeroScene(heroscene.DefaultHeroOptions())
	scene.UpdateWorldTransforms()
	r := New(Options{Width: 160, Height: 90, DPR: 1})
	require.NoError(t, r.Attach(scene))

	for _, a := range scene.Animators() {
		a.Animate(0.5)
	}
	scene.UpdateWorldTransforms()
	steam := scene.Find("steam").(*heroscene.PointsNode)
	require.True(t, steam.Particles.NeedsUpdate)

	require.NoError(t, r.Render(heroscene.Frame{Index: 1, Elapsed: 0.5}))

	assert.False(t, steam.Particles.NeedsUpdate)
}

func TestPNGSink_WritesNumberedFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	sink := PNGSink{Dir: dir}
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))

	require.NoError(t, sink.WriteFrame(7, img))

	f, err := os.Open(filepath.Join(dir, "frame_00007.png"))
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 3), decoded.Bounds().Size())
}
