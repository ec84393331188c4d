// Package raster is a headless software renderer for hero scenes. Meshes
// are drawn as lit discs and particles as translucent dots, painter-sorted
// by depth.
package raster

import (
	"errors"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/feelfresh/heroscene"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

const Name heroscene.RendererName = "raster"

var ErrNotAttached = errors.New("raster: renderer not attached")

// FrameSink receives every rendered frame.
type FrameSink interface {
	WriteFrame(index uint64, img image.Image) error
}

type Options struct {
	Width  int
	Height int
	// DPR is the requested device pixel ratio; it is clamped to the
	// camera's range and frames are supersampled by it.
	DPR        float32
	Background color.Color
	Sink       FrameSink
}

type meshItem struct {
	node   *heroscene.MeshNode
	radius float32
	color  heroscene.Color
}

type pointsItem struct {
	node *heroscene.PointsNode
}

type drawItem struct {
	x, y, r float32
	depth   float32
	fill    color.NRGBA
}

type Renderer struct {
	opts Options

	scene  *heroscene.Scene
	meshes []meshItem
	points []pointsItem
	lights []*heroscene.LightNode

	canvas *image.RGBA
	out    *image.RGBA
	raster *vector.Rasterizer
	items  []drawItem
}

func New(opts Options) *Renderer {
	if opts.Background == nil {
		opts.Background = color.White
	}
	return &Renderer{opts: opts}
}

// Attach walks the scene tree once and keeps the drawable nodes.
func (r *Renderer) Attach(scene *heroscene.Scene) error {
	if r.opts.Width <= 0 || r.opts.Height <= 0 {
		return errors.New("raster: width and height must be positive")
	}
	r.scene = scene
	r.meshes = r.meshes[:0]
	r.points = r.points[:0]
	r.lights = r.lights[:0]

	scene.Walk(func(n heroscene.Node, _ int) bool {
		switch node := n.(type) {
		case *heroscene.MeshNode:
			r.meshes = append(r.meshes, meshItem{
				node:   node,
				radius: node.Geometry.BoundingRadius(),
				color:  node.Material.BaseColor(),
			})
		case *heroscene.PointsNode:
			r.points = append(r.points, pointsItem{node: node})
		case *heroscene.LightNode:
			r.lights = append(r.lights, node)
		}
		return true
	})

	dpr := scene.Camera.ClampDPR(r.opts.DPR)
	w := int(math.Round(float64(float32(r.opts.Width) * dpr)))
	h := int(math.Round(float64(float32(r.opts.Height) * dpr)))
	r.canvas = image.NewRGBA(image.Rect(0, 0, w, h))
	r.out = r.canvas
	if w != r.opts.Width || h != r.opts.Height {
		r.out = image.NewRGBA(image.Rect(0, 0, r.opts.Width, r.opts.Height))
	}
	r.raster = vector.NewRasterizer(w, h)
	r.raster.DrawOp = draw.Over
	return nil
}

func (r *Renderer) Detach() {
	r.scene = nil
	r.meshes, r.points, r.lights = nil, nil, nil
}

// Size is the supersampled canvas size.
func (r *Renderer) Size() image.Point {
	if r.canvas == nil {
		return image.Point{}
	}
	return r.canvas.Bounds().Size()
}

// Last returns the most recent frame at the output size.
func (r *Renderer) Last() image.Image {
	return r.out
}

func (r *Renderer) Render(frame heroscene.Frame) error {
	if r.scene == nil {
		return ErrNotAttached
	}
	bounds := r.canvas.Bounds()
	draw.Draw(r.canvas, bounds, image.NewUniform(r.opts.Background), image.Point{}, draw.Src)

	proj := r.scene.Camera.Projector(bounds.Dx(), bounds.Dy())
	r.items = r.items[:0]
	r.collectMeshes(proj)
	r.collectPoints(proj)

	// Far to near.
	sort.SliceStable(r.items, func(i, j int) bool { return r.items[i].depth > r.items[j].depth })
	for _, it := range r.items {
		r.disc(it)
	}

	if r.out != r.canvas {
		draw.CatmullRom.Scale(r.out, r.out.Bounds(), r.canvas, bounds, draw.Src, nil)
	}
	if r.opts.Sink != nil {
		return r.opts.Sink.WriteFrame(frame.Index, r.out)
	}
	return nil
}

func (r *Renderer) collectMeshes(proj heroscene.Projector) {
	for _, m := range r.meshes {
		world := m.node.World()
		center := world.Col(3).Vec3()
		x, y, depth, ok := proj.Project(center)
		if !ok {
			continue
		}
		scale := maxAxisScale(world)
		shade := r.shade(center)
		c := heroscene.Color{m.color[0] * shade[0], m.color[1] * shade[1], m.color[2] * shade[2]}
		r.items = append(r.items, drawItem{
			x: x, y: y, depth: depth,
			r:    proj.Scale(m.radius*scale, depth),
			fill: c.RGBA(1),
		})
	}
}

func (r *Renderer) collectPoints(proj heroscene.Projector) {
	for _, p := range r.points {
		world := p.node.World()
		mat := p.node.Material
		opacity := float32(1)
		if mat.Transparent {
			opacity = mat.Opacity
		}
		fill := mat.Color.RGBA(opacity)
		ps := p.node.Particles
		for i := 0; i < ps.Len(); i++ {
			pos := world.Mul4x1(ps.At(i).Vec4(1)).Vec3()
			x, y, depth, ok := proj.Project(pos)
			if !ok {
				continue
			}
			radius := mat.Size / 2
			if mat.SizeAttenuation {
				radius = proj.Scale(radius, depth)
			}
			r.items = append(r.items, drawItem{x: x, y: y, depth: depth, r: max(radius, 0.5), fill: fill})
		}
		ps.MarkUploaded()
	}
}

// shade is a per-object lambert term using the direction towards the
// camera as the surface normal.
func (r *Renderer) shade(center mgl32.Vec3) heroscene.Color {
	normal := r.scene.Camera.Position.Sub(center)
	if normal.Len() == 0 {
		normal = mgl32.Vec3{0, 0, 1}
	}
	normal = normal.Normalize()

	var out heroscene.Color
	for _, l := range r.lights {
		var k float32
		switch l.Light.Type {
		case heroscene.LightTypeAmbient:
			k = 1
		case heroscene.LightTypeDirectional:
			dir := heroscene.WorldPosition(l)
			if dir.Len() > 0 {
				k = max(normal.Dot(dir.Normalize()), 0)
			}
		case heroscene.LightTypePoint:
			dir := heroscene.WorldPosition(l).Sub(center)
			if dir.Len() > 0 {
				k = max(normal.Dot(dir.Normalize()), 0)
			}
		}
		for i := range out {
			out[i] += l.Light.Color[i] * l.Light.Intensity * k
		}
	}
	return out
}

func (r *Renderer) disc(it drawItem) {
	if it.r <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(float64(it.x-it.r))), int(math.Floor(float64(it.y-it.r))),
		int(math.Ceil(float64(it.x+it.r))), int(math.Ceil(float64(it.y+it.r))),
	).Intersect(r.canvas.Bounds())
	if box.Empty() {
		return
	}
	// Rasterizer coordinates are relative to the box.
	cx, cy := it.x-float32(box.Min.X), it.y-float32(box.Min.Y)

	const segments = 24
	z := r.raster
	z.Reset(box.Dx(), box.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(cx+it.r, cy)
	for i := 1; i < segments; i++ {
		a := float64(i) * 2 * math.Pi / segments
		z.LineTo(cx+it.r*float32(math.Cos(a)), cy+it.r*float32(math.Sin(a)))
	}
	z.ClosePath()
	z.Draw(r.canvas, box, image.NewUniform(it.fill), image.Point{})
}

func maxAxisScale(m mgl32.Mat4) float32 {
	return max(m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len())
}
