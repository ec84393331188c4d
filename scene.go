package heroscene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type NodeID string

func makeNodeID() NodeID {
	return NodeID(uuid.NewString())
}

type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
	KindPoints
	KindLight
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindPoints:
		return "points"
	case KindLight:
		return "light"
	}
	return "unknown"
}

// Node is one entry of the scene tree. Only groups have children.
type Node interface {
	ID() NodeID
	Name() string
	Kind() NodeKind
	// Local is the node's own transform, mutable by animators.
	Local() *Transform
	// World is the last transform resolved by Scene.UpdateWorldTransforms.
	World() mgl32.Mat4
	Children() []Node

	setWorld(m mgl32.Mat4)
}

type nodeBase struct {
	id       NodeID
	name     string
	local    Transform
	world    mgl32.Mat4
	children []Node
}

func newNodeBase(name string, position mgl32.Vec3) nodeBase {
	local := NewTransform()
	local.Position = position
	return nodeBase{
		id:    makeNodeID(),
		name:  name,
		local: local,
		world: mgl32.Ident4(),
	}
}

func (n *nodeBase) ID() NodeID            { return n.id }
func (n *nodeBase) Name() string          { return n.name }
func (n *nodeBase) Local() *Transform     { return &n.local }
func (n *nodeBase) World() mgl32.Mat4     { return n.world }
func (n *nodeBase) Children() []Node      { return n.children }
func (n *nodeBase) setWorld(m mgl32.Mat4) { n.world = m }

// WorldPosition is the translation part of the world matrix.
func WorldPosition(n Node) mgl32.Vec3 {
	return n.World().Col(3).Vec3()
}

type GroupNode struct {
	nodeBase
}

func NewGroup(name string, position mgl32.Vec3) *GroupNode {
	return &GroupNode{nodeBase: newNodeBase(name, position)}
}

func (g *GroupNode) Kind() NodeKind { return KindGroup }

func (g *GroupNode) Add(children ...Node) *GroupNode {
	g.children = append(g.children, children...)
	return g
}

type MeshNode struct {
	nodeBase
	Geometry Geometry
	Material Material
}

func NewMesh(name string, position mgl32.Vec3, geometry Geometry, material Material) *MeshNode {
	return &MeshNode{
		nodeBase: newNodeBase(name, position),
		Geometry: geometry,
		Material: material,
	}
}

func (m *MeshNode) Kind() NodeKind { return KindMesh }

type PointsNode struct {
	nodeBase
	Particles *ParticleSystem
	Material  PointsMaterial
}

func NewPoints(name string, position mgl32.Vec3, particles *ParticleSystem, material PointsMaterial) *PointsNode {
	return &PointsNode{
		nodeBase:  newNodeBase(name, position),
		Particles: particles,
		Material:  material,
	}
}

func (p *PointsNode) Kind() NodeKind { return KindPoints }

type LightNode struct {
	nodeBase
	Light Light
}

func NewLight(name string, position mgl32.Vec3, light Light) *LightNode {
	return &LightNode{
		nodeBase: newNodeBase(name, position),
		Light:    light,
	}
}

func (l *LightNode) Kind() NodeKind { return KindLight }

// Scene owns a node tree, a camera and the animators bound to its nodes.
// A scene is composed once and is not shared.
type Scene struct {
	Root      *GroupNode
	Camera    Camera
	animators []Animator
}

func NewScene(camera Camera) *Scene {
	return &Scene{
		Root:   NewGroup("root", mgl32.Vec3{}),
		Camera: camera,
	}
}

func (s *Scene) Add(nodes ...Node) *Scene {
	s.Root.Add(nodes...)
	return s
}

// Animate binds animators to the scene. They run in the order given.
func (s *Scene) Animate(animators ...Animator) *Scene {
	s.animators = append(s.animators, animators...)
	return s
}

func (s *Scene) Animators() []Animator {
	return s.animators
}

// Walk visits nodes depth first, parents before children. Returning false
// from fn skips the node's subtree.
func (s *Scene) Walk(fn func(n Node, depth int) bool) {
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		if !fn(n, depth) {
			return
		}
		for _, c := range n.Children() {
			visit(c, depth+1)
		}
	}
	visit(s.Root, 0)
}

// UpdateWorldTransforms resolves world = parentWorld * local for every node.
func (s *Scene) UpdateWorldTransforms() {
	var visit func(n Node, parent mgl32.Mat4)
	visit = func(n Node, parent mgl32.Mat4) {
		world := parent.Mul4(n.Local().Matrix())
		n.setWorld(world)
		for _, c := range n.Children() {
			visit(c, world)
		}
	}
	visit(s.Root, mgl32.Ident4())
}

// Find returns the first node with the given name.
func (s *Scene) Find(name string) Node {
	var found Node
	s.Walk(func(n Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Name() == name {
			found = n
			return false
		}
		return true
	})
	return found
}

func (s *Scene) Lights() []*LightNode {
	return collect[*LightNode](s)
}

func (s *Scene) Meshes() []*MeshNode {
	return collect[*MeshNode](s)
}

func (s *Scene) Points() []*PointsNode {
	return collect[*PointsNode](s)
}

func collect[T Node](s *Scene) []T {
	var out []T
	s.Walk(func(n Node, _ int) bool {
		if t, ok := n.(T); ok {
			out = append(out, t)
		}
		return true
	})
	return out
}
