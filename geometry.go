package heroscene

import (
	"fmt"
	"math"
)

type GeometryKind int

const (
	GeometryCylinder GeometryKind = iota
	GeometryTorus
	GeometryIcosahedron
	GeometrySphere
	GeometryDodecahedron
)

var geometryNames = map[GeometryKind]string{
	GeometryCylinder:     "cylinder",
	GeometryTorus:        "torus",
	GeometryIcosahedron:  "icosahedron",
	GeometrySphere:       "sphere",
	GeometryDodecahedron: "dodecahedron",
}

func (k GeometryKind) String() string {
	if name, ok := geometryNames[k]; ok {
		return name
	}
	return fmt.Sprintf("GeometryKind(%d)", int(k))
}

func ParseGeometryKind(s string) (GeometryKind, error) {
	for k, name := range geometryNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGeometry, s)
}

// Geometry describes a mesh shape. Descriptors are immutable once built.
type Geometry interface {
	Kind() GeometryKind
	// BoundingRadius is the radius of a sphere around the local origin
	// enclosing the whole shape.
	BoundingRadius() float32
}

type CylinderGeometry struct {
	RadiusTop      float32
	RadiusBottom   float32
	Height         float32
	RadialSegments int
}

func (g CylinderGeometry) Kind() GeometryKind { return GeometryCylinder }

func (g CylinderGeometry) BoundingRadius() float32 {
	r := max(g.RadiusTop, g.RadiusBottom)
	h := g.Height / 2
	return float32(math.Sqrt(float64(r*r + h*h)))
}

// TorusGeometry is a ring in the XY plane; Arc limits it to a partial sweep.
type TorusGeometry struct {
	Radius          float32
	Tube            float32
	RadialSegments  int
	TubularSegments int
	Arc             float32
}

func (g TorusGeometry) Kind() GeometryKind      { return GeometryTorus }
func (g TorusGeometry) BoundingRadius() float32 { return g.Radius + g.Tube }

type IcosahedronGeometry struct {
	Radius float32
	Detail int
}

func (g IcosahedronGeometry) Kind() GeometryKind      { return GeometryIcosahedron }
func (g IcosahedronGeometry) BoundingRadius() float32 { return g.Radius }

type SphereGeometry struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
}

func (g SphereGeometry) Kind() GeometryKind      { return GeometrySphere }
func (g SphereGeometry) BoundingRadius() float32 { return g.Radius }

type DodecahedronGeometry struct {
	Radius float32
	Detail int
}

func (g DodecahedronGeometry) Kind() GeometryKind      { return GeometryDodecahedron }
func (g DodecahedronGeometry) BoundingRadius() float32 { return g.Radius }
