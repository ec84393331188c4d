package heroscene

type Material interface {
	BaseColor() Color
}

type StandardMaterial struct {
	Color     Color
	Roughness float32
	Metalness float32
}

func (m StandardMaterial) BaseColor() Color { return m.Color }

// DistortMaterial is a standard material whose surface wobbles over time.
type DistortMaterial struct {
	Color     Color
	Speed     float32
	Distort   float32
	Roughness float32
}

func (m DistortMaterial) BaseColor() Color { return m.Color }

type PointsMaterial struct {
	Color           Color
	Size            float32
	Opacity         float32
	Transparent     bool
	SizeAttenuation bool
}

func (m PointsMaterial) BaseColor() Color { return m.Color }
