package heroscene

type LightType uint32

const (
	LightTypePoint       LightType = 0
	LightTypeDirectional LightType = 1
	LightTypeAmbient     LightType = 3
)

func (t LightType) String() string {
	switch t {
	case LightTypePoint:
		return "point"
	case LightTypeDirectional:
		return "directional"
	case LightTypeAmbient:
		return "ambient"
	}
	return "unknown"
}

// Light is the descriptor carried by a LightNode. Position comes from the
// node transform; ambient lights ignore it.
type Light struct {
	Type      LightType
	Color     Color // RGB
	Intensity float32
}

var white = Color{1, 1, 1}

func AmbientLight(intensity float32) Light {
	return Light{Type: LightTypeAmbient, Color: white, Intensity: intensity}
}

func DirectionalLight(intensity float32) Light {
	return Light{Type: LightTypeDirectional, Color: white, Intensity: intensity}
}

func PointLight(intensity float32, color Color) Light {
	return Light{Type: LightTypePoint, Color: color, Intensity: intensity}
}
