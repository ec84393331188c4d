package heroscene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is an RGB triple in the 0..1 range.
type Color [3]float32

// ParseColor accepts "#RRGGBB", "#RGB" or a CSS color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return Color{
			float32((v>>16)&0xff) / 255,
			float32((v>>8)&0xff) / 255,
			float32(v&0xff) / 255,
		}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return ColorFromRGBA(c), nil
	}
	return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

// MustColor panics on malformed input; meant for literals.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func ColorFromRGBA(c color.RGBA) Color {
	return Color{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// RGBA converts to 8-bit color with the given opacity, clamping channels.
func (c Color) RGBA(opacity float32) color.NRGBA {
	return color.NRGBA{
		R: unit8(c[0]),
		G: unit8(c[1]),
		B: unit8(c[2]),
		A: unit8(opacity),
	}
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", unit8(c[0]), unit8(c[1]), unit8(c[2]))
}

func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
