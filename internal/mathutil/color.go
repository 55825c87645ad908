package mathutil

// Color is a linear RGB triple. Channels are nominally in [0,1] but are not
// clamped here; quantization to 8 bits clamps.
type Color struct {
	R, G, B float64
}

// Hex builds a Color from a 0xRRGGBB literal.
func Hex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xFF) / 255,
		G: float64((rgb>>8)&0xFF) / 255,
		B: float64(rgb&0xFF) / 255,
	}
}

// White is the multiplicative identity.
var White = Color{1, 1, 1}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// RGBA8 quantizes to 8-bit channels, clamping out-of-range values.
func (c Color) RGBA8() (r, g, b uint8) {
	return Clamp255(c.R * 255), Clamp255(c.G * 255), Clamp255(c.B * 255)
}

// Clamp255 rounds v to the nearest uint8, saturating at 0 and 255.
func Clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
