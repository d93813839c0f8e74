package qemviz

import (
	"image/color"
	"math"
)

// Color is a linear RGB color with components in 0..1.
type Color struct {
	R float64
	G float64
	B float64
}

func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA converts to 8-bit channels, clamping out of range components.
func (c Color) RGBA(alpha float64) color.RGBA {
	return color.RGBA{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: toByte(alpha),
	}
}

func toByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// HSVToRGB converts hue, saturation and value (all 0..1) to RGB.
func HSVToRGB(h, s, v float64) Color {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := v - c

	var rgb Color
	switch {
	case h < 1.0/6.0:
		rgb = Color{c, x, 0}
	case h < 2.0/6.0:
		rgb = Color{x, c, 0}
	case h < 3.0/6.0:
		rgb = Color{0, c, x}
	case h < 4.0/6.0:
		rgb = Color{0, x, c}
	case h < 5.0/6.0:
		rgb = Color{x, 0, c}
	default:
		rgb = Color{c, 0, x}
	}

	return Color{rgb.R + m, rgb.G + m, rgb.B + m}
}

// ClusterColor returns the palette color for the i-th cluster. The palette
// repeats every eight clusters.
func ClusterColor(i int) Color {
	return HSVToRGB(math.Mod(float64(i)/8, 1), 1, 1)
}
