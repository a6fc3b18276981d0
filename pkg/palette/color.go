// Package palette converts escape results into colors.
package palette

import "fmt"

// Color is an opaque RGB triple, the platform-neutral color both
// deployment targets agree on.
type Color struct {
	R, G, B uint8
}

// RGBA implements image/color.Color with full opacity.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex renders the color as "#rrggbb" for the web client.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// lerp interpolates per channel; t outside [0,1] is clamped.
func lerp(a, b Color, t float64) Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Color{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t + 0.5),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t + 0.5),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t + 0.5),
	}
}
