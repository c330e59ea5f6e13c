// Package palette maps ripple cell state to colors.
package palette

import "image/color"

// Palette selects how cell state maps to pixel color.
type Palette int

const (
	// Blue draws pure blue with alpha = clamp(height, 0, 1) over black.
	Blue Palette = iota
	// Foam adds a white highlight where the surface moves fast.
	Foam
)

// String returns the palette name shown in the HUD.
func (p Palette) String() string {
	switch p {
	case Foam:
		return "foam"
	default:
		return "blue"
	}
}

// Next cycles to the following palette.
func (p Palette) Next() Palette {
	return (p + 1) % 2
}

// foamScale converts velocity magnitude into highlight strength.
const foamScale = 0.5

// Shade returns the opaque pixel for a cell, blended over a black background.
// Troughs (negative heights) stay black.
func (p Palette) Shade(height, velocityMagnitude float32) color.RGBA {
	a := clampUnit(height)
	c := color.RGBA{B: uint8(a * 255), A: 255}
	if p == Foam {
		f := uint8(clampUnit(velocityMagnitude*foamScale) * a * 255)
		c.R, c.G = f, f
	}
	return c
}

func clampUnit(v float32) float32 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
